package services

import (
	"context"
	gosync "sync"

	"github.com/google/uuid"

	"github.com/listit/api/internal/application/sync"
	"github.com/listit/api/internal/domain/entities"
	"github.com/listit/api/internal/infrastructure/logger"
	"github.com/listit/api/internal/ports"
)

// ViewService owns the live view controllers. Controllers are created
// lazily on first access per (user, scope), reused across requests, and
// torn down on sign-out or when their backing list goes away. The
// controller lifecycle the views depend on lives here, not in package-level
// singletons.
type ViewService struct {
	mu      gosync.Mutex
	boards  map[boardKey]*sync.Board
	agendas map[agendaKey]*sync.Agenda

	listRepo       ports.ListRepository
	collectionRepo ports.CollectionRepository
	taskRepo       ports.TaskRepository
	noteRepo       ports.NoteRepository
	logger         *logger.Logger
}

// boardKey includes the user so a cached controller can only ever be
// handed back to the user it was built for.
type boardKey struct {
	userID uuid.UUID
	listID uuid.UUID
}

type agendaKey struct {
	userID uuid.UUID
	view   sync.View
}

// NewViewService creates a new view service
func NewViewService(listRepo ports.ListRepository, collectionRepo ports.CollectionRepository, taskRepo ports.TaskRepository, noteRepo ports.NoteRepository, log *logger.Logger) *ViewService {
	return &ViewService{
		boards:         make(map[boardKey]*sync.Board),
		agendas:        make(map[agendaKey]*sync.Agenda),
		listRepo:       listRepo,
		collectionRepo: collectionRepo,
		taskRepo:       taskRepo,
		noteRepo:       noteRepo,
		logger:         log,
	}
}

// Board returns the live board controller for a list, creating and loading
// it on first use. Ownership is enforced before a controller exists.
func (s *ViewService) Board(ctx context.Context, userID, listID uuid.UUID) (*sync.Board, error) {
	key := boardKey{userID: userID, listID: listID}

	s.mu.Lock()
	if board, ok := s.boards[key]; ok {
		s.mu.Unlock()
		return board, nil
	}
	s.mu.Unlock()

	list, err := s.listRepo.GetByID(ctx, listID)
	if err != nil {
		return nil, err
	}
	if list.UserID != userID {
		return nil, entities.ErrListNotFound
	}

	board := sync.NewBoard(listID, userID, s.collectionRepo, s.taskRepo, s.noteRepo, s.logger)
	if err := board.Load(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.boards[key]; ok {
		board.Close()
		return existing, nil
	}
	s.boards[key] = board
	return board, nil
}

// Agenda returns the live agenda controller for a user's view, creating
// and loading it on first use.
func (s *ViewService) Agenda(ctx context.Context, userID uuid.UUID, view sync.View) (*sync.Agenda, error) {
	key := agendaKey{userID: userID, view: view}

	s.mu.Lock()
	if agenda, ok := s.agendas[key]; ok {
		s.mu.Unlock()
		return agenda, nil
	}
	s.mu.Unlock()

	agenda := sync.NewAgenda(userID, view, s.taskRepo, s.collectionRepo, s.listRepo, s.logger)
	if err := agenda.Load(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.agendas[key]; ok {
		agenda.Close()
		return existing, nil
	}
	s.agendas[key] = agenda
	return agenda, nil
}

// CloseList tears down the board of a deleted list.
func (s *ViewService) CloseList(listID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, board := range s.boards {
		if key.listID == listID {
			board.Close()
			delete(s.boards, key)
		}
	}
}

// CloseUser tears down every controller a user holds. Called on sign-out.
func (s *ViewService) CloseUser(userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, agenda := range s.agendas {
		if key.userID == userID {
			agenda.Close()
			delete(s.agendas, key)
		}
	}

	for key, board := range s.boards {
		if key.userID == userID {
			board.Close()
			delete(s.boards, key)
		}
	}
}
