package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/listit/api/internal/domain/entities"
	"github.com/listit/api/internal/infrastructure/logger"
	"github.com/listit/api/internal/ports"
)

// ListService handles list lifecycle: creation with the duplicate-name
// check and "General" provisioning, and the ordered best-effort deletion
// cascade.
type ListService struct {
	listRepo       ports.ListRepository
	collectionRepo ports.CollectionRepository
	taskRepo       ports.TaskRepository
	noteRepo       ports.NoteRepository
	logger         *logger.Logger
	now            func() time.Time
}

// NewListService creates a new list service
func NewListService(listRepo ports.ListRepository, collectionRepo ports.CollectionRepository, taskRepo ports.TaskRepository, noteRepo ports.NoteRepository, log *logger.Logger) *ListService {
	return &ListService{
		listRepo:       listRepo,
		collectionRepo: collectionRepo,
		taskRepo:       taskRepo,
		noteRepo:       noteRepo,
		logger:         log,
		now:            time.Now,
	}
}

// WithClock overrides the service clock for tests.
func (s *ListService) WithClock(now func() time.Time) *ListService {
	s.now = now
	return s
}

// CreateList creates a list for the user. If a list with the same trimmed,
// case-sensitive name already exists, no duplicate row is created and the
// existing list is returned with created=false so the caller can navigate
// to it. A fresh list is provisioned with its "General" collection.
func (s *ListService) CreateList(ctx context.Context, userID uuid.UUID, req ports.CreateListRequest) (*entities.List, bool, error) {
	name := strings.TrimSpace(req.ListName)
	if name == "" {
		return nil, false, entities.ErrEmptyName
	}

	existing, err := s.listRepo.GetByName(ctx, userID, name)
	if err == nil {
		return existing, false, nil
	}
	if err != entities.ErrListNotFound {
		return nil, false, err
	}

	list := &entities.List{
		ListName:   name,
		BgColorHex: req.BgColorHex,
		UserID:     userID,
		CreatedAt:  s.now(),
	}

	created, err := s.listRepo.Create(ctx, list)
	if err != nil {
		return nil, false, err
	}

	general := &entities.Collection{
		CollectionName: entities.DefaultCollectionName,
		BgColorHex:     req.BgColorHex,
		ListID:         created.ID,
		UserID:         userID,
		CreatedAt:      s.now(),
	}
	if _, err := s.collectionRepo.Create(ctx, general); err != nil {
		return nil, false, err
	}

	s.logger.Infow("list created", "list_id", created.ID, "user_id", userID)
	return created, true, nil
}

// GetLists returns the user's lists.
func (s *ListService) GetLists(ctx context.Context, userID uuid.UUID) ([]entities.List, error) {
	return s.listRepo.GetByUser(ctx, userID)
}

// GetList returns one list, enforcing ownership.
func (s *ListService) GetList(ctx context.Context, userID, listID uuid.UUID) (*entities.List, error) {
	list, err := s.listRepo.GetByID(ctx, listID)
	if err != nil {
		return nil, err
	}
	if list.UserID != userID {
		return nil, entities.ErrListNotFound
	}
	return list, nil
}

// UpdateList updates a list's name, color or pin flag.
func (s *ListService) UpdateList(ctx context.Context, userID, listID uuid.UUID, req ports.UpdateListRequest) (*entities.List, error) {
	list, err := s.GetList(ctx, userID, listID)
	if err != nil {
		return nil, err
	}

	if req.ListName != nil {
		name := strings.TrimSpace(*req.ListName)
		if name == "" {
			return nil, entities.ErrEmptyName
		}
		list.ListName = name
	}
	if req.BgColorHex != nil {
		list.BgColorHex = *req.BgColorHex
	}
	if req.IsPinned != nil {
		list.IsPinned = *req.IsPinned
	}

	return s.listRepo.Update(ctx, list)
}

// DeleteList purges everything referencing the list, in order: tasks of the
// list's collections, notes of those collections, tasks referencing the
// list directly, notes referencing the list directly, the collections, and
// finally the list row. The cascade is best-effort, not transactional: a
// failed step is logged and the remaining steps still run, and every step
// is idempotent so a re-run resumes the purge. Only a failure to delete the
// list row itself is reported to the caller.
func (s *ListService) DeleteList(ctx context.Context, userID, listID uuid.UUID) error {
	if _, err := s.GetList(ctx, userID, listID); err != nil {
		return err
	}

	var collectionIDs []uuid.UUID
	cols, err := s.collectionRepo.GetByList(ctx, listID)
	if err != nil {
		s.logger.Warnw("cascade: collection fetch failed, purging by list reference only", "error", err, "list_id", listID)
	} else {
		for _, c := range cols {
			collectionIDs = append(collectionIDs, c.ID)
		}
	}

	if _, err := s.taskRepo.PurgeByCollections(ctx, collectionIDs); err != nil {
		s.logger.Warnw("cascade: task purge by collections failed", "error", err, "list_id", listID)
	}
	if _, err := s.noteRepo.PurgeByCollections(ctx, collectionIDs); err != nil {
		s.logger.Warnw("cascade: note purge by collections failed", "error", err, "list_id", listID)
	}
	if _, err := s.taskRepo.PurgeByList(ctx, listID); err != nil {
		s.logger.Warnw("cascade: task purge by list failed", "error", err, "list_id", listID)
	}
	if _, err := s.noteRepo.PurgeByList(ctx, listID); err != nil {
		s.logger.Warnw("cascade: note purge by list failed", "error", err, "list_id", listID)
	}
	if _, err := s.collectionRepo.DeleteByList(ctx, listID); err != nil {
		s.logger.Warnw("cascade: collection delete failed", "error", err, "list_id", listID)
	}

	if err := s.listRepo.Delete(ctx, listID); err != nil {
		return err
	}

	s.logger.Infow("list deleted", "list_id", listID, "user_id", userID)
	return nil
}
