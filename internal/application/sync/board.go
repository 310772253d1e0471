// Package sync holds the per-scope view controllers. Each controller owns
// an in-memory entity graph for one scope and keeps it consistent with the
// store: a mutation goes to the repository first, and only a confirmed
// write patches the local state by id. A failed write leaves the state
// untouched, so there is no rollback step. No retries.
package sync

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/listit/api/internal/domain/entities"
	"github.com/listit/api/internal/domain/schedule"
	"github.com/listit/api/internal/infrastructure/logger"
	"github.com/listit/api/internal/ports"
)

// ErrViewClosed is returned by operations on a controller whose view has
// been torn down; it replaces patching state nobody renders anymore.
var ErrViewClosed = errors.New("view controller is closed")

// Board owns the collections of a single list together with their
// materialized tasks and notes.
type Board struct {
	mu     sync.Mutex
	closed bool

	listID uuid.UUID
	userID uuid.UUID

	collections []entities.Collection

	collectionRepo ports.CollectionRepository
	taskRepo       ports.TaskRepository
	noteRepo       ports.NoteRepository
	logger         *logger.Logger
	now            func() time.Time
}

// NewBoard creates a board controller for one list.
func NewBoard(listID, userID uuid.UUID, collectionRepo ports.CollectionRepository, taskRepo ports.TaskRepository, noteRepo ports.NoteRepository, log *logger.Logger) *Board {
	return &Board{
		listID:         listID,
		userID:         userID,
		collectionRepo: collectionRepo,
		taskRepo:       taskRepo,
		noteRepo:       noteRepo,
		logger:         log,
		now:            time.Now,
	}
}

// WithClock overrides the board's clock. Tests use it; production code
// never calls it.
func (b *Board) WithClock(now func() time.Time) *Board {
	b.now = now
	return b
}

// Load fetches the list's collections and materializes each collection's
// tasks and notes, replacing whatever the board held before.
func (b *Board) Load(ctx context.Context) error {
	cols, err := b.collectionRepo.GetByList(ctx, b.listID)
	if err != nil {
		return err
	}

	for i := range cols {
		tasks, err := b.taskRepo.GetByCollection(ctx, cols[i].ID)
		if err != nil {
			return err
		}
		notes, err := b.noteRepo.GetByCollection(ctx, cols[i].ID)
		if err != nil {
			return err
		}
		cols[i].Tasks = tasks
		cols[i].Notes = notes
	}

	schedule.SortCollections(cols)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrViewClosed
	}
	b.collections = cols
	return nil
}

// Collections returns a snapshot of the board's current state.
func (b *Board) Collections() []entities.Collection {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]entities.Collection, len(b.collections))
	copy(out, b.collections)
	return out
}

// Close tears the board down. Later operations fail with ErrViewClosed
// instead of mutating state for a view that no longer exists.
func (b *Board) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.collections = nil
}

// resolveLocked picks the target collection for a new task or note: the
// explicitly selected collection wins, then the caller-provided default,
// then the list's "General" collection, then the first collection. Nil
// means the insert proceeds without a collection reference.
func (b *Board) resolveLocked(explicit, fallback *uuid.UUID) *uuid.UUID {
	if explicit != nil {
		return explicit
	}
	if fallback != nil {
		return fallback
	}
	for i := range b.collections {
		if b.collections[i].IsDefault() {
			id := b.collections[i].ID
			return &id
		}
	}
	if len(b.collections) > 0 {
		id := b.collections[0].ID
		return &id
	}
	return nil
}

// CreateTask inserts a task and, once the insert is confirmed with its
// generated id, prepends it to the owning collection's local array.
func (b *Board) CreateTask(ctx context.Context, req ports.CreateTaskRequest) (*entities.Task, error) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil, ErrViewClosed
	}
	target := b.resolveLocked(req.CollectionID, req.DefaultCollectionID)
	b.mu.Unlock()

	task := &entities.Task{
		Text:         req.Text,
		Description:  req.Description,
		DueDate:      req.DueDate,
		IsPinned:     req.IsPinned,
		CollectionID: target,
		ListID:       b.listID,
		UserID:       b.userID,
		CreatedAt:    b.now(),
	}

	created, err := b.taskRepo.Create(ctx, task)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return created, ErrViewClosed
	}
	if target != nil {
		if col := b.findCollection(*target); col != nil {
			col.Tasks = append([]entities.Task{*created}, col.Tasks...)
		}
	}
	return created, nil
}

// CreateNote mirrors CreateTask for notes.
func (b *Board) CreateNote(ctx context.Context, req ports.CreateNoteRequest) (*entities.Note, error) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil, ErrViewClosed
	}
	target := b.resolveLocked(req.CollectionID, req.DefaultCollectionID)
	b.mu.Unlock()

	note := &entities.Note{
		Title:        req.Title,
		Description:  req.Description,
		BgColorHex:   req.BgColorHex,
		IsPinned:     req.IsPinned,
		CollectionID: target,
		ListID:       b.listID,
		UserID:       b.userID,
		CreatedAt:    b.now(),
	}

	created, err := b.noteRepo.Create(ctx, note)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return created, ErrViewClosed
	}
	if target != nil {
		if col := b.findCollection(*target); col != nil {
			col.Notes = append([]entities.Note{*created}, col.Notes...)
		}
	}
	return created, nil
}

// CreateCollection inserts a collection and appends it, with empty child
// arrays, to the board.
func (b *Board) CreateCollection(ctx context.Context, req ports.CreateCollectionRequest) (*entities.Collection, error) {
	col := &entities.Collection{
		CollectionName: req.CollectionName,
		BgColorHex:     req.BgColorHex,
		ListID:         b.listID,
		UserID:         b.userID,
		CreatedAt:      b.now(),
	}

	created, err := b.collectionRepo.Create(ctx, col)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return created, ErrViewClosed
	}
	fresh := *created
	fresh.Tasks = []entities.Task{}
	fresh.Notes = []entities.Note{}
	b.collections = append(b.collections, fresh)
	return created, nil
}

// UpdateCollection renames or recolors a collection and patches the local
// copy, keeping its child arrays intact.
func (b *Board) UpdateCollection(ctx context.Context, collectionID uuid.UUID, req ports.UpdateCollectionRequest) (*entities.Collection, error) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil, ErrViewClosed
	}
	current := b.findCollection(collectionID)
	if current == nil {
		b.mu.Unlock()
		return nil, entities.ErrCollectionNotFound
	}
	updated := *current
	if req.CollectionName != nil {
		updated.CollectionName = *req.CollectionName
	}
	if req.BgColorHex != nil {
		updated.BgColorHex = *req.BgColorHex
	}
	b.mu.Unlock()

	confirmed, err := b.collectionRepo.Update(ctx, &updated)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return confirmed, ErrViewClosed
	}
	if col := b.findCollection(collectionID); col != nil {
		col.CollectionName = confirmed.CollectionName
		col.BgColorHex = confirmed.BgColorHex
	}
	return confirmed, nil
}

// CompleteTask flips completion on the store row, then patches the task in
// place. Board views show completed state, so the task stays visible.
func (b *Board) CompleteTask(ctx context.Context, taskID uuid.UUID, completed bool) error {
	var completedAt *time.Time
	if completed {
		now := b.now()
		completedAt = &now
	}

	if err := b.taskRepo.SetCompletion(ctx, taskID, b.userID, completed, completedAt); err != nil {
		return err
	}

	return b.patchTask(taskID, func(t *entities.Task) {
		if completed {
			t.SetCompleted(*completedAt)
		} else {
			t.SetIncomplete()
		}
	})
}

// PinTask toggles the task's pin flag and patches in place.
func (b *Board) PinTask(ctx context.Context, taskID uuid.UUID, pinned bool) error {
	if err := b.taskRepo.SetPinned(ctx, taskID, b.userID, pinned); err != nil {
		return err
	}

	if err := b.patchTask(taskID, func(t *entities.Task) { t.IsPinned = pinned }); err != nil {
		return err
	}
	return b.resortTasks(taskID)
}

// UpdateTask writes the edited fields and patches the local copy.
func (b *Board) UpdateTask(ctx context.Context, taskID uuid.UUID, req ports.UpdateTaskRequest) (*entities.Task, error) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil, ErrViewClosed
	}
	current := b.findTask(taskID)
	if current == nil {
		b.mu.Unlock()
		return nil, entities.ErrTaskNotFound
	}
	updated := applyTaskUpdate(*current, req)
	b.mu.Unlock()

	confirmed, err := b.taskRepo.Update(ctx, &updated)
	if err != nil {
		return nil, err
	}

	if err := b.patchTask(taskID, func(t *entities.Task) { *t = *confirmed }); err != nil {
		return nil, err
	}
	if err := b.resortTasks(taskID); err != nil {
		return nil, err
	}
	return confirmed, nil
}

// MoveTask reassigns the task's collection remotely, then moves its local
// copy out of the old collection's array into the new one.
func (b *Board) MoveTask(ctx context.Context, taskID, newCollectionID uuid.UUID) error {
	if err := b.taskRepo.SetCollection(ctx, taskID, b.userID, newCollectionID); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrViewClosed
	}

	var moved *entities.Task
	for i := range b.collections {
		col := &b.collections[i]
		for j := range col.Tasks {
			if col.Tasks[j].ID == taskID {
				t := col.Tasks[j]
				moved = &t
				col.Tasks = append(col.Tasks[:j], col.Tasks[j+1:]...)
				break
			}
		}
		if moved != nil {
			break
		}
	}
	if moved == nil {
		return entities.ErrTaskNotFound
	}

	moved.CollectionID = &newCollectionID
	dest := b.findCollection(newCollectionID)
	if dest == nil {
		return entities.ErrCollectionNotFound
	}
	dest.Tasks = append(dest.Tasks, *moved)
	schedule.SortTasks(dest.Tasks)
	return nil
}

// DeleteTask soft-deletes the row, then filters the task out of every
// collection's array. All collections are scanned because the owning
// collection is not tracked separately.
func (b *Board) DeleteTask(ctx context.Context, taskID uuid.UUID) error {
	if err := b.taskRepo.SoftDelete(ctx, taskID, b.userID); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrViewClosed
	}
	for i := range b.collections {
		col := &b.collections[i]
		kept := col.Tasks[:0]
		for _, t := range col.Tasks {
			if t.ID != taskID {
				kept = append(kept, t)
			}
		}
		col.Tasks = kept
	}
	return nil
}

// UpdateNote writes the edited fields and patches the local copy.
func (b *Board) UpdateNote(ctx context.Context, noteID uuid.UUID, req ports.UpdateNoteRequest) (*entities.Note, error) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil, ErrViewClosed
	}
	current := b.findNote(noteID)
	if current == nil {
		b.mu.Unlock()
		return nil, entities.ErrNoteNotFound
	}
	updated := applyNoteUpdate(*current, req)
	b.mu.Unlock()

	confirmed, err := b.noteRepo.Update(ctx, &updated)
	if err != nil {
		return nil, err
	}

	if err := b.patchNote(noteID, func(n *entities.Note) { *n = *confirmed }); err != nil {
		return nil, err
	}
	return confirmed, nil
}

// PinNote toggles the note's pin flag and patches in place.
func (b *Board) PinNote(ctx context.Context, noteID uuid.UUID, pinned bool) error {
	if err := b.noteRepo.SetPinned(ctx, noteID, b.userID, pinned); err != nil {
		return err
	}
	return b.patchNote(noteID, func(n *entities.Note) { n.IsPinned = pinned })
}

// DeleteNote soft-deletes the row, then filters the note out of every
// collection's array.
func (b *Board) DeleteNote(ctx context.Context, noteID uuid.UUID) error {
	if err := b.noteRepo.SoftDelete(ctx, noteID, b.userID); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrViewClosed
	}
	for i := range b.collections {
		col := &b.collections[i]
		kept := col.Notes[:0]
		for _, n := range col.Notes {
			if n.ID != noteID {
				kept = append(kept, n)
			}
		}
		col.Notes = kept
	}
	return nil
}

func (b *Board) findCollection(id uuid.UUID) *entities.Collection {
	for i := range b.collections {
		if b.collections[i].ID == id {
			return &b.collections[i]
		}
	}
	return nil
}

func (b *Board) findTask(id uuid.UUID) *entities.Task {
	for i := range b.collections {
		for j := range b.collections[i].Tasks {
			if b.collections[i].Tasks[j].ID == id {
				return &b.collections[i].Tasks[j]
			}
		}
	}
	return nil
}

func (b *Board) findNote(id uuid.UUID) *entities.Note {
	for i := range b.collections {
		for j := range b.collections[i].Notes {
			if b.collections[i].Notes[j].ID == id {
				return &b.collections[i].Notes[j]
			}
		}
	}
	return nil
}

func (b *Board) patchTask(id uuid.UUID, patch func(*entities.Task)) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrViewClosed
	}
	task := b.findTask(id)
	if task == nil {
		return entities.ErrTaskNotFound
	}
	patch(task)
	return nil
}

func (b *Board) patchNote(id uuid.UUID, patch func(*entities.Note)) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrViewClosed
	}
	note := b.findNote(id)
	if note == nil {
		return entities.ErrNoteNotFound
	}
	patch(note)
	return nil
}

// resortTasks re-sorts the collection holding the given task after a patch
// that may have changed its ordering key.
func (b *Board) resortTasks(taskID uuid.UUID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrViewClosed
	}
	for i := range b.collections {
		for j := range b.collections[i].Tasks {
			if b.collections[i].Tasks[j].ID == taskID {
				schedule.SortTasks(b.collections[i].Tasks)
				return nil
			}
		}
	}
	return nil
}

func applyTaskUpdate(t entities.Task, req ports.UpdateTaskRequest) entities.Task {
	if req.Text != nil {
		t.Text = *req.Text
	}
	if req.Description != nil {
		t.Description = req.Description
	}
	if req.ClearDue {
		t.DueDate = nil
	} else if req.DueDate != nil {
		t.DueDate = req.DueDate
	}
	if req.IsPinned != nil {
		t.IsPinned = *req.IsPinned
	}
	return t
}

func applyNoteUpdate(n entities.Note, req ports.UpdateNoteRequest) entities.Note {
	if req.Title != nil {
		n.Title = *req.Title
	}
	if req.Description != nil {
		n.Description = req.Description
	}
	if req.BgColorHex != nil {
		n.BgColorHex = *req.BgColorHex
	}
	if req.IsPinned != nil {
		n.IsPinned = *req.IsPinned
	}
	return n
}
