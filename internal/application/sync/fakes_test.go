package sync

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/listit/api/internal/domain/entities"
)

// In-memory repository fakes. Each keeps a flat slice and supports error
// injection so tests can verify that a failed write leaves local state
// untouched.

type fakeListRepo struct {
	lists []entities.List
	err   error
}

func (f *fakeListRepo) Create(_ context.Context, list *entities.List) (*entities.List, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := *list
	if out.ID == uuid.Nil {
		out.ID = uuid.New()
	}
	f.lists = append(f.lists, out)
	return &out, nil
}

func (f *fakeListRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.List, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.lists {
		if f.lists[i].ID == id {
			out := f.lists[i]
			return &out, nil
		}
	}
	return nil, entities.ErrListNotFound
}

func (f *fakeListRepo) GetByName(_ context.Context, userID uuid.UUID, name string) (*entities.List, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.lists {
		if f.lists[i].UserID == userID && f.lists[i].ListName == name {
			out := f.lists[i]
			return &out, nil
		}
	}
	return nil, entities.ErrListNotFound
}

func (f *fakeListRepo) GetByUser(_ context.Context, userID uuid.UUID) ([]entities.List, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []entities.List
	for _, l := range f.lists {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeListRepo) Update(_ context.Context, list *entities.List) (*entities.List, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.lists {
		if f.lists[i].ID == list.ID {
			f.lists[i] = *list
			out := *list
			return &out, nil
		}
	}
	return nil, entities.ErrListNotFound
}

func (f *fakeListRepo) Delete(_ context.Context, id uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	for i := range f.lists {
		if f.lists[i].ID == id {
			f.lists = append(f.lists[:i], f.lists[i+1:]...)
			return nil
		}
	}
	return entities.ErrListNotFound
}

type fakeCollectionRepo struct {
	collections []entities.Collection
	err         error
}

func (f *fakeCollectionRepo) Create(_ context.Context, col *entities.Collection) (*entities.Collection, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := *col
	if out.ID == uuid.Nil {
		out.ID = uuid.New()
	}
	out.Tasks = nil
	out.Notes = nil
	f.collections = append(f.collections, out)
	return &out, nil
}

func (f *fakeCollectionRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.Collection, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.collections {
		if f.collections[i].ID == id {
			out := f.collections[i]
			return &out, nil
		}
	}
	return nil, entities.ErrCollectionNotFound
}

func (f *fakeCollectionRepo) GetByList(_ context.Context, listID uuid.UUID) ([]entities.Collection, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []entities.Collection
	for _, c := range f.collections {
		if c.ListID == listID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCollectionRepo) GetByUser(_ context.Context, userID uuid.UUID) ([]entities.Collection, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []entities.Collection
	for _, c := range f.collections {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCollectionRepo) Update(_ context.Context, col *entities.Collection) (*entities.Collection, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.collections {
		if f.collections[i].ID == col.ID {
			f.collections[i] = *col
			out := *col
			return &out, nil
		}
	}
	return nil, entities.ErrCollectionNotFound
}

func (f *fakeCollectionRepo) Delete(_ context.Context, id uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	for i := range f.collections {
		if f.collections[i].ID == id {
			f.collections = append(f.collections[:i], f.collections[i+1:]...)
			return nil
		}
	}
	return entities.ErrCollectionNotFound
}

func (f *fakeCollectionRepo) DeleteByList(_ context.Context, listID uuid.UUID) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	var kept []entities.Collection
	var n int64
	for _, c := range f.collections {
		if c.ListID == listID {
			n++
			continue
		}
		kept = append(kept, c)
	}
	f.collections = kept
	return n, nil
}

type fakeTaskRepo struct {
	tasks []entities.Task

	createErr error
	updateErr error
	mutErr    error
}

func (f *fakeTaskRepo) Create(_ context.Context, task *entities.Task) (*entities.Task, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	out := *task
	if out.ID == uuid.Nil {
		out.ID = uuid.New()
	}
	f.tasks = append(f.tasks, out)
	return &out, nil
}

func (f *fakeTaskRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.Task, error) {
	if t := f.find(id); t != nil {
		out := *t
		return &out, nil
	}
	return nil, entities.ErrTaskNotFound
}

func (f *fakeTaskRepo) GetByCollection(_ context.Context, collectionID uuid.UUID) ([]entities.Task, error) {
	var out []entities.Task
	for _, t := range f.tasks {
		if t.CollectionID != nil && *t.CollectionID == collectionID && !t.IsDeleted {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) GetPendingByUser(_ context.Context, userID uuid.UUID) ([]entities.Task, error) {
	var out []entities.Task
	for _, t := range f.tasks {
		if t.UserID == userID && !t.IsCompleted && !t.IsDeleted {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) GetCompletedByUser(_ context.Context, userID uuid.UUID) ([]entities.Task, error) {
	var out []entities.Task
	for _, t := range f.tasks {
		if t.UserID == userID && t.IsCompleted && !t.IsDeleted {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) Update(_ context.Context, task *entities.Task) (*entities.Task, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if t := f.find(task.ID); t != nil {
		*t = *task
		out := *task
		return &out, nil
	}
	return nil, entities.ErrTaskNotFound
}

func (f *fakeTaskRepo) SetCompletion(_ context.Context, id, userID uuid.UUID, completed bool, completedAt *time.Time) error {
	if f.mutErr != nil {
		return f.mutErr
	}
	t := f.find(id)
	if t == nil || t.UserID != userID {
		return entities.ErrTaskNotFound
	}
	t.IsCompleted = completed
	t.DateCompleted = completedAt
	return nil
}

func (f *fakeTaskRepo) SetPinned(_ context.Context, id, userID uuid.UUID, pinned bool) error {
	if f.mutErr != nil {
		return f.mutErr
	}
	t := f.find(id)
	if t == nil || t.UserID != userID {
		return entities.ErrTaskNotFound
	}
	t.IsPinned = pinned
	return nil
}

func (f *fakeTaskRepo) SetCollection(_ context.Context, id, userID uuid.UUID, collectionID uuid.UUID) error {
	if f.mutErr != nil {
		return f.mutErr
	}
	t := f.find(id)
	if t == nil || t.UserID != userID {
		return entities.ErrTaskNotFound
	}
	t.CollectionID = &collectionID
	return nil
}

func (f *fakeTaskRepo) SoftDelete(_ context.Context, id, userID uuid.UUID) error {
	if f.mutErr != nil {
		return f.mutErr
	}
	t := f.find(id)
	if t == nil || t.UserID != userID {
		return entities.ErrTaskNotFound
	}
	t.IsDeleted = true
	return nil
}

func (f *fakeTaskRepo) PurgeByCollections(_ context.Context, collectionIDs []uuid.UUID) (int64, error) {
	if f.mutErr != nil {
		return 0, f.mutErr
	}
	ids := map[uuid.UUID]bool{}
	for _, id := range collectionIDs {
		ids[id] = true
	}
	var kept []entities.Task
	var n int64
	for _, t := range f.tasks {
		if t.CollectionID != nil && ids[*t.CollectionID] {
			n++
			continue
		}
		kept = append(kept, t)
	}
	f.tasks = kept
	return n, nil
}

func (f *fakeTaskRepo) PurgeByList(_ context.Context, listID uuid.UUID) (int64, error) {
	if f.mutErr != nil {
		return 0, f.mutErr
	}
	var kept []entities.Task
	var n int64
	for _, t := range f.tasks {
		if t.ListID == listID {
			n++
			continue
		}
		kept = append(kept, t)
	}
	f.tasks = kept
	return n, nil
}

func (f *fakeTaskRepo) find(id uuid.UUID) *entities.Task {
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			return &f.tasks[i]
		}
	}
	return nil
}

type fakeNoteRepo struct {
	notes []entities.Note

	createErr error
	updateErr error
	mutErr    error
}

func (f *fakeNoteRepo) Create(_ context.Context, note *entities.Note) (*entities.Note, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	out := *note
	if out.ID == uuid.Nil {
		out.ID = uuid.New()
	}
	f.notes = append(f.notes, out)
	return &out, nil
}

func (f *fakeNoteRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.Note, error) {
	if n := f.find(id); n != nil {
		out := *n
		return &out, nil
	}
	return nil, entities.ErrNoteNotFound
}

func (f *fakeNoteRepo) GetByCollection(_ context.Context, collectionID uuid.UUID) ([]entities.Note, error) {
	var out []entities.Note
	for _, n := range f.notes {
		if n.CollectionID != nil && *n.CollectionID == collectionID && !n.IsDeleted {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNoteRepo) Update(_ context.Context, note *entities.Note) (*entities.Note, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if n := f.find(note.ID); n != nil {
		*n = *note
		out := *note
		return &out, nil
	}
	return nil, entities.ErrNoteNotFound
}

func (f *fakeNoteRepo) SetPinned(_ context.Context, id, userID uuid.UUID, pinned bool) error {
	if f.mutErr != nil {
		return f.mutErr
	}
	n := f.find(id)
	if n == nil || n.UserID != userID {
		return entities.ErrNoteNotFound
	}
	n.IsPinned = pinned
	return nil
}

func (f *fakeNoteRepo) SoftDelete(_ context.Context, id, userID uuid.UUID) error {
	if f.mutErr != nil {
		return f.mutErr
	}
	n := f.find(id)
	if n == nil || n.UserID != userID {
		return entities.ErrNoteNotFound
	}
	n.IsDeleted = true
	return nil
}

func (f *fakeNoteRepo) PurgeByCollections(_ context.Context, collectionIDs []uuid.UUID) (int64, error) {
	if f.mutErr != nil {
		return 0, f.mutErr
	}
	ids := map[uuid.UUID]bool{}
	for _, id := range collectionIDs {
		ids[id] = true
	}
	var kept []entities.Note
	var n int64
	for _, note := range f.notes {
		if note.CollectionID != nil && ids[*note.CollectionID] {
			n++
			continue
		}
		kept = append(kept, note)
	}
	f.notes = kept
	return n, nil
}

func (f *fakeNoteRepo) PurgeByList(_ context.Context, listID uuid.UUID) (int64, error) {
	if f.mutErr != nil {
		return 0, f.mutErr
	}
	var kept []entities.Note
	var n int64
	for _, note := range f.notes {
		if note.ListID == listID {
			n++
			continue
		}
		kept = append(kept, note)
	}
	f.notes = kept
	return n, nil
}

func (f *fakeNoteRepo) find(id uuid.UUID) *entities.Note {
	for i := range f.notes {
		if f.notes[i].ID == id {
			return &f.notes[i]
		}
	}
	return nil
}
