package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/listit/api/internal/domain/entities"
)

// Minimal in-memory fakes. The cascade tests record which purge steps ran
// so the best-effort ordering can be asserted.

type stubListRepo struct {
	lists []entities.List

	createCalls int
	deleteCalls int
	deleteErr   error
}

func (f *stubListRepo) Create(_ context.Context, list *entities.List) (*entities.List, error) {
	f.createCalls++
	out := *list
	if out.ID == uuid.Nil {
		out.ID = uuid.New()
	}
	f.lists = append(f.lists, out)
	return &out, nil
}

func (f *stubListRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.List, error) {
	for i := range f.lists {
		if f.lists[i].ID == id {
			out := f.lists[i]
			return &out, nil
		}
	}
	return nil, entities.ErrListNotFound
}

func (f *stubListRepo) GetByName(_ context.Context, userID uuid.UUID, name string) (*entities.List, error) {
	for i := range f.lists {
		if f.lists[i].UserID == userID && f.lists[i].ListName == name {
			out := f.lists[i]
			return &out, nil
		}
	}
	return nil, entities.ErrListNotFound
}

func (f *stubListRepo) GetByUser(_ context.Context, userID uuid.UUID) ([]entities.List, error) {
	var out []entities.List
	for _, l := range f.lists {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *stubListRepo) Update(_ context.Context, list *entities.List) (*entities.List, error) {
	for i := range f.lists {
		if f.lists[i].ID == list.ID {
			f.lists[i] = *list
			out := *list
			return &out, nil
		}
	}
	return nil, entities.ErrListNotFound
}

func (f *stubListRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.deleteCalls++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i := range f.lists {
		if f.lists[i].ID == id {
			f.lists = append(f.lists[:i], f.lists[i+1:]...)
			return nil
		}
	}
	return entities.ErrListNotFound
}

type stubCollectionRepo struct {
	collections []entities.Collection

	created         []entities.Collection
	deleteByListN   int
	deleteByListErr error
	getByListErr    error
}

func (f *stubCollectionRepo) Create(_ context.Context, col *entities.Collection) (*entities.Collection, error) {
	out := *col
	if out.ID == uuid.Nil {
		out.ID = uuid.New()
	}
	f.collections = append(f.collections, out)
	f.created = append(f.created, out)
	return &out, nil
}

func (f *stubCollectionRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.Collection, error) {
	for i := range f.collections {
		if f.collections[i].ID == id {
			out := f.collections[i]
			return &out, nil
		}
	}
	return nil, entities.ErrCollectionNotFound
}

func (f *stubCollectionRepo) GetByList(_ context.Context, listID uuid.UUID) ([]entities.Collection, error) {
	if f.getByListErr != nil {
		return nil, f.getByListErr
	}
	var out []entities.Collection
	for _, c := range f.collections {
		if c.ListID == listID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *stubCollectionRepo) GetByUser(_ context.Context, userID uuid.UUID) ([]entities.Collection, error) {
	var out []entities.Collection
	for _, c := range f.collections {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *stubCollectionRepo) Update(_ context.Context, col *entities.Collection) (*entities.Collection, error) {
	for i := range f.collections {
		if f.collections[i].ID == col.ID {
			f.collections[i] = *col
			out := *col
			return &out, nil
		}
	}
	return nil, entities.ErrCollectionNotFound
}

func (f *stubCollectionRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i := range f.collections {
		if f.collections[i].ID == id {
			f.collections = append(f.collections[:i], f.collections[i+1:]...)
			return nil
		}
	}
	return entities.ErrCollectionNotFound
}

func (f *stubCollectionRepo) DeleteByList(_ context.Context, listID uuid.UUID) (int64, error) {
	f.deleteByListN++
	if f.deleteByListErr != nil {
		return 0, f.deleteByListErr
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

type stubTaskRepo struct {
	purgeByCollectionsN   int
	purgeByCollectionsErr error
	purgeByListN          int
}

func (f *stubTaskRepo) Create(_ context.Context, task *entities.Task) (*entities.Task, error) {
	out := *task
	out.ID = uuid.New()
	return &out, nil
}

func (f *stubTaskRepo) GetByID(context.Context, uuid.UUID) (*entities.Task, error) {
	return nil, entities.ErrTaskNotFound
}

func (f *stubTaskRepo) GetByCollection(context.Context, uuid.UUID) ([]entities.Task, error) {
	return nil, nil
}

func (f *stubTaskRepo) GetPendingByUser(context.Context, uuid.UUID) ([]entities.Task, error) {
	return nil, nil
}

func (f *stubTaskRepo) GetCompletedByUser(context.Context, uuid.UUID) ([]entities.Task, error) {
	return nil, nil
}

func (f *stubTaskRepo) Update(_ context.Context, task *entities.Task) (*entities.Task, error) {
	out := *task
	return &out, nil
}

func (f *stubTaskRepo) SetCompletion(context.Context, uuid.UUID, uuid.UUID, bool, *time.Time) error {
	return nil
}

func (f *stubTaskRepo) SetPinned(context.Context, uuid.UUID, uuid.UUID, bool) error { return nil }

func (f *stubTaskRepo) SetCollection(context.Context, uuid.UUID, uuid.UUID, uuid.UUID) error {
	return nil
}

func (f *stubTaskRepo) SoftDelete(context.Context, uuid.UUID, uuid.UUID) error { return nil }

func (f *stubTaskRepo) PurgeByCollections(_ context.Context, _ []uuid.UUID) (int64, error) {
	f.purgeByCollectionsN++
	if f.purgeByCollectionsErr != nil {
		return 0, f.purgeByCollectionsErr
	}
	return 0, nil
}

func (f *stubTaskRepo) PurgeByList(_ context.Context, _ uuid.UUID) (int64, error) {
	f.purgeByListN++
	return 0, nil
}

type stubNoteRepo struct {
	purgeByCollectionsN int
	purgeByListN        int
}

func (f *stubNoteRepo) Create(_ context.Context, note *entities.Note) (*entities.Note, error) {
	out := *note
	out.ID = uuid.New()
	return &out, nil
}

func (f *stubNoteRepo) GetByID(context.Context, uuid.UUID) (*entities.Note, error) {
	return nil, entities.ErrNoteNotFound
}

func (f *stubNoteRepo) GetByCollection(context.Context, uuid.UUID) ([]entities.Note, error) {
	return nil, nil
}

func (f *stubNoteRepo) Update(_ context.Context, note *entities.Note) (*entities.Note, error) {
	out := *note
	return &out, nil
}

func (f *stubNoteRepo) SetPinned(context.Context, uuid.UUID, uuid.UUID, bool) error { return nil }

func (f *stubNoteRepo) SoftDelete(context.Context, uuid.UUID, uuid.UUID) error { return nil }

func (f *stubNoteRepo) PurgeByCollections(_ context.Context, _ []uuid.UUID) (int64, error) {
	f.purgeByCollectionsN++
	return 0, nil
}

func (f *stubNoteRepo) PurgeByList(_ context.Context, _ uuid.UUID) (int64, error) {
	f.purgeByListN++
	return 0, nil
}
