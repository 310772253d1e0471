package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/listit/api/internal/domain/entities"
	"github.com/listit/api/internal/infrastructure/logger"
	"github.com/listit/api/internal/ports"
)

var serviceNow = time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

func newListService(listRepo *stubListRepo, colRepo *stubCollectionRepo, taskRepo *stubTaskRepo, noteRepo *stubNoteRepo) *ListService {
	return NewListService(listRepo, colRepo, taskRepo, noteRepo, logger.NewNop()).
		WithClock(func() time.Time { return serviceNow })
}

func TestCreateListProvisionsGeneral(t *testing.T) {
	listRepo := &stubListRepo{}
	colRepo := &stubCollectionRepo{}
	svc := newListService(listRepo, colRepo, &stubTaskRepo{}, &stubNoteRepo{})
	userID := uuid.New()

	list, created, err := svc.CreateList(context.Background(), userID, ports.CreateListRequest{ListName: "Groceries"})
	if err != nil {
		t.Fatalf("CreateList() error: %v", err)
	}
	if !created {
		t.Error("created = false for a fresh list")
	}
	if list.ID == uuid.Nil {
		t.Error("list has no generated id")
	}

	if len(colRepo.created) != 1 {
		t.Fatalf("%d collections provisioned, want 1", len(colRepo.created))
	}
	general := colRepo.created[0]
	if general.CollectionName != entities.DefaultCollectionName {
		t.Errorf("provisioned collection = %q, want %q", general.CollectionName, entities.DefaultCollectionName)
	}
	if general.ListID != list.ID {
		t.Error("provisioned collection not attached to the new list")
	}
}

func TestCreateListReturnsExistingOnDuplicateName(t *testing.T) {
	userID := uuid.New()
	existingID := uuid.New()
	listRepo := &stubListRepo{lists: []entities.List{
		{ID: existingID, ListName: "Groceries", UserID: userID, CreatedAt: serviceNow.Add(-time.Hour)},
	}}
	colRepo := &stubCollectionRepo{}
	svc := newListService(listRepo, colRepo, &stubTaskRepo{}, &stubNoteRepo{})

	// Surrounding whitespace is trimmed before the duplicate check.
	list, created, err := svc.CreateList(context.Background(), userID, ports.CreateListRequest{ListName: "  Groceries  "})
	if err != nil {
		t.Fatalf("CreateList() error: %v", err)
	}
	if created {
		t.Error("created = true for a duplicate name")
	}
	if list.ID != existingID {
		t.Errorf("returned list %s, want existing %s", list.ID, existingID)
	}
	if listRepo.createCalls != 0 {
		t.Errorf("duplicate name inserted %d rows", listRepo.createCalls)
	}
	if len(colRepo.created) != 0 {
		t.Error("duplicate name provisioned a collection")
	}
}

func TestCreateListNameIsCaseSensitive(t *testing.T) {
	userID := uuid.New()
	listRepo := &stubListRepo{lists: []entities.List{
		{ID: uuid.New(), ListName: "groceries", UserID: userID, CreatedAt: serviceNow.Add(-time.Hour)},
	}}
	svc := newListService(listRepo, &stubCollectionRepo{}, &stubTaskRepo{}, &stubNoteRepo{})

	_, created, err := svc.CreateList(context.Background(), userID, ports.CreateListRequest{ListName: "Groceries"})
	if err != nil {
		t.Fatalf("CreateList() error: %v", err)
	}
	if !created {
		t.Error("differently-cased name treated as a duplicate")
	}
}

func TestCreateListRejectsEmptyName(t *testing.T) {
	svc := newListService(&stubListRepo{}, &stubCollectionRepo{}, &stubTaskRepo{}, &stubNoteRepo{})

	for _, name := range []string{"", "   ", "\t\n"} {
		if _, _, err := svc.CreateList(context.Background(), uuid.New(), ports.CreateListRequest{ListName: name}); !errors.Is(err, entities.ErrEmptyName) {
			t.Errorf("CreateList(%q) = %v, want ErrEmptyName", name, err)
		}
	}
}

func TestGetListEnforcesOwnership(t *testing.T) {
	owner := uuid.New()
	listID := uuid.New()
	listRepo := &stubListRepo{lists: []entities.List{
		{ID: listID, ListName: "Private", UserID: owner, CreatedAt: serviceNow},
	}}
	svc := newListService(listRepo, &stubCollectionRepo{}, &stubTaskRepo{}, &stubNoteRepo{})

	if _, err := svc.GetList(context.Background(), owner, listID); err != nil {
		t.Errorf("owner denied: %v", err)
	}
	if _, err := svc.GetList(context.Background(), uuid.New(), listID); !errors.Is(err, entities.ErrListNotFound) {
		t.Errorf("stranger got %v, want ErrListNotFound", err)
	}
}

func TestUpdateListTrimsAndRejectsEmptyName(t *testing.T) {
	owner := uuid.New()
	listID := uuid.New()
	listRepo := &stubListRepo{lists: []entities.List{
		{ID: listID, ListName: "Old", UserID: owner, CreatedAt: serviceNow},
	}}
	svc := newListService(listRepo, &stubCollectionRepo{}, &stubTaskRepo{}, &stubNoteRepo{})

	name := "  New Name  "
	updated, err := svc.UpdateList(context.Background(), owner, listID, ports.UpdateListRequest{ListName: &name})
	if err != nil {
		t.Fatalf("UpdateList() error: %v", err)
	}
	if updated.ListName != "New Name" {
		t.Errorf("ListName = %q, want %q", updated.ListName, "New Name")
	}

	blank := "   "
	if _, err := svc.UpdateList(context.Background(), owner, listID, ports.UpdateListRequest{ListName: &blank}); !errors.Is(err, entities.ErrEmptyName) {
		t.Errorf("blank rename = %v, want ErrEmptyName", err)
	}
}

func TestDeleteListRunsFullCascade(t *testing.T) {
	owner := uuid.New()
	listID := uuid.New()
	listRepo := &stubListRepo{lists: []entities.List{
		{ID: listID, ListName: "Doomed", UserID: owner, CreatedAt: serviceNow},
	}}
	colRepo := &stubCollectionRepo{collections: []entities.Collection{
		{ID: uuid.New(), CollectionName: "General", ListID: listID, UserID: owner, CreatedAt: serviceNow},
	}}
	taskRepo := &stubTaskRepo{}
	noteRepo := &stubNoteRepo{}
	svc := newListService(listRepo, colRepo, taskRepo, noteRepo)

	if err := svc.DeleteList(context.Background(), owner, listID); err != nil {
		t.Fatalf("DeleteList() error: %v", err)
	}

	if taskRepo.purgeByCollectionsN != 1 || taskRepo.purgeByListN != 1 {
		t.Errorf("task purges = %d/%d, want 1/1", taskRepo.purgeByCollectionsN, taskRepo.purgeByListN)
	}
	if noteRepo.purgeByCollectionsN != 1 || noteRepo.purgeByListN != 1 {
		t.Errorf("note purges = %d/%d, want 1/1", noteRepo.purgeByCollectionsN, noteRepo.purgeByListN)
	}
	if colRepo.deleteByListN != 1 {
		t.Errorf("collection delete ran %d times, want 1", colRepo.deleteByListN)
	}
	if listRepo.deleteCalls != 1 {
		t.Errorf("list delete ran %d times, want 1", listRepo.deleteCalls)
	}
}

func TestDeleteListCascadeContinuesPastFailures(t *testing.T) {
	owner := uuid.New()
	listID := uuid.New()
	listRepo := &stubListRepo{lists: []entities.List{
		{ID: listID, ListName: "Doomed", UserID: owner, CreatedAt: serviceNow},
	}}
	colRepo := &stubCollectionRepo{
		collections: []entities.Collection{
			{ID: uuid.New(), CollectionName: "General", ListID: listID, UserID: owner, CreatedAt: serviceNow},
		},
		deleteByListErr: errors.New("connection reset"),
	}
	taskRepo := &stubTaskRepo{purgeByCollectionsErr: errors.New("connection reset")}
	noteRepo := &stubNoteRepo{}
	svc := newListService(listRepo, colRepo, taskRepo, noteRepo)

	// Mid-cascade failures are logged, not returned; the remaining steps
	// and the list row delete still run.
	if err := svc.DeleteList(context.Background(), owner, listID); err != nil {
		t.Fatalf("DeleteList() error: %v", err)
	}
	if noteRepo.purgeByCollectionsN != 1 || noteRepo.purgeByListN != 1 {
		t.Error("later cascade steps skipped after an earlier failure")
	}
	if taskRepo.purgeByListN != 1 {
		t.Error("task purge by list skipped after collection purge failure")
	}
	if listRepo.deleteCalls != 1 {
		t.Error("list row delete skipped after cascade failures")
	}
}

func TestDeleteListReportsOnlyListRowFailure(t *testing.T) {
	owner := uuid.New()
	listID := uuid.New()
	wantErr := errors.New("connection reset")
	listRepo := &stubListRepo{
		lists: []entities.List{
			{ID: listID, ListName: "Doomed", UserID: owner, CreatedAt: serviceNow},
		},
		deleteErr: wantErr,
	}
	svc := newListService(listRepo, &stubCollectionRepo{}, &stubTaskRepo{}, &stubNoteRepo{})

	if err := svc.DeleteList(context.Background(), owner, listID); !errors.Is(err, wantErr) {
		t.Errorf("DeleteList() = %v, want the list row error", err)
	}
}

func TestDeleteListEnforcesOwnership(t *testing.T) {
	owner := uuid.New()
	listID := uuid.New()
	listRepo := &stubListRepo{lists: []entities.List{
		{ID: listID, ListName: "Private", UserID: owner, CreatedAt: serviceNow},
	}}
	taskRepo := &stubTaskRepo{}
	svc := newListService(listRepo, &stubCollectionRepo{}, taskRepo, &stubNoteRepo{})

	if err := svc.DeleteList(context.Background(), uuid.New(), listID); !errors.Is(err, entities.ErrListNotFound) {
		t.Fatalf("stranger delete = %v, want ErrListNotFound", err)
	}
	if taskRepo.purgeByCollectionsN != 0 {
		t.Error("cascade ran for a stranger's delete")
	}
}
