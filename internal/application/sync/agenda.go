package sync

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/listit/api/internal/domain/entities"
	"github.com/listit/api/internal/domain/schedule"
	"github.com/listit/api/internal/infrastructure/logger"
	"github.com/listit/api/internal/ports"
)

// View names the time-bucketed agenda screens.
type View string

const (
	ViewToday     View = "today"
	ViewTomorrow  View = "tomorrow"
	ViewOverdue   View = "overdue"
	ViewCompleted View = "completed"
)

// Fallback names used when the collection/list lookup fetch fails.
const (
	fallbackCollectionName = "Uncategorized"
	fallbackListName       = "Default List"
)

// Agenda owns the flat task array of one time-bucketed view for one user.
// Membership is decided by the schedule classifier; a mutation that moves a
// task out of the view's bucket removes it from the array instead of
// patching it in place.
type Agenda struct {
	mu     sync.Mutex
	closed bool

	userID uuid.UUID
	view   View

	tasks []entities.Task

	taskRepo       ports.TaskRepository
	collectionRepo ports.CollectionRepository
	listRepo       ports.ListRepository
	logger         *logger.Logger
	now            func() time.Time
}

// NewAgenda creates an agenda controller for one user and view.
func NewAgenda(userID uuid.UUID, view View, taskRepo ports.TaskRepository, collectionRepo ports.CollectionRepository, listRepo ports.ListRepository, log *logger.Logger) *Agenda {
	return &Agenda{
		userID:         userID,
		view:           view,
		taskRepo:       taskRepo,
		collectionRepo: collectionRepo,
		listRepo:       listRepo,
		logger:         log,
		now:            time.Now,
	}
}

// WithClock overrides the agenda's clock for tests.
func (a *Agenda) WithClock(now func() time.Time) *Agenda {
	a.now = now
	return a
}

// Load fetches the user's tasks for this view, filters through the bucket
// classifier, attaches collection and list names, and sorts. A failed
// name-lookup fetch is logged and the names default instead of failing the
// whole load.
func (a *Agenda) Load(ctx context.Context) error {
	var fetched []entities.Task
	var err error

	if a.view == ViewCompleted {
		fetched, err = a.taskRepo.GetCompletedByUser(ctx, a.userID)
	} else {
		fetched, err = a.taskRepo.GetPendingByUser(ctx, a.userID)
	}
	if err != nil {
		return err
	}

	now := a.now()
	tasks := fetched[:0]
	for _, t := range fetched {
		if a.inView(now, &t) {
			tasks = append(tasks, t)
		}
	}

	a.attachNames(ctx, tasks)
	schedule.SortTasks(tasks)

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return ErrViewClosed
	}
	a.tasks = tasks
	return nil
}

// Tasks returns a snapshot of the view's current array.
func (a *Agenda) Tasks() []entities.Task {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]entities.Task, len(a.tasks))
	copy(out, a.tasks)
	return out
}

// Close tears the view down; later operations return ErrViewClosed.
func (a *Agenda) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	a.tasks = nil
}

// CompleteTask flips completion on the store row. The pending views are
// scoped to incomplete tasks and the completed view to completed ones, so a
// confirmed toggle always removes the task from the current array.
func (a *Agenda) CompleteTask(ctx context.Context, taskID uuid.UUID, completed bool) error {
	var completedAt *time.Time
	if completed {
		now := a.now()
		completedAt = &now
	}

	if err := a.taskRepo.SetCompletion(ctx, taskID, a.userID, completed, completedAt); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return ErrViewClosed
	}
	a.removeLocked(taskID)
	return nil
}

// PinTask toggles the pin flag, patches in place, and re-sorts.
func (a *Agenda) PinTask(ctx context.Context, taskID uuid.UUID, pinned bool) error {
	if err := a.taskRepo.SetPinned(ctx, taskID, a.userID, pinned); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return ErrViewClosed
	}
	for i := range a.tasks {
		if a.tasks[i].ID == taskID {
			a.tasks[i].IsPinned = pinned
			schedule.SortTasks(a.tasks)
			return nil
		}
	}
	return entities.ErrTaskNotFound
}

// UpdateTask writes the edited fields, then re-evaluates whether the task
// still belongs in this view: a due-date edit that moves it off the bucket
// removes it from the array; otherwise the local copy is patched and the
// array re-sorted.
func (a *Agenda) UpdateTask(ctx context.Context, taskID uuid.UUID, req ports.UpdateTaskRequest) (*entities.Task, error) {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil, ErrViewClosed
	}
	var current *entities.Task
	for i := range a.tasks {
		if a.tasks[i].ID == taskID {
			current = &a.tasks[i]
			break
		}
	}
	if current == nil {
		a.mu.Unlock()
		return nil, entities.ErrTaskNotFound
	}
	updated := applyTaskUpdate(*current, req)
	a.mu.Unlock()

	confirmed, err := a.taskRepo.Update(ctx, &updated)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return confirmed, ErrViewClosed
	}

	if !a.inView(a.now(), confirmed) {
		a.removeLocked(taskID)
		return confirmed, nil
	}

	for i := range a.tasks {
		if a.tasks[i].ID == taskID {
			names := a.tasks[i]
			a.tasks[i] = *confirmed
			a.tasks[i].CollectionName = names.CollectionName
			a.tasks[i].ListName = names.ListName
			break
		}
	}
	schedule.SortTasks(a.tasks)
	return confirmed, nil
}

// DeleteTask soft-deletes the row and filters it out of the array.
func (a *Agenda) DeleteTask(ctx context.Context, taskID uuid.UUID) error {
	if err := a.taskRepo.SoftDelete(ctx, taskID, a.userID); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return ErrViewClosed
	}
	a.removeLocked(taskID)
	return nil
}

// inView decides bucket membership for this view. The completed view holds
// every completed task; the overdue view spans all three severity tiers.
func (a *Agenda) inView(now time.Time, t *entities.Task) bool {
	switch a.view {
	case ViewCompleted:
		return t.IsCompleted
	case ViewToday:
		return schedule.Classify(now, t.DueDate) == schedule.BucketToday
	case ViewTomorrow:
		return schedule.Classify(now, t.DueDate) == schedule.BucketTomorrow
	case ViewOverdue:
		return schedule.Classify(now, t.DueDate).IsOverdue()
	default:
		return false
	}
}

// attachNames joins collection_name and list_name onto the tasks via
// id-to-name maps. Lookup failures are logged and fall back to the default
// labels, never failing the load.
func (a *Agenda) attachNames(ctx context.Context, tasks []entities.Task) {
	colNames := map[uuid.UUID]string{}
	if cols, err := a.collectionRepo.GetByUser(ctx, a.userID); err != nil {
		a.logger.Warnw("collection name lookup failed, using fallback", "error", err, "user_id", a.userID)
	} else {
		for _, c := range cols {
			colNames[c.ID] = c.CollectionName
		}
	}

	listNames := map[uuid.UUID]string{}
	if lists, err := a.listRepo.GetByUser(ctx, a.userID); err != nil {
		a.logger.Warnw("list name lookup failed, using fallback", "error", err, "user_id", a.userID)
	} else {
		for _, l := range lists {
			listNames[l.ID] = l.ListName
		}
	}

	for i := range tasks {
		tasks[i].CollectionName = fallbackCollectionName
		if tasks[i].CollectionID != nil {
			if name, ok := colNames[*tasks[i].CollectionID]; ok {
				tasks[i].CollectionName = name
			}
		}
		tasks[i].ListName = fallbackListName
		if name, ok := listNames[tasks[i].ListID]; ok {
			tasks[i].ListName = name
		}
	}
}

func (a *Agenda) removeLocked(taskID uuid.UUID) {
	kept := a.tasks[:0]
	for _, t := range a.tasks {
		if t.ID != taskID {
			kept = append(kept, t)
		}
	}
	a.tasks = kept
}
