package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/listit/api/internal/domain/dates"
	"github.com/listit/api/internal/domain/entities"
)

const taskColumns = `id, text, description, due_date, is_completed, date_completed, is_pinned, collection_id, list_id, user_id, created_at, is_deleted`

// TaskRepository implements the task repository interface
type TaskRepository struct {
	db *sqlx.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create creates a new task. The due date is anchored to noon UTC before it
// is written so its calendar-date meaning survives round trips.
func (r *TaskRepository) Create(ctx context.Context, task *entities.Task) (*entities.Task, error) {
	query := `
		INSERT INTO task (id, text, description, due_date, is_completed, date_completed, is_pinned, collection_id, list_id, user_id, created_at, is_deleted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at
	`

	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	if task.DueDate != nil {
		anchored := dates.NoonUTC(*task.DueDate)
		task.DueDate = &anchored
	}

	err := r.db.QueryRowContext(ctx, query,
		task.ID,
		task.Text,
		task.Description,
		task.DueDate,
		task.IsCompleted,
		task.DateCompleted,
		task.IsPinned,
		task.CollectionID,
		task.ListID,
		task.UserID,
		dates.Timestamp(task.CreatedAt),
		task.IsDeleted,
	).Scan(&task.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// GetByID retrieves a task by ID
func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM task WHERE id = $1 AND is_deleted = FALSE`, taskColumns)

	var task entities.Task
	err := r.db.QueryRowContext(ctx, query, id).Scan(taskFields(&task)...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return &task, nil
}

// GetByCollection retrieves the live tasks of a collection
func (r *TaskRepository) GetByCollection(ctx context.Context, collectionID uuid.UUID) ([]entities.Task, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM task
		WHERE collection_id = $1 AND is_deleted = FALSE
		ORDER BY is_pinned DESC, due_date ASC NULLS LAST, created_at ASC
	`, taskColumns)

	return r.scanTasks(ctx, query, collectionID)
}

// GetPendingByUser retrieves the user's non-completed, non-deleted tasks
// across every list. Bucketing happens in memory in the agenda views.
func (r *TaskRepository) GetPendingByUser(ctx context.Context, userID uuid.UUID) ([]entities.Task, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM task
		WHERE user_id = $1 AND is_completed = FALSE AND is_deleted = FALSE
		ORDER BY is_pinned DESC, due_date ASC NULLS LAST, created_at ASC
	`, taskColumns)

	return r.scanTasks(ctx, query, userID)
}

// GetCompletedByUser retrieves the user's completed tasks, most recent first
func (r *TaskRepository) GetCompletedByUser(ctx context.Context, userID uuid.UUID) ([]entities.Task, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM task
		WHERE user_id = $1 AND is_completed = TRUE AND is_deleted = FALSE
		ORDER BY date_completed DESC
	`, taskColumns)

	return r.scanTasks(ctx, query, userID)
}

// Update updates a task's editable fields
func (r *TaskRepository) Update(ctx context.Context, task *entities.Task) (*entities.Task, error) {
	query := `
		UPDATE task
		SET text = $2, description = $3, due_date = $4, is_pinned = $5
		WHERE id = $1 AND user_id = $6 AND is_deleted = FALSE
		RETURNING created_at
	`

	if task.DueDate != nil {
		anchored := dates.NoonUTC(*task.DueDate)
		task.DueDate = &anchored
	}

	err := r.db.QueryRowContext(ctx, query,
		task.ID,
		task.Text,
		task.Description,
		task.DueDate,
		task.IsPinned,
		task.UserID,
	).Scan(&task.CreatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// SetCompletion sets is_completed and date_completed together, keeping the
// pair consistent (date_completed non-null iff completed).
func (r *TaskRepository) SetCompletion(ctx context.Context, id, userID uuid.UUID, completed bool, completedAt *time.Time) error {
	query := `
		UPDATE task SET is_completed = $3, date_completed = $4
		WHERE id = $1 AND user_id = $2 AND is_deleted = FALSE
	`

	return r.execExpectingRow(ctx, query, id, userID, completed, completedAt)
}

// SetPinned toggles the pin flag
func (r *TaskRepository) SetPinned(ctx context.Context, id, userID uuid.UUID, pinned bool) error {
	query := `
		UPDATE task SET is_pinned = $3
		WHERE id = $1 AND user_id = $2 AND is_deleted = FALSE
	`

	return r.execExpectingRow(ctx, query, id, userID, pinned)
}

// SetCollection moves a task to another collection
func (r *TaskRepository) SetCollection(ctx context.Context, id, userID uuid.UUID, collectionID uuid.UUID) error {
	query := `
		UPDATE task SET collection_id = $3
		WHERE id = $1 AND user_id = $2 AND is_deleted = FALSE
	`

	return r.execExpectingRow(ctx, query, id, userID, collectionID)
}

// SoftDelete marks a task deleted. Reads filter the flag uniformly.
func (r *TaskRepository) SoftDelete(ctx context.Context, id, userID uuid.UUID) error {
	query := `
		UPDATE task SET is_deleted = TRUE
		WHERE id = $1 AND user_id = $2 AND is_deleted = FALSE
	`

	return r.execExpectingRow(ctx, query, id, userID)
}

// PurgeByCollections hard-deletes all task rows belonging to the given
// collections. Used only by the list deletion cascade; idempotent.
func (r *TaskRepository) PurgeByCollections(ctx context.Context, collectionIDs []uuid.UUID) (int64, error) {
	if len(collectionIDs) == 0 {
		return 0, nil
	}

	query, args, err := sqlx.In(`DELETE FROM task WHERE collection_id IN (?)`, collectionIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to build purge query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return 0, fmt.Errorf("failed to purge tasks by collections: %w", err)
	}

	return result.RowsAffected()
}

// PurgeByList hard-deletes task rows referencing the list directly,
// catching tasks that never had a collection. Idempotent.
func (r *TaskRepository) PurgeByList(ctx context.Context, listID uuid.UUID) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM task WHERE list_id = $1`, listID)
	if err != nil {
		return 0, fmt.Errorf("failed to purge tasks by list: %w", err)
	}

	return result.RowsAffected()
}

func (r *TaskRepository) scanTasks(ctx context.Context, query string, args ...interface{}) ([]entities.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []entities.Task
	for rows.Next() {
		var task entities.Task
		if err := rows.Scan(taskFields(&task)...); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return tasks, nil
}

func (r *TaskRepository) execExpectingRow(ctx context.Context, query string, args ...interface{}) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrTaskNotFound
	}

	return nil
}

func taskFields(t *entities.Task) []interface{} {
	return []interface{}{
		&t.ID,
		&t.Text,
		&t.Description,
		&t.DueDate,
		&t.IsCompleted,
		&t.DateCompleted,
		&t.IsPinned,
		&t.CollectionID,
		&t.ListID,
		&t.UserID,
		&t.CreatedAt,
		&t.IsDeleted,
	}
}
