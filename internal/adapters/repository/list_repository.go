package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/listit/api/internal/domain/dates"
	"github.com/listit/api/internal/domain/entities"
)

// ListRepository implements the list repository interface
type ListRepository struct {
	db *sqlx.DB
}

// NewListRepository creates a new list repository
func NewListRepository(db *sqlx.DB) *ListRepository {
	return &ListRepository{db: db}
}

// Create creates a new list
func (r *ListRepository) Create(ctx context.Context, list *entities.List) (*entities.List, error) {
	query := `
		INSERT INTO list (id, list_name, bg_color_hex, is_pinned, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	if list.ID == uuid.Nil {
		list.ID = uuid.New()
	}

	err := r.db.QueryRowContext(ctx, query,
		list.ID,
		list.ListName,
		list.BgColorHex,
		list.IsPinned,
		list.UserID,
		dates.Timestamp(list.CreatedAt),
	).Scan(&list.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to create list: %w", err)
	}

	return list, nil
}

// GetByID retrieves a list by ID
func (r *ListRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.List, error) {
	query := `
		SELECT id, list_name, bg_color_hex, is_pinned, user_id, created_at
		FROM list WHERE id = $1
	`

	var list entities.List
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&list.ID,
		&list.ListName,
		&list.BgColorHex,
		&list.IsPinned,
		&list.UserID,
		&list.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrListNotFound
		}
		return nil, fmt.Errorf("failed to get list: %w", err)
	}

	return &list, nil
}

// GetByName retrieves a user's list by exact name. The comparison is
// case-sensitive; trimming is the caller's job.
func (r *ListRepository) GetByName(ctx context.Context, userID uuid.UUID, name string) (*entities.List, error) {
	query := `
		SELECT id, list_name, bg_color_hex, is_pinned, user_id, created_at
		FROM list WHERE user_id = $1 AND list_name = $2
		LIMIT 1
	`

	var list entities.List
	err := r.db.QueryRowContext(ctx, query, userID, name).Scan(
		&list.ID,
		&list.ListName,
		&list.BgColorHex,
		&list.IsPinned,
		&list.UserID,
		&list.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrListNotFound
		}
		return nil, fmt.Errorf("failed to get list by name: %w", err)
	}

	return &list, nil
}

// GetByUser retrieves all lists owned by a user, pinned first
func (r *ListRepository) GetByUser(ctx context.Context, userID uuid.UUID) ([]entities.List, error) {
	query := `
		SELECT id, list_name, bg_color_hex, is_pinned, user_id, created_at
		FROM list WHERE user_id = $1
		ORDER BY is_pinned DESC, created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user lists: %w", err)
	}
	defer rows.Close()

	var lists []entities.List
	for rows.Next() {
		var list entities.List
		err := rows.Scan(
			&list.ID,
			&list.ListName,
			&list.BgColorHex,
			&list.IsPinned,
			&list.UserID,
			&list.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan list: %w", err)
		}
		lists = append(lists, list)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return lists, nil
}

// Update updates a list
func (r *ListRepository) Update(ctx context.Context, list *entities.List) (*entities.List, error) {
	query := `
		UPDATE list
		SET list_name = $2, bg_color_hex = $3, is_pinned = $4
		WHERE id = $1 AND user_id = $5
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		list.ID,
		list.ListName,
		list.BgColorHex,
		list.IsPinned,
		list.UserID,
	).Scan(&list.CreatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrListNotFound
		}
		return nil, fmt.Errorf("failed to update list: %w", err)
	}

	return list, nil
}

// Delete removes the list row itself. The cascade over collections, tasks
// and notes happens before this call, in the service layer.
func (r *ListRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM list WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete list: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrListNotFound
	}

	return nil
}
