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

// CollectionRepository implements the collection repository interface
type CollectionRepository struct {
	db *sqlx.DB
}

// NewCollectionRepository creates a new collection repository
func NewCollectionRepository(db *sqlx.DB) *CollectionRepository {
	return &CollectionRepository{db: db}
}

// Create creates a new collection
func (r *CollectionRepository) Create(ctx context.Context, col *entities.Collection) (*entities.Collection, error) {
	query := `
		INSERT INTO collection (id, collection_name, bg_color_hex, list_id, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	if col.ID == uuid.Nil {
		col.ID = uuid.New()
	}

	err := r.db.QueryRowContext(ctx, query,
		col.ID,
		col.CollectionName,
		col.BgColorHex,
		col.ListID,
		col.UserID,
		dates.Timestamp(col.CreatedAt),
	).Scan(&col.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}

	return col, nil
}

// GetByID retrieves a collection by ID
func (r *CollectionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Collection, error) {
	query := `
		SELECT id, collection_name, bg_color_hex, list_id, user_id, created_at
		FROM collection WHERE id = $1
	`

	var col entities.Collection
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&col.ID,
		&col.CollectionName,
		&col.BgColorHex,
		&col.ListID,
		&col.UserID,
		&col.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrCollectionNotFound
		}
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}

	return &col, nil
}

// GetByList retrieves all collections of a list, creation order
func (r *CollectionRepository) GetByList(ctx context.Context, listID uuid.UUID) ([]entities.Collection, error) {
	query := `
		SELECT id, collection_name, bg_color_hex, list_id, user_id, created_at
		FROM collection WHERE list_id = $1
		ORDER BY created_at ASC
	`

	return r.scanCollections(ctx, query, listID)
}

// GetByUser retrieves all of a user's collections across lists. The agenda
// views use this to build the id to name lookup.
func (r *CollectionRepository) GetByUser(ctx context.Context, userID uuid.UUID) ([]entities.Collection, error) {
	query := `
		SELECT id, collection_name, bg_color_hex, list_id, user_id, created_at
		FROM collection WHERE user_id = $1
		ORDER BY created_at ASC
	`

	return r.scanCollections(ctx, query, userID)
}

func (r *CollectionRepository) scanCollections(ctx context.Context, query string, arg interface{}) ([]entities.Collection, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	defer rows.Close()

	var cols []entities.Collection
	for rows.Next() {
		var col entities.Collection
		err := rows.Scan(
			&col.ID,
			&col.CollectionName,
			&col.BgColorHex,
			&col.ListID,
			&col.UserID,
			&col.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan collection: %w", err)
		}
		cols = append(cols, col)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return cols, nil
}

// Update updates a collection
func (r *CollectionRepository) Update(ctx context.Context, col *entities.Collection) (*entities.Collection, error) {
	query := `
		UPDATE collection
		SET collection_name = $2, bg_color_hex = $3
		WHERE id = $1 AND user_id = $4
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		col.ID,
		col.CollectionName,
		col.BgColorHex,
		col.UserID,
	).Scan(&col.CreatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrCollectionNotFound
		}
		return nil, fmt.Errorf("failed to update collection: %w", err)
	}

	return col, nil
}

// Delete deletes a collection row
func (r *CollectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM collection WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrCollectionNotFound
	}

	return nil
}

// DeleteByList deletes every collection of a list. Zero rows affected is
// not an error so the cascade stays re-runnable.
func (r *CollectionRepository) DeleteByList(ctx context.Context, listID uuid.UUID) (int64, error) {
	query := `DELETE FROM collection WHERE list_id = $1`

	result, err := r.db.ExecContext(ctx, query, listID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete collections by list: %w", err)
	}

	return result.RowsAffected()
}
