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

const noteColumns = `id, title, description, bg_color_hex, is_pinned, collection_id, list_id, user_id, created_at, is_deleted`

// NoteRepository implements the note repository interface
type NoteRepository struct {
	db *sqlx.DB
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(db *sqlx.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

// Create creates a new note
func (r *NoteRepository) Create(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	query := `
		INSERT INTO note (id, title, description, bg_color_hex, is_pinned, collection_id, list_id, user_id, created_at, is_deleted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at
	`

	if note.ID == uuid.Nil {
		note.ID = uuid.New()
	}

	err := r.db.QueryRowContext(ctx, query,
		note.ID,
		note.Title,
		note.Description,
		note.BgColorHex,
		note.IsPinned,
		note.CollectionID,
		note.ListID,
		note.UserID,
		dates.Timestamp(note.CreatedAt),
		note.IsDeleted,
	).Scan(&note.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	return note, nil
}

// GetByID retrieves a note by ID
func (r *NoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Note, error) {
	query := fmt.Sprintf(`SELECT %s FROM note WHERE id = $1 AND is_deleted = FALSE`, noteColumns)

	var note entities.Note
	err := r.db.QueryRowContext(ctx, query, id).Scan(noteFields(&note)...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	return &note, nil
}

// GetByCollection retrieves the live notes of a collection, pinned first
func (r *NoteRepository) GetByCollection(ctx context.Context, collectionID uuid.UUID) ([]entities.Note, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM note
		WHERE collection_id = $1 AND is_deleted = FALSE
		ORDER BY is_pinned DESC, created_at ASC
	`, noteColumns)

	rows, err := r.db.QueryContext(ctx, query, collectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	var notes []entities.Note
	for rows.Next() {
		var note entities.Note
		if err := rows.Scan(noteFields(&note)...); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return notes, nil
}

// Update updates a note's editable fields
func (r *NoteRepository) Update(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	query := `
		UPDATE note
		SET title = $2, description = $3, bg_color_hex = $4, is_pinned = $5
		WHERE id = $1 AND user_id = $6 AND is_deleted = FALSE
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		note.ID,
		note.Title,
		note.Description,
		note.BgColorHex,
		note.IsPinned,
		note.UserID,
	).Scan(&note.CreatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	return note, nil
}

// SetPinned toggles the pin flag
func (r *NoteRepository) SetPinned(ctx context.Context, id, userID uuid.UUID, pinned bool) error {
	query := `
		UPDATE note SET is_pinned = $3
		WHERE id = $1 AND user_id = $2 AND is_deleted = FALSE
	`

	return r.execExpectingRow(ctx, query, id, userID, pinned)
}

// SoftDelete marks a note deleted
func (r *NoteRepository) SoftDelete(ctx context.Context, id, userID uuid.UUID) error {
	query := `
		UPDATE note SET is_deleted = TRUE
		WHERE id = $1 AND user_id = $2 AND is_deleted = FALSE
	`

	return r.execExpectingRow(ctx, query, id, userID)
}

// PurgeByCollections hard-deletes note rows of the given collections.
// List-cascade only; idempotent.
func (r *NoteRepository) PurgeByCollections(ctx context.Context, collectionIDs []uuid.UUID) (int64, error) {
	if len(collectionIDs) == 0 {
		return 0, nil
	}

	query, args, err := sqlx.In(`DELETE FROM note WHERE collection_id IN (?)`, collectionIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to build purge query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return 0, fmt.Errorf("failed to purge notes by collections: %w", err)
	}

	return result.RowsAffected()
}

// PurgeByList hard-deletes note rows referencing the list directly. Idempotent.
func (r *NoteRepository) PurgeByList(ctx context.Context, listID uuid.UUID) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM note WHERE list_id = $1`, listID)
	if err != nil {
		return 0, fmt.Errorf("failed to purge notes by list: %w", err)
	}

	return result.RowsAffected()
}

func (r *NoteRepository) execExpectingRow(ctx context.Context, query string, args ...interface{}) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrNoteNotFound
	}

	return nil
}

func noteFields(n *entities.Note) []interface{} {
	return []interface{}{
		&n.ID,
		&n.Title,
		&n.Description,
		&n.BgColorHex,
		&n.IsPinned,
		&n.CollectionID,
		&n.ListID,
		&n.UserID,
		&n.CreatedAt,
		&n.IsDeleted,
	}
}
