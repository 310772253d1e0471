package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/listit/api/internal/domain/entities"
)

// ListRepository defines the interface for list data operations
type ListRepository interface {
	Create(ctx context.Context, list *entities.List) (*entities.List, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entities.List, error)
	// GetByName looks up a user's list by exact (trimmed, case-sensitive)
	// name. Returns entities.ErrListNotFound when absent.
	GetByName(ctx context.Context, userID uuid.UUID, name string) (*entities.List, error)
	GetByUser(ctx context.Context, userID uuid.UUID) ([]entities.List, error)
	Update(ctx context.Context, list *entities.List) (*entities.List, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CollectionRepository defines the interface for collection data operations
type CollectionRepository interface {
	Create(ctx context.Context, col *entities.Collection) (*entities.Collection, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Collection, error)
	GetByList(ctx context.Context, listID uuid.UUID) ([]entities.Collection, error)
	GetByUser(ctx context.Context, userID uuid.UUID) ([]entities.Collection, error)
	Update(ctx context.Context, col *entities.Collection) (*entities.Collection, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteByList removes every collection row of a list. Idempotent.
	DeleteByList(ctx context.Context, listID uuid.UUID) (int64, error)
}

// TaskRepository defines the interface for task data operations. Soft
// deletion is the rule: reads filter is_deleted uniformly, and hard row
// deletes exist only for the list-cascade purge.
type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) (*entities.Task, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Task, error)
	GetByCollection(ctx context.Context, collectionID uuid.UUID) ([]entities.Task, error)
	// GetPendingByUser returns the user's non-completed, non-deleted tasks
	// across all lists. The agenda views bucket these in memory.
	GetPendingByUser(ctx context.Context, userID uuid.UUID) ([]entities.Task, error)
	GetCompletedByUser(ctx context.Context, userID uuid.UUID) ([]entities.Task, error)
	Update(ctx context.Context, task *entities.Task) (*entities.Task, error)
	SetCompletion(ctx context.Context, id, userID uuid.UUID, completed bool, completedAt *time.Time) error
	SetPinned(ctx context.Context, id, userID uuid.UUID, pinned bool) error
	SetCollection(ctx context.Context, id, userID uuid.UUID, collectionID uuid.UUID) error
	SoftDelete(ctx context.Context, id, userID uuid.UUID) error
	PurgeByCollections(ctx context.Context, collectionIDs []uuid.UUID) (int64, error)
	PurgeByList(ctx context.Context, listID uuid.UUID) (int64, error)
}

// NoteRepository defines the interface for note data operations
type NoteRepository interface {
	Create(ctx context.Context, note *entities.Note) (*entities.Note, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Note, error)
	GetByCollection(ctx context.Context, collectionID uuid.UUID) ([]entities.Note, error)
	Update(ctx context.Context, note *entities.Note) (*entities.Note, error)
	SetPinned(ctx context.Context, id, userID uuid.UUID, pinned bool) error
	SoftDelete(ctx context.Context, id, userID uuid.UUID) error
	PurgeByCollections(ctx context.Context, collectionIDs []uuid.UUID) (int64, error)
	PurgeByList(ctx context.Context, listID uuid.UUID) (int64, error)
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) (*entities.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// AuthRepository defines the interface for refresh token persistence
type AuthRepository interface {
	CreateRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, tokenHash string) (*entities.RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error
	CleanupExpiredTokens(ctx context.Context) error
}
