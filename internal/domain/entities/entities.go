package entities

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrListNotFound       = errors.New("list not found")
	ErrCollectionNotFound = errors.New("collection not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrNoteNotFound       = errors.New("note not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrEmptyName          = errors.New("name must not be empty")
	ErrDueDateInPast      = errors.New("due date cannot be in the past")
	ErrDuplicateList      = errors.New("a list with this name already exists")
	ErrEmailTaken         = errors.New("email already in use")
)

// DefaultCollectionName is the name of the collection every list is
// provisioned with. Tasks and notes created without an explicit target
// fall back to it.
const DefaultCollectionName = "General"

// List is a top-level container owned by a user. Deleting a list cascades
// through its collections, tasks and notes client-side; no database-level
// cascade is assumed.
type List struct {
	ID         uuid.UUID `json:"id" db:"id"`
	ListName   string    `json:"list_name" db:"list_name"`
	BgColorHex string    `json:"bg_color_hex" db:"bg_color_hex"`
	IsPinned   bool      `json:"is_pinned" db:"is_pinned"`
	UserID     uuid.UUID `json:"user_id" db:"user_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// Collection groups tasks and notes inside a single list. Tasks and Notes
// are view-layer caches materialized by the sync layer, never persisted
// columns.
type Collection struct {
	ID             uuid.UUID `json:"id" db:"id"`
	CollectionName string    `json:"collection_name" db:"collection_name"`
	BgColorHex     string    `json:"bg_color_hex" db:"bg_color_hex"`
	ListID         uuid.UUID `json:"list_id" db:"list_id"`
	UserID         uuid.UUID `json:"user_id" db:"user_id"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`

	Tasks []Task `json:"tasks,omitempty" db:"-"`
	Notes []Note `json:"notes,omitempty" db:"-"`
}

// IsDefault reports whether this is the list's "General" collection.
// Matching is case-insensitive.
func (c *Collection) IsDefault() bool {
	return strings.EqualFold(strings.TrimSpace(c.CollectionName), DefaultCollectionName)
}

// Task is a single to-do item. DateCompleted is non-nil iff IsCompleted is
// true; CollectionID may be nil when no collection existed at creation time.
type Task struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	Text          string     `json:"text" db:"text"`
	Description   *string    `json:"description" db:"description"`
	DueDate       *time.Time `json:"due_date" db:"due_date"`
	IsCompleted   bool       `json:"is_completed" db:"is_completed"`
	DateCompleted *time.Time `json:"date_completed" db:"date_completed"`
	IsPinned      bool       `json:"is_pinned" db:"is_pinned"`
	CollectionID  *uuid.UUID `json:"collection_id" db:"collection_id"`
	ListID        uuid.UUID  `json:"list_id" db:"list_id"`
	UserID        uuid.UUID  `json:"user_id" db:"user_id"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	IsDeleted     bool       `json:"is_deleted" db:"is_deleted"`

	// Denormalized names attached by the agenda views.
	CollectionName string `json:"collection_name,omitempty" db:"-"`
	ListName       string `json:"list_name,omitempty" db:"-"`
}

// SetCompleted marks the task completed at the given instant.
func (t *Task) SetCompleted(now time.Time) {
	t.IsCompleted = true
	t.DateCompleted = &now
}

// SetIncomplete clears the completion state.
func (t *Task) SetIncomplete() {
	t.IsCompleted = false
	t.DateCompleted = nil
}

// Note is a free-form note attached to a collection.
type Note struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Title        string     `json:"title" db:"title"`
	Description  *string    `json:"description" db:"description"`
	BgColorHex   string     `json:"bg_color_hex" db:"bg_color_hex"`
	CollectionID *uuid.UUID `json:"collection_id" db:"collection_id"`
	ListID       uuid.UUID  `json:"list_id" db:"list_id"`
	UserID       uuid.UUID  `json:"user_id" db:"user_id"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	IsPinned     bool       `json:"is_pinned" db:"is_pinned"`
	IsDeleted    bool       `json:"is_deleted" db:"is_deleted"`
}

// User owns lists, collections, tasks and notes.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	FullName     string    `json:"full_name" db:"full_name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// RefreshToken is a persisted, revocable refresh token.
type RefreshToken struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	UserID    uuid.UUID  `json:"user_id" db:"user_id"`
	Token     string     `json:"-" db:"token"`
	ExpiresAt time.Time  `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	RevokedAt *time.Time `json:"revoked_at" db:"revoked_at"`
}
