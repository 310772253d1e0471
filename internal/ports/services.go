package ports

import (
	"time"

	"github.com/google/uuid"

	"github.com/listit/api/internal/domain/entities"
)

// Auth request/response types

type RegisterRequest struct {
	FullName string `json:"full_name" validate:"required,min=1,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	ExpiresAt    time.Time      `json:"expires_at"`
	User         *entities.User `json:"user"`
}

type UpdateUserRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,min=1,max=120"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=8"`
}

// List requests

type CreateListRequest struct {
	ListName   string `json:"list_name" validate:"required,min=1,max=120"`
	BgColorHex string `json:"bg_color_hex" validate:"omitempty,hexcolor"`
}

type UpdateListRequest struct {
	ListName   *string `json:"list_name" validate:"omitempty,min=1,max=120"`
	BgColorHex *string `json:"bg_color_hex" validate:"omitempty,hexcolor"`
	IsPinned   *bool   `json:"is_pinned"`
}

// Collection requests

type CreateCollectionRequest struct {
	CollectionName string    `json:"collection_name" validate:"required,min=1,max=120"`
	BgColorHex     string    `json:"bg_color_hex" validate:"omitempty,hexcolor"`
	ListID         uuid.UUID `json:"list_id" validate:"required"`
}

type UpdateCollectionRequest struct {
	CollectionName *string `json:"collection_name" validate:"omitempty,min=1,max=120"`
	BgColorHex     *string `json:"bg_color_hex" validate:"omitempty,hexcolor"`
}

// Task requests

type CreateTaskRequest struct {
	Text        string     `json:"text" validate:"required,min=1"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	IsPinned    bool       `json:"is_pinned"`
	// CollectionID is the explicitly selected target collection. When nil
	// the sync layer resolves a fallback (caller default, then "General",
	// then the first collection, then none).
	CollectionID *uuid.UUID `json:"collection_id"`
	ListID       uuid.UUID  `json:"list_id" validate:"required"`
	// DefaultCollectionID is set from the route on collection-scoped
	// creates, never from the body.
	DefaultCollectionID *uuid.UUID `json:"-"`
}

type UpdateTaskRequest struct {
	Text        *string    `json:"text" validate:"omitempty,min=1"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	ClearDue    bool       `json:"clear_due,omitempty"`
	IsPinned    *bool      `json:"is_pinned"`
}

type CompleteTaskRequest struct {
	IsCompleted bool `json:"is_completed"`
}

type MoveTaskRequest struct {
	CollectionID uuid.UUID `json:"collection_id" validate:"required"`
}

// Note requests

type CreateNoteRequest struct {
	Title        string     `json:"title" validate:"required,min=1"`
	Description  *string    `json:"description"`
	BgColorHex   string     `json:"bg_color_hex" validate:"omitempty,hexcolor"`
	IsPinned     bool       `json:"is_pinned"`
	CollectionID *uuid.UUID `json:"collection_id"`
	ListID       uuid.UUID  `json:"list_id" validate:"required"`
	// DefaultCollectionID is set from the route on collection-scoped
	// creates, never from the body.
	DefaultCollectionID *uuid.UUID `json:"-"`
}

type UpdateNoteRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	BgColorHex  *string `json:"bg_color_hex" validate:"omitempty,hexcolor"`
	IsPinned    *bool   `json:"is_pinned"`
}
