package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/listit/api/internal/domain/entities"
	"github.com/listit/api/internal/infrastructure/logger"
	"github.com/listit/api/internal/ports"
)

func strPtr(s string) *string { return &s }

func TestUpdateUserChangesProfileFields(t *testing.T) {
	userID := uuid.New()
	repo := &stubUserRepo{users: []entities.User{
		{ID: userID, FullName: "Ada", Email: "ada@example.com"},
	}}
	svc := NewUserService(repo, logger.NewNop())

	updated, err := svc.UpdateUser(context.Background(), userID, ports.UpdateUserRequest{
		FullName: strPtr("Ada L."),
		Email:    strPtr("ada.l@example.com"),
	})
	if err != nil {
		t.Fatalf("UpdateUser() error: %v", err)
	}
	if updated.FullName != "Ada L." || updated.Email != "ada.l@example.com" {
		t.Errorf("profile not updated: %+v", updated)
	}
}

func TestUpdateUserRehashesPassword(t *testing.T) {
	userID := uuid.New()
	repo := &stubUserRepo{users: []entities.User{
		{ID: userID, Email: "ada@example.com"},
	}}
	svc := NewUserService(repo, logger.NewNop())

	updated, err := svc.UpdateUser(context.Background(), userID, ports.UpdateUserRequest{
		Password: strPtr("hunter2hunter2"),
	})
	if err != nil {
		t.Fatalf("UpdateUser() error: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("hunter2hunter2")); err != nil {
		t.Errorf("stored hash does not match the new password: %v", err)
	}
}

func TestUpdateUserRejectsTakenEmail(t *testing.T) {
	userID := uuid.New()
	repo := &stubUserRepo{users: []entities.User{
		{ID: userID, Email: "ada@example.com"},
		{ID: uuid.New(), Email: "grace@example.com"},
	}}
	svc := NewUserService(repo, logger.NewNop())

	_, err := svc.UpdateUser(context.Background(), userID, ports.UpdateUserRequest{
		Email: strPtr("grace@example.com"),
	})
	if !errors.Is(err, entities.ErrEmailTaken) {
		t.Errorf("UpdateUser() = %v, want ErrEmailTaken", err)
	}
}

func TestUpdateUserKeepsOwnEmail(t *testing.T) {
	userID := uuid.New()
	repo := &stubUserRepo{users: []entities.User{
		{ID: userID, FullName: "Ada", Email: "ada@example.com"},
	}}
	svc := NewUserService(repo, logger.NewNop())

	// Re-submitting the current email is not a conflict.
	updated, err := svc.UpdateUser(context.Background(), userID, ports.UpdateUserRequest{
		FullName: strPtr("Ada L."),
		Email:    strPtr("ada@example.com"),
	})
	if err != nil {
		t.Fatalf("UpdateUser() error: %v", err)
	}
	if updated.FullName != "Ada L." {
		t.Errorf("FullName = %q, want %q", updated.FullName, "Ada L.")
	}
}
