package services

import (
	"strings"
	"time"

	"github.com/listit/api/internal/domain/dates"
	"github.com/listit/api/internal/domain/entities"
	"github.com/listit/api/internal/ports"
)

// ValidateNewTask checks a create request before any store call is made:
// empty text and a due date on a past calendar day are rejected up front.
func ValidateNewTask(now time.Time, req ports.CreateTaskRequest) error {
	if strings.TrimSpace(req.Text) == "" {
		return entities.ErrEmptyName
	}
	return ValidateDueDate(now, req.DueDate)
}

// ValidateNewNote checks a note create request before any store call.
func ValidateNewNote(req ports.CreateNoteRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return entities.ErrEmptyName
	}
	return nil
}

// ValidateDueDate rejects due dates before today. Comparison is by
// calendar day, so a due date of today with any time of day passes.
func ValidateDueDate(now time.Time, due *time.Time) error {
	if due == nil {
		return nil
	}
	if dates.Midnight(due.In(now.Location())).Before(dates.Midnight(now)) {
		return entities.ErrDueDateInPast
	}
	return nil
}
