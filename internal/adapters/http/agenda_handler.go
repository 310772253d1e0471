package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/listit/api/internal/application/services"
	"github.com/listit/api/internal/application/sync"
	"github.com/listit/api/internal/infrastructure/logger"
	"github.com/listit/api/internal/ports"
)

// AgendaHandler exposes the time-bucketed views (today, tomorrow, overdue,
// completed) and the mutations a view can issue against its own array.
type AgendaHandler struct {
	viewService *services.ViewService
	logger      *logger.Logger
}

// NewAgendaHandler creates a new agenda handler
func NewAgendaHandler(viewService *services.ViewService, logger *logger.Logger) *AgendaHandler {
	return &AgendaHandler{
		viewService: viewService,
		logger:      logger,
	}
}

func parseView(c echo.Context) (sync.View, error) {
	switch v := sync.View(c.Param("view")); v {
	case sync.ViewToday, sync.ViewTomorrow, sync.ViewOverdue, sync.ViewCompleted:
		return v, nil
	default:
		return "", echo.NewHTTPError(http.StatusBadRequest, "Unknown agenda view")
	}
}

func (h *AgendaHandler) agenda(c echo.Context) (*sync.Agenda, error) {
	userID := getUserIDFromContext(c)
	view, err := parseView(c)
	if err != nil {
		return nil, err
	}

	agenda, err := h.viewService.Agenda(c.Request().Context(), userID, view)
	if err != nil {
		return nil, mapError(err)
	}
	return agenda, nil
}

// GetView re-fetches and returns the view's tasks. A GET is a view mount,
// so it always reloads from the store.
func (h *AgendaHandler) GetView(c echo.Context) error {
	agenda, err := h.agenda(c)
	if err != nil {
		return err
	}

	if err := agenda.Load(c.Request().Context()); err != nil {
		h.logger.Errorw("agenda load failed", "error", err)
		return mapError(err)
	}

	return c.JSON(http.StatusOK, agenda.Tasks())
}

// CompleteTask toggles completion; the task leaves the current view either
// way, since pending views hold only incomplete tasks and the completed
// view only completed ones.
func (h *AgendaHandler) CompleteTask(c echo.Context) error {
	agenda, err := h.agenda(c)
	if err != nil {
		return err
	}

	taskID, err := parseIDParam(c, "taskID")
	if err != nil {
		return err
	}

	var req ports.CompleteTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := agenda.CompleteTask(c.Request().Context(), taskID, req.IsCompleted); err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Task updated"})
}

// PinTask toggles a task's pin flag within the view
func (h *AgendaHandler) PinTask(c echo.Context) error {
	agenda, err := h.agenda(c)
	if err != nil {
		return err
	}

	taskID, err := parseIDParam(c, "taskID")
	if err != nil {
		return err
	}

	var req PinRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := agenda.PinTask(c.Request().Context(), taskID, req.IsPinned); err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Task updated"})
}

// UpdateTask edits a task; if the edit moves it off this view's bucket the
// response carries the task and the view drops it.
func (h *AgendaHandler) UpdateTask(c echo.Context) error {
	agenda, err := h.agenda(c)
	if err != nil {
		return err
	}

	taskID, err := parseIDParam(c, "taskID")
	if err != nil {
		return err
	}

	var req ports.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := agenda.UpdateTask(c.Request().Context(), taskID, req)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, task)
}

// DeleteTask deletes a task from the view
func (h *AgendaHandler) DeleteTask(c echo.Context) error {
	agenda, err := h.agenda(c)
	if err != nil {
		return err
	}

	taskID, err := parseIDParam(c, "taskID")
	if err != nil {
		return err
	}

	if err := agenda.DeleteTask(c.Request().Context(), taskID); err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Task deleted"})
}
