package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/listit/api/internal/application/services"
	"github.com/listit/api/internal/application/sync"
	"github.com/listit/api/internal/infrastructure/logger"
	"github.com/listit/api/internal/ports"
)

// BoardHandler exposes a list's board: its collections with materialized
// tasks and notes, plus every mutation the board view can issue. Each
// mutation goes through the board controller, so a success response
// reflects the already-patched local state.
type BoardHandler struct {
	viewService *services.ViewService
	logger      *logger.Logger
}

// NewBoardHandler creates a new board handler
func NewBoardHandler(viewService *services.ViewService, logger *logger.Logger) *BoardHandler {
	return &BoardHandler{
		viewService: viewService,
		logger:      logger,
	}
}

func (h *BoardHandler) board(c echo.Context) (*sync.Board, error) {
	userID := getUserIDFromContext(c)
	listID, err := parseIDParam(c, "id")
	if err != nil {
		return nil, err
	}

	board, err := h.viewService.Board(c.Request().Context(), userID, listID)
	if err != nil {
		return nil, mapError(err)
	}
	return board, nil
}

// GetBoard re-fetches and returns the list's collections with children.
// A GET is a view mount, so it always reloads from the store.
func (h *BoardHandler) GetBoard(c echo.Context) error {
	board, err := h.board(c)
	if err != nil {
		return err
	}

	if err := board.Load(c.Request().Context()); err != nil {
		h.logger.Errorw("board load failed", "error", err)
		return mapError(err)
	}

	return c.JSON(http.StatusOK, board.Collections())
}

// CreateCollection adds a collection to the board
func (h *BoardHandler) CreateCollection(c echo.Context) error {
	board, err := h.board(c)
	if err != nil {
		return err
	}

	var req ports.CreateCollectionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	col, err := board.CreateCollection(c.Request().Context(), req)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusCreated, col)
}

// UpdateCollection renames or recolors a collection
func (h *BoardHandler) UpdateCollection(c echo.Context) error {
	board, err := h.board(c)
	if err != nil {
		return err
	}

	collectionID, err := parseIDParam(c, "collectionID")
	if err != nil {
		return err
	}

	var req ports.UpdateCollectionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	col, err := board.UpdateCollection(c.Request().Context(), collectionID, req)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, col)
}

// CreateTask creates a task on the board, resolving the target collection
// when the request names none.
func (h *BoardHandler) CreateTask(c echo.Context) error {
	board, err := h.board(c)
	if err != nil {
		return err
	}

	var req ports.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := services.ValidateNewTask(time.Now(), req); err != nil {
		return mapError(err)
	}

	// Collection-scoped route: the route collection is the default when
	// the body names none.
	if c.Param("collectionID") != "" {
		defaultID, err := parseIDParam(c, "collectionID")
		if err != nil {
			return err
		}
		req.DefaultCollectionID = &defaultID
	}

	task, err := board.CreateTask(c.Request().Context(), req)
	if err != nil {
		h.logger.Errorw("create task failed", "error", err)
		return mapError(err)
	}

	return c.JSON(http.StatusCreated, task)
}

// UpdateTask edits a task's fields
func (h *BoardHandler) UpdateTask(c echo.Context) error {
	board, err := h.board(c)
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

	task, err := board.UpdateTask(c.Request().Context(), taskID, req)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, task)
}

// CompleteTask toggles a task's completion
func (h *BoardHandler) CompleteTask(c echo.Context) error {
	board, err := h.board(c)
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

	if err := board.CompleteTask(c.Request().Context(), taskID, req.IsCompleted); err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Task updated"})
}

// PinTask toggles a task's pin flag
func (h *BoardHandler) PinTask(c echo.Context) error {
	board, err := h.board(c)
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

	if err := board.PinTask(c.Request().Context(), taskID, req.IsPinned); err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Task updated"})
}

// MoveTask moves a task to another collection
func (h *BoardHandler) MoveTask(c echo.Context) error {
	board, err := h.board(c)
	if err != nil {
		return err
	}

	taskID, err := parseIDParam(c, "taskID")
	if err != nil {
		return err
	}

	var req ports.MoveTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := board.MoveTask(c.Request().Context(), taskID, req.CollectionID); err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Task moved"})
}

// DeleteTask deletes a task
func (h *BoardHandler) DeleteTask(c echo.Context) error {
	board, err := h.board(c)
	if err != nil {
		return err
	}

	taskID, err := parseIDParam(c, "taskID")
	if err != nil {
		return err
	}

	if err := board.DeleteTask(c.Request().Context(), taskID); err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Task deleted"})
}

// CreateNote creates a note on the board
func (h *BoardHandler) CreateNote(c echo.Context) error {
	board, err := h.board(c)
	if err != nil {
		return err
	}

	var req ports.CreateNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := services.ValidateNewNote(req); err != nil {
		return mapError(err)
	}

	if c.Param("collectionID") != "" {
		defaultID, err := parseIDParam(c, "collectionID")
		if err != nil {
			return err
		}
		req.DefaultCollectionID = &defaultID
	}

	note, err := board.CreateNote(c.Request().Context(), req)
	if err != nil {
		h.logger.Errorw("create note failed", "error", err)
		return mapError(err)
	}

	return c.JSON(http.StatusCreated, note)
}

// UpdateNote edits a note's fields
func (h *BoardHandler) UpdateNote(c echo.Context) error {
	board, err := h.board(c)
	if err != nil {
		return err
	}

	noteID, err := parseIDParam(c, "noteID")
	if err != nil {
		return err
	}

	var req ports.UpdateNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	note, err := board.UpdateNote(c.Request().Context(), noteID, req)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, note)
}

// PinNote toggles a note's pin flag
func (h *BoardHandler) PinNote(c echo.Context) error {
	board, err := h.board(c)
	if err != nil {
		return err
	}

	noteID, err := parseIDParam(c, "noteID")
	if err != nil {
		return err
	}

	var req PinRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := board.PinNote(c.Request().Context(), noteID, req.IsPinned); err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Note updated"})
}

// DeleteNote deletes a note
func (h *BoardHandler) DeleteNote(c echo.Context) error {
	board, err := h.board(c)
	if err != nil {
		return err
	}

	noteID, err := parseIDParam(c, "noteID")
	if err != nil {
		return err
	}

	if err := board.DeleteNote(c.Request().Context(), noteID); err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Note deleted"})
}

// PinRequest carries a pin toggle
type PinRequest struct {
	IsPinned bool `json:"is_pinned"`
}
