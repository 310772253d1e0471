package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/listit/api/internal/application/services"
	"github.com/listit/api/internal/infrastructure/logger"
	"github.com/listit/api/internal/ports"
)

// ListHandler handles list-level requests
type ListHandler struct {
	listService *services.ListService
	viewService *services.ViewService
	logger      *logger.Logger
}

// NewListHandler creates a new list handler
func NewListHandler(listService *services.ListService, viewService *services.ViewService, logger *logger.Logger) *ListHandler {
	return &ListHandler{
		listService: listService,
		viewService: viewService,
		logger:      logger,
	}
}

// CreateList creates a list, or resolves to the existing one when the name
// is already taken. 200 with the existing row signals "navigate instead of
// create"; 201 signals a fresh list.
func (h *ListHandler) CreateList(c echo.Context) error {
	userID := getUserIDFromContext(c)

	var req ports.CreateListRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	list, created, err := h.listService.CreateList(c.Request().Context(), userID, req)
	if err != nil {
		h.logger.Errorw("create list failed", "error", err, "user_id", userID)
		return mapError(err)
	}

	if !created {
		return c.JSON(http.StatusOK, list)
	}
	return c.JSON(http.StatusCreated, list)
}

// GetLists returns the user's lists
func (h *ListHandler) GetLists(c echo.Context) error {
	userID := getUserIDFromContext(c)

	lists, err := h.listService.GetLists(c.Request().Context(), userID)
	if err != nil {
		h.logger.Errorw("get lists failed", "error", err, "user_id", userID)
		return mapError(err)
	}

	return c.JSON(http.StatusOK, lists)
}

// GetList returns one list
func (h *ListHandler) GetList(c echo.Context) error {
	userID := getUserIDFromContext(c)
	listID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	list, err := h.listService.GetList(c.Request().Context(), userID, listID)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, list)
}

// UpdateList updates a list's name, color or pin flag
func (h *ListHandler) UpdateList(c echo.Context) error {
	userID := getUserIDFromContext(c)
	listID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req ports.UpdateListRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	list, err := h.listService.UpdateList(c.Request().Context(), userID, listID, req)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, list)
}

// DeleteList runs the deletion cascade and tears down the list's board
// controller.
func (h *ListHandler) DeleteList(c echo.Context) error {
	userID := getUserIDFromContext(c)
	listID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.listService.DeleteList(c.Request().Context(), userID, listID); err != nil {
		h.logger.Errorw("delete list failed", "error", err, "list_id", listID)
		return mapError(err)
	}

	h.viewService.CloseList(listID)

	return c.JSON(http.StatusOK, MessageResponse{Message: "List deleted"})
}
