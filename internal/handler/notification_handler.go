package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"pulseadmin/internal/service"
)

// NotificationHandler bundles notification endpoints.
type NotificationHandler struct {
	svc service.NotificationService
}

// NewNotificationHandler creates a handler layer.
func NewNotificationHandler(svc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

// NotificationRequest represents a notification creation payload. OwnerID
// defaults to the caller.
type NotificationRequest struct {
	Message string `json:"message" validate:"required"`
	OwnerID uint   `json:"owner_id"`
}

// ListNotifications godoc
// @Summary List notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Notification
// @Failure 403 {object} errors.ErrorResponse
// @Router /notifications [get]
func (h *NotificationHandler) ListNotifications(c echo.Context) error {
	ns, err := h.svc.List(c.Request().Context(), principalFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ns)
}

// GetNotification godoc
// @Summary Get notification by id
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} model.Notification
// @Failure 404 {object} errors.ErrorResponse
// @Router /notifications/{id} [get]
func (h *NotificationHandler) GetNotification(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	n, err := h.svc.Get(c.Request().Context(), principalFrom(c), uint(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, n)
}

// CreateNotification godoc
// @Summary Create a notification
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body NotificationRequest true "Notification payload"
// @Success 201 {object} model.Notification
// @Failure 403 {object} errors.ErrorResponse
// @Router /notifications [post]
func (h *NotificationHandler) CreateNotification(c echo.Context) error {
	var req NotificationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	p := principalFrom(c)
	ownerID := req.OwnerID
	if ownerID == 0 && p != nil {
		ownerID = p.UserID
	}

	n, err := h.svc.Create(c.Request().Context(), p, ownerID, req.Message)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, n)
}

// MarkRead godoc
// @Summary Mark a notification as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} model.Notification
// @Failure 404 {object} errors.ErrorResponse
// @Router /notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	n, err := h.svc.MarkRead(c.Request().Context(), principalFrom(c), uint(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, n)
}

// DeleteNotification godoc
// @Summary Delete a notification
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /notifications/{id} [delete]
func (h *NotificationHandler) DeleteNotification(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Delete(c.Request().Context(), principalFrom(c), uint(id)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "notification deleted"})
}
