package handler

import (
	"net/http"

	"github.com/anisgadi/roombooking/internal/middleware"
	"github.com/anisgadi/roombooking/internal/repository"
	"github.com/labstack/echo/v4"
)

type NotificationHandler struct {
	repo repository.NotificationRepository
}

func NewNotificationHandler(repo repository.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{repo: repo}
}

func (h *NotificationHandler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	g := e.Group("/api/v1/notifications", auth)
	g.GET("", h.ListNotifications)
	g.PUT("/:id/read", h.MarkRead)
}

func (h *NotificationHandler) ListNotifications(c echo.Context) error {
	notifications, err := h.repo.FindByUser(c.Request().Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, notifications)
}

func (h *NotificationHandler) MarkRead(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.repo.MarkRead(c.Request().Context(), id, middleware.CurrentUser(c).ID); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
