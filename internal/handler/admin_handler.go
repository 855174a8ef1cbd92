package handler

import (
	"net/http"

	"github.com/anisgadi/roombooking/internal/dto"
	"github.com/anisgadi/roombooking/internal/middleware"
	"github.com/anisgadi/roombooking/internal/models"
	"github.com/anisgadi/roombooking/internal/repository"
	"github.com/labstack/echo/v4"
)

// AdminHandler covers user moderation. Room approval lives on the room
// routes, booking deletion on the booking routes.
type AdminHandler struct {
	userRepo repository.UserRepository
}

func NewAdminHandler(userRepo repository.UserRepository) *AdminHandler {
	return &AdminHandler{userRepo: userRepo}
}

func (h *AdminHandler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	g := e.Group("/api/v1/admin", auth, middleware.RequireRoles(models.RoleAdmin))
	g.GET("/users", h.ListUsers)
	g.PUT("/users/:id/status", h.UpdateUserStatus)
	g.DELETE("/users/:id", h.DeleteUser)
}

func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.userRepo.FindAll(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *AdminHandler) UpdateUserStatus(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateUserStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.userRepo.UpdateActive(c.Request().Context(), id, *req.Active); err != nil {
		return toHTTPError(err)
	}

	user, err := h.userRepo.FindByID(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if _, err := h.userRepo.FindByID(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err := h.userRepo.Delete(c.Request().Context(), id); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
