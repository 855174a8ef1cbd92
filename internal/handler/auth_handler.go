package handler

import (
	"net/http"

	"github.com/anisgadi/roombooking/internal/dto"
	"github.com/anisgadi/roombooking/internal/middleware"
	"github.com/anisgadi/roombooking/internal/models"
	"github.com/anisgadi/roombooking/internal/service"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	svc service.AuthService
}

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	g := e.Group("/api/v1/auth")
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)

	me := e.Group("/api/v1/auth/me", auth)
	me.GET("", h.Me)
	me.PUT("", h.UpdateDetails)
	me.PUT("/password", h.UpdatePassword)
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user := &models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Role:      req.Role,
		Phone:     req.Phone,
	}
	if err := h.svc.Register(c.Request().Context(), user, req.Password); err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, user, err := h.svc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.AuthResponse{Token: token, User: user})
}

func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, middleware.CurrentUser(c))
}

func (h *AuthHandler) UpdateDetails(c echo.Context) error {
	var req dto.UpdateDetailsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	actor := middleware.CurrentUser(c)
	user, err := h.svc.UpdateDetails(c.Request().Context(), actor.ID, req.FirstName, req.LastName, req.Email, req.Phone)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) UpdatePassword(c echo.Context) error {
	var req dto.UpdatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	actor := middleware.CurrentUser(c)
	if err := h.svc.UpdatePassword(c.Request().Context(), actor.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
