package handler

import (
	"net/http"

	"github.com/anisgadi/roombooking/internal/dto"
	"github.com/anisgadi/roombooking/internal/middleware"
	"github.com/anisgadi/roombooking/internal/models"
	"github.com/anisgadi/roombooking/internal/service"
	"github.com/labstack/echo/v4"
)

type ReviewHandler struct {
	svc service.ReviewService
}

func NewReviewHandler(svc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

func (h *ReviewHandler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	g := e.Group("/api/v1/reviews")
	g.POST("", h.CreateReview, auth, middleware.RequireRoles(models.RoleClient))
	g.PUT("/:id", h.UpdateReview, auth)
	g.DELETE("/:id", h.DeleteReview, auth)
	g.GET("/owner/me", h.OwnerRoomReviews, auth, middleware.RequireRoles(models.RoleOwner))

	e.GET("/api/v1/rooms/:id/reviews", h.RoomReviews)
}

func (h *ReviewHandler) CreateReview(c echo.Context) error {
	var req dto.CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	review, err := h.svc.CreateReview(
		c.Request().Context(),
		middleware.CurrentUser(c),
		req.RoomID,
		req.BookingID,
		req.Rating,
		req.Comment,
	)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) UpdateReview(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	review, err := h.svc.UpdateReview(c.Request().Context(), middleware.CurrentUser(c), id, req.Rating, req.Comment)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteReview(c.Request().Context(), middleware.CurrentUser(c), id); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ReviewHandler) RoomReviews(c echo.Context) error {
	roomID, err := parseID(c)
	if err != nil {
		return err
	}
	reviews, err := h.svc.RoomReviews(c.Request().Context(), roomID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandler) OwnerRoomReviews(c echo.Context) error {
	reviews, err := h.svc.OwnerRoomReviews(c.Request().Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, reviews)
}
