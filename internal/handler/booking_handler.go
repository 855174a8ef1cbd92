package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/anisgadi/roombooking/internal/dto"
	"github.com/anisgadi/roombooking/internal/middleware"
	"github.com/anisgadi/roombooking/internal/models"
	"github.com/anisgadi/roombooking/internal/service"
	"github.com/labstack/echo/v4"
)

type BookingHandler struct {
	svc   service.BookingService
	clock service.Clock
}

func NewBookingHandler(svc service.BookingService, clock service.Clock) *BookingHandler {
	if clock == nil {
		clock = service.SystemClock
	}
	return &BookingHandler{svc: svc, clock: clock}
}

func (h *BookingHandler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	g := e.Group("/api/v1/bookings", auth)
	g.POST("", h.CreateBooking, middleware.RequireRoles(models.RoleClient))
	g.GET("", h.ListBookings, middleware.RequireRoles(models.RoleAdmin))
	g.GET("/me", h.MyBookings)
	g.GET("/owner", h.OwnerBookings, middleware.RequireRoles(models.RoleOwner))
	g.GET("/:id", h.GetBooking)
	g.GET("/:id/review-eligibility", h.ReviewEligibility, middleware.RequireRoles(models.RoleClient))
	g.PUT("/:id/cancel", h.CancelBooking)
	g.PUT("/:id/status", h.TransitionBooking)
	g.DELETE("/:id", h.DeleteBooking, middleware.RequireRoles(models.RoleAdmin))

	// availability preview, no auth required
	e.GET("/api/v1/rooms/:id/availability", h.RoomAvailability)
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	booking, err := h.svc.CreateBooking(
		c.Request().Context(),
		middleware.CurrentUser(c),
		req.RoomID,
		req.StartAt,
		req.EndAt,
		req.PartySize,
	)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToBookingResponse(booking, h.clock()))
}

func (h *BookingHandler) CancelBooking(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	booking, err := h.svc.CancelBooking(c.Request().Context(), middleware.CurrentUser(c), id)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking, h.clock()))
}

func (h *BookingHandler) TransitionBooking(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.TransitionBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	booking, err := h.svc.TransitionBooking(c.Request().Context(), middleware.CurrentUser(c), id, req.Status)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking, h.clock()))
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	booking, err := h.svc.GetBooking(c.Request().Context(), middleware.CurrentUser(c), id)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking, h.clock()))
}

func (h *BookingHandler) MyBookings(c echo.Context) error {
	bookings, err := h.svc.ListByClient(c.Request().Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponses(bookings, h.clock()))
}

func (h *BookingHandler) OwnerBookings(c echo.Context) error {
	bookings, err := h.svc.ListByOwner(c.Request().Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponses(bookings, h.clock()))
}

func (h *BookingHandler) ListBookings(c echo.Context) error {
	bookings, err := h.svc.ListAll(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponses(bookings, h.clock()))
}

func (h *BookingHandler) DeleteBooking(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteBooking(c.Request().Context(), id); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ReviewEligibility tells the client whether a booking can still be reviewed,
// so the UI can show or hide the review form.
func (h *BookingHandler) ReviewEligibility(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	eligible, err := h.svc.ReviewEligibility(c.Request().Context(), middleware.CurrentUser(c), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"eligible": eligible})
}

// RoomAvailability reports the blocking bookings overlapping the requested
// range so clients can check a slot before submitting.
func (h *BookingHandler) RoomAvailability(c echo.Context) error {
	roomID, err := parseID(c)
	if err != nil {
		return err
	}

	start, err := time.Parse(time.RFC3339, c.QueryParam("start"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "start must be RFC3339")
	}
	end, err := time.Parse(time.RFC3339, c.QueryParam("end"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "end must be RFC3339")
	}
	rng, err := models.NewTimeRange(start, end)
	if err != nil {
		return toHTTPError(err)
	}

	var excludeID uint
	if s := c.QueryParam("exclude_booking_id"); s != "" {
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid exclude_booking_id")
		}
		excludeID = uint(n)
	}

	conflicts, err := h.svc.FindConflicts(c.Request().Context(), roomID, rng, excludeID)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"available": len(conflicts) == 0,
		"conflicts": dto.ToBookingResponses(conflicts, h.clock()),
	})
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}
