package handler

import (
	"errors"
	"net/http"

	"github.com/anisgadi/roombooking/internal/models"
	"github.com/anisgadi/roombooking/internal/service"
	"github.com/labstack/echo/v4"
)

// toHTTPError maps service failures to HTTP responses. Every expected error
// kind gets a 4xx; anything unrecognized is a 500.
func toHTTPError(err error) error {
	var conflictErr *service.ConflictError
	var transitionErr *service.TransitionError

	switch {
	case errors.Is(err, service.ErrRoomNotFound),
		errors.Is(err, service.ErrBookingNotFound),
		errors.Is(err, service.ErrReviewNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())

	case errors.Is(err, models.ErrInvalidRange),
		errors.Is(err, service.ErrInvalidRateUnit),
		errors.Is(err, service.ErrInvalidPartySize),
		errors.Is(err, service.ErrCapacityExceeded),
		errors.Is(err, service.ErrRoomNotApproved),
		errors.Is(err, service.ErrBookingNotReviewable),
		errors.Is(err, service.ErrReviewRoomMismatch):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())

	case errors.Is(err, service.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())

	case errors.Is(err, service.ErrNotAuthorized),
		errors.Is(err, service.ErrUserInactive):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())

	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrReviewExists),
		errors.As(err, &conflictErr):
		return echo.NewHTTPError(http.StatusConflict, err.Error())

	case errors.As(err, &transitionErr):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())

	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
