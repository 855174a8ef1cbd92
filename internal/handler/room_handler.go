package handler

import (
	"net/http"
	"strconv"

	"github.com/anisgadi/roombooking/internal/dto"
	"github.com/anisgadi/roombooking/internal/middleware"
	"github.com/anisgadi/roombooking/internal/models"
	"github.com/anisgadi/roombooking/internal/repository"
	"github.com/anisgadi/roombooking/internal/service"
	"github.com/labstack/echo/v4"
)

const defaultPageSize = 20

type RoomHandler struct {
	svc service.RoomService
}

func NewRoomHandler(svc service.RoomService) *RoomHandler {
	return &RoomHandler{svc: svc}
}

func (h *RoomHandler) RegisterRoutes(e *echo.Echo, auth, optionalAuth echo.MiddlewareFunc) {
	g := e.Group("/api/v1/rooms")
	g.GET("", h.ListRooms, optionalAuth)
	g.GET("/pending", h.PendingRooms, auth, middleware.RequireRoles(models.RoleAdmin))
	g.GET("/owner/me", h.OwnerRooms, auth, middleware.RequireRoles(models.RoleOwner))
	g.GET("/:id", h.GetRoom)
	g.POST("", h.CreateRoom, auth, middleware.RequireRoles(models.RoleOwner))
	g.PUT("/:id", h.UpdateRoom, auth, middleware.RequireRoles(models.RoleOwner, models.RoleAdmin))
	g.DELETE("/:id", h.DeleteRoom, auth, middleware.RequireRoles(models.RoleOwner, models.RoleAdmin))
	g.PUT("/:id/approve", h.ApproveRoom, auth, middleware.RequireRoles(models.RoleAdmin))
	g.PUT("/:id/reject", h.RejectRoom, auth, middleware.RequireRoles(models.RoleAdmin))
}

func (h *RoomHandler) ListRooms(c echo.Context) error {
	filter := repository.RoomFilter{
		Search: c.QueryParam("search"),
		City:   c.QueryParam("city"),
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", defaultPageSize),
	}
	filter.MinCapacity = queryInt(c, "min_capacity", 0)
	if s := c.QueryParam("max_rate"); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			filter.MaxRate = v
		}
	}

	resp, err := h.svc.ListRooms(c.Request().Context(), middleware.CurrentUser(c), filter)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *RoomHandler) GetRoom(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	room, err := h.svc.GetRoom(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, room)
}

func (h *RoomHandler) CreateRoom(c echo.Context) error {
	var req dto.CreateRoomRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	room := roomFromRequest(&req)
	if err := h.svc.CreateRoom(c.Request().Context(), middleware.CurrentUser(c), room); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, room)
}

func (h *RoomHandler) UpdateRoom(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.CreateRoomRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	room, err := h.svc.UpdateRoom(c.Request().Context(), middleware.CurrentUser(c), id, roomFromRequest(&req))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, room)
}

func (h *RoomHandler) DeleteRoom(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteRoom(c.Request().Context(), middleware.CurrentUser(c), id); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *RoomHandler) OwnerRooms(c echo.Context) error {
	rooms, err := h.svc.OwnerRooms(c.Request().Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, rooms)
}

func (h *RoomHandler) PendingRooms(c echo.Context) error {
	rooms, err := h.svc.PendingRooms(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, rooms)
}

func (h *RoomHandler) ApproveRoom(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	room, err := h.svc.ApproveRoom(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, room)
}

func (h *RoomHandler) RejectRoom(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	room, err := h.svc.RejectRoom(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, room)
}

func roomFromRequest(req *dto.CreateRoomRequest) *models.Room {
	available := true
	if req.Available != nil {
		available = *req.Available
	}
	return &models.Room{
		Title:       req.Title,
		Description: req.Description,
		Capacity:    req.Capacity,
		RateAmount:  req.RateAmount,
		RateUnit:    req.RateUnit,
		Address:     req.Address,
		City:        req.City,
		Available:   available,
	}
}

func queryInt(c echo.Context, name string, fallback int) int {
	if s := c.QueryParam(name); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return fallback
}
