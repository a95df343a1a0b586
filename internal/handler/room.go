package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/admin-AK47/MRBS/internal/booking"
	"github.com/admin-AK47/MRBS/internal/model"
	"github.com/admin-AK47/MRBS/internal/repository"
)

// roomView is the JSON shape of a room. Model structs carry no json
// tags, so every handler that returns a room goes through this type.
type roomView struct {
	ID           uint64  `json:"id"`
	Name         string  `json:"name"`
	Location     string  `json:"location"`
	Capacity     uint32  `json:"capacity"`
	Availability string  `json:"availability"`
	Description  *string `json:"description,omitempty"`
	ImageURL     *string `json:"image_url,omitempty"`
}

func toRoomView(rm model.Room) roomView {
	return roomView{
		ID:           rm.ID,
		Name:         rm.Name,
		Location:     rm.Location,
		Capacity:     rm.Capacity,
		Availability: rm.Availability,
		Description:  rm.Description,
		ImageURL:     rm.ImageURL,
	}
}

func toRoomViews(rooms []model.Room) []roomView {
	out := make([]roomView, 0, len(rooms))
	for _, rm := range rooms {
		out = append(out, toRoomView(rm))
	}
	return out
}

// RoomHandler serves the public room catalog: browsing, per-room
// detail, feedback listings and the availability search.
type RoomHandler struct {
	Rooms        *repository.RoomRepo
	Reservations *repository.ReservationRepo
	Feedback     *repository.FeedbackRepo
}

func NewRoomHandler(rooms *repository.RoomRepo, reservations *repository.ReservationRepo, fb *repository.FeedbackRepo) *RoomHandler {
	return &RoomHandler{Rooms: rooms, Reservations: reservations, Feedback: fb}
}

// List returns all rooms. Optional filters: ?location= (exact match)
// and ?min_capacity=.
func (h *RoomHandler) List(c echo.Context) error {
	var minCap uint32
	if raw := c.QueryParam("min_capacity"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid min_capacity"})
		}
		minCap = uint32(v)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rooms, err := h.Rooms.List(ctx, c.QueryParam("location"), minCap)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list rooms failed"})
	}
	return c.JSON(http.StatusOK, toRoomViews(rooms))
}

// Get returns one room by ID.
func (h *RoomHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	room, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load room failed"})
	}
	return c.JSON(http.StatusOK, toRoomView(*room))
}

// ListFeedback returns the feedback left for one room, newest first.
func (h *RoomHandler) ListFeedback(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Rooms.GetByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load room failed"})
	}
	list, err := h.Feedback.ListByRoom(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list feedback failed"})
	}
	return c.JSON(http.StatusOK, list)
}

// roomResult is one row of the availability search response.
type roomResult struct {
	Room   roomView           `json:"room"`
	Status booking.RoomStatus `json:"status"`
}

// Search evaluates every room against a requested time window. Query
// params: date=YYYY-MM-DD, start=HH:MM, end=HH:MM, and an optional
// location filter. Each room comes back tagged Available, Booked or
// Under_Maintenance; maintenance wins over everything else and an
// adjacent booking (ending exactly at the requested start) does not
// count as a conflict.
func (h *RoomHandler) Search(c echo.Context) error {
	date, start, end := c.QueryParam("date"), c.QueryParam("start"), c.QueryParam("end")
	if date == "" || start == "" || end == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date, start and end are required"})
	}
	winStart, winEnd, err := booking.WindowFor(date, start, end)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date or time format"})
	}
	if !winEnd.After(winStart) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end must be after start"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rooms, err := h.Rooms.List(ctx, c.QueryParam("location"), 0)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list rooms failed"})
	}
	confirmed, err := h.Reservations.ListConfirmed(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list reservations failed"})
	}

	results := make([]roomResult, 0, len(rooms))
	for _, rm := range rooms {
		results = append(results, roomResult{
			Room:   toRoomView(rm),
			Status: booking.Evaluate(rm, winStart, winEnd, confirmed),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"window": echo.Map{
			"start": winStart.Format(time.RFC3339),
			"end":   winEnd.Format(time.RFC3339),
		},
		"rooms": results,
	})
}
