package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/admin-AK47/MRBS/internal/model"
	"github.com/admin-AK47/MRBS/internal/repository"
)

// AdminHandler groups the management endpoints: users, rooms,
// reservations, feedback moderation and usage stats. All routes behind
// it require the admin role.
type AdminHandler struct {
	Users        *repository.UserRepo
	Tokens       *repository.TokenRepo
	Rooms        *repository.RoomRepo
	Reservations *repository.ReservationRepo
	Feedback     *repository.FeedbackRepo
	Stats        *repository.StatsRepo
}

func NewAdminHandler(u *repository.UserRepo, tk *repository.TokenRepo, rm *repository.RoomRepo, rs *repository.ReservationRepo, fb *repository.FeedbackRepo, st *repository.StatsRepo) *AdminHandler {
	return &AdminHandler{Users: u, Tokens: tk, Rooms: rm, Reservations: rs, Feedback: fb, Stats: st}
}

func pathID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return id, err == nil && id != 0
}

// ----- users -----

// ListUsers returns every registered account without password hashes.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list users failed"})
	}
	out := make([]userPart, 0, len(users))
	for _, u := range users {
		out = append(out, userPart{ID: u.ID, FullName: u.FullName, Email: u.Email, Role: u.Role})
	}
	return c.JSON(http.StatusOK, out)
}

// GetUser returns one account by ID.
func (h *AdminHandler) GetUser(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}
	return c.JSON(http.StatusOK, userPart{ID: u.ID, FullName: u.FullName, Email: u.Email, Role: u.Role})
}

type updateRoleReq struct {
	Role string `json:"role"`
}

// UpdateUserRole promotes or demotes an account.
func (h *AdminHandler) UpdateUserRole(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	var req updateRoleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Role != model.RoleAdmin && req.Role != model.RoleUser {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "role must be admin or user"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.UpdateRole(ctx, id, req.Role); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update role failed"})
	}
	// A role change invalidates outstanding sessions; the user signs in
	// again to pick up the new role claim.
	_ = h.Tokens.RevokeAllForUser(ctx, id)
	return c.JSON(http.StatusOK, echo.Map{"id": id, "role": req.Role})
}

// DeleteUser removes an account. The caller cannot delete itself.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	if uid, err := getUserID(c); err == nil && uid == id {
		return c.JSON(http.StatusConflict, echo.Map{"error": "cannot delete your own account"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	_ = h.Tokens.RevokeAllForUser(ctx, id)
	if err := h.Users.Delete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete user failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ----- rooms -----

type roomReq struct {
	Name         string  `json:"name"`
	Location     string  `json:"location"`
	Capacity     uint32  `json:"capacity"`
	Availability string  `json:"availability"`
	Description  *string `json:"description"`
	ImageURL     *string `json:"image_url"`
}

// CreateRoom adds a room and seeds its usage-stats row.
func (h *AdminHandler) CreateRoom(c echo.Context) error {
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Name == "" || req.Location == "" || req.Capacity == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, location and capacity are required"})
	}
	if req.Availability != "" && req.Availability != model.RoomAvailable && req.Availability != model.RoomUnderMaintenance {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid availability"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rm := &model.Room{
		Name:         req.Name,
		Location:     req.Location,
		Capacity:     req.Capacity,
		Availability: req.Availability,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
	}
	id, err := h.Rooms.Create(ctx, rm)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create room failed"})
	}
	if err := h.Stats.InitTx(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "init stats failed"})
	}
	rm.ID = id
	return c.JSON(http.StatusCreated, toRoomView(*rm))
}

// UpdateRoom replaces a room's mutable fields. Setting availability to
// Under_Maintenance makes the room unbookable regardless of its
// reservation calendar.
func (h *AdminHandler) UpdateRoom(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Name == "" || req.Location == "" || req.Capacity == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, location and capacity are required"})
	}
	if req.Availability != model.RoomAvailable && req.Availability != model.RoomUnderMaintenance {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid availability"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rm := &model.Room{
		ID:           id,
		Name:         req.Name,
		Location:     req.Location,
		Capacity:     req.Capacity,
		Availability: req.Availability,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
	}
	if err := h.Rooms.Update(ctx, rm); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update room failed"})
	}
	return c.JSON(http.StatusOK, toRoomView(*rm))
}

// DeleteRoom removes a room that has no reservations.
func (h *AdminHandler) DeleteRoom(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	switch err := h.Rooms.Delete(ctx, id); err {
	case nil:
		return c.NoContent(http.StatusNoContent)
	case sql.ErrNoRows:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
	case repository.ErrConflict:
		return c.JSON(http.StatusConflict, echo.Map{"error": "room has reservations"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete room failed"})
	}
}

// ----- reservations -----

// ListReservations returns every reservation with user and room
// details, newest first.
func (h *AdminHandler) ListReservations(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Reservations.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list reservations failed"})
	}
	return c.JSON(http.StatusOK, list)
}

type overrideStatusReq struct {
	Status string `json:"status"`
}

// OverrideReservationStatus forces a reservation into any status.
// Usage stats follow the confirmed boundary.
func (h *AdminHandler) OverrideReservationStatus(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var req overrideStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	switch req.Status {
	case model.ReservationConfirmed, model.ReservationCancelled, model.ReservationCompleted:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Reservations.OverrideStatus(ctx, id, req.Status); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "override failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": req.Status})
}

// ----- feedback -----

// ListFeedback returns all feedback across rooms, newest first.
func (h *AdminHandler) ListFeedback(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Feedback.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list feedback failed"})
	}
	return c.JSON(http.StatusOK, list)
}

// DeleteFeedback removes one feedback entry (moderation).
func (h *AdminHandler) DeleteFeedback(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid feedback id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Feedback.Delete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "feedback not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete feedback failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ----- stats -----

type statsView struct {
	RoomID        uint64  `json:"room_id"`
	TotalBookings uint32  `json:"total_bookings"`
	HoursBooked   float64 `json:"hours_booked"`
	LastUpdated   string  `json:"last_updated"`
}

func toStatsView(st model.RoomUsageStats) statsView {
	return statsView{
		RoomID:        st.RoomID,
		TotalBookings: st.TotalBookings,
		HoursBooked:   st.HoursBooked,
		LastUpdated:   st.LastUpdated.UTC().Format(time.RFC3339),
	}
}

// ListStats returns per-room usage counters, busiest rooms first.
func (h *AdminHandler) ListStats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Stats.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list stats failed"})
	}
	out := make([]statsView, 0, len(list))
	for _, st := range list {
		out = append(out, toStatsView(st))
	}
	return c.JSON(http.StatusOK, out)
}

// RoomStats returns the counters for a single room.
func (h *AdminHandler) RoomStats(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	st, err := h.Stats.GetByRoom(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no stats for room"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load stats failed"})
	}
	return c.JSON(http.StatusOK, toStatsView(*st))
}
