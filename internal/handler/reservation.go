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
	"github.com/admin-AK47/MRBS/internal/queue"
	"github.com/admin-AK47/MRBS/internal/repository"
	queue_publisher "github.com/admin-AK47/MRBS/internal/service"
)

// ReservationHandler serves the booking endpoints for authenticated
// users: create, list own, cancel, and leave feedback.
type ReservationHandler struct {
	Rooms        *repository.RoomRepo
	Reservations *repository.ReservationRepo
	Feedback     *repository.FeedbackRepo
	Users        *repository.UserRepo
}

func NewReservationHandler(rooms *repository.RoomRepo, reservations *repository.ReservationRepo, fb *repository.FeedbackRepo, users *repository.UserRepo) *ReservationHandler {
	return &ReservationHandler{Rooms: rooms, Reservations: reservations, Feedback: fb, Users: users}
}

type createReservationReq struct {
	RoomID uint64 `json:"room_id"`
	Title  string `json:"title"`
	Date   string `json:"date"`  // YYYY-MM-DD
	Start  string `json:"start"` // HH:MM
	End    string `json:"end"`   // HH:MM
}

type feedbackReq struct {
	Rating  uint8   `json:"rating"`
	Comment *string `json:"comment"`
}

// reservationView is the JSON shape of a freshly created reservation.
type reservationView struct {
	ID        uint64 `json:"id"`
	RoomID    uint64 `json:"room_id"`
	Title     string `json:"title"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Status    string `json:"status"`
}

type feedbackView struct {
	ID            uint64  `json:"id"`
	ReservationID uint64  `json:"reservation_id"`
	RoomID        uint64  `json:"room_id"`
	Rating        uint8   `json:"rating"`
	Comment       *string `json:"comment,omitempty"`
}

// Create books a room. The window must pass the time-constraint rules
// (operating hours, minimum and maximum duration), the room must exist
// and not be under maintenance, and the transactional overlap check in
// the repository is the final arbiter against racing bookings. On
// success a confirmation event is published fire-and-forget.
func (h *ReservationHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.RoomID == 0 || req.Title == "" || req.Date == "" || req.Start == "" || req.End == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_id, title, date, start and end are required"})
	}

	start, end, err := booking.WindowFor(req.Date, req.Start, req.End)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date or time format"})
	}
	if err := booking.ValidateWindow(start, end); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	room, err := h.Rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load room failed"})
	}
	if room.Availability == model.RoomUnderMaintenance {
		return c.JSON(http.StatusConflict, echo.Map{"error": "room is under maintenance"})
	}

	res := &model.Reservation{
		UserID:    uid,
		RoomID:    req.RoomID,
		Title:     req.Title,
		StartTime: start,
		EndTime:   end,
	}
	if err := h.Reservations.Create(ctx, res); err != nil {
		if err == repository.ErrRoomNotAvailable {
			return c.JSON(http.StatusConflict, echo.Map{"error": "room is already booked for that time"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create reservation failed"})
	}

	// Confirmation event. A broker outage must not fail the booking.
	userName := ""
	if u, uerr := h.Users.GetByID(ctx, uid); uerr == nil {
		userName = u.FullName
	}
	event := queue.ReservationConfirmedEvent{
		ReservationID: res.ID,
		UserID:        uid,
		UserName:      userName,
		RoomID:        room.ID,
		RoomName:      room.Name,
		Location:      room.Location,
		Title:         res.Title,
		StartsAt:      start.Format(time.RFC3339),
		EndsAt:        end.Format(time.RFC3339),
		ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer pubCancel()
		_ = queue_publisher.PublishReservationConfirmed(pubCtx, event)
	}()

	return c.JSON(http.StatusCreated, reservationView{
		ID:        res.ID,
		RoomID:    res.RoomID,
		Title:     res.Title,
		StartTime: start.Format(time.RFC3339),
		EndTime:   end.Format(time.RFC3339),
		Status:    res.Status,
	})
}

// ListMine returns the caller's reservations, newest first.
func (h *ReservationHandler) ListMine(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Reservations.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list reservations failed"})
	}
	return c.JSON(http.StatusOK, list)
}

// ListMyFeedback returns the feedback the caller has written, newest
// first.
func (h *ReservationHandler) ListMyFeedback(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Feedback.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list feedback failed"})
	}
	return c.JSON(http.StatusOK, list)
}

// Cancel cancels one of the caller's confirmed, not-yet-started
// reservations. Admins may cancel anyone's.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	switch err := h.Reservations.Cancel(ctx, id, uid, isAdmin(c)); err {
	case nil:
		return c.JSON(http.StatusOK, echo.Map{"status": model.ReservationCancelled})
	case sql.ErrNoRows:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	case repository.ErrForbidden:
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your reservation"})
	case repository.ErrConflict:
		return c.JSON(http.StatusConflict, echo.Map{"error": "reservation cannot be cancelled"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
	}
}

// SubmitFeedback records a rating (1-5) and optional comment for a
// completed reservation owned by the caller. Feedback is write-once
// per reservation.
func (h *ReservationHandler) SubmitFeedback(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}

	var req feedbackReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Rating < 1 || req.Rating > 5 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1 and 5"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Reservations.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservation failed"})
	}
	if res.UserID != uid {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your reservation"})
	}
	if res.Status != model.ReservationCompleted {
		return c.JSON(http.StatusConflict, echo.Map{"error": "feedback is only allowed on completed reservations"})
	}

	fb := &model.Feedback{
		ReservationID: id,
		UserID:        uid,
		RoomID:        res.RoomID,
		Rating:        req.Rating,
		Comment:       req.Comment,
	}
	if err := h.Feedback.Create(ctx, fb); err != nil {
		if err == repository.ErrFeedbackExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "feedback already submitted"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save feedback failed"})
	}
	return c.JSON(http.StatusCreated, feedbackView{
		ID:            fb.ID,
		ReservationID: fb.ReservationID,
		RoomID:        fb.RoomID,
		Rating:        fb.Rating,
		Comment:       fb.Comment,
	})
}
