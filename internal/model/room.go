package model

import "time"

// Room availability states as stored in `rooms.availability`.
// Available is the normal bookable state. Under_Maintenance is an
// administrator-set override that makes the room unbookable
// regardless of its reservation calendar.
const (
	RoomAvailable        = "Available"
	RoomUnderMaintenance = "Under_Maintenance"
)

// Room represents a bookable meeting room as stored in the `rooms`
// table. Rooms are created and edited by administrators and are
// read-only to end users.
//
// Fields:
//  ID           – primary key identifier.
//  Name         – room name, unique per location.
//  Location     – site tag (e.g. "Building_A", "Floor_2").
//  Capacity     – number of seats, always >= 0.
//  Availability – base availability state (Available, Under_Maintenance).
//  Description  – optional free-text description of the room.
//  ImageURL     – optional reference to a room photo.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type Room struct {
	ID           uint64    // rooms.id
	Name         string    // rooms.name
	Location     string    // rooms.location
	Capacity     uint32    // rooms.capacity
	Availability string    // rooms.availability
	Description  *string   // rooms.description (nullable)
	ImageURL     *string   // rooms.image_url (nullable)
	CreatedAt    time.Time // rooms.created_at
	UpdatedAt    time.Time // rooms.updated_at
}

// RoomUsageStats aggregates booking activity per room. One row exists
// per room; counters move on reservation creation and cancellation so
// the admin dashboard can rank rooms without scanning reservations.
//
// Fields:
//  ID            – primary key identifier.
//  RoomID        – room the counters belong to.
//  TotalBookings – number of currently confirmed or completed bookings.
//  HoursBooked   – total booked hours across those bookings.
//  LastUpdated   – when the counters last moved.
type RoomUsageStats struct {
	ID            uint64    // room_usage_stats.id
	RoomID        uint64    // room_usage_stats.room_id
	TotalBookings uint32    // room_usage_stats.total_bookings
	HoursBooked   float64   // room_usage_stats.hours_booked
	LastUpdated   time.Time // room_usage_stats.last_updated
}
