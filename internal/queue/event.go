// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationConfirmedEvent is published when a booking is successfully
// created. It carries enough information for downstream consumers to
// log, notify, or feed analytics without querying the primary database.
type ReservationConfirmedEvent struct {
	ReservationID uint64 `json:"reservation_id"`
	UserID        uint64 `json:"user_id"`
	UserName      string `json:"user_name"`
	RoomID        uint64 `json:"room_id"`
	RoomName      string `json:"room_name"`
	Location      string `json:"location"`
	Title         string `json:"title"`
	StartsAt      string `json:"starts_at"`
	EndsAt        string `json:"ends_at"`
	ConfirmedAt   string `json:"confirmed_at"`
}
