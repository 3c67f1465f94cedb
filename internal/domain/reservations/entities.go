package reservations

import (
	"time"

	"github.com/google/uuid"
)

type Room struct {
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
	Capacity int    `json:"capacity,omitempty"`
}

// RoomUpdate replaces a room's attributes. An empty Name keeps the current
// name; a new one renames the room and moves its reservations along.
type RoomUpdate struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Capacity int    `json:"capacity"`
}

type Reservation struct {
	ID        uuid.UUID `json:"id"`
	Place     string    `json:"place"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ReservationRequest carries the caller-supplied fields of a new reservation.
type ReservationRequest struct {
	Place string `json:"place"`
	Date  string `json:"date"`
	Time  string `json:"time"`
	Name  string `json:"name"`
}

// SameSlot reports whether r occupies the same room, date and time as other.
func (r Reservation) SameSlot(other Reservation) bool {
	return r.Place == other.Place && r.Date == other.Date && r.Time == other.Time
}
