package reservations

import "time"

type EventKind string

const (
	EventRoomAdded            EventKind = "room.added"
	EventRoomRemoved          EventKind = "room.removed"
	EventRoomUpdated          EventKind = "room.updated"
	EventReservationCreated   EventKind = "reservation.created"
	EventReservationCancelled EventKind = "reservation.cancelled"
)

type Event struct {
	Kind EventKind `json:"kind"`
	Room string    `json:"room"`
	// PreviousRoom is set when an update renamed the room.
	PreviousRoom string       `json:"previous_room,omitempty"`
	Reservation  *Reservation `json:"reservation,omitempty"`
	// Cascaded counts the reservations removed with a room, or moved by a rename.
	Cascaded int       `json:"cascaded,omitempty"`
	At       time.Time `json:"at"`
}
