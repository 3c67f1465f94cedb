package memory

import (
	"fmt"
	"slices"

	"gitlab.crja72.ru/gospec/go5/reservations/internal/domain/reservations"
)

// Repository keeps rooms and reservations in insertion order. It does no
// locking of its own; the interactor serialises access.
type Repository struct {
	rooms        []reservations.Room
	reservations []reservations.Reservation
}

func NewRepository() *Repository {
	return &Repository{
		rooms:        make([]reservations.Room, 0),
		reservations: make([]reservations.Reservation, 0),
	}
}

func (r *Repository) roomIndex(name string) int {
	return slices.IndexFunc(r.rooms, func(room reservations.Room) bool {
		return room.Name == name
	})
}

func (r *Repository) AddRoom(name string) error {
	if r.roomIndex(name) >= 0 {
		return fmt.Errorf("%w: %s", reservations.ErrRoomExists, name)
	}

	r.rooms = append(r.rooms, reservations.Room{Name: name})

	return nil
}

func (r *Repository) RemoveRoom(name string) (int, error) {
	index := r.roomIndex(name)
	if index < 0 {
		return 0, fmt.Errorf("%w: %s", reservations.ErrRoomNotFound, name)
	}

	r.rooms = slices.Delete(r.rooms, index, index+1)

	before := len(r.reservations)
	r.reservations = slices.DeleteFunc(r.reservations, func(res reservations.Reservation) bool {
		return res.Place == name
	})

	return before - len(r.reservations), nil
}

// UpdateRoom replaces the room called name. A rename carries its
// reservations over to the new name and reports how many moved.
func (r *Repository) UpdateRoom(name string, room reservations.Room) (int, error) {
	index := r.roomIndex(name)
	if index < 0 {
		return 0, fmt.Errorf("%w: %s", reservations.ErrRoomNotFound, name)
	}
	if room.Name != name && r.roomIndex(room.Name) >= 0 {
		return 0, fmt.Errorf("%w: %s", reservations.ErrRoomExists, room.Name)
	}

	r.rooms[index] = room
	if room.Name == name {
		return 0, nil
	}

	moved := 0
	for i := range r.reservations {
		if r.reservations[i].Place == name {
			r.reservations[i].Place = room.Name
			moved++
		}
	}

	return moved, nil
}

func (r *Repository) HasRoom(name string) (bool, error) {
	return r.roomIndex(name) >= 0, nil
}

func (r *Repository) GetRooms() ([]reservations.Room, error) {
	return slices.Clone(r.rooms), nil
}

func (r *Repository) AddReservation(reservation reservations.Reservation) error {
	if r.roomIndex(reservation.Place) < 0 {
		return fmt.Errorf("%w: %s", reservations.ErrRoomNotFound, reservation.Place)
	}
	if slices.ContainsFunc(r.reservations, reservation.SameSlot) {
		return fmt.Errorf("%w: %s %s %s", reservations.ErrSlotTaken, reservation.Place, reservation.Date, reservation.Time)
	}

	r.reservations = append(r.reservations, reservation)

	return nil
}

func (r *Repository) RemoveReservation(id string) (reservations.Reservation, error) {
	index := slices.IndexFunc(r.reservations, func(res reservations.Reservation) bool {
		return res.ID.String() == id
	})
	if index < 0 {
		return reservations.Reservation{}, fmt.Errorf("%w: %s", reservations.ErrReservationNotFound, id)
	}

	removed := r.reservations[index]
	r.reservations = slices.Delete(r.reservations, index, index+1)

	return removed, nil
}

func (r *Repository) GetReservations() ([]reservations.Reservation, error) {
	return slices.Clone(r.reservations), nil
}
