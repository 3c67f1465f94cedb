package reservations

type Repository interface {
	AddRoom(name string) error
	// RemoveRoom deletes the room together with every reservation placed in
	// it and returns how many reservations went with it.
	RemoveRoom(name string) (int, error)
	// UpdateRoom replaces the room called name with room and, on a rename,
	// moves its reservations to the new name. It returns how many moved.
	UpdateRoom(name string, room Room) (int, error)
	HasRoom(name string) (bool, error)
	GetRooms() ([]Room, error)

	// AddReservation fails with ErrRoomNotFound when the room is gone and
	// with ErrSlotTaken when the slot is held, checked in the same write.
	AddReservation(reservation Reservation) error
	RemoveReservation(id string) (Reservation, error)
	GetReservations() ([]Reservation, error)
}
