package grpc

import "gitlab.crja72.ru/gospec/go5/reservations/internal/domain/reservations"

type Empty struct{}

type LoginRequest struct {
	ID       string `json:"id"`
	Password string `json:"password"`
}

type RoomRequest struct {
	Name string `json:"name"`
}

type UpdateRoomRequest struct {
	Name   string                  `json:"name"`
	Update reservations.RoomUpdate `json:"update"`
}

type RoomsResponse struct {
	Rooms []reservations.Room `json:"rooms"`
}

type ReserveRequest struct {
	reservations.ReservationRequest
	Repeat string `json:"repeat,omitempty"`
	Count  int    `json:"count,omitempty"`
}

type ReservationsResponse struct {
	Reservations []reservations.Reservation `json:"reservations"`
}

type ReservationIDRequest struct {
	ID string `json:"id"`
}

type DayRequest struct {
	Date string `json:"date"`
}
