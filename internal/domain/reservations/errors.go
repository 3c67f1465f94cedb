package reservations

import "errors"

var (
	ErrAuthFailed          = errors.New("admin login failed")
	ErrPermissionDenied    = errors.New("admin session required")
	ErrRoomNotFound        = errors.New("room does not exist")
	ErrRoomExists          = errors.New("room already exists")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrSlotTaken           = errors.New("time slot already reserved")
	ErrInvalidArgument     = errors.New("invalid argument")
)
