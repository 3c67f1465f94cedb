// Package console renders reservation results as the human-readable text of
// the interactive client and runs its command loop.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gitlab.crja72.ru/gospec/go5/reservations/internal/domain/reservations"
)

// Backend is what the console drives: the in-process interactor (see Local)
// or a remote gRPC client.
type Backend interface {
	AdminLogin(ctx context.Context, id, password string) error
	AdminLogout(ctx context.Context) error
	AdminAddRoom(ctx context.Context, name string) error
	AdminRemoveRoom(ctx context.Context, name string) error
	AdminUpdateRoom(ctx context.Context, name string, update reservations.RoomUpdate) (reservations.Room, error)
	GetRooms(ctx context.Context) ([]reservations.Room, error)
	ReserveRepeating(ctx context.Context, req reservations.ReservationRequest, repeat reservations.Repeat, count int) ([]reservations.Reservation, error)
	CancelReservation(ctx context.Context, id string) error
	ReservationsByDay(ctx context.Context, date string) (reservations.DayReport, error)
}

type local struct {
	*reservations.Interactor
}

func (l local) AdminLogout(ctx context.Context) error {
	l.Interactor.AdminLogout(ctx)
	return nil
}

func Local(interactor *reservations.Interactor) Backend {
	return local{interactor}
}

// WriteDayReport prints a report line by line: per-room reservations or a
// "no reservation" line, followed by a summary when nothing matched.
func WriteDayReport(w io.Writer, report reservations.DayReport) {
	fmt.Fprintf(w, "Reservations for %s:\n", report.Date)

	for _, room := range report.Rooms {
		if len(room.Entries) == 0 {
			fmt.Fprintf(w, "- %s: no reservation\n", room.Room)
			continue
		}
		for _, e := range room.Entries {
			fmt.Fprintf(w, "- %s: %s (reserved by %s)\n", room.Room, e.Time, e.Name)
		}
	}

	switch report.Outcome {
	case reservations.OutcomeNoRooms:
		fmt.Fprintln(w, "No rooms registered.")
	case reservations.OutcomeNoReservations:
		fmt.Fprintln(w, "No reservations for this date.")
	}
}

// Message turns an operation error into the text shown to the user.
func Message(err error) string {
	switch {
	case errors.Is(err, reservations.ErrAuthFailed):
		return "Admin login failed."
	case errors.Is(err, reservations.ErrPermissionDenied):
		return "Only an admin can manage rooms."
	case errors.Is(err, reservations.ErrRoomNotFound):
		return fmt.Sprintf("No such room (%v).", err)
	case errors.Is(err, reservations.ErrRoomExists):
		return fmt.Sprintf("Room already exists (%v).", err)
	case errors.Is(err, reservations.ErrReservationNotFound):
		return "No such reservation."
	case errors.Is(err, reservations.ErrSlotTaken):
		return "That time slot is already reserved."
	case errors.Is(err, reservations.ErrInvalidArgument):
		return fmt.Sprintf("Invalid input: %v.", err)
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}
