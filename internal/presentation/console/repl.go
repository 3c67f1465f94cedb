package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gitlab.crja72.ru/gospec/go5/reservations/internal/domain/reservations"
)

const help = `Commands:
  login <id> <password>
  logout
  rooms
  add-room <name>
  remove-room <name>
  update-room <name> <new-name> <capacity> [location]
  reserve <room> <date> <time> <name> [weekly|monthly <count>]
  cancel <reservation-id>
  day <date>
  help
  quit`

type REPL struct {
	backend Backend
	out     io.Writer
}

func NewREPL(backend Backend, out io.Writer) *REPL {
	return &REPL{backend: backend, out: out}
}

// Run reads commands from in until EOF, quit or ctx is done.
func (r *REPL) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)

	fmt.Fprint(r.out, "> ")
	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if !r.Exec(ctx, scanner.Text()) {
			return nil
		}
		fmt.Fprint(r.out, "> ")
	}

	return scanner.Err()
}

// Exec runs one command line. It returns false when the user asked to quit.
func (r *REPL) Exec(ctx context.Context, line string) bool {
	args := strings.Fields(line)
	if len(args) == 0 {
		return true
	}

	cmd, args := args[0], args[1:]
	switch cmd {
	case "quit", "exit":
		return false
	case "help":
		fmt.Fprintln(r.out, help)
	case "login":
		if !r.arity(args, 2) {
			break
		}
		r.report(r.backend.AdminLogin(ctx, args[0], args[1]), "Admin login succeeded.")
	case "logout":
		r.report(r.backend.AdminLogout(ctx), "Logged out.")
	case "rooms":
		r.rooms(ctx)
	case "add-room":
		if !r.arity(args, 1) {
			break
		}
		r.report(r.backend.AdminAddRoom(ctx, args[0]), fmt.Sprintf("Room '%s' added.", args[0]))
	case "remove-room":
		if !r.arity(args, 1) {
			break
		}
		r.report(r.backend.AdminRemoveRoom(ctx, args[0]), fmt.Sprintf("Room '%s' removed.", args[0]))
	case "update-room":
		r.updateRoom(ctx, args)
	case "reserve":
		r.reserve(ctx, args)
	case "cancel":
		if !r.arity(args, 1) {
			break
		}
		r.report(r.backend.CancelReservation(ctx, args[0]), "Reservation cancelled.")
	case "day":
		if !r.arity(args, 1) {
			break
		}
		report, err := r.backend.ReservationsByDay(ctx, args[0])
		if err != nil {
			fmt.Fprintln(r.out, Message(err))
			break
		}
		WriteDayReport(r.out, report)
	default:
		fmt.Fprintf(r.out, "Unknown command %q, try help.\n", cmd)
	}

	return true
}

func (r *REPL) arity(args []string, n int) bool {
	if len(args) != n {
		fmt.Fprintf(r.out, "Expected %d argument(s), try help.\n", n)
		return false
	}

	return true
}

func (r *REPL) report(err error, success string) {
	if err != nil {
		fmt.Fprintln(r.out, Message(err))
		return
	}

	fmt.Fprintln(r.out, success)
}

func (r *REPL) rooms(ctx context.Context) {
	rooms, err := r.backend.GetRooms(ctx)
	if err != nil {
		fmt.Fprintln(r.out, Message(err))
		return
	}

	if len(rooms) == 0 {
		fmt.Fprintln(r.out, "No rooms registered.")
		return
	}
	for _, room := range rooms {
		switch {
		case room.Location != "":
			fmt.Fprintf(r.out, "- %s (%s, %d seats)\n", room.Name, room.Location, room.Capacity)
		case room.Capacity > 0:
			fmt.Fprintf(r.out, "- %s (%d seats)\n", room.Name, room.Capacity)
		default:
			fmt.Fprintf(r.out, "- %s\n", room.Name)
		}
	}
}

func (r *REPL) updateRoom(ctx context.Context, args []string) {
	if len(args) < 3 {
		fmt.Fprintln(r.out, "Usage: update-room <name> <new-name> <capacity> [location]")
		return
	}

	capacity, err := strconv.Atoi(args[2])
	if err != nil {
		fmt.Fprintf(r.out, "Invalid capacity %q.\n", args[2])
		return
	}

	room, err := r.backend.AdminUpdateRoom(ctx, args[0], reservations.RoomUpdate{
		Name:     args[1],
		Location: strings.Join(args[3:], " "),
		Capacity: capacity,
	})
	if err != nil {
		fmt.Fprintln(r.out, Message(err))
		return
	}

	fmt.Fprintf(r.out, "Room '%s' updated.\n", room.Name)
}

func (r *REPL) reserve(ctx context.Context, args []string) {
	if len(args) != 4 && len(args) != 6 {
		fmt.Fprintln(r.out, "Usage: reserve <room> <date> <time> <name> [weekly|monthly <count>]")
		return
	}

	req := reservations.ReservationRequest{Place: args[0], Date: args[1], Time: args[2], Name: args[3]}
	repeat, count := reservations.RepeatNone, 1

	if len(args) == 6 {
		var err error
		if repeat, err = reservations.ParseRepeat(args[4]); err != nil {
			fmt.Fprintln(r.out, Message(err))
			return
		}
		if count, err = strconv.Atoi(args[5]); err != nil {
			fmt.Fprintf(r.out, "Invalid count %q.\n", args[5])
			return
		}
	}

	created, err := r.backend.ReserveRepeating(ctx, req, repeat, count)
	if err != nil {
		fmt.Fprintln(r.out, Message(err))
		return
	}

	for _, res := range created {
		fmt.Fprintf(r.out, "Reserved %s %s %s for %s (id %s).\n", res.Place, res.Date, res.Time, res.Name, res.ID)
	}
}
