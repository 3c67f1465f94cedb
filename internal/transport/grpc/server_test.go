package grpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"gitlab.crja72.ru/gospec/go5/reservations/internal/domain/reservations"
	"gitlab.crja72.ru/gospec/go5/reservations/internal/infrastructure/reservations/repositories/memory"
	"gitlab.crja72.ru/gospec/go5/reservations/pkg/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

const bufSize = 1024 * 1024

func newTestClient(t *testing.T) *Client {
	t.Helper()

	interactor := reservations.NewInteractor(logger.NewNop(), memory.NewRepository())
	return newTestClientFor(t, NewReservationsService(interactor))
}

func newTestClientFor(t *testing.T, service ReservationsServiceServer) *Client {
	t.Helper()

	lis := bufconn.Listen(bufSize)
	server := newServer(logger.NewNop(), service, lis)

	go func() {
		_ = server.Start(context.Background())
	}()
	t.Cleanup(func() { _ = server.Stop(context.Background()) })

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) {
			return lis.Dial()
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("Failed to dial bufnet: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return NewClient(conn)
}

func TestAdminFlowOverGrpc(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	if err := client.AdminAddRoom(ctx, "A"); !errors.Is(err, reservations.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}

	if err := client.AdminLogin(ctx, "admin", "nope"); !errors.Is(err, reservations.ErrAuthFailed) {
		t.Fatalf("expected ErrAuthFailed, got %v", err)
	}

	if err := client.AdminLogin(ctx, "admin", "1234"); err != nil {
		t.Fatalf("AdminLogin: %v", err)
	}
	for _, name := range []string{"A", "B"} {
		if err := client.AdminAddRoom(ctx, name); err != nil {
			t.Fatalf("AdminAddRoom(%s): %v", name, err)
		}
	}
	if err := client.AdminAddRoom(ctx, "A"); !errors.Is(err, reservations.ErrRoomExists) {
		t.Fatalf("expected ErrRoomExists, got %v", err)
	}

	req := reservations.ReservationRequest{Place: "A", Date: "2024-01-01", Time: "t1", Name: "n1"}
	if _, err := client.ReserveRepeating(ctx, req, reservations.RepeatNone, 1); err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	req = reservations.ReservationRequest{Place: "B", Date: "2024-01-01", Time: "t2", Name: "n2"}
	if _, err := client.ReserveRepeating(ctx, req, reservations.RepeatNone, 1); err != nil {
		t.Fatalf("Reserve: %v", err)
	}

	if err := client.AdminRemoveRoom(ctx, "A"); err != nil {
		t.Fatalf("AdminRemoveRoom: %v", err)
	}
	if err := client.AdminRemoveRoom(ctx, "Z"); !errors.Is(err, reservations.ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}

	rooms, err := client.GetRooms(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(rooms) != 1 || rooms[0].Name != "B" {
		t.Errorf("rooms = %v", rooms)
	}

	left, err := client.GetReservations(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(left) != 1 || left[0].Place != "B" || left[0].Name != "n2" {
		t.Errorf("reservations = %v", left)
	}

	if err := client.AdminLogout(ctx); err != nil {
		t.Fatal(err)
	}
	if err := client.AdminRemoveRoom(ctx, "B"); !errors.Is(err, reservations.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied after logout, got %v", err)
	}
}

func TestReservationsByDayOverGrpc(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	report, err := client.ReservationsByDay(ctx, "2024-01-01")
	if err != nil {
		t.Fatal(err)
	}
	if report.Outcome != reservations.OutcomeNoRooms {
		t.Errorf("outcome = %s", report.Outcome)
	}

	_ = client.AdminLogin(ctx, "admin", "1234")
	_ = client.AdminAddRoom(ctx, "A")
	_ = client.AdminAddRoom(ctx, "B")

	req := reservations.ReservationRequest{Place: "A", Date: "2024-01-01", Time: "10:00", Name: "alice"}
	created, err := client.ReserveRepeating(ctx, req, reservations.RepeatWeekly, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(created) != 2 {
		t.Fatalf("created = %v", created)
	}

	report, err = client.ReservationsByDay(ctx, "2024-01-01")
	if err != nil {
		t.Fatal(err)
	}
	if report.Outcome != reservations.OutcomeListed || len(report.Rooms) != 2 {
		t.Fatalf("report = %+v", report)
	}
	if e := report.Rooms[0].Entries; len(e) != 1 || e[0].Time != "10:00" || e[0].Name != "alice" {
		t.Errorf("room A entries = %+v", e)
	}
	if len(report.Rooms[1].Entries) != 0 {
		t.Errorf("room B entries = %+v", report.Rooms[1].Entries)
	}

	if err := client.CancelReservation(ctx, created[1].ID.String()); err != nil {
		t.Fatal(err)
	}
	if err := client.CancelReservation(ctx, created[1].ID.String()); !errors.Is(err, reservations.ErrReservationNotFound) {
		t.Fatalf("expected ErrReservationNotFound, got %v", err)
	}
}

func TestInvalidArgumentStatus(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	req := reservations.ReservationRequest{Place: "A", Date: "2024-01-01", Time: "10:00", Name: "a"}
	_, err := client.ReserveRepeating(ctx, req, reservations.Repeat("daily"), 2)
	if !errors.Is(err, reservations.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestToStatusCodes(t *testing.T) {
	cases := map[error]codes.Code{
		reservations.ErrAuthFailed:       codes.Unauthenticated,
		reservations.ErrPermissionDenied: codes.PermissionDenied,
		reservations.ErrSlotTaken:        codes.AlreadyExists,
		errors.New("boom"):               codes.Internal,
	}

	for err, want := range cases {
		if got := status.Code(toStatus(err)); got != want {
			t.Errorf("toStatus(%v) = %s, want %s", err, got, want)
		}
	}

	if toStatus(nil) != nil {
		t.Error("toStatus(nil) must be nil")
	}
}

func TestAdminUpdateRoomOverGrpc(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	if _, err := client.AdminUpdateRoom(ctx, "A", reservations.RoomUpdate{Name: "B"}); !errors.Is(err, reservations.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}

	_ = client.AdminLogin(ctx, "admin", "1234")
	_ = client.AdminAddRoom(ctx, "A")
	_ = client.AdminAddRoom(ctx, "B")
	req := reservations.ReservationRequest{Place: "A", Date: "2024-01-01", Time: "10:00", Name: "alice"}
	if _, err := client.ReserveRepeating(ctx, req, reservations.RepeatNone, 1); err != nil {
		t.Fatal(err)
	}

	if _, err := client.AdminUpdateRoom(ctx, "A", reservations.RoomUpdate{Name: "B"}); !errors.Is(err, reservations.ErrRoomExists) {
		t.Fatalf("expected ErrRoomExists, got %v", err)
	}

	room, err := client.AdminUpdateRoom(ctx, "A", reservations.RoomUpdate{Name: "Atrium", Location: "lobby", Capacity: 10})
	if err != nil {
		t.Fatalf("AdminUpdateRoom: %v", err)
	}
	if room != (reservations.Room{Name: "Atrium", Location: "lobby", Capacity: 10}) {
		t.Errorf("room = %+v", room)
	}

	list, err := client.GetReservations(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Place != "Atrium" {
		t.Errorf("reservations = %v", list)
	}
}

// failingService answers AdminAddRoom with the sentinel named by the room.
type failingService struct {
	ReservationsServiceServer
	sentinels map[string]error
}

func (s *failingService) AdminAddRoom(_ context.Context, req *RoomRequest) (*Empty, error) {
	return nil, toStatus(fmt.Errorf("%w: %s", s.sentinels[req.Name], req.Name))
}

func TestSentinelsSurviveTheWire(t *testing.T) {
	ctx := context.Background()
	sentinels := map[string]error{
		"auth":        reservations.ErrAuthFailed,
		"permission":  reservations.ErrPermissionDenied,
		"room":        reservations.ErrRoomNotFound,
		"reservation": reservations.ErrReservationNotFound,
		"exists":      reservations.ErrRoomExists,
		"slot":        reservations.ErrSlotTaken,
		"invalid":     reservations.ErrInvalidArgument,
	}
	client := newTestClientFor(t, &failingService{sentinels: sentinels})

	for name, want := range sentinels {
		t.Run(name, func(t *testing.T) {
			err := client.AdminAddRoom(ctx, name)
			if !errors.Is(err, want) {
				t.Fatalf("got %v, want %v", err, want)
			}

			for _, other := range sentinels {
				if other != want && errors.Is(err, other) {
					t.Errorf("%v also matches %v", err, other)
				}
			}
		})
	}
}
