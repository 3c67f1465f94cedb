package memory

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"gitlab.crja72.ru/gospec/go5/reservations/internal/domain/reservations"
)

func reservation(place, date, time, name string) reservations.Reservation {
	return reservations.Reservation{ID: uuid.New(), Place: place, Date: date, Time: time, Name: name}
}

func TestAddRoomRejectsDuplicates(t *testing.T) {
	repo := NewRepository()

	if err := repo.AddRoom("A"); err != nil {
		t.Fatalf("AddRoom: %v", err)
	}
	if err := repo.AddRoom("A"); !errors.Is(err, reservations.ErrRoomExists) {
		t.Fatalf("expected ErrRoomExists, got %v", err)
	}

	rooms, _ := repo.GetRooms()
	if len(rooms) != 1 {
		t.Fatalf("expected 1 room, got %d", len(rooms))
	}
}

func TestRemoveRoomCascadesAndKeepsOrder(t *testing.T) {
	repo := NewRepository()
	for _, name := range []string{"A", "B", "C"} {
		if err := repo.AddRoom(name); err != nil {
			t.Fatal(err)
		}
	}

	b1 := reservation("B", "2024-01-01", "09:00", "bob")
	a1 := reservation("A", "2024-01-01", "10:00", "alice")
	c1 := reservation("C", "2024-01-02", "11:00", "carol")
	a2 := reservation("A", "2024-01-03", "12:00", "alice")
	b2 := reservation("B", "2024-01-04", "13:00", "bob")
	for _, res := range []reservations.Reservation{b1, a1, c1, a2, b2} {
		if err := repo.AddReservation(res); err != nil {
			t.Fatal(err)
		}
	}

	removed, err := repo.RemoveRoom("A")
	if err != nil {
		t.Fatalf("RemoveRoom: %v", err)
	}
	if removed != 2 {
		t.Errorf("expected 2 cascaded reservations, got %d", removed)
	}

	rooms, _ := repo.GetRooms()
	if len(rooms) != 2 || rooms[0].Name != "B" || rooms[1].Name != "C" {
		t.Errorf("unexpected rooms %v", rooms)
	}

	left, _ := repo.GetReservations()
	want := []uuid.UUID{b1.ID, c1.ID, b2.ID}
	if len(left) != len(want) {
		t.Fatalf("expected %d reservations, got %d", len(want), len(left))
	}
	for i, id := range want {
		if left[i].ID != id {
			t.Errorf("reservation %d = %s, want %s", i, left[i].ID, id)
		}
	}
}

func TestRemoveMissingRoom(t *testing.T) {
	repo := NewRepository()

	if _, err := repo.RemoveRoom("Z"); !errors.Is(err, reservations.ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}
}

func TestRemoveReservation(t *testing.T) {
	repo := NewRepository()
	_ = repo.AddRoom("A")
	res := reservation("A", "2024-01-01", "10:00", "alice")
	if err := repo.AddReservation(res); err != nil {
		t.Fatal(err)
	}

	removed, err := repo.RemoveReservation(res.ID.String())
	if err != nil {
		t.Fatalf("RemoveReservation: %v", err)
	}
	if removed.ID != res.ID {
		t.Errorf("removed %s, want %s", removed.ID, res.ID)
	}

	if _, err := repo.RemoveReservation(res.ID.String()); !errors.Is(err, reservations.ErrReservationNotFound) {
		t.Fatalf("expected ErrReservationNotFound, got %v", err)
	}
}

func TestGetRoomsReturnsCopy(t *testing.T) {
	repo := NewRepository()
	_ = repo.AddRoom("A")

	rooms, _ := repo.GetRooms()
	rooms[0].Name = "mutated"

	again, _ := repo.GetRooms()
	if again[0].Name != "A" {
		t.Errorf("repository state leaked through GetRooms")
	}
}

func TestAddReservationChecksRoomAndSlot(t *testing.T) {
	repo := NewRepository()

	if err := repo.AddReservation(reservation("A", "2024-01-01", "10:00", "alice")); !errors.Is(err, reservations.ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}

	_ = repo.AddRoom("A")
	if err := repo.AddReservation(reservation("A", "2024-01-01", "10:00", "alice")); err != nil {
		t.Fatal(err)
	}
	if err := repo.AddReservation(reservation("A", "2024-01-01", "10:00", "bob")); !errors.Is(err, reservations.ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}

	left, _ := repo.GetReservations()
	if len(left) != 1 {
		t.Errorf("expected 1 reservation, got %d", len(left))
	}
}

func TestUpdateRoomRenamesAndMovesReservations(t *testing.T) {
	repo := NewRepository()
	for _, name := range []string{"A", "B", "C"} {
		_ = repo.AddRoom(name)
	}
	a1 := reservation("A", "2024-01-01", "10:00", "alice")
	b1 := reservation("B", "2024-01-01", "10:00", "bob")
	a2 := reservation("A", "2024-01-02", "10:00", "alice")
	for _, res := range []reservations.Reservation{a1, b1, a2} {
		if err := repo.AddReservation(res); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := repo.UpdateRoom("A", reservations.Room{Name: "B"}); !errors.Is(err, reservations.ErrRoomExists) {
		t.Fatalf("expected ErrRoomExists, got %v", err)
	}
	if _, err := repo.UpdateRoom("Z", reservations.Room{Name: "Y"}); !errors.Is(err, reservations.ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}

	moved, err := repo.UpdateRoom("A", reservations.Room{Name: "Atrium", Location: "1st floor", Capacity: 8})
	if err != nil {
		t.Fatalf("UpdateRoom: %v", err)
	}
	if moved != 2 {
		t.Errorf("expected 2 moved reservations, got %d", moved)
	}

	rooms, _ := repo.GetRooms()
	if rooms[0] != (reservations.Room{Name: "Atrium", Location: "1st floor", Capacity: 8}) {
		t.Errorf("renamed room lost its position or attributes: %v", rooms)
	}

	left, _ := repo.GetReservations()
	for i, want := range []string{"Atrium", "B", "Atrium"} {
		if left[i].Place != want {
			t.Errorf("reservation %d place = %s, want %s", i, left[i].Place, want)
		}
	}

	if moved, err := repo.UpdateRoom("Atrium", reservations.Room{Name: "Atrium", Capacity: 10}); err != nil || moved != 0 {
		t.Errorf("attribute-only update: moved=%d err=%v", moved, err)
	}
}
