package redis

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/gomodule/redigo/redis"
	"gitlab.crja72.ru/gospec/go5/reservations/internal/domain/reservations"
)

const maxTxAttempts = 5

var ErrConflict = errors.New("redis: concurrent modification, giving up")

// Repository stores the room list and the reservation list as two JSON
// documents. Writes go through WATCH/MULTI/EXEC so a room and its
// reservations are always replaced together.
type Repository struct {
	pool            *redis.Pool
	roomsKey        string
	reservationsKey string
}

func NewPool(addr string) *redis.Pool {
	return &redis.Pool{
		MaxIdle:     8,
		IdleTimeout: 240 * time.Second,
		Dial: func() (redis.Conn, error) {
			return redis.Dial("tcp", addr)
		},
		TestOnBorrow: func(c redis.Conn, t time.Time) error {
			if time.Since(t) < time.Minute {
				return nil
			}
			_, err := c.Do("PING")
			return err
		},
	}
}

func NewRepository(pool *redis.Pool, prefix string) *Repository {
	return &Repository{
		pool:            pool,
		roomsKey:        prefix + ":rooms",
		reservationsKey: prefix + ":reservations",
	}
}

func (r *Repository) Ping() error {
	conn := r.pool.Get()
	defer conn.Close()

	_, err := conn.Do("PING")
	return err
}

func load[T any](conn redis.Conn, key string) ([]T, error) {
	data, err := redis.Bytes(conn.Do("GET", key))
	if errors.Is(err, redis.ErrNil) {
		return make([]T, 0), nil
	}
	if err != nil {
		return nil, err
	}

	var values []T
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}

	return values, nil
}

type state struct {
	rooms        []reservations.Room
	reservations []reservations.Reservation
}

// update runs fn over the current state and writes the result back in one
// transaction, retrying when another client touched the keys meanwhile.
func (r *Repository) update(fn func(s *state) error) error {
	conn := r.pool.Get()
	defer conn.Close()

	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		if _, err := conn.Do("WATCH", r.roomsKey, r.reservationsKey); err != nil {
			return err
		}

		s, err := r.read(conn)
		if err == nil {
			err = fn(&s)
		}
		if err != nil {
			return unwatch(conn, err)
		}

		roomsData, err := json.Marshal(s.rooms)
		if err != nil {
			return unwatch(conn, err)
		}
		reservationsData, err := json.Marshal(s.reservations)
		if err != nil {
			return unwatch(conn, err)
		}

		// A failed Send leaves the connection broken; the pool discards it.
		err = errors.Join(
			conn.Send("MULTI"),
			conn.Send("SET", r.roomsKey, roomsData),
			conn.Send("SET", r.reservationsKey, reservationsData),
		)
		if err != nil {
			return fmt.Errorf("queue transaction: %w", err)
		}

		_, err = redis.Values(conn.Do("EXEC"))
		if errors.Is(err, redis.ErrNil) {
			continue
		}

		return err
	}

	return ErrConflict
}

// unwatch releases the WATCH after a failed attempt, keeping err first.
func unwatch(conn redis.Conn, err error) error {
	if _, uerr := conn.Do("UNWATCH"); uerr != nil {
		return errors.Join(err, fmt.Errorf("unwatch: %w", uerr))
	}

	return err
}

func (r *Repository) read(conn redis.Conn) (state, error) {
	rooms, err := load[reservations.Room](conn, r.roomsKey)
	if err != nil {
		return state{}, err
	}

	res, err := load[reservations.Reservation](conn, r.reservationsKey)
	if err != nil {
		return state{}, err
	}

	return state{rooms: rooms, reservations: res}, nil
}

func roomIndex(rooms []reservations.Room, name string) int {
	return slices.IndexFunc(rooms, func(room reservations.Room) bool {
		return room.Name == name
	})
}

func (r *Repository) AddRoom(name string) error {
	return r.update(func(s *state) error {
		if roomIndex(s.rooms, name) >= 0 {
			return fmt.Errorf("%w: %s", reservations.ErrRoomExists, name)
		}

		s.rooms = append(s.rooms, reservations.Room{Name: name})
		return nil
	})
}

func (r *Repository) RemoveRoom(name string) (int, error) {
	removed := 0

	err := r.update(func(s *state) error {
		index := roomIndex(s.rooms, name)
		if index < 0 {
			return fmt.Errorf("%w: %s", reservations.ErrRoomNotFound, name)
		}

		s.rooms = slices.Delete(s.rooms, index, index+1)

		before := len(s.reservations)
		s.reservations = slices.DeleteFunc(s.reservations, func(res reservations.Reservation) bool {
			return res.Place == name
		})
		removed = before - len(s.reservations)

		return nil
	})

	return removed, err
}

func (r *Repository) HasRoom(name string) (bool, error) {
	rooms, err := r.GetRooms()
	if err != nil {
		return false, err
	}

	return roomIndex(rooms, name) >= 0, nil
}

func (r *Repository) GetRooms() ([]reservations.Room, error) {
	conn := r.pool.Get()
	defer conn.Close()

	return load[reservations.Room](conn, r.roomsKey)
}

func (r *Repository) UpdateRoom(name string, room reservations.Room) (int, error) {
	moved := 0

	err := r.update(func(s *state) error {
		moved = 0

		index := roomIndex(s.rooms, name)
		if index < 0 {
			return fmt.Errorf("%w: %s", reservations.ErrRoomNotFound, name)
		}
		if room.Name != name && roomIndex(s.rooms, room.Name) >= 0 {
			return fmt.Errorf("%w: %s", reservations.ErrRoomExists, room.Name)
		}

		s.rooms[index] = room
		if room.Name == name {
			return nil
		}

		for i := range s.reservations {
			if s.reservations[i].Place == name {
				s.reservations[i].Place = room.Name
				moved++
			}
		}

		return nil
	})

	return moved, err
}

// AddReservation checks the room and the slot against the state it writes
// back, so a room removed by another client fails the insert.
func (r *Repository) AddReservation(reservation reservations.Reservation) error {
	return r.update(func(s *state) error {
		if roomIndex(s.rooms, reservation.Place) < 0 {
			return fmt.Errorf("%w: %s", reservations.ErrRoomNotFound, reservation.Place)
		}
		if slices.ContainsFunc(s.reservations, reservation.SameSlot) {
			return fmt.Errorf("%w: %s %s %s", reservations.ErrSlotTaken, reservation.Place, reservation.Date, reservation.Time)
		}

		s.reservations = append(s.reservations, reservation)
		return nil
	})
}

func (r *Repository) RemoveReservation(id string) (reservations.Reservation, error) {
	var removed reservations.Reservation

	err := r.update(func(s *state) error {
		index := slices.IndexFunc(s.reservations, func(res reservations.Reservation) bool {
			return res.ID.String() == id
		})
		if index < 0 {
			return fmt.Errorf("%w: %s", reservations.ErrReservationNotFound, id)
		}

		removed = s.reservations[index]
		s.reservations = slices.Delete(s.reservations, index, index+1)

		return nil
	})

	return removed, err
}

func (r *Repository) GetReservations() ([]reservations.Reservation, error) {
	conn := r.pool.Get()
	defer conn.Close()

	return load[reservations.Reservation](conn, r.reservationsKey)
}
