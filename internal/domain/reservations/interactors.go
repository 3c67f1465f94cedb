package reservations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gitlab.crja72.ru/gospec/go5/reservations/pkg/logger"
	"go.uber.org/zap"
)

const defaultEventTimeout = 500 * time.Millisecond

type Interactor struct {
	logger     logger.Logger
	repository Repository

	// mu guards the session, the pending events and every repository call,
	// so a room removal and its cascade are never observed half done.
	mu      sync.Mutex
	session session
	pending []Event

	eventsChannel chan<- Event
	eventTimeout  time.Duration
	now           func() time.Time
}

type Option func(*Interactor)

func WithCredentials(credentials Credentials) Option {
	return func(i *Interactor) {
		i.session = newSession(credentials)
	}
}

// WithEvents makes the interactor emit an Event for every successful
// mutation. A send that is not picked up within timeout is dropped.
func WithEvents(events chan<- Event, timeout time.Duration) Option {
	return func(i *Interactor) {
		i.eventsChannel = events
		i.eventTimeout = timeout
	}
}

func WithClock(now func() time.Time) Option {
	return func(i *Interactor) {
		i.now = now
	}
}

func NewInteractor(logger logger.Logger, repository Repository, options ...Option) *Interactor {
	i := &Interactor{
		logger:       logger,
		repository:   repository,
		session:      newSession(DefaultCredentials()),
		eventTimeout: defaultEventTimeout,
		now:          time.Now,
	}

	for _, applyOption := range options {
		applyOption(i)
	}

	return i
}

func (i *Interactor) AdminLogin(ctx context.Context, id, password string) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if !i.session.login(id, password) {
		i.logger.Warn(ctx, "admin login failed", zap.String("admin_id", id))
		return ErrAuthFailed
	}

	i.logger.Info(ctx, "admin login succeeded", zap.String("admin_id", id))
	return nil
}

func (i *Interactor) AdminLogout(ctx context.Context) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.session.logout()
	i.logger.Info(ctx, "admin logged out")
}

func (i *Interactor) IsAdmin(ctx context.Context) bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	return i.session.admin
}

func (i *Interactor) AdminAddRoom(ctx context.Context, name string) error {
	defer i.flush(ctx)
	i.mu.Lock()
	defer i.mu.Unlock()

	if !i.session.admin {
		i.logger.Warn(ctx, "room add denied: not an admin", zap.String("room", name))
		return ErrPermissionDenied
	}

	return i.addRoom(ctx, name)
}

func (i *Interactor) AdminRemoveRoom(ctx context.Context, name string) error {
	defer i.flush(ctx)
	i.mu.Lock()
	defer i.mu.Unlock()

	if !i.session.admin {
		i.logger.Warn(ctx, "room removal denied: not an admin", zap.String("room", name))
		return ErrPermissionDenied
	}

	name = strings.TrimSpace(name)
	exists, err := i.repository.HasRoom(name)
	if err != nil {
		return err
	}
	if !exists {
		i.logger.Info(ctx, "room removal skipped: no such room", zap.String("room", name))
		return fmt.Errorf("%w: %s", ErrRoomNotFound, name)
	}

	cascaded, err := i.repository.RemoveRoom(name)
	if err != nil {
		return err
	}

	i.logger.Info(ctx, "room removed", zap.String("room", name), zap.Int("reservations_removed", cascaded))
	i.emit(Event{Kind: EventRoomRemoved, Room: name, Cascaded: cascaded})

	return nil
}

// AdminUpdateRoom replaces the attributes of room name. Renaming onto another
// existing room fails with ErrRoomExists.
func (i *Interactor) AdminUpdateRoom(ctx context.Context, name string, update RoomUpdate) (Room, error) {
	defer i.flush(ctx)
	i.mu.Lock()
	defer i.mu.Unlock()

	if !i.session.admin {
		i.logger.Warn(ctx, "room update denied: not an admin", zap.String("room", name))
		return Room{}, ErrPermissionDenied
	}

	name = strings.TrimSpace(name)
	room := Room{
		Name:     strings.TrimSpace(update.Name),
		Location: strings.TrimSpace(update.Location),
		Capacity: update.Capacity,
	}
	if room.Name == "" {
		room.Name = name
	}
	if room.Capacity < 0 {
		return Room{}, fmt.Errorf("%w: capacity must not be negative", ErrInvalidArgument)
	}

	moved, err := i.repository.UpdateRoom(name, room)
	if err != nil {
		return Room{}, err
	}

	i.logger.Info(ctx, "room updated",
		zap.String("room", name),
		zap.String("new_name", room.Name),
		zap.Int("reservations_moved", moved),
	)

	event := Event{Kind: EventRoomUpdated, Room: room.Name, Cascaded: moved}
	if room.Name != name {
		event.PreviousRoom = name
	}
	i.emit(event)

	return room, nil
}

// AddRoom registers a room without checking the admin session. It backs
// AdminAddRoom and is used for seeding.
func (i *Interactor) AddRoom(ctx context.Context, name string) error {
	defer i.flush(ctx)
	i.mu.Lock()
	defer i.mu.Unlock()

	return i.addRoom(ctx, name)
}

func (i *Interactor) addRoom(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: room name is empty", ErrInvalidArgument)
	}

	if err := i.repository.AddRoom(name); err != nil {
		return err
	}

	i.logger.Info(ctx, "room added", zap.String("room", name))
	i.emit(Event{Kind: EventRoomAdded, Room: name})

	return nil
}

func (i *Interactor) GetRooms(ctx context.Context) ([]Room, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	return i.repository.GetRooms()
}

func (i *Interactor) GetReservations(ctx context.Context) ([]Reservation, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	return i.repository.GetReservations()
}

func (i *Interactor) Reserve(ctx context.Context, req ReservationRequest) (Reservation, error) {
	defer i.flush(ctx)
	i.mu.Lock()
	defer i.mu.Unlock()

	if _, err := validateRequest(req); err != nil {
		return Reservation{}, err
	}

	return i.reserve(ctx, req)
}

// ReserveRepeating books count occurrences of req following repeat.
// Occurrences colliding with an existing reservation are skipped; the call
// fails with ErrSlotTaken only when none could be booked.
func (i *Interactor) ReserveRepeating(ctx context.Context, req ReservationRequest, repeat Repeat, count int) ([]Reservation, error) {
	defer i.flush(ctx)
	i.mu.Lock()
	defer i.mu.Unlock()

	start, err := validateRequest(req)
	if err != nil {
		return nil, err
	}
	if repeat == RepeatNone || repeat == "" {
		count = 1
	}
	if count < 1 {
		return nil, fmt.Errorf("%w: repeat count must be positive", ErrInvalidArgument)
	}

	created := make([]Reservation, 0, count)
	var taken error
	for _, date := range repeat.occurrences(start, count) {
		occurrence := req
		occurrence.Date = date

		reservation, err := i.reserve(ctx, occurrence)
		if errors.Is(err, ErrSlotTaken) {
			i.logger.Info(ctx, "occurrence skipped: slot taken", zap.String("room", req.Place), zap.String("date", date))
			taken = err
			continue
		}
		if err != nil {
			return created, err
		}

		created = append(created, reservation)
	}

	if len(created) == 0 && taken != nil {
		return nil, taken
	}

	return created, nil
}

func (i *Interactor) reserve(ctx context.Context, req ReservationRequest) (Reservation, error) {
	exists, err := i.repository.HasRoom(req.Place)
	if err != nil {
		return Reservation{}, err
	}
	if !exists {
		return Reservation{}, fmt.Errorf("%w: %s", ErrRoomNotFound, req.Place)
	}

	reservation := Reservation{
		ID:        uuid.New(),
		Place:     req.Place,
		Date:      req.Date,
		Time:      req.Time,
		Name:      req.Name,
		CreatedAt: i.now(),
	}

	if err := i.repository.AddReservation(reservation); err != nil {
		return Reservation{}, err
	}

	i.logger.Info(ctx, "reservation created",
		zap.String("id", reservation.ID.String()),
		zap.String("room", reservation.Place),
		zap.String("date", reservation.Date),
		zap.String("time", reservation.Time),
	)
	i.emit(Event{Kind: EventReservationCreated, Room: reservation.Place, Reservation: &reservation})

	return reservation, nil
}

func (i *Interactor) CancelReservation(ctx context.Context, id string) error {
	defer i.flush(ctx)
	i.mu.Lock()
	defer i.mu.Unlock()

	removed, err := i.repository.RemoveReservation(id)
	if err != nil {
		return err
	}

	i.logger.Info(ctx, "reservation cancelled", zap.String("id", id), zap.String("room", removed.Place))
	i.emit(Event{Kind: EventReservationCancelled, Room: removed.Place, Reservation: &removed})

	return nil
}

// ReservationsByDay reports, per registered room and in registration order,
// the reservations made for date.
func (i *Interactor) ReservationsByDay(ctx context.Context, date string) (DayReport, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	rooms, err := i.repository.GetRooms()
	if err != nil {
		return DayReport{}, err
	}

	reservations, err := i.repository.GetReservations()
	if err != nil {
		return DayReport{}, err
	}

	report := buildDayReport(date, rooms, reservations)
	i.logger.Debug(ctx, "day report built", zap.String("date", date), zap.String("outcome", string(report.Outcome)))

	return report, nil
}

// emit queues an event; the caller must hold mu.
func (i *Interactor) emit(event Event) {
	if i.eventsChannel == nil {
		return
	}

	event.At = i.now()
	i.pending = append(i.pending, event)
}

// flush sends queued events to the coordinator. Mutating methods defer it
// ahead of their unlock, so it runs after mu is released.
func (i *Interactor) flush(ctx context.Context) {
	if i.eventsChannel == nil {
		return
	}

	i.mu.Lock()
	events := i.pending
	i.pending = nil
	i.mu.Unlock()

	for _, event := range events {
		select {
		case i.eventsChannel <- event:
		case <-time.After(i.eventTimeout):
			i.logger.Warn(ctx, "event dropped: coordinator is not receiving", zap.String("kind", string(event.Kind)))
		}
	}
}

func validateRequest(req ReservationRequest) (time.Time, error) {
	if strings.TrimSpace(req.Place) == "" {
		return time.Time{}, fmt.Errorf("%w: place is empty", ErrInvalidArgument)
	}
	if strings.TrimSpace(req.Time) == "" {
		return time.Time{}, fmt.Errorf("%w: time is empty", ErrInvalidArgument)
	}
	if strings.TrimSpace(req.Name) == "" {
		return time.Time{}, fmt.Errorf("%w: name is empty", ErrInvalidArgument)
	}

	date, err := time.Parse(DateLayout, req.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrInvalidArgument, req.Date)
	}

	return date, nil
}
