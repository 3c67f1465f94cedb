package events

import (
	"context"

	"gitlab.crja72.ru/gospec/go5/reservations/internal/domain/reservations"
	"gitlab.crja72.ru/gospec/go5/reservations/pkg/logger"
	"go.uber.org/zap"
)

type Publisher interface {
	Publish(ctx context.Context, event reservations.Event) error
	Close() error
}

// Coordinator drains the interactor's event channel into a Publisher.
type Coordinator struct {
	logger    logger.Logger
	events    chan reservations.Event
	publisher Publisher
}

func NewCoordinator(logger logger.Logger, publisher Publisher, buffer int) *Coordinator {
	return &Coordinator{
		logger:    logger,
		events:    make(chan reservations.Event, buffer),
		publisher: publisher,
	}
}

// Events is the channel handed to reservations.WithEvents.
func (c *Coordinator) Events() chan<- reservations.Event {
	return c.events
}

// Run publishes events until ctx is done. Publish failures are logged and
// the event is dropped.
func (c *Coordinator) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return c.publisher.Close()
		case event := <-c.events:
			if err := c.publisher.Publish(ctx, event); err != nil {
				c.logger.Error(ctx, "failed to publish event", zap.String("kind", string(event.Kind)), zap.Error(err))
			}
		}
	}
}

// LogPublisher writes events to the service log. It is used when no broker
// endpoint is configured.
type LogPublisher struct {
	logger logger.Logger
}

func NewLogPublisher(logger logger.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, event reservations.Event) error {
	fields := []zap.Field{
		zap.String("kind", string(event.Kind)),
		zap.String("room", event.Room),
		zap.Time("at", event.At),
	}
	if event.Reservation != nil {
		fields = append(fields, zap.String("reservation", event.Reservation.ID.String()))
	}
	if event.PreviousRoom != "" {
		fields = append(fields, zap.String("previous_room", event.PreviousRoom))
	}
	if event.Kind == reservations.EventRoomRemoved || event.Kind == reservations.EventRoomUpdated {
		fields = append(fields, zap.Int("cascaded", event.Cascaded))
	}

	p.logger.Info(ctx, "event", fields...)
	return nil
}

func (p *LogPublisher) Close() error { return nil }
