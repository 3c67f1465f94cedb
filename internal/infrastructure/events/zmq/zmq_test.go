package zmq

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-zeromq/zmq4"
	"gitlab.crja72.ru/gospec/go5/reservations/internal/domain/reservations"
)

func TestPublisherDeliversToSubscriber(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	publisher, err := NewPublisher(ctx, "tcp://127.0.0.1:0")
	if err != nil {
		t.Fatalf("NewPublisher: %v", err)
	}
	defer publisher.Close()

	sub := zmq4.NewSub(ctx)
	defer sub.Close()

	if err := sub.Dial("tcp://" + publisher.Addr().String()); err != nil {
		t.Fatalf("Dial: %v", err)
	}
	if err := sub.SetOption(zmq4.OptionSubscribe, string(reservations.EventRoomAdded)); err != nil {
		t.Fatalf("SetOption: %v", err)
	}

	// a subscription takes a moment to reach the publisher, so keep
	// publishing until the subscriber sees something
	go func() {
		ticker := time.NewTicker(20 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				_ = publisher.Publish(ctx, reservations.Event{Kind: reservations.EventRoomRemoved, Room: "ignored"})
				_ = publisher.Publish(ctx, reservations.Event{Kind: reservations.EventRoomAdded, Room: "A"})
			}
		}
	}()

	msg, err := sub.Recv()
	if err != nil {
		t.Fatalf("Recv: %v", err)
	}
	if len(msg.Frames) != 2 {
		t.Fatalf("frames = %d, want 2", len(msg.Frames))
	}
	if string(msg.Frames[0]) != string(reservations.EventRoomAdded) {
		t.Errorf("topic = %q", msg.Frames[0])
	}

	var event reservations.Event
	if err := json.Unmarshal(msg.Frames[1], &event); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if event.Room != "A" {
		t.Errorf("event = %+v", event)
	}
}
