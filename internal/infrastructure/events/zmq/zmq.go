package zmq

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/go-zeromq/zmq4"
	"gitlab.crja72.ru/gospec/go5/reservations/internal/domain/reservations"
)

// Publisher broadcasts events on a ZeroMQ PUB socket as two-frame messages:
// the event kind (usable as a subscription prefix) and the JSON body.
type Publisher struct {
	mu     sync.Mutex
	socket zmq4.Socket
}

func NewPublisher(ctx context.Context, endpoint string) (*Publisher, error) {
	socket := zmq4.NewPub(ctx, zmq4.WithTimeout(time.Second))

	if err := socket.Listen(endpoint); err != nil {
		socket.Close()
		return nil, fmt.Errorf("failed to bind event socket: %w", err)
	}

	return &Publisher{socket: socket}, nil
}

func (p *Publisher) Addr() net.Addr {
	return p.socket.Addr()
}

func (p *Publisher) Publish(_ context.Context, event reservations.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	return p.socket.Send(zmq4.NewMsgFrom([]byte(event.Kind), body))
}

func (p *Publisher) Close() error {
	return p.socket.Close()
}
