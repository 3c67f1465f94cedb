package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gitlab.crja72.ru/gospec/go5/reservations/internal/config"
	"gitlab.crja72.ru/gospec/go5/reservations/internal/domain/reservations"
	"gitlab.crja72.ru/gospec/go5/reservations/internal/infrastructure/reservations/repositories/memory"
	"gitlab.crja72.ru/gospec/go5/reservations/internal/presentation/console"
	transport "gitlab.crja72.ru/gospec/go5/reservations/internal/transport/grpc"
	"gitlab.crja72.ru/gospec/go5/reservations/pkg/logger"
)

var _ console.Backend = (*transport.Client)(nil)

func main() {
	addr := flag.String("addr", "", "gRPC address of a running server; empty runs in-process")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, closeFn, err := newBackend(ctx, *addr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeFn()

	if err := console.NewREPL(backend, os.Stdout).Run(ctx, os.Stdin); err != nil && ctx.Err() == nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newBackend(ctx context.Context, addr string) (console.Backend, func(), error) {
	if addr != "" {
		conn, err := transport.Dial(addr)
		if err != nil {
			return nil, nil, err
		}

		return transport.NewClient(conn), func() { conn.Close() }, nil
	}

	cfg, err := config.New()
	if err != nil {
		return nil, nil, err
	}

	interactor := reservations.NewInteractor(logger.NewNop(), memory.NewRepository(),
		reservations.WithCredentials(reservations.Credentials{ID: cfg.AdminID, Password: cfg.AdminPassword}),
	)
	for _, room := range cfg.SeedRooms {
		if err := interactor.AddRoom(ctx, room); err != nil {
			return nil, nil, err
		}
	}

	return console.Local(interactor), func() {}, nil
}
