package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gitlab.crja72.ru/gospec/go5/reservations/internal/config"
	"gitlab.crja72.ru/gospec/go5/reservations/internal/domain/reservations"
	"gitlab.crja72.ru/gospec/go5/reservations/internal/infrastructure/events"
	"gitlab.crja72.ru/gospec/go5/reservations/internal/infrastructure/events/zmq"
	"gitlab.crja72.ru/gospec/go5/reservations/internal/infrastructure/reservations/repositories/memory"
	"gitlab.crja72.ru/gospec/go5/reservations/internal/infrastructure/reservations/repositories/redis"
	transport "gitlab.crja72.ru/gospec/go5/reservations/internal/transport/grpc"
	"gitlab.crja72.ru/gospec/go5/reservations/internal/transport/rest"
	"gitlab.crja72.ru/gospec/go5/reservations/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	serviceName = "reservations"
)

func main() {
	flag.Usage = func() {
		flag.PrintDefaults()
		config.Usage()
	}
	flag.Parse()

	cfg, err := config.New()
	if err != nil {
		logger.New(zap.InfoLevel, serviceName).Fatal(context.Background(), err.Error())
		return
	}

	mainLogger := logger.New(logger.ParseLevel(cfg.LogLevel), serviceName)
	ctx := context.WithValue(context.Background(), logger.LoggerKey, mainLogger)
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	repository, err := newRepository(cfg)
	if err != nil {
		mainLogger.Fatal(ctx, err.Error())
		return
	}

	publisher, err := newPublisher(ctx, mainLogger, cfg)
	if err != nil {
		mainLogger.Fatal(ctx, err.Error())
		return
	}
	coordinator := events.NewCoordinator(mainLogger, publisher, 64)

	interactor := reservations.NewInteractor(mainLogger, repository,
		reservations.WithCredentials(reservations.Credentials{ID: cfg.AdminID, Password: cfg.AdminPassword}),
		reservations.WithEvents(coordinator.Events(), time.Duration(cfg.EventsSendTimeoutMs)*time.Millisecond),
	)

	for _, room := range cfg.SeedRooms {
		if err := interactor.AddRoom(ctx, room); err != nil && !errors.Is(err, reservations.ErrRoomExists) {
			mainLogger.Fatal(ctx, err.Error())
			return
		}
	}

	grpcServer, err := transport.NewServer(ctx, mainLogger, interactor, cfg.GRPCServerHost, cfg.GRPCServerPort)
	if err != nil {
		mainLogger.Fatal(ctx, err.Error())
		return
	}
	restServer := rest.NewServer(mainLogger, interactor, cfg.RESTServerHost, cfg.RESTServerPort)

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		return coordinator.Run(egCtx)
	})

	eg.Go(func() error {
		mainLogger.Info(ctx, "gRPC server started", zap.Int("port", cfg.GRPCServerPort))
		return grpcServer.Start(egCtx)
	})

	eg.Go(func() error {
		mainLogger.Info(ctx, "REST server started", zap.Int("port", cfg.RESTServerPort))
		return restServer.Start(egCtx)
	})

	eg.Go(func() error {
		<-egCtx.Done()

		mainLogger.Info(ctx, "Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := restServer.Stop(shutdownCtx); err != nil {
			mainLogger.Error(ctx, err.Error())
		}

		return grpcServer.Stop(shutdownCtx)
	})

	if err := eg.Wait(); err != nil {
		mainLogger.Error(ctx, err.Error())
		os.Exit(1)
	}

	mainLogger.Info(ctx, "Successfully shut down")
}

func newRepository(cfg *config.Config) (reservations.Repository, error) {
	if cfg.Storage != "redis" {
		return memory.NewRepository(), nil
	}

	repository := redis.NewRepository(redis.NewPool(cfg.RedisAddr), cfg.RedisKeyPrefix)
	if err := repository.Ping(); err != nil {
		return nil, err
	}

	return repository, nil
}

func newPublisher(ctx context.Context, l logger.Logger, cfg *config.Config) (events.Publisher, error) {
	if cfg.EventsEndpoint == "" {
		return events.NewLogPublisher(l), nil
	}

	publisher, err := zmq.NewPublisher(ctx, cfg.EventsEndpoint)
	if err != nil {
		return nil, err
	}

	l.Info(ctx, "Publishing events", zap.String("endpoint", cfg.EventsEndpoint))
	return publisher, nil
}
