package grpc

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/google/uuid"
	"gitlab.crja72.ru/gospec/go5/reservations/internal/domain/reservations"
	"gitlab.crja72.ru/gospec/go5/reservations/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const requestIDHeader = "x-request-id"

type Server struct {
	grpcServer *grpc.Server
	listener   net.Listener
}

func NewServer(ctx context.Context, logger logger.Logger, interactor *reservations.Interactor, host string, port int) (*Server, error) {
	lis, err := net.Listen("tcp", fmt.Sprintf("%s:%d", host, port))
	if err != nil {
		return nil, err
	}

	return NewServerWithListener(logger, interactor, lis), nil
}

// NewServerWithListener serves on an existing listener, e.g. a bufconn in tests.
func NewServerWithListener(logger logger.Logger, interactor *reservations.Interactor, lis net.Listener) *Server {
	return newServer(logger, NewReservationsService(interactor), lis)
}

func newServer(logger logger.Logger, service ReservationsServiceServer, lis net.Listener) *Server {
	opts := []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(RequestIDInterceptor(logger)),
	}

	grpcServer := grpc.NewServer(opts...)
	RegisterReservationsServiceServer(grpcServer, service)

	return &Server{grpcServer, lis}
}

func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

func (s *Server) Start(ctx context.Context) error {
	eg := errgroup.Group{}

	eg.Go(func() error {
		return s.grpcServer.Serve(s.listener)
	})

	return eg.Wait()
}

func (s *Server) Stop(ctx context.Context) error {
	s.grpcServer.GracefulStop()

	return nil
}

// RequestIDInterceptor tags the call context with the caller's x-request-id,
// or a fresh one, and logs every call.
func RequestIDInterceptor(l logger.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		requestID := ""
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if values := md.Get(requestIDHeader); len(values) > 0 {
				requestID = values[0]
			}
		}
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx = logger.WithRequestID(ctx, requestID)
		ctx = context.WithValue(ctx, logger.LoggerKey, l)

		start := time.Now()
		resp, err := handler(ctx, req)

		l.Debug(ctx, "grpc call",
			zap.String("method", info.FullMethod),
			zap.String("code", status.Code(err).String()),
			zap.Duration("took", time.Since(start)),
		)

		return resp, err
	}
}
