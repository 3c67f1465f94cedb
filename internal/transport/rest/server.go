package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/cors"
	"gitlab.crja72.ru/gospec/go5/reservations/internal/domain/reservations"
	"gitlab.crja72.ru/gospec/go5/reservations/pkg/logger"
)

type Server struct {
	httpServer *http.Server
}

func NewServer(l logger.Logger, interactor *reservations.Interactor, host string, port int) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:    fmt.Sprintf("%s:%d", host, port),
			Handler: NewHandler(l, interactor),
		},
	}
}

// NewHandler is the router wrapped in the CORS policy.
func NewHandler(l logger.Logger, interactor *reservations.Interactor) http.Handler {
	return cors.New(cors.Options{
		AllowOriginFunc:  func(origin string) bool { return true },
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"ACCEPT", "Authorization", "Content-Type", "X-CSRF-Token", requestIDHeader},
		ExposedHeaders:   []string{"Link", requestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler(NewRouter(l, interactor))
}

func (s *Server) Start(ctx context.Context) error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
