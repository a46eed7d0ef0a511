package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/zoints/staking-ledger/internal/config"
	"github.com/zoints/staking-ledger/internal/db"
)

// QueueHealth reports whether the broker connection is usable.
type QueueHealth interface {
	Ping() error
}

type Server struct {
	db     db.DbInterface
	queue  QueueHealth
	now    func() time.Time
	server *http.Server
}

func New(cfg *config.ServerConfig, db db.DbInterface, queue QueueHealth) *Server {
	s := &Server{
		db:    db,
		queue: queue,
		now:   time.Now,
	}
	s.server = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.Handler(),
		WriteTimeout: cfg.WriteTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return s
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	r.Get("/healthcheck", s.healthCheck)
	r.Route("/v1", func(v1 chi.Router) {
		v1.Get("/pool", s.getPool)
		v1.Get("/endpoints/{id}", s.getEndpoint)
		v1.Get("/positions/{endpoint}/{staker}", s.getPosition)
		v1.Get("/beneficiaries/{authority}", s.getBeneficiary)
	})
	return r
}

// Start serves until ctx is done and then shuts the server down.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.server.Addr).Msg("starting api server")
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}
