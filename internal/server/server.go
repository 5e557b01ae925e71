// Package server exposes the wizard service, assessments and calculators over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/scott198989/securepoint-sub000/internal/calculation"
	"github.com/scott198989/securepoint-sub000/internal/logging"
	"github.com/scott198989/securepoint-sub000/internal/rates"
	"github.com/scott198989/securepoint-sub000/internal/wizard"
)

const shutdownTimeout = 10 * time.Second

// Config holds server configuration
type Config struct {
	Addr    string
	Service *wizard.Service
	Tables  *rates.Tables // nil means the built-in tables
	Logger  logging.Logger
}

// Server is the milpay HTTP API
type Server struct {
	addr    string
	service *wizard.Service
	taxes   *calculation.TaxEstimator
	logger  logging.Logger
	router  chi.Router
}

// New assembles the router
func New(cfg Config) *Server {
	s := &Server{
		addr:    cfg.Addr,
		service: cfg.Service,
		taxes:   calculation.NewTaxEstimatorWithTables(cfg.Tables),
		logger:  logging.OrNop(cfg.Logger),
	}
	s.router = s.routes()
	return s
}

// Handler returns the root handler
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.recoverer)
	r.Use(s.observe)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Get("/wizards", s.handleListWizards)
		r.Get("/wizards/{configID}", s.handleGetWizard)
		r.Post("/wizards/{configID}/sessions", s.handleStartSession)

		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Delete("/", s.handleAbandonSession)
			r.Put("/answers/{questionID}", s.handleSetAnswer)
			r.Post("/next", s.handleNext)
			r.Post("/previous", s.handlePrevious)
			r.Post("/steps/{index}", s.handleGoToStep)
			r.Post("/complete", s.handleComplete)
		})

		r.Get("/results/{id}", s.handleGetResult)
		r.Post("/assessments", s.handleAssess)

		r.Route("/calculators", func(r chi.Router) {
			r.Post("/va-rating", s.handleVARating)
			r.Post("/va-compensation", s.handleVACompensation)
			r.Post("/retirement", s.handleRetirement)
			r.Post("/concurrent-receipt", s.handleConcurrentReceipt)
			r.Post("/separation-pay", s.handleSeparationPay)
			r.Post("/leave-sellback", s.handleLeaveSellback)
			r.Post("/taxes", s.handleTaxes)
			r.Post("/pay-estimate", s.handlePayEstimate)
			r.Post("/transition", s.handleTransition)
		})
	})
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof("listening on %s", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Infof("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
