// File: internal/infra/web/server.go
package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"barbershop-bot/internal/bot"
	"barbershop-bot/internal/config"
	"barbershop-bot/internal/domain/ports/adapter"
	"barbershop-bot/internal/usecase"
)

const opsTokenTTL = 30 * time.Minute

// Server is the HTTP edge: the Twilio webhook, health/metrics and the ops
// trigger endpoints the scheduler or an operator can poke by hand.
type Server struct {
	dispatcher *bot.Dispatcher
	sender     adapter.MessageSender
	reminders  *usecase.ReminderUseCase
	bookings   *usecase.BookingUseCase
	twilio     *config.TwilioConfig
	auth       *AuthManager
	log        *zerolog.Logger

	http *http.Server
}

func NewServer(
	cfg *config.Config,
	dispatcher *bot.Dispatcher,
	sender adapter.MessageSender,
	reminders *usecase.ReminderUseCase,
	bookings *usecase.BookingUseCase,
	logger *zerolog.Logger,
) *Server {
	l := logger.With().Str("component", "WebServer").Logger()
	s := &Server{
		dispatcher: dispatcher,
		sender:     sender,
		reminders:  reminders,
		bookings:   bookings,
		twilio:     &cfg.Twilio,
		auth:       NewAuthManager(cfg.Web.OpsSecret, opsTokenTTL),
		log:        &l,
	}
	s.http = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Web.Port),
		Handler:      s.routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/webhook/whatsapp", s.handleWebhook)

	r.Route("/ops", func(r chi.Router) {
		r.Post("/token", s.handleOpsToken)
		r.Group(func(r chi.Router) {
			r.Use(s.opsAuth)
			r.Post("/reminders/day-before", s.handleDayBeforeReminders)
			r.Post("/reminders/hour-before", s.handleHourReminders)
			r.Post("/bookings/auto-complete", s.handleAutoComplete)
		})
	})
	return r
}

// opsAuth requires a valid ops JWT on everything under /ops except the token
// mint itself.
func (s *Server) opsAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := s.auth.ParseFromRequest(r); err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) Start() error {
	s.log.Info().Str("addr", s.http.Addr).Msg("web server listening")
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
