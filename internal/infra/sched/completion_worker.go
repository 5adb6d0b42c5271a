// File: internal/infra/sched/completion_worker.go
package sched

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"barbershop-bot/internal/usecase"
)

// CompletionWorker periodically promotes past CONFIRMED bookings to
// COMPLETED via the booking ledger.
type CompletionWorker struct {
	interval time.Duration
	bookings *usecase.BookingUseCase
	log      *zerolog.Logger
}

func NewCompletionWorker(interval time.Duration, bookings *usecase.BookingUseCase, logger *zerolog.Logger) *CompletionWorker {
	compLog := logger.With().Str("component", "CompletionWorker").Logger()
	return &CompletionWorker{
		interval: interval,
		bookings: bookings,
		log:      &compLog,
	}
}

func (w *CompletionWorker) Run(ctx context.Context) error {
	w.log.Info().Msg("Starting completion worker")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Stopping completion worker")
			return ctx.Err()
		case <-ticker.C:
			n, err := w.bookings.AutoCompleteDue(ctx)
			if err != nil {
				w.log.Error().Err(err).Msg("completion pass failed")
			}
			if n > 0 {
				w.log.Info().Int("count", n).Msg("bookings auto-completed")
			}
		}
	}
}
