// File: internal/infra/sched/reminder_worker.go
package sched

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"barbershop-bot/internal/usecase"
)

// ReminderWorker drives the two reminder passes on their own cadences. The
// passes themselves are idempotent, so a missed or doubled tick is harmless.
type ReminderWorker struct {
	dayBeforeEvery time.Duration
	hourEvery      time.Duration
	reminders      *usecase.ReminderUseCase
	log            *zerolog.Logger
}

func NewReminderWorker(dayBeforeEvery, hourEvery time.Duration, reminders *usecase.ReminderUseCase, logger *zerolog.Logger) *ReminderWorker {
	remLog := logger.With().Str("component", "ReminderWorker").Logger()
	return &ReminderWorker{
		dayBeforeEvery: dayBeforeEvery,
		hourEvery:      hourEvery,
		reminders:      reminders,
		log:            &remLog,
	}
}

func (w *ReminderWorker) Run(ctx context.Context) error {
	w.log.Info().Msg("Starting reminder worker")
	dayTicker := time.NewTicker(w.dayBeforeEvery)
	defer dayTicker.Stop()
	hourTicker := time.NewTicker(w.hourEvery)
	defer hourTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Stopping reminder worker")
			return ctx.Err()
		case <-dayTicker.C:
			if _, err := w.reminders.SendDayBeforeReminders(ctx); err != nil {
				w.log.Error().Err(err).Msg("day-before pass failed")
			}
		case <-hourTicker.C:
			if _, err := w.reminders.SendHourReminders(ctx); err != nil {
				w.log.Error().Err(err).Msg("hour pass failed")
			}
		}
	}
}
