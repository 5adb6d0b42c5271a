// File: internal/usecase/reminder_uc.go
package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"barbershop-bot/internal/config"
	"barbershop-bot/internal/domain/model"
	"barbershop-bot/internal/domain/ports/adapter"
	"barbershop-bot/internal/domain/ports/repository"
	"barbershop-bot/internal/infra/metrics"
)

// hourReminderWindow tolerates scheduler jitter around the target time.
const hourReminderWindow = 10 * time.Minute

// ReminderUseCase runs the two reminder passes over tomorrow's and today's
// CONFIRMED bookings. Each pass is idempotent through the per-booking sent
// flags, so overlapping scheduler triggers cannot double-send.
type ReminderUseCase struct {
	bookings repository.BookingRepository
	services repository.ServiceRepository
	sender   adapter.MessageSender
	shop     *config.ShopConfig
	cfg      *config.RemindersConfig
	now      func() time.Time
	log      *zerolog.Logger
}

func NewReminderUseCase(
	bookings repository.BookingRepository,
	services repository.ServiceRepository,
	sender adapter.MessageSender,
	shop *config.ShopConfig,
	cfg *config.RemindersConfig,
	nowFn func() time.Time,
	logger *zerolog.Logger,
) *ReminderUseCase {
	if nowFn == nil {
		nowFn = time.Now
	}
	l := logger.With().Str("component", "ReminderUseCase").Logger()
	return &ReminderUseCase{
		bookings: bookings,
		services: services,
		sender:   sender,
		shop:     shop,
		cfg:      cfg,
		now:      nowFn,
		log:      &l,
	}
}

// SendDayBeforeReminders notifies customers with a booking tomorrow that has
// not yet received the day-before reminder. Returns the number sent.
func (uc *ReminderUseCase) SendDayBeforeReminders(ctx context.Context) (int, error) {
	if !uc.cfg.Enabled || !uc.cfg.DayBeforeEnabled {
		return 0, nil
	}
	tomorrow := Midnight(uc.now()).AddDate(0, 0, 1)
	due, err := uc.bookings.FindConfirmedByDate(ctx, tomorrow)
	if err != nil {
		return 0, fmt.Errorf("find tomorrow's bookings: %w", err)
	}

	sent := 0
	for _, b := range due {
		if b.DayBeforeReminderSent {
			continue
		}
		text, err := uc.dayBeforeText(ctx, b)
		if err != nil {
			uc.log.Error().Err(err).Str("code", b.Code).Msg("build day-before reminder")
			continue
		}
		if err := uc.sender.Send(ctx, b.CustomerPhone, text); err != nil {
			uc.log.Error().Err(err).Str("code", b.Code).Msg("send day-before reminder")
			continue
		}
		now := uc.now()
		b.DayBeforeReminderSent = true
		b.DayBeforeReminderSentAt = &now
		if err := uc.bookings.Save(ctx, nil, b); err != nil {
			uc.log.Error().Err(err).Str("code", b.Code).Msg("persist day-before flag")
			continue
		}
		metrics.IncRemindersSent("day_before")
		sent++
	}
	if sent > 0 {
		uc.log.Info().Int("count", sent).Msg("day-before reminders sent")
	}
	return sent, nil
}

// SendHourReminders notifies customers whose booking starts roughly
// cfg.MinutesBefore from now (within a small jitter window).
func (uc *ReminderUseCase) SendHourReminders(ctx context.Context) (int, error) {
	if !uc.cfg.Enabled || !uc.cfg.HourEnabled {
		return 0, nil
	}
	now := uc.now()
	target := now.Add(time.Duration(uc.cfg.MinutesBefore) * time.Minute)

	due, err := uc.bookings.FindConfirmedByDate(ctx, Midnight(now))
	if err != nil {
		return 0, fmt.Errorf("find today's bookings: %w", err)
	}

	sent := 0
	for _, b := range due {
		if b.HourReminderSent {
			continue
		}
		if b.Start.Before(target.Add(-hourReminderWindow)) || b.Start.After(target.Add(hourReminderWindow)) {
			continue
		}
		text, err := uc.hourText(ctx, b, now)
		if err != nil {
			uc.log.Error().Err(err).Str("code", b.Code).Msg("build hour reminder")
			continue
		}
		if err := uc.sender.Send(ctx, b.CustomerPhone, text); err != nil {
			uc.log.Error().Err(err).Str("code", b.Code).Msg("send hour reminder")
			continue
		}
		b.HourReminderSent = true
		b.HourReminderSentAt = &now
		if err := uc.bookings.Save(ctx, nil, b); err != nil {
			uc.log.Error().Err(err).Str("code", b.Code).Msg("persist hour flag")
			continue
		}
		metrics.IncRemindersSent("hour_before")
		sent++
	}
	if sent > 0 {
		uc.log.Info().Int("count", sent).Msg("hour reminders sent")
	}
	return sent, nil
}

func (uc *ReminderUseCase) dayBeforeText(ctx context.Context, b *model.Booking) (string, error) {
	svc, err := uc.services.FindByID(ctx, b.ServiceID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(
		"📅 *Reminder: Appointment Tomorrow*\n\n"+
			"🪒 %s\n📅 Tomorrow (%s) at %s\n⏱️ %d minutes\n📍 %s\n\n"+
			"Booking Code: *#%s*\n\n"+
			"To cancel, reply MENU and select option 4\n\nSee you tomorrow! 👍",
		svc.Name,
		b.Date.Format("Mon 02 Jan"),
		b.Start.Format("3:04 PM"),
		svc.DurationMinutes,
		uc.shop.Address,
		b.Code,
	), nil
}

func (uc *ReminderUseCase) hourText(ctx context.Context, b *model.Booking, now time.Time) (string, error) {
	svc, err := uc.services.FindByID(ctx, b.ServiceID)
	if err != nil {
		return "", err
	}
	minutes := int(b.Start.Sub(now).Minutes())
	return fmt.Sprintf(
		"⏰ *Reminder: Appointment in %d minutes*\n\n"+
			"🪒 %s\n📅 TODAY at %s\n📍 %s\n\n"+
			"Booking Code: *#%s*\n\n"+
			"To cancel, reply MENU and select option 4\n\nSee you soon! 👍",
		minutes,
		svc.Name,
		b.Start.Format("3:04 PM"),
		uc.shop.Address,
		b.Code,
	), nil
}
