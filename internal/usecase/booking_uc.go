// File: internal/usecase/booking_uc.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"barbershop-bot/internal/config"
	"barbershop-bot/internal/domain"
	"barbershop-bot/internal/domain/model"
	"barbershop-bot/internal/domain/ports/repository"
	"barbershop-bot/internal/infra/metrics"
)

const codeAttempts = 10

// BookingUseCase is the booking ledger: the single write path for bookings.
// Creation is serialized per barber+date with an advisory transaction lock,
// with the repository's overlap constraint as the backstop.
type BookingUseCase struct {
	bookings  repository.BookingRepository
	barbers   repository.BarberRepository
	customers repository.CustomerRepository
	avail     *AvailabilityUseCase
	tm        repository.TransactionManager
	loyalty   *config.LoyaltyConfig
	now       func() time.Time
	log       *zerolog.Logger
}

func NewBookingUseCase(
	bookings repository.BookingRepository,
	barbers repository.BarberRepository,
	customers repository.CustomerRepository,
	avail *AvailabilityUseCase,
	tm repository.TransactionManager,
	loyalty *config.LoyaltyConfig,
	nowFn func() time.Time,
	logger *zerolog.Logger,
) *BookingUseCase {
	if nowFn == nil {
		nowFn = time.Now
	}
	l := logger.With().Str("component", "BookingUseCase").Logger()
	return &BookingUseCase{
		bookings:  bookings,
		barbers:   barbers,
		customers: customers,
		avail:     avail,
		tm:        tm,
		loyalty:   loyalty,
		now:       nowFn,
		log:       &l,
	}
}

// CreateBooking re-validates the slot inside the transaction, then writes
// the booking and bumps the barber and customer counters in the same
// transaction. On any validation failure nothing is written.
func (uc *BookingUseCase) CreateBooking(ctx context.Context, phone string, svc *model.Service, barberID string, date, start time.Time) (*model.Booking, error) {
	if _, err := uc.barbers.FindByID(ctx, barberID); err != nil {
		return nil, fmt.Errorf("barber %s: %w", barberID, err)
	}

	day := Midnight(date)
	var booking *model.Booking
	err := uc.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		if err := uc.bookings.LockBarberDate(ctx, tx, barberID, day); err != nil {
			return fmt.Errorf("lock barber schedule: %w", err)
		}
		if err := uc.avail.ValidateSlot(ctx, tx, day, start, svc, barberID); err != nil {
			return err
		}

		code, err := uc.generateCode(ctx)
		if err != nil {
			return err
		}
		b, err := model.NewBooking(uuid.NewString(), code, phone, svc, barberID, day, start)
		if err != nil {
			return err
		}
		if err := uc.bookings.Save(ctx, tx, b); err != nil {
			return fmt.Errorf("save booking: %w", err)
		}
		if err := uc.barbers.IncrementTotalBookings(ctx, tx, barberID); err != nil {
			return fmt.Errorf("bump barber counter: %w", err)
		}
		points, bonus := uc.loyaltyAward()
		if err := uc.customers.RecordBooking(ctx, tx, phone, points, bonus); err != nil {
			return fmt.Errorf("record customer booking: %w", err)
		}
		booking = b
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrSlotUnavailable) {
			metrics.IncBookingConflicts()
		}
		return nil, err
	}

	metrics.IncBookingsCreated()
	uc.log.Info().Str("code", booking.Code).Str("barber_id", barberID).
		Str("date", day.Format("2006-01-02")).Str("start", start.Format("15:04")).
		Msg("booking created")
	return booking, nil
}

// loyaltyAward returns the points to credit for one booking. Both values are
// zero when the program is disabled.
func (uc *BookingUseCase) loyaltyAward() (points, firstBonus int) {
	if uc.loyalty == nil || !uc.loyalty.Enabled {
		return 0, 0
	}
	return uc.loyalty.PointsPerBooking, uc.loyalty.FirstBookingBonus
}

// generateCode draws BK#### values, retrying on collision; after the retry
// budget it walks the code space from a time-derived start until a free code
// turns up.
func (uc *BookingUseCase) generateCode(ctx context.Context) (string, error) {
	for i := 0; i < codeAttempts; i++ {
		code := fmt.Sprintf("BK%04d", rand.Intn(10000))
		exists, err := uc.bookings.CodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("check code: %w", err)
		}
		if !exists {
			return code, nil
		}
	}
	base := int(uc.now().UnixMilli() % 10000)
	for i := 0; i < 10000; i++ {
		code := fmt.Sprintf("BK%04d", (base+i)%10000)
		exists, err := uc.bookings.CodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("check code: %w", err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", errors.New("booking code space exhausted")
}

// GetByCode looks up a booking by its public reference.
func (uc *BookingUseCase) GetByCode(ctx context.Context, code string) (*model.Booking, error) {
	return uc.bookings.FindByCode(ctx, code)
}

// ListCustomerBookings returns the customer's CONFIRMED bookings.
func (uc *BookingUseCase) ListCustomerBookings(ctx context.Context, phone string) ([]*model.Booking, error) {
	return uc.bookings.FindActiveByCustomer(ctx, phone)
}

// CancelBooking fails distinctly for unknown codes, foreign bookings and
// repeat cancellations.
func (uc *BookingUseCase) CancelBooking(ctx context.Context, code, phone string) error {
	b, err := uc.bookings.FindByCode(ctx, code)
	if err != nil {
		return fmt.Errorf("booking %s: %w", code, err)
	}
	if b.CustomerPhone != phone {
		uc.log.Warn().Str("code", code).Msg("cancel attempt by non-owner")
		return domain.ErrNotBookingOwner
	}
	if b.Status == model.BookingStatusCancelled {
		return domain.ErrBookingAlreadyCancelled
	}

	now := uc.now()
	b.Status = model.BookingStatusCancelled
	b.CancelledAt = &now
	if err := uc.bookings.Save(ctx, nil, b); err != nil {
		return fmt.Errorf("save cancellation: %w", err)
	}
	if err := uc.customers.RecordCancellation(ctx, phone); err != nil {
		uc.log.Error().Err(err).Str("code", code).Msg("record cancellation stats")
	}
	metrics.IncBookingsCancelled()
	uc.log.Info().Str("code", code).Msg("booking cancelled")
	return nil
}

// CompleteBooking transitions CONFIRMED -> COMPLETED. Any other current
// status is a no-op with a warning so duplicate scheduler triggers stay
// harmless.
func (uc *BookingUseCase) CompleteBooking(ctx context.Context, b *model.Booking) error {
	if b.Status != model.BookingStatusConfirmed {
		uc.log.Warn().Str("code", b.Code).Str("status", string(b.Status)).Msg("cannot complete booking")
		return nil
	}
	now := uc.now()
	b.Status = model.BookingStatusCompleted
	b.CompletedAt = &now
	if err := uc.bookings.Save(ctx, nil, b); err != nil {
		return fmt.Errorf("save completion: %w", err)
	}
	if err := uc.barbers.IncrementCompletedBookings(ctx, b.BarberID); err != nil {
		uc.log.Error().Err(err).Str("code", b.Code).Msg("bump barber completed counter")
	}
	if err := uc.customers.RecordCompletion(ctx, b.CustomerPhone); err != nil {
		uc.log.Error().Err(err).Str("code", b.Code).Msg("record completion stats")
	}
	metrics.IncBookingsCompleted()
	return nil
}

// MarkNoShow transitions CONFIRMED -> NO_SHOW; idempotent like
// CompleteBooking.
func (uc *BookingUseCase) MarkNoShow(ctx context.Context, b *model.Booking) error {
	if b.Status != model.BookingStatusConfirmed {
		uc.log.Warn().Str("code", b.Code).Str("status", string(b.Status)).Msg("cannot mark no-show")
		return nil
	}
	b.Status = model.BookingStatusNoShow
	if err := uc.bookings.Save(ctx, nil, b); err != nil {
		return fmt.Errorf("save no-show: %w", err)
	}
	if err := uc.customers.RecordNoShow(ctx, b.CustomerPhone); err != nil {
		uc.log.Error().Err(err).Str("code", b.Code).Msg("record no-show stats")
	}
	return nil
}

// AutoCompleteDue completes every CONFIRMED booking whose end time has
// passed. Invoked by the completion worker, not by the conversation path.
func (uc *BookingUseCase) AutoCompleteDue(ctx context.Context) (int, error) {
	due, err := uc.bookings.FindDueForCompletion(ctx, uc.now())
	if err != nil {
		return 0, fmt.Errorf("find due bookings: %w", err)
	}
	n := 0
	for _, b := range due {
		if err := uc.CompleteBooking(ctx, b); err != nil {
			uc.log.Error().Err(err).Str("code", b.Code).Msg("auto-complete failed")
			continue
		}
		n++
	}
	if n > 0 {
		uc.log.Info().Int("count", n).Msg("auto-completed bookings")
	}
	return n, nil
}
