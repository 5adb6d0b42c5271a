// File: internal/bot/handlers.go
package bot

import (
	"time"

	"github.com/rs/zerolog"

	"barbershop-bot/internal/config"
	"barbershop-bot/internal/domain/model"
	"barbershop-bot/internal/domain/ports/repository"
	"barbershop-bot/internal/usecase"
)

// Handlers holds the collaborators the step handlers consult. The handlers
// themselves are pure: all per-conversation state arrives in the Request.
type Handlers struct {
	services  repository.ServiceRepository
	barbers   repository.BarberRepository
	customers repository.CustomerRepository
	avail     *usecase.AvailabilityUseCase
	bookings  *usecase.BookingUseCase
	shop      *config.ShopConfig
	loyalty   *config.LoyaltyConfig
	now       func() time.Time
	log       *zerolog.Logger
}

func NewHandlers(
	services repository.ServiceRepository,
	barbers repository.BarberRepository,
	customers repository.CustomerRepository,
	avail *usecase.AvailabilityUseCase,
	bookings *usecase.BookingUseCase,
	shop *config.ShopConfig,
	loyalty *config.LoyaltyConfig,
	nowFn func() time.Time,
	logger *zerolog.Logger,
) *Handlers {
	if nowFn == nil {
		nowFn = time.Now
	}
	l := logger.With().Str("component", "Handlers").Logger()
	return &Handlers{
		services:  services,
		barbers:   barbers,
		customers: customers,
		avail:     avail,
		bookings:  bookings,
		shop:      shop,
		loyalty:   loyalty,
		now:       nowFn,
		log:       &l,
	}
}

// RegisterAll binds every conversation step to its handler. Steps that share
// a handler (the slot views, the two cancel phases) branch on req.Step.
func RegisterAll(d *Dispatcher, h *Handlers) {
	d.Register(model.StepMainMenu, h.MainMenu)
	d.Register(model.StepViewServices, h.ViewServices)
	d.Register(model.StepFAQ, h.FAQ)
	d.Register(model.StepSelectService, h.SelectService)
	d.Register(model.StepSelectBarber, h.SelectBarber)
	d.Register(model.StepViewTodaySlots, h.ViewSlots)
	d.Register(model.StepViewTomorrowSlots, h.ViewSlots)
	d.Register(model.StepConfirmBooking, h.ConfirmBooking)
	d.Register(model.StepBookingConfirmed, h.ConfirmBooking)
	d.Register(model.StepViewMyBookings, h.ViewMyBookings)
	d.Register(model.StepCancelInput, h.CancelBooking)
	d.Register(model.StepCancelConfirm, h.CancelBooking)
}
