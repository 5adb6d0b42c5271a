// File: internal/bot/view_bookings.go
package bot

import (
	"context"
	"fmt"
	"strings"

	"barbershop-bot/internal/domain/model"
	"barbershop-bot/internal/usecase"
)

// ViewMyBookings lists the customer's upcoming confirmed bookings.
func (h *Handlers) ViewMyBookings(ctx context.Context, req Request) (Response, error) {
	if menuRequested(req.Input) {
		return toMainMenu(), nil
	}

	bookings, err := h.bookings.ListCustomerBookings(ctx, req.Phone)
	if err != nil {
		return Response{}, fmt.Errorf("list bookings: %w", err)
	}

	ready := model.Context{Stage: model.StageReady}

	if len(bookings) == 0 {
		if req.Input == "1" {
			initial := model.InitialContext()
			return Response{NextStep: model.StepSelectService, Context: &initial}, nil
		}
		return Response{
			Message: "📋 You have no upcoming bookings.\n\n" +
				"1️⃣ Book an Appointment\n0️⃣ Main Menu",
			NextStep: model.StepViewMyBookings,
			Context:  &ready,
		}, nil
	}

	if req.Input == "4" {
		initial := model.InitialContext()
		return Response{NextStep: model.StepCancelInput, Context: &initial}, nil
	}

	today := usecase.Midnight(h.now())
	var sb strings.Builder
	sb.WriteString("📋 *Your Upcoming Bookings*\n\n")
	for _, b := range bookings {
		name := b.ServiceID
		if svc, err := h.services.FindByID(ctx, b.ServiceID); err == nil {
			name = svc.Name
		}
		barberName := ""
		if barber, err := h.barbers.FindByID(ctx, b.BarberID); err == nil {
			barberName = " with " + barber.Name
		}
		sb.WriteString(fmt.Sprintf("🎫 *#%s*\n🪒 %s%s\n📅 %s (%s) at %s\n\n",
			b.Code, name, barberName,
			dayLabel(b.Date, b.Date.Equal(today), b.Date.Equal(today.AddDate(0, 0, 1))),
			b.Date.Format(dateShowFormat), b.Start.Format(timeShowFormat)))
	}
	sb.WriteString("4️⃣ Cancel a Booking\n0️⃣ Main Menu")

	return Response{
		Message:  sb.String(),
		NextStep: model.StepViewMyBookings,
		Context:  &ready,
	}, nil
}
