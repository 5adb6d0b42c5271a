// File: internal/bot/view_slots.go
package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"barbershop-bot/internal/domain/model"
	"barbershop-bot/internal/usecase"
)

// ViewSlots serves both the today and the tomorrow slot views. The step
// itself says which date is on display; the selected start time lands in
// context as date and time keys for the confirmation step.
func (h *Handlers) ViewSlots(ctx context.Context, req Request) (Response, error) {
	if req.Context.ServiceID == "" || req.Context.BarberID == "" {
		return Response{
			Message:      genericErrorReply,
			NextStep:     model.StepMainMenu,
			ClearContext: true,
		}, nil
	}

	if menuRequested(req.Input) {
		return toMainMenu(), nil
	}

	// MORE jumps from the today view to tomorrow's listing.
	if req.Step == model.StepViewTodaySlots && strings.EqualFold(strings.TrimSpace(req.Input), "MORE") {
		return Response{NextStep: model.StepViewTomorrowSlots, Context: &req.Context}, nil
	}

	svc, barber, err := h.loadSelection(ctx, req.Context)
	if err != nil {
		return Response{}, err
	}

	date := h.slotDate(req.Step)
	slots, err := h.avail.SlotsForDate(ctx, date, svc, req.Context.BarberID)
	if err != nil {
		return Response{}, fmt.Errorf("slots for %s: %w", date.Format(dateKeyFormat), err)
	}

	if len(slots) == 0 {
		if req.Step == model.StepViewTodaySlots {
			// Nothing left today; fall through to tomorrow's view.
			return Response{NextStep: model.StepViewTomorrowSlots, Context: &req.Context}, nil
		}
		return Response{
			Message: "😔 Sorry, we're fully booked for today and tomorrow!\n\n" +
				"Please check back later - cancellations happen often.\n\n" + mainMenuText(),
			NextStep: model.StepMainMenu,
			Context:  &model.Context{Stage: model.StageReady},
		}, nil
	}

	if req.Choice != nil && *req.Choice >= 1 && *req.Choice <= len(slots) {
		start := slots[*req.Choice-1]
		next := model.Context{
			ServiceID: req.Context.ServiceID,
			BarberID:  req.Context.BarberID,
			Date:      date.Format(dateKeyFormat),
			Time:      start.Format(timeKeyFormat),
		}
		return Response{NextStep: model.StepConfirmBooking, Context: &next}, nil
	}

	msg := slotsText(svc, barber, slots, date, req.Step == model.StepViewTodaySlots)
	if req.Input != "" {
		msg = fmt.Sprintf("⚠️ Please enter a valid number (1-%d)\n\n%s", len(slots), msg)
	}
	return Response{
		Message:  msg,
		NextStep: req.Step,
		Context:  &req.Context,
	}, nil
}

// slotDate maps the slot-view step to its calendar date.
func (h *Handlers) slotDate(step model.Step) time.Time {
	today := usecase.Midnight(h.now())
	if step == model.StepViewTomorrowSlots {
		return today.AddDate(0, 0, 1)
	}
	return today
}

// loadSelection resolves the service and barber ids accumulated in context.
func (h *Handlers) loadSelection(ctx context.Context, c model.Context) (*model.Service, *model.Barber, error) {
	svc, err := h.services.FindByID(ctx, c.ServiceID)
	if err != nil {
		return nil, nil, fmt.Errorf("service %s: %w", c.ServiceID, err)
	}
	barber, err := h.barbers.FindByID(ctx, c.BarberID)
	if err != nil {
		return nil, nil, fmt.Errorf("barber %s: %w", c.BarberID, err)
	}
	return svc, barber, nil
}
