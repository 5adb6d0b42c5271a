// File: internal/bot/confirm_booking.go
package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"barbershop-bot/internal/domain"
	"barbershop-bot/internal/domain/model"
	"barbershop-bot/internal/usecase"
)

// ConfirmBooking shows the recap and turns a YES into the actual booking
// write. It also claims the post-confirmation step, where any message leads
// back to the menu.
func (h *Handlers) ConfirmBooking(ctx context.Context, req Request) (Response, error) {
	if req.Step == model.StepBookingConfirmed {
		return Response{
			Message:  mainMenuText(),
			NextStep: model.StepMainMenu,
			Context:  &model.Context{Stage: model.StageReady},
		}, nil
	}

	date, start, ok := h.parseSelection(req.Context)
	if !ok || req.Context.ServiceID == "" || req.Context.BarberID == "" {
		return Response{
			Message:      genericErrorReply,
			NextStep:     model.StepMainMenu,
			ClearContext: true,
		}, nil
	}

	svc, barber, err := h.loadSelection(ctx, req.Context)
	if err != nil {
		return Response{}, err
	}

	today := usecase.Midnight(h.now())
	isToday := date.Equal(today)
	isTomorrow := date.Equal(today.AddDate(0, 0, 1))

	input := strings.ToUpper(strings.TrimSpace(req.Input))
	switch input {
	case "YES", "Y", "CONFIRM":
		booking, err := h.bookings.CreateBooking(ctx, req.Phone, svc, req.Context.BarberID, date, start)
		switch {
		case err == nil:
			msg := bookingConfirmedText(booking.Code, svc, barber, date, start, h.shop.Address, isToday, isTomorrow)
			if note := h.loyaltyNote(ctx, req.Phone); note != "" {
				msg += "\n\n" + note
			}
			return Response{
				Message:  msg,
				NextStep: model.StepBookingConfirmed,
				Context:  &model.Context{BookingCode: booking.Code},
			}, nil
		case slotGone(err):
			return h.slotTakenReply(ctx, req, isToday)
		default:
			return Response{}, fmt.Errorf("create booking: %w", err)
		}

	case "CANCEL", "NO", "0", "MENU", "MAIN":
		return Response{
			Message:  "👍 No problem - nothing was booked.\n\n" + mainMenuText(),
			NextStep: model.StepMainMenu,
			Context:  &model.Context{Stage: model.StageReady},
		}, nil

	case "":
		return Response{
			Message:  confirmPromptText(svc, barber, date, start, h.shop.Address, isToday, isTomorrow),
			NextStep: model.StepConfirmBooking,
			Context:  &req.Context,
		}, nil

	default:
		return Response{
			Message: "⚠️ Please reply *YES* or *CANCEL*\n\n" +
				confirmPromptText(svc, barber, date, start, h.shop.Address, isToday, isTomorrow),
			NextStep: model.StepConfirmBooking,
			Context:  &req.Context,
		}, nil
	}
}

// loyaltyNote reads the customer's balance after the booking commit. A read
// failure only costs the note, never the confirmation.
func (h *Handlers) loyaltyNote(ctx context.Context, phone string) string {
	if h.loyalty == nil || !h.loyalty.Enabled {
		return ""
	}
	c, err := h.customers.GetOrCreate(ctx, phone)
	if err != nil {
		h.log.Error().Err(err).Msg("load customer for loyalty note")
		return ""
	}
	return loyaltyText(h.loyalty, c)
}

// slotTakenReply re-renders the relevant slot view with an apology on top,
// so the customer immediately sees what is still free.
func (h *Handlers) slotTakenReply(ctx context.Context, req Request, wasToday bool) (Response, error) {
	step := model.StepViewTomorrowSlots
	if wasToday {
		step = model.StepViewTodaySlots
	}
	trimmed := model.Context{ServiceID: req.Context.ServiceID, BarberID: req.Context.BarberID}
	resp, err := h.ViewSlots(ctx, NewRequest(req.Phone, "", step, trimmed))
	if err != nil {
		return Response{}, err
	}
	if resp.Message != "" {
		resp.Message = "😔 Sorry, that slot was just taken!\n\n" + resp.Message
	}
	return resp, nil
}

// parseSelection rebuilds the chosen start time from the context's date and
// time keys.
func (h *Handlers) parseSelection(c model.Context) (date, start time.Time, ok bool) {
	if c.Date == "" || c.Time == "" {
		return time.Time{}, time.Time{}, false
	}
	loc := h.now().Location()
	d, err := time.ParseInLocation(dateKeyFormat, c.Date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	t, err := time.Parse(timeKeyFormat, c.Time)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	start = d.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute)
	return d, start, true
}

func slotGone(err error) bool {
	return errors.Is(err, domain.ErrSlotUnavailable) ||
		errors.Is(err, domain.ErrBookingInPast) ||
		errors.Is(err, domain.ErrInsufficientNotice) ||
		errors.Is(err, domain.ErrShopClosed) ||
		errors.Is(err, domain.ErrOutsideBusinessHours)
}
