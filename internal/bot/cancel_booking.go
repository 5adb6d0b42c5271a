// File: internal/bot/cancel_booking.go
package bot

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"barbershop-bot/internal/domain"
	"barbershop-bot/internal/domain/model"
	"barbershop-bot/internal/usecase"
)

var bareDigitsPattern = regexp.MustCompile(`^\d{4}$`)

const cancelPromptText = "🔄 *Cancel a Booking*\n\n" +
	"Please send your booking code (e.g. *BK1234*)\n\n" +
	"You can find it in your confirmation message\n" +
	"0️⃣ Main Menu"

// CancelBooking drives both cancellation phases: code entry and the final
// YES/NO confirmation. Format mistakes and unknown codes keep the customer
// on the code-entry step so they can retry without restarting.
func (h *Handlers) CancelBooking(ctx context.Context, req Request) (Response, error) {
	if menuRequested(req.Input) {
		return toMainMenu(), nil
	}
	if req.Step == model.StepCancelConfirm {
		return h.cancelConfirm(ctx, req)
	}
	return h.cancelInput(ctx, req)
}

func (h *Handlers) cancelInput(ctx context.Context, req Request) (Response, error) {
	ready := model.Context{Stage: model.StageReady}

	if req.Context.IsInitial() || req.Input == "" {
		return Response{
			Message:  cancelPromptText,
			NextStep: model.StepCancelInput,
			Context:  &ready,
		}, nil
	}

	code := normalizeCode(req.Input)
	if !model.BookingCodePattern.MatchString(code) {
		return Response{
			Message:  "⚠️ That doesn't look like a booking code.\n\n" + cancelPromptText,
			NextStep: model.StepCancelInput,
			Context:  &ready,
		}, nil
	}

	b, err := h.bookings.GetByCode(ctx, code)
	if errors.Is(err, domain.ErrNotFound) {
		return Response{
			Message:  fmt.Sprintf("⚠️ We couldn't find booking *#%s*.\n\n", code) + cancelPromptText,
			NextStep: model.StepCancelInput,
			Context:  &ready,
		}, nil
	}
	if err != nil {
		return Response{}, fmt.Errorf("lookup booking %s: %w", code, err)
	}

	if b.CustomerPhone != req.Phone {
		return Response{
			Message: "⚠️ That booking code doesn't belong to this number.\n\n" +
				mainMenuText(),
			NextStep: model.StepMainMenu,
			Context:  &ready,
		}, nil
	}
	if b.Status == model.BookingStatusCancelled {
		return Response{
			Message: fmt.Sprintf("ℹ️ Booking *#%s* is already cancelled.\n\n", code) +
				mainMenuText(),
			NextStep: model.StepMainMenu,
			Context:  &ready,
		}, nil
	}

	name := b.ServiceID
	if svc, err := h.services.FindByID(ctx, b.ServiceID); err == nil {
		name = svc.Name
	}
	today := usecase.Midnight(h.now())
	return Response{
		Message: fmt.Sprintf(
			"🔄 *Cancel this booking?*\n\n🎫 #%s\n🪒 %s\n📅 %s (%s) at %s\n\n"+
				"Reply *YES* to cancel or *NO* to keep it",
			b.Code, name,
			dayLabel(b.Date, b.Date.Equal(today), b.Date.Equal(today.AddDate(0, 0, 1))),
			b.Date.Format(dateShowFormat), b.Start.Format(timeShowFormat)),
		NextStep: model.StepCancelConfirm,
		Context:  &model.Context{BookingCode: b.Code},
	}, nil
}

func (h *Handlers) cancelConfirm(ctx context.Context, req Request) (Response, error) {
	code := req.Context.BookingCode
	if code == "" {
		return Response{
			Message:      genericErrorReply,
			NextStep:     model.StepMainMenu,
			ClearContext: true,
		}, nil
	}

	ready := model.Context{Stage: model.StageReady}
	switch strings.ToUpper(strings.TrimSpace(req.Input)) {
	case "YES", "Y":
		err := h.bookings.CancelBooking(ctx, code, req.Phone)
		switch {
		case err == nil:
			return Response{
				Message: fmt.Sprintf("✅ Booking *#%s* has been cancelled.\n\n"+
					"We hope to see you another time! 👋\n\n", code) + mainMenuText(),
				NextStep: model.StepMainMenu,
				Context:  &ready,
			}, nil
		case errors.Is(err, domain.ErrBookingAlreadyCancelled):
			return Response{
				Message: fmt.Sprintf("ℹ️ Booking *#%s* is already cancelled.\n\n", code) +
					mainMenuText(),
				NextStep: model.StepMainMenu,
				Context:  &ready,
			}, nil
		case errors.Is(err, domain.ErrNotBookingOwner), errors.Is(err, domain.ErrNotFound):
			return Response{
				Message:  "⚠️ We couldn't cancel that booking.\n\n" + mainMenuText(),
				NextStep: model.StepMainMenu,
				Context:  &ready,
			}, nil
		default:
			return Response{}, fmt.Errorf("cancel booking %s: %w", code, err)
		}

	case "NO", "N":
		return Response{
			Message:  "👍 Your booking is unchanged.\n\n" + mainMenuText(),
			NextStep: model.StepMainMenu,
			Context:  &ready,
		}, nil

	default:
		return Response{
			Message:  "⚠️ Please reply *YES* or *NO*",
			NextStep: model.StepCancelConfirm,
			Context:  &req.Context,
		}, nil
	}
}

// normalizeCode tolerates the formats customers actually type: lowercase,
// a leading #, or the bare four digits.
func normalizeCode(input string) string {
	code := strings.ToUpper(strings.TrimSpace(input))
	code = strings.TrimPrefix(code, "#")
	if bareDigitsPattern.MatchString(code) {
		code = "BK" + code
	}
	return code
}
