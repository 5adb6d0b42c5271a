// File: internal/bot/faq.go
package bot

import (
	"context"

	"barbershop-bot/internal/domain/model"
)

// FAQ serves a static question menu; answers loop back to the menu.
func (h *Handlers) FAQ(_ context.Context, req Request) (Response, error) {
	if menuRequested(req.Input) {
		return toMainMenu(), nil
	}

	ready := model.Context{Stage: model.StageReady}
	if req.Context.IsInitial() {
		return Response{
			Message:  faqMenuText(),
			NextStep: model.StepFAQ,
			Context:  &ready,
		}, nil
	}

	msg := faqMenuText()
	if req.Choice != nil && *req.Choice >= 1 && *req.Choice <= 5 {
		msg = faqAnswer(*req.Choice) + "\n\n" + faqMenuText()
	}
	return Response{
		Message:  msg,
		NextStep: model.StepFAQ,
		Context:  &ready,
	}, nil
}

func faqAnswer(choice int) string {
	switch choice {
	case 1:
		return "⏰ *Opening Hours*\n\n" +
			"Monday - Saturday: 9:00 AM - 7:00 PM\n" +
			"Sunday: Closed\n\n" +
			"We recommend booking in advance to avoid waiting!"
	case 2:
		return "📍 *Location*\n\n" +
			"Fade Factory Barbershop\n123 Main St, Dublin\nIreland\n\n" +
			"🚗 Free parking available\n🚌 Bus routes: 4, 7, 16\n" +
			"🚇 Nearest station: O'Connell Street\n\n" +
			"Easy to find, right in the city center!"
	case 3:
		return "📅 *Booking Policy*\n\n" +
			"✅ We recommend booking in advance\n" +
			"✅ Bookings available for today and tomorrow\n" +
			"✅ Minimum 2 hours advance notice required\n" +
			"✅ Walk-ins welcome if we have availability\n\n" +
			"You can book through this WhatsApp chat anytime!"
	case 4:
		return "💳 *Payment Methods*\n\n" +
			"We accept:\n✅ Cash (EUR)\n✅ Credit/Debit Cards (Visa, Mastercard)\n" +
			"✅ Revolut\n✅ Apple Pay\n✅ Google Pay\n\n" +
			"Payment is taken after your service."
	case 5:
		return "🔄 *Cancellation & Rescheduling*\n\n" +
			"✅ Free cancellation anytime via WhatsApp\n" +
			"✅ Just send us your booking code\n" +
			"✅ Want to reschedule? Cancel and book again\n" +
			"✅ No cancellation fees\n\n" +
			"We understand plans change - just let us know!"
	default:
		return "Please select a valid option (1-5)"
	}
}
