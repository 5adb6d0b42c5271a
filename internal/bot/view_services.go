// File: internal/bot/view_services.go
package bot

import (
	"context"
	"fmt"
	"strings"

	"barbershop-bot/internal/domain/model"
)

// ViewServices renders the price list and offers a shortcut into the
// booking flow.
func (h *Handlers) ViewServices(ctx context.Context, req Request) (Response, error) {
	services, err := h.services.FindActive(ctx)
	if err != nil {
		return Response{}, fmt.Errorf("load services: %w", err)
	}
	if len(services) == 0 {
		return Response{
			Message:      "⚠️ No services available at the moment. Please try again later.\n\n0️⃣ Main Menu",
			NextStep:     model.StepMainMenu,
			ClearContext: true,
		}, nil
	}

	if menuRequested(req.Input) {
		return toMainMenu(), nil
	}

	input := strings.ToUpper(req.Input)
	if input == "BOOK" || input == "1" {
		initial := model.InitialContext()
		return Response{NextStep: model.StepSelectService, Context: &initial}, nil
	}

	var sb strings.Builder
	sb.WriteString("💈 *Our Services*\n\n")
	for _, svc := range services {
		sb.WriteString("✂️ *" + svc.Name + "*\n")
		if svc.Description != "" {
			sb.WriteString("   " + svc.Description + "\n")
		}
		sb.WriteString(fmt.Sprintf("   💰 €%.0f • ⏱️ %d min\n\n", svc.Price, svc.DurationMinutes))
	}
	sb.WriteString("📍 *" + h.shop.Name + "*\n" + h.shop.Address + "\n")
	if h.shop.Phone != "" {
		sb.WriteString("📞 " + h.shop.Phone + "\n")
	}
	sb.WriteString("\nReady to book?\n1️⃣ Book Now\n0️⃣ Main Menu")

	return Response{
		Message:      sb.String(),
		NextStep:     model.StepViewServices,
		ClearContext: true,
	}, nil
}
