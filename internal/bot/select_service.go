// File: internal/bot/select_service.go
package bot

import (
	"context"
	"fmt"

	"barbershop-bot/internal/domain/model"
)

// SelectService is the first step of the booking flow: the chosen service id
// seeds the context the later steps keep accumulating into.
func (h *Handlers) SelectService(ctx context.Context, req Request) (Response, error) {
	services, err := h.services.FindActive(ctx)
	if err != nil {
		return Response{}, fmt.Errorf("load services: %w", err)
	}
	if len(services) == 0 {
		return Response{
			Message:      "⚠️ No services available at the moment. Please try again later.",
			NextStep:     model.StepMainMenu,
			ClearContext: true,
		}, nil
	}

	ready := model.Context{Stage: model.StageReady}
	if req.Context.IsInitial() {
		return Response{
			Message:  serviceMenuText(services),
			NextStep: model.StepSelectService,
			Context:  &ready,
		}, nil
	}

	if menuRequested(req.Input) {
		return toMainMenu(), nil
	}

	// Invalid input re-displays the menu with a correction note.
	if req.Choice == nil || *req.Choice < 1 || *req.Choice > len(services) {
		msg := serviceMenuText(services)
		if req.Input != "" {
			msg = fmt.Sprintf("⚠️ Please enter a valid number (1-%d)\n\n%s", len(services), msg)
		}
		return Response{
			Message:  msg,
			NextStep: model.StepSelectService,
			Context:  &ready,
		}, nil
	}

	selected := services[*req.Choice-1]
	next := model.Context{ServiceID: selected.ID}
	return Response{NextStep: model.StepSelectBarber, Context: &next}, nil
}
