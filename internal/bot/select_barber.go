// File: internal/bot/select_barber.go
package bot

import (
	"context"
	"fmt"

	"barbershop-bot/internal/domain/model"
)

// SelectBarber shows the barber roster once (MenuShown marks that render)
// and then interprets the next message as the pick. Losing the service id
// from context means the conversation state is gone, so it restarts.
func (h *Handlers) SelectBarber(ctx context.Context, req Request) (Response, error) {
	if req.Context.ServiceID == "" {
		return Response{
			Message:      genericErrorReply,
			NextStep:     model.StepMainMenu,
			ClearContext: true,
		}, nil
	}

	if menuRequested(req.Input) {
		return toMainMenu(), nil
	}

	barbers, err := h.barbers.FindActive(ctx)
	if err != nil {
		return Response{}, fmt.Errorf("load barbers: %w", err)
	}
	if len(barbers) == 0 {
		return Response{
			Message:      "⚠️ No barbers available at the moment. Please try again later.\n\n0️⃣ Main Menu",
			NextStep:     model.StepMainMenu,
			ClearContext: true,
		}, nil
	}

	if !req.Context.MenuShown {
		shown := req.Context
		shown.MenuShown = true
		return Response{
			Message:  barberMenuText(barbers),
			NextStep: model.StepSelectBarber,
			Context:  &shown,
		}, nil
	}

	if req.Choice == nil || *req.Choice < 1 || *req.Choice > len(barbers) {
		return Response{
			Message:  fmt.Sprintf("⚠️ Please enter a valid number (1-%d)\n\n%s", len(barbers), barberMenuText(barbers)),
			NextStep: model.StepSelectBarber,
			Context:  &req.Context,
		}, nil
	}

	selected := barbers[*req.Choice-1]
	next := model.Context{ServiceID: req.Context.ServiceID, BarberID: selected.ID}
	return Response{NextStep: model.StepViewTodaySlots, Context: &next}, nil
}
