// File: internal/bot/main_menu.go
package bot

import (
	"context"

	"barbershop-bot/internal/domain/model"
)

// MainMenu shows the menu on first contact and routes numeric choices to
// the other flows. Every other flow eventually lands back here.
func (h *Handlers) MainMenu(_ context.Context, req Request) (Response, error) {
	ready := model.Context{Stage: model.StageReady}

	// First message after (re)joining always shows the menu and ignores
	// whatever the user typed to get here.
	if req.Context.IsInitial() {
		return Response{
			Message:  mainMenuText(),
			NextStep: model.StepMainMenu,
			Context:  &ready,
		}, nil
	}

	var next model.Step
	if req.Choice != nil {
		switch *req.Choice {
		case 1:
			next = model.StepViewServices
		case 2:
			next = model.StepSelectService
		case 3:
			next = model.StepViewMyBookings
		case 4:
			next = model.StepCancelInput
		case 5:
			next = model.StepFAQ
		}
	}
	if next == "" {
		msg := mainMenuText()
		if req.Input != "" {
			msg = "⚠️ Please enter a valid number (1-5)\n\n" + msg
		}
		return Response{
			Message:  msg,
			NextStep: model.StepMainMenu,
			Context:  &ready,
		}, nil
	}

	initial := model.InitialContext()
	return Response{NextStep: next, Context: &initial}, nil
}
