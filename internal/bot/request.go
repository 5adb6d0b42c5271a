// File: internal/bot/request.go
package bot

import (
	"context"
	"strconv"
	"strings"

	"barbershop-bot/internal/domain/model"
)

// Request carries everything a step handler needs to process one inbound
// message.
type Request struct {
	Phone   string
	Input   string
	Choice  *int // parsed numeric choice when the input is an integer
	Step    model.Step
	Context model.Context
}

// Response describes what the dispatcher should do next. An empty Message
// with a non-empty NextStep triggers auto-continuation so the next step can
// render its own view.
type Response struct {
	Message      string
	NextStep     model.Step
	Context      *model.Context // nil means keep the current context
	ClearContext bool           // reset context to the initial sentinel
}

// HandlerFunc is a pure function of the request; all conversation state
// flows through Request/Response, never through handler fields.
type HandlerFunc func(ctx context.Context, req Request) (Response, error)

// NewRequest normalizes raw webhook input into a handler request.
func NewRequest(phone, body string, step model.Step, c model.Context) Request {
	input := strings.TrimSpace(body)
	req := Request{Phone: phone, Input: input, Step: step, Context: c}
	if n, err := strconv.Atoi(input); err == nil {
		req.Choice = &n
	}
	return req
}

// menuRequested recognizes the global return-to-menu tokens every step
// honors.
func menuRequested(input string) bool {
	switch strings.ToUpper(strings.TrimSpace(input)) {
	case "0", "MENU", "MAIN":
		return true
	}
	return false
}

func toMainMenu() Response {
	return Response{NextStep: model.StepMainMenu, ClearContext: true}
}
