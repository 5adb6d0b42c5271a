// File: internal/bot/dispatcher.go
package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"barbershop-bot/internal/domain/model"
	"barbershop-bot/internal/domain/ports/repository"
	"barbershop-bot/internal/infra/metrics"
)

// maxHops bounds auto-continuation so two handlers that keep returning
// empty replies at each other cannot loop forever.
const maxHops = 2

const (
	genericErrorReply = "⚠️ Something went wrong. Let's start over!\n\n0️⃣ Main Menu"
	techTroubleReply  = "We're experiencing technical difficulties. Please try again in a moment."
)

// Dispatcher routes one inbound message to the handler registered for the
// session's current step, persists the resulting transition and performs
// bounded auto-continuation. Handler failures never cross this boundary:
// they become the generic error reply plus a session reset.
type Dispatcher struct {
	sessions repository.SessionStore
	registry map[model.Step]HandlerFunc
	fallback HandlerFunc
	log      *zerolog.Logger
}

func NewDispatcher(sessions repository.SessionStore, logger *zerolog.Logger) *Dispatcher {
	l := logger.With().Str("component", "Dispatcher").Logger()
	d := &Dispatcher{
		sessions: sessions,
		registry: make(map[model.Step]HandlerFunc),
		log:      &l,
	}
	d.fallback = d.fallbackHandler
	return d
}

// Register binds a handler to a step. The registry is resolved once at
// startup; exactly one handler claims each step.
func (d *Dispatcher) Register(step model.Step, h HandlerFunc) {
	if _, dup := d.registry[step]; dup {
		panic(fmt.Sprintf("bot: handler already registered for step %s", step))
	}
	d.registry[step] = h
}

// HandleMessage processes one inbound message and returns the reply text to
// hand to the outbound channel. It always returns actionable text and leaves
// the session in a valid, resumable step.
func (d *Dispatcher) HandleMessage(ctx context.Context, phone, body string) string {
	metrics.IncMessagesReceived()

	sess, err := d.sessions.GetOrCreate(ctx, phone)
	if err != nil {
		d.log.Error().Err(err).Msg("load session failed on both tiers")
		return techTroubleReply
	}

	req := NewRequest(phone, body, sess.Step, sess.Context)
	resp, ok := d.dispatchOnce(ctx, req)
	if !ok {
		return genericErrorReply
	}

	for hop := 0; resp.Message == "" && resp.NextStep != ""; hop++ {
		if hop >= maxHops {
			d.log.Warn().Str("step", string(resp.NextStep)).Msg("auto-continuation cap exceeded")
			return genericErrorReply
		}
		sess, err = d.sessions.GetOrCreate(ctx, phone)
		if err != nil {
			d.log.Error().Err(err).Msg("reload session for auto-continuation")
			return techTroubleReply
		}
		resp, ok = d.dispatchOnce(ctx, NewRequest(phone, "", sess.Step, sess.Context))
		if !ok {
			return genericErrorReply
		}
	}

	return resp.Message
}

// dispatchOnce runs a single handler invocation and persists its
// transition. The second return value is false when the handler failed and
// the session was force-reset.
func (d *Dispatcher) dispatchOnce(ctx context.Context, req Request) (Response, bool) {
	started := time.Now()
	resp, err := d.safeDispatch(ctx, req)
	metrics.ObserveDispatchMs(string(req.Step), float64(time.Since(started).Milliseconds()))
	if err != nil {
		metrics.IncDispatchErrors()
		d.log.Error().Err(err).Str("step", string(req.Step)).Str("input", req.Input).
			Msg("handler failed; resetting session")
		if rerr := d.sessions.Reset(ctx, req.Phone); rerr != nil {
			d.log.Error().Err(rerr).Msg("session reset failed")
		}
		return Response{}, false
	}

	if err := d.persist(ctx, req, resp); err != nil {
		// The reply is still worth delivering; the next message will
		// recreate the session if this write was lost.
		d.log.Error().Err(err).Str("step", string(resp.NextStep)).Msg("persist session transition")
	}
	return resp, true
}

// safeDispatch converts handler panics into errors so one conversation can
// never take down the process.
func (d *Dispatcher) safeDispatch(ctx context.Context, req Request) (resp Response, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic on step %s: %v", req.Step, r)
		}
	}()

	h, ok := d.registry[req.Step]
	if !ok {
		h = d.fallback
	}
	return h(ctx, req)
}

func (d *Dispatcher) persist(ctx context.Context, req Request, resp Response) error {
	step := resp.NextStep
	if step == "" {
		step = req.Step
	}
	switch {
	case resp.ClearContext:
		return d.sessions.Save(ctx, req.Phone, step, model.InitialContext())
	case resp.Context != nil:
		return d.sessions.Save(ctx, req.Phone, step, *resp.Context)
	default:
		return d.sessions.Save(ctx, req.Phone, step, req.Context)
	}
}

// fallbackHandler claims any step nothing else does: it honors the global
// menu tokens and otherwise re-renders the current step through an empty
// reply rather than inventing its own text.
func (d *Dispatcher) fallbackHandler(_ context.Context, req Request) (Response, error) {
	if menuRequested(req.Input) {
		return toMainMenu(), nil
	}
	return Response{NextStep: req.Step, Context: &req.Context}, nil
}
