// File: internal/infra/twilio/noop.go
package twilio

import (
	"context"

	"github.com/rs/zerolog"

	"barbershop-bot/internal/domain/ports/adapter"
)

var _ adapter.MessageSender = (*NoopSender)(nil)

// NoopSender logs outbound messages instead of delivering them. Used in dev
// mode, where the webhook reply already carries the text as TwiML would.
type NoopSender struct {
	log *zerolog.Logger
}

func NewNoopSender(logger *zerolog.Logger) *NoopSender {
	l := logger.With().Str("component", "NoopSender").Logger()
	return &NoopSender{log: &l}
}

func (s *NoopSender) Send(_ context.Context, phone, text string) error {
	s.log.Info().Str("to", phone).Int("chars", len(text)).Msg("outbound message suppressed")
	return nil
}
