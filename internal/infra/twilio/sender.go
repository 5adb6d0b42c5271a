// File: internal/infra/twilio/sender.go
package twilio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"barbershop-bot/internal/config"
	"barbershop-bot/internal/domain/ports/adapter"
)

const messagesEndpoint = "https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json"

var _ adapter.MessageSender = (*Sender)(nil)

// Sender delivers WhatsApp messages through Twilio's REST API.
type Sender struct {
	accountSID string
	authToken  string
	from       string
	http       *http.Client
	log        *zerolog.Logger
}

func NewSender(cfg *config.TwilioConfig, logger *zerolog.Logger) *Sender {
	l := logger.With().Str("component", "TwilioSender").Logger()
	return &Sender{
		accountSID: cfg.AccountSID,
		authToken:  cfg.AuthToken,
		from:       cfg.WhatsAppFrom,
		http:       &http.Client{Timeout: 10 * time.Second},
		log:        &l,
	}
}

// Send posts one outbound message. Callers treat failures as message loss,
// not conversation failure.
func (s *Sender) Send(ctx context.Context, phone, text string) error {
	form := url.Values{}
	form.Set("From", "whatsapp:"+s.from)
	form.Set("To", "whatsapp:"+phone)
	form.Set("Body", text)

	endpoint := fmt.Sprintf(messagesEndpoint, s.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build twilio request: %w", err)
	}
	req.SetBasicAuth(s.accountSID, s.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("twilio request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("twilio responded %d: %s", resp.StatusCode, string(body))
	}
	s.log.Debug().Str("to", phone).Msg("message sent")
	return nil
}
