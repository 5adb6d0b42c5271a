// File: internal/infra/web/webhook.go
package web

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"barbershop-bot/internal/infra/logging"
	"barbershop-bot/internal/infra/metrics"
	"barbershop-bot/internal/infra/twilio"
)

// emptyTwiML acknowledges the webhook without an inline reply; the actual
// message goes out through the REST sender.
const emptyTwiML = `<?xml version="1.0" encoding="UTF-8"?><Response></Response>`

const sendTimeout = 15 * time.Second

// handleWebhook accepts one inbound WhatsApp message. The response is always
// 200 with empty TwiML: the reply rides the outbound channel, and its loss
// is acceptable once the conversation state has advanced.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	if s.twilio.ValidateSignature {
		sig := r.Header.Get("X-Twilio-Signature")
		fullURL := s.twilio.PublicURL + r.URL.Path
		if !twilio.ValidSignature(s.twilio.AuthToken, fullURL, r.PostForm, sig) {
			s.log.Warn().Msg("webhook signature rejected")
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
	}

	phone := strings.TrimPrefix(r.PostFormValue("From"), "whatsapp:")
	body := r.PostFormValue("Body")
	if phone == "" {
		http.Error(w, "missing sender", http.StatusBadRequest)
		return
	}

	traceID := ulid.Make().String()
	ctx := logging.WithTraceID(logging.WithPhone(r.Context(), phone), traceID)
	log := logging.With(ctx, s.log)

	reply := s.dispatcher.HandleMessage(ctx, phone, body)
	if reply != "" {
		go s.deliver(phone, reply, traceID)
	}

	log.Debug().Int("reply_chars", len(reply)).Msg("webhook handled")
	w.Header().Set("Content-Type", "text/xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(emptyTwiML))
}

// deliver runs detached from the request so a slow Twilio call cannot hold
// the webhook open. Failures are logged and swallowed.
func (s *Server) deliver(phone, text, traceID string) {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()
	if err := s.sender.Send(ctx, phone, text); err != nil {
		s.log.Error().Err(err).Str("trace_id", traceID).Msg("outbound delivery failed")
		return
	}
	metrics.IncRepliesSent()
}
