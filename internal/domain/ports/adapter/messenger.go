// File: internal/domain/ports/adapter/messenger.go
package adapter

import "context"

// MessageSender is the outbound WhatsApp channel. Delivery is
// fire-and-forget: callers log and swallow failures, because conversation
// state has already advanced by the time a reply is sent.
type MessageSender interface {
	Send(ctx context.Context, phone string, text string) error
}
