package repository

import (
	"context"

	"barbershop-bot/internal/domain/model"
)

// SessionStore keeps one conversation record per phone number. Availability
// trumps durability here: implementations may serve a degraded tier, and a
// lost session only costs the customer their in-progress dialogue.
type SessionStore interface {
	// GetOrCreate returns the existing session or a fresh one at MAIN_MENU
	// with the initial-view context. Calling it twice for an unseen phone
	// must not create two sessions.
	GetOrCreate(ctx context.Context, phone string) (*model.Session, error)

	// Save upserts step and context and refreshes the TTL.
	Save(ctx context.Context, phone string, step model.Step, c model.Context) error

	// Reset forces the session back to MAIN_MENU with the initial context.
	Reset(ctx context.Context, phone string) error
}
