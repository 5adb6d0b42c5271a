// File: internal/infra/redis/session_store.go
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"barbershop-bot/internal/config"
	"barbershop-bot/internal/domain/model"
	"barbershop-bot/internal/domain/ports/repository"
	"barbershop-bot/internal/infra/metrics"
)

var _ repository.SessionStore = (*SessionStore)(nil)

// SessionStore keeps conversation sessions in Redis with a TTL and degrades
// to an in-process cache when Redis misbehaves. Every Redis call is bounded
// by the configured op timeout; an expiry counts as a primary failure. While
// degraded the store re-probes Redis at most once per probe interval and,
// on recovery, copies the cached sessions back before resuming.
type SessionStore struct {
	client     RedisClient
	ttl        time.Duration
	opTimeout  time.Duration
	probeEvery time.Duration
	now        func() time.Time
	log        *zerolog.Logger

	// guarded state below; mu also serializes probe and migration so two
	// requests cannot both drain the fallback cache.
	mu        sync.Mutex
	down      bool
	lastProbe time.Time
	fb        *fallbackCache
}

func NewSessionStore(client RedisClient, cfg *config.RedisConfig, nowFn func() time.Time, logger *zerolog.Logger) *SessionStore {
	if nowFn == nil {
		nowFn = time.Now
	}
	l := logger.With().Str("component", "SessionStore").Logger()
	s := &SessionStore{
		client:     client,
		ttl:        cfg.SessionTTL,
		opTimeout:  cfg.OpTimeout,
		probeEvery: cfg.ProbeInterval,
		now:        nowFn,
		log:        &l,
	}
	return s
}

func (s *SessionStore) sessionKey(phone string) string {
	return "session:" + phone
}

// GetOrCreate prefers the primary tier. A missing key creates the session at
// MAIN_MENU; a transport failure flips the store into fallback mode.
func (s *SessionStore) GetOrCreate(ctx context.Context, phone string) (*model.Session, error) {
	if s.primaryUsable(ctx) {
		opCtx, cancel := context.WithTimeout(ctx, s.opTimeout)
		raw, err := s.client.Get(opCtx, s.sessionKey(phone))
		cancel()
		switch {
		case err == nil:
			sess, derr := decodeSession(raw)
			if derr != nil {
				// Corrupt payload: recreate rather than strand the phone.
				s.log.Warn().Err(derr).Msg("corrupt session payload, recreating")
				break
			}
			sess.Phone = phone
			return sess, nil
		case errors.Is(err, Nil):
			// fall through to create
		default:
			s.primaryFailed(err)
			return s.fallbackGetOrCreate(phone), nil
		}

		sess := model.NewSession(phone)
		sess.LastActivity = s.now()
		if err := s.primarySave(ctx, sess); err != nil {
			s.primaryFailed(err)
			s.fallbackTier().Put(*sess)
		}
		return sess, nil
	}
	return s.fallbackGetOrCreate(phone), nil
}

// Save upserts step and context and refreshes the TTL on whichever tier is
// currently serving.
func (s *SessionStore) Save(ctx context.Context, phone string, step model.Step, c model.Context) error {
	sess := &model.Session{
		Phone:        phone,
		Step:         step,
		Context:      c,
		LastActivity: s.now(),
	}
	if s.primaryUsable(ctx) {
		err := s.primarySave(ctx, sess)
		if err == nil {
			return nil
		}
		s.primaryFailed(err)
	}
	s.fallbackTier().Put(*sess)
	return nil
}

// Reset forces the session back to MAIN_MENU with the initial context.
func (s *SessionStore) Reset(ctx context.Context, phone string) error {
	return s.Save(ctx, phone, model.StepMainMenu, model.InitialContext())
}

func (s *SessionStore) primarySave(ctx context.Context, sess *model.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	opCtx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()
	return s.client.Set(opCtx, s.sessionKey(sess.Phone), data, s.ttl)
}

func decodeSession(raw string) (*model.Session, error) {
	var sess model.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	sess.Step = model.ParseStep(string(sess.Step))
	return &sess, nil
}

func (s *SessionStore) fallbackGetOrCreate(phone string) *model.Session {
	fb := s.fallbackTier()
	if sess, ok := fb.Get(phone); ok {
		return sess
	}
	sess := model.NewSession(phone)
	sess.LastActivity = s.now()
	fb.Put(*sess)
	return sess
}

// primaryUsable reports whether the primary tier should be tried. While
// degraded it probes Redis at most once per probe interval and migrates the
// fallback entries back on success.
func (s *SessionStore) primaryUsable(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.down {
		return true
	}
	now := s.now()
	if now.Sub(s.lastProbe) < s.probeEvery {
		return false
	}
	s.lastProbe = now

	opCtx, cancel := context.WithTimeout(ctx, s.opTimeout)
	err := s.client.Ping(opCtx)
	cancel()
	if err != nil {
		s.log.Debug().Err(err).Msg("primary tier still down")
		return false
	}

	migrated := 0
	for _, sess := range s.fb.Drain() {
		if err := s.primarySave(ctx, &sess); err != nil {
			s.log.Error().Err(err).Str("phone", sess.Phone).Msg("migrate session to primary")
			continue
		}
		migrated++
		metrics.IncSessionMigrations()
	}
	s.down = false
	s.fb = nil
	metrics.SetSessionFallbackActive(false)
	s.log.Info().Int("migrated", migrated).Msg("primary tier recovered")
	return true
}

// primaryFailed records a primary-tier error and activates the fallback
// cache on the first failure of an outage.
func (s *SessionStore) primaryFailed(err error) {
	metrics.IncSessionPrimaryErrors()
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.down {
		s.down = true
		s.lastProbe = s.now()
		if s.fb == nil {
			s.fb = newFallbackCache(s.ttl, s.now)
		}
		metrics.SetSessionFallbackActive(true)
		s.log.Error().Err(err).Msg("primary tier unavailable, serving from fallback cache")
	}
}

func (s *SessionStore) fallbackTier() *fallbackCache {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fb == nil {
		s.fb = newFallbackCache(s.ttl, s.now)
	}
	return s.fb
}
