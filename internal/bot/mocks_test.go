// File: internal/bot/mocks_test.go
package bot_test

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"barbershop-bot/internal/config"
	"barbershop-bot/internal/domain"
	"barbershop-bot/internal/domain/model"
	"barbershop-bot/internal/domain/ports/repository"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

func testShop() *config.ShopConfig {
	return &config.ShopConfig{
		Name:                "Test Shop",
		Address:             "1 Test Street",
		Opening:             "09:00",
		Closing:             "19:00",
		OpeningTime:         9 * time.Hour,
		ClosingTime:         19 * time.Hour,
		Closed:              []time.Weekday{time.Sunday},
		SlotIntervalMinutes: 15,
		MinAdvanceHours:     2,
		BookingHorizonDays:  7,
	}
}

func testLoyalty() *config.LoyaltyConfig {
	return &config.LoyaltyConfig{
		Enabled:           true,
		PointsPerBooking:  10,
		FirstBookingBonus: 25,
		Milestones:        []int{5, 10, 25, 50, 100},
	}
}

// memSessionStore keeps sessions in a map; failAll simulates a dead store.
type memSessionStore struct {
	mu      sync.Mutex
	store   map[string]*model.Session
	failAll bool
	saves   int
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{store: make(map[string]*model.Session)}
}

func (m *memSessionStore) GetOrCreate(ctx context.Context, phone string) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll {
		return nil, domain.ErrStoreUnavailable
	}
	if s, ok := m.store[phone]; ok {
		cp := *s
		return &cp, nil
	}
	s := model.NewSession(phone)
	cp := *s
	m.store[phone] = &cp
	out := *s
	return &out, nil
}

func (m *memSessionStore) Save(ctx context.Context, phone string, step model.Step, c model.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll {
		return domain.ErrStoreUnavailable
	}
	m.saves++
	m.store[phone] = &model.Session{Phone: phone, Step: step, Context: c, LastActivity: time.Now()}
	return nil
}

func (m *memSessionStore) Reset(ctx context.Context, phone string) error {
	return m.Save(ctx, phone, model.StepMainMenu, model.InitialContext())
}

func (m *memSessionStore) current(phone string) *model.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.store[phone]
	if !ok {
		return nil
	}
	cp := *s
	return &cp
}

type memServiceRepo struct {
	services []*model.Service
}

func (m *memServiceRepo) FindByID(ctx context.Context, id string) (*model.Service, error) {
	for _, s := range m.services {
		if s.ID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memServiceRepo) FindActive(ctx context.Context) ([]*model.Service, error) {
	var out []*model.Service
	for _, s := range m.services {
		if s.Active {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memBarberRepo struct {
	barbers []*model.Barber
}

func (m *memBarberRepo) FindByID(ctx context.Context, id string) (*model.Barber, error) {
	for _, b := range m.barbers {
		if b.ID == id {
			cp := *b
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memBarberRepo) FindActive(ctx context.Context) ([]*model.Barber, error) {
	var out []*model.Barber
	for _, b := range m.barbers {
		if b.Active {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memBarberRepo) IncrementTotalBookings(ctx context.Context, tx repository.Tx, barberID string) error {
	return nil
}

func (m *memBarberRepo) IncrementCompletedBookings(ctx context.Context, barberID string) error {
	return nil
}

type memCustomerRepo struct {
	mu    sync.Mutex
	store map[string]*model.Customer
}

func newMemCustomerRepo() *memCustomerRepo {
	return &memCustomerRepo{store: make(map[string]*model.Customer)}
}

func (m *memCustomerRepo) get(phone string) *model.Customer {
	c, ok := m.store[phone]
	if !ok {
		c = &model.Customer{Phone: phone, FirstSeenAt: time.Now()}
		m.store[phone] = c
	}
	return c
}

func (m *memCustomerRepo) GetOrCreate(ctx context.Context, phone string) (*model.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *m.get(phone)
	return &cp, nil
}

func (m *memCustomerRepo) RecordBooking(ctx context.Context, tx repository.Tx, phone string, points, firstBonus int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.get(phone)
	c.LoyaltyPoints += points
	if c.TotalBookings == 0 {
		c.LoyaltyPoints += firstBonus
	}
	c.TotalBookings++
	return nil
}

func (m *memCustomerRepo) RecordCancellation(ctx context.Context, phone string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.get(phone).CancelledBookings++
	return nil
}

func (m *memCustomerRepo) RecordCompletion(ctx context.Context, phone string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.get(phone).CompletedBookings++
	return nil
}

func (m *memCustomerRepo) RecordNoShow(ctx context.Context, phone string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.get(phone).NoShows++
	return nil
}

// memBookingRepo mirrors the ledger behavior the handlers depend on.
type memBookingRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Booking
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{store: make(map[string]*model.Booking)}
}

func (m *memBookingRepo) Save(ctx context.Context, tx repository.Tx, b *model.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *b
	m.store[b.ID] = &cp
	return nil
}

func (m *memBookingRepo) FindByCode(ctx context.Context, code string) (*model.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, b := range m.store {
		if b.Code == code {
			cp := *b
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memBookingRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	_, err := m.FindByCode(ctx, code)
	return err == nil, nil
}

func (m *memBookingRepo) FindActiveByCustomer(ctx context.Context, phone string) ([]*model.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Booking
	for _, b := range m.store {
		if b.CustomerPhone == phone && b.Status == model.BookingStatusConfirmed {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memBookingRepo) FindActiveByBarberAndDate(ctx context.Context, barberID string, date time.Time) ([]*model.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Booking
	for _, b := range m.store {
		if b.BarberID == barberID && b.Date.Equal(date) && b.Active() {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memBookingRepo) CountOverlapping(ctx context.Context, tx repository.Tx, barberID string, date, start, end time.Time) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, b := range m.store {
		if b.BarberID == barberID && b.Date.Equal(date) && b.Active() &&
			model.Overlaps(b.Start, b.End, start, end) {
			n++
		}
	}
	return n, nil
}

func (m *memBookingRepo) LockBarberDate(ctx context.Context, tx repository.Tx, barberID string, date time.Time) error {
	return nil
}

func (m *memBookingRepo) FindDueForCompletion(ctx context.Context, now time.Time) ([]*model.Booking, error) {
	return nil, nil
}

func (m *memBookingRepo) FindConfirmedByDate(ctx context.Context, date time.Time) ([]*model.Booking, error) {
	return nil, nil
}

type mockTxManager struct {
	mu sync.Mutex
}

func (m *mockTxManager) WithTx(ctx context.Context, _ pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx, nil)
}
