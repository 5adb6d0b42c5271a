// File: internal/usecase/mocks_test.go
package usecase_test

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

// defaultShop mirrors the reference configuration used across the suite:
// 09:00-19:00, 15 min grid, 2h advance notice, closed Sundays.
func defaultShop() *config.ShopConfig {
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

func defaultLoyalty() *config.LoyaltyConfig {
	return &config.LoyaltyConfig{
		Enabled:           true,
		PointsPerBooking:  10,
		FirstBookingBonus: 25,
		Milestones:        []int{5, 10, 25, 50, 100},
	}
}

// memBookingRepo is a small in-memory implementation used by unit tests.
type memBookingRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Booking // by ID

	saveErr        error
	codeExistsFunc func(code string) (bool, error)
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{store: make(map[string]*model.Booking)}
}

func (m *memBookingRepo) Save(ctx context.Context, tx repository.Tx, b *model.Booking) error {
	if m.saveErr != nil {
		return m.saveErr
	}
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
	if m.codeExistsFunc != nil {
		return m.codeExistsFunc(code)
	}
	_, err := m.FindByCode(ctx, code)
	if err == nil {
		return true, nil
	}
	return false, nil
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
	// Serialization is provided by mockTxManager in these tests.
	return nil
}

func (m *memBookingRepo) FindDueForCompletion(ctx context.Context, now time.Time) ([]*model.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Booking
	for _, b := range m.store {
		if b.Status == model.BookingStatusConfirmed && b.End.Before(now) {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memBookingRepo) FindConfirmedByDate(ctx context.Context, date time.Time) ([]*model.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Booking
	for _, b := range m.store {
		if b.Status == model.BookingStatusConfirmed && b.Date.Equal(date) {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memBookingRepo) count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store)
}

type memServiceRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Service
}

func newMemServiceRepo(services ...*model.Service) *memServiceRepo {
	m := &memServiceRepo{store: make(map[string]*model.Service)}
	for _, s := range services {
		m.store[s.ID] = s
	}
	return m
}

func (m *memServiceRepo) FindByID(ctx context.Context, id string) (*model.Service, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memServiceRepo) FindActive(ctx context.Context) ([]*model.Service, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Service
	for _, s := range m.store {
		if s.Active {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memBarberRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Barber
}

func newMemBarberRepo(barbers ...*model.Barber) *memBarberRepo {
	m := &memBarberRepo{store: make(map[string]*model.Barber)}
	for _, b := range barbers {
		m.store[b.ID] = b
	}
	return m
}

func (m *memBarberRepo) FindByID(ctx context.Context, id string) (*model.Barber, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *memBarberRepo) FindActive(ctx context.Context) ([]*model.Barber, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Barber
	for _, b := range m.store {
		if b.Active {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memBarberRepo) IncrementTotalBookings(ctx context.Context, tx repository.Tx, barberID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.store[barberID]
	if !ok {
		return domain.ErrNotFound
	}
	b.TotalBookings++
	return nil
}

func (m *memBarberRepo) IncrementCompletedBookings(ctx context.Context, barberID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.store[barberID]
	if !ok {
		return domain.ErrNotFound
	}
	b.CompletedBookings++
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
	now := time.Now()
	c.LastBookingAt = &now
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

// mockTxManager serializes callbacks with a mutex, standing in for the
// per-barber advisory lock the Postgres implementation takes.
type mockTxManager struct {
	mu sync.Mutex
}

func newMockTxManager() *mockTxManager { return &mockTxManager{} }

func (m *mockTxManager) WithTx(ctx context.Context, _ pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx, nil)
}

// mockSender records outbound messages.
type mockSender struct {
	mu      sync.Mutex
	sent    []sentMessage
	sendErr error
}

type sentMessage struct {
	phone string
	text  string
}

func (m *mockSender) Send(ctx context.Context, phone, text string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMessage{phone: phone, text: text})
	return nil
}

func (m *mockSender) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}
