package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Step names a state in the booking dialogue; it determines which handler
// processes the next inbound message. The machine is cyclic: every path
// eventually returns to MAIN_MENU.
type Step string

const (
	StepMainMenu          Step = "MAIN_MENU"
	StepViewServices      Step = "VIEW_SERVICES"
	StepFAQ               Step = "FAQ"
	StepSelectService     Step = "SELECT_SERVICE"
	StepSelectBarber      Step = "SELECT_BARBER"
	StepViewTodaySlots    Step = "VIEW_TODAY_SLOTS"
	StepViewTomorrowSlots Step = "VIEW_TOMORROW_SLOTS"
	StepConfirmBooking    Step = "CONFIRM_BOOKING"
	StepBookingConfirmed  Step = "BOOKING_CONFIRMED"
	StepViewMyBookings    Step = "VIEW_MY_BOOKINGS"
	StepCancelInput       Step = "CANCEL_INPUT"
	StepCancelConfirm     Step = "CANCEL_CONFIRM"
)

var validSteps = map[Step]struct{}{
	StepMainMenu: {}, StepViewServices: {}, StepFAQ: {},
	StepSelectService: {}, StepSelectBarber: {},
	StepViewTodaySlots: {}, StepViewTomorrowSlots: {},
	StepConfirmBooking: {}, StepBookingConfirmed: {},
	StepViewMyBookings: {}, StepCancelInput: {}, StepCancelConfirm: {},
}

// ParseStep returns StepMainMenu for anything it does not recognize, so a
// corrupted stored step can never strand a conversation.
func ParseStep(s string) Step {
	if _, ok := validSteps[Step(s)]; ok {
		return Step(s)
	}
	return StepMainMenu
}

const (
	// StageInitial tells a handler to render its opening view and ignore
	// the user input of this message.
	StageInitial = "initial"
	// StageReady tells a handler the opening view was already shown and
	// the input should be processed as a selection.
	StageReady = "ready"
)

// Context is the selection state accumulated across steps for one phone
// number. It is stored as a JSON blob and must round-trip exactly.
type Context struct {
	Stage       string `json:"stage,omitempty"`
	ServiceID   string `json:"service_id,omitempty"`
	BarberID    string `json:"barber_id,omitempty"`
	Date        string `json:"date,omitempty"` // 2006-01-02
	Time        string `json:"time,omitempty"` // 15:04
	BookingCode string `json:"booking_code,omitempty"`
	MenuShown   bool   `json:"menu_shown,omitempty"`
}

func InitialContext() Context { return Context{Stage: StageInitial} }

// IsInitial treats the zero value like the explicit sentinel: a brand-new
// session renders the opening view of its step.
func (c Context) IsInitial() bool {
	return c.Stage == StageInitial || c == (Context{})
}

func (c Context) Encode() (string, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encode context: %w", err)
	}
	return string(b), nil
}

func DecodeContext(s string) (Context, error) {
	if s == "" {
		return Context{}, nil
	}
	var c Context
	if err := json.Unmarshal([]byte(s), &c); err != nil {
		return Context{}, fmt.Errorf("decode context: %w", err)
	}
	return c, nil
}

// Session is one customer's conversation state. It is not the system of
// record for bookings, only for the in-progress dialogue, so it may expire
// and be recreated at MAIN_MENU at any time.
type Session struct {
	Phone        string    `json:"phone"`
	Step         Step      `json:"step"`
	Context      Context   `json:"context"`
	LastActivity time.Time `json:"last_activity"`
}

func NewSession(phone string) *Session {
	return &Session{
		Phone:        phone,
		Step:         StepMainMenu,
		Context:      InitialContext(),
		LastActivity: time.Now(),
	}
}
