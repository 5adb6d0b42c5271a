package model

import "time"

// Customer accumulates booking lifecycle counters and loyalty points per
// phone number. Rows are created lazily on first booking.
type Customer struct {
	Phone             string
	FirstSeenAt       time.Time
	LastBookingAt     *time.Time
	TotalBookings     int
	CompletedBookings int
	CancelledBookings int
	NoShows           int
	LoyaltyPoints     int
}
