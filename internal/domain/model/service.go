package model

import "time"

// Service is read-mostly reference data; the bot never mutates it.
type Service struct {
	ID              string
	Name            string
	Description     string
	Price           float64
	DurationMinutes int
	Active          bool
	DisplayOrder    int
}

func (s *Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

// Barber is reference data plus aggregate counters maintained by the
// booking ledger.
type Barber struct {
	ID                string
	Name              string
	Bio               string
	Rating            float64
	Active            bool
	DisplayOrder      int
	TotalBookings     int
	CompletedBookings int
}
