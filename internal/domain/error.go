package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound                = errors.New("entity not found")
	ErrInvalidArgument         = errors.New("invalid argument")
	ErrSlotUnavailable         = errors.New("time slot is no longer available")
	ErrShopClosed              = errors.New("shop is closed on that day")
	ErrOutsideBusinessHours    = errors.New("time is outside business hours")
	ErrBookingInPast           = errors.New("booking time is in the past")
	ErrInsufficientNotice      = errors.New("booking does not meet minimum advance notice")
	ErrNotBookingOwner         = errors.New("booking belongs to a different customer")
	ErrBookingAlreadyCancelled = errors.New("booking is already cancelled")
	ErrInvalidBookingCode      = errors.New("invalid booking code format")
	ErrStoreUnavailable        = errors.New("session store unavailable")
	ErrInvalidExecContext      = errors.New("invalid query execution context")
)
