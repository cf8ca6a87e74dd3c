package errors

import "errors"

// Error kinds the engine and validator return. The service layer maps these
// onto transport-facing AppErrors; nothing here is fatal, and every failed
// operation leaves the ledger and store untouched.
var (
	ErrNotFound = errors.New("reservation not found")

	ErrCampsiteUnavailable = errors.New("campsite is already booked for the requested dates")

	ErrOutOfRange = errors.New("requested dates fall outside the bookable horizon")

	ErrInvalidFormat = errors.New("invalid date format, expected YYYY-MM-DD")

	ErrInvalidRange = errors.New("checkout date must not precede checkin date")

	ErrStayTooLong = errors.New("stay exceeds the maximum booking length")

	ErrOutOfBookingWindow = errors.New("checkin date is outside the advance booking window")
)
