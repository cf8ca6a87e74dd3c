package model

import "time"

// Reservation is a confirmed booking: who holds it and which days it owns.
// The ID is generated at creation and never changes afterwards.
type Reservation struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Range     DateRange `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Clone returns a copy so callers can hand out reservations without exposing
// the stored record to mutation.
func (r *Reservation) Clone() *Reservation {
	cp := *r
	return &cp
}

// ReservationRequest is the raw, untyped input for create and update. Dates
// stay strings here; the validator is responsible for parsing them and
// applying the booking rules before anything touches the ledger.
type ReservationRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email,max=254"`
	Checkin   string `json:"checkin" validate:"required"`
	Checkout  string `json:"checkout" validate:"required"`
}
