package domain

import (
	"time"

	"github.com/google/uuid"
)

// SerialLedgerEntry is one issued serial number. The ledger is append-only.
type SerialLedgerEntry struct {
	ID            uuid.UUID
	Category      string
	Serial        string
	Sequence      int64
	Period        string // "" for category-wide sequences, "yymm" for monthly ones
	ProjectCode   *string
	ReservationID *uuid.UUID
	IssuedAt      time.Time
}

// SerialReservation is a short-lived lease on an issued serial number.
type SerialReservation struct {
	ID         uuid.UUID
	Serial     string
	Category   string
	HolderID   uuid.UUID
	ExpiresAt  time.Time
	ConsumedAt *time.Time
	ExpiredAt  *time.Time
	CreatedAt  time.Time
}

// IsExpired reports whether the lease lapsed before being consumed.
func (r *SerialReservation) IsExpired(now time.Time) bool {
	return r.ConsumedAt == nil && !r.ExpiresAt.After(now)
}

// IsConsumed reports whether the reservation has been used.
func (r *SerialReservation) IsConsumed() bool {
	return r.ConsumedAt != nil
}

// SerialCategory describes how serials of one category are numbered.
type SerialCategory struct {
	Code  string
	Start int64
	Width int
}
