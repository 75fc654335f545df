package domain

import (
	"time"

	"github.com/google/uuid"
)

// Party is one side of a transmittal.
type Party struct {
	ID           uuid.UUID
	Name         string
	Organization string
}

// Transmittal is a tracked dispatch of documents between two parties.
type Transmittal struct {
	ID          uuid.UUID
	Number      string
	ProjectID   uuid.UUID
	ProjectCode *string
	Subject     string
	Type        TransmittalType
	Status      TransmittalStatus
	Sender      Party
	Recipient   Party
	IssuedAt    *time.Time
	DueAt       *time.Time
	Documents   []TransmittalDocument
	Notes       *string
	CreatedBy   uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TransmittalDocument is a line item of a transmittal.
type TransmittalDocument struct {
	DocumentID     string
	DocumentNumber string
	Revision       string
	Copies         int
	Format         DocumentFormat
	Action         TransmittalAction
}

// TransmittalHistoryEntry is an append-only action record for one transmittal.
type TransmittalHistoryEntry struct {
	ID            uuid.UUID
	TransmittalID uuid.UUID
	Action        string
	FromStatus    *TransmittalStatus
	ToStatus      TransmittalStatus
	Actor         Actor
	Comment       *string
	CreatedAt     time.Time
}

// TransmittalStatusChange is a conditional status update: it applies only
// while the transmittal is in one of From.
type TransmittalStatusChange struct {
	From      []TransmittalStatus
	To        TransmittalStatus
	IssuedAt  *time.Time
	UpdatedAt time.Time
}
