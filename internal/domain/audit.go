package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditLogEntry records a state change. Write-once.
type AuditLogEntry struct {
	ID         uuid.UUID
	ActorID    uuid.UUID
	ActorName  string
	Action     AuditAction
	EntityType EntityType
	EntityID   string
	EntityName string
	Before     map[string]any
	After      map[string]any
	Metadata   map[string]any
	CreatedAt  time.Time
}

// AuditFilter narrows an audit query. Zero values mean "any".
type AuditFilter struct {
	ActorID    *uuid.UUID
	EntityType *EntityType
	EntityID   *string
	Action     *AuditAction
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// NewAuditEntry builds an entry attributed to actor.
func NewAuditEntry(actor Actor, action AuditAction, entityType EntityType, entityID string) AuditLogEntry {
	return AuditLogEntry{
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
	}
}
