package domain

import (
	"time"

	"github.com/google/uuid"
)

// ApprovalRequest is the durable handle on a workflow instance. Created 1:1
// with its instance and never deleted.
type ApprovalRequest struct {
	ID                 uuid.UUID
	EntityType         string
	EntityID           string
	WorkflowInstanceID uuid.UUID
	RequesterID        uuid.UUID
	RequesterName      string
	CurrentApproverID  *uuid.UUID
	Status             ApprovalStatus
	CurrentStage       string
	Comment            *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// StageRef names a stage within a workflow domain.
type StageRef struct {
	EntityType string
	Stage      string
}

// Notification is a message for one user about an entity.
type Notification struct {
	UserID     uuid.UUID
	Title      string
	Message    string
	EntityType string
	EntityID   string
}

// User is the local mirror of the identity provider's directory entry.
type User struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Role      string
	CreatedAt time.Time
}
