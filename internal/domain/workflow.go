package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Actor is the identity performing an operation, as supplied by the
// identity provider. Roles are opaque strings.
type Actor struct {
	ID   uuid.UUID
	Name string
	Role string
}

// WorkflowDefinition is an immutable, declarative state machine for one
// business domain (NCR, Document, Expense, ...).
type WorkflowDefinition struct {
	Domain       string
	Name         string
	EntityType   string
	Stages       []WorkflowStage
	InitialStage string
	FinalStages  []string
}

// Stage returns the stage with the given id.
func (d *WorkflowDefinition) Stage(id string) (*WorkflowStage, bool) {
	for i := range d.Stages {
		if d.Stages[i].ID == id {
			return &d.Stages[i], true
		}
	}
	return nil, false
}

// IsFinal reports whether the stage id is one of the definition's final stages.
func (d *WorkflowDefinition) IsFinal(stageID string) bool {
	return slices.Contains(d.FinalStages, stageID)
}

// WorkflowStage is a named state with the roles that may act in it and the
// explicit action -> next stage table.
type WorkflowStage struct {
	ID             string
	Name           string
	RequiredRoles  []string // empty = any authenticated actor
	NextStages     []string // distinct targets in declaration order
	AllowedActions []string // actions in declaration order
	Transitions    map[string]string
	Outcome        StageOutcome // set on final stages only
}

// Authorizes reports whether role may act in this stage.
func (s *WorkflowStage) Authorizes(role string) bool {
	return len(s.RequiredRoles) == 0 || slices.Contains(s.RequiredRoles, role)
}

// Allows reports whether action is permitted in this stage.
func (s *WorkflowStage) Allows(action string) bool {
	return slices.Contains(s.AllowedActions, action)
}

// WorkflowInstance is the live state of one entity's approval lifecycle.
type WorkflowInstance struct {
	ID           uuid.UUID
	Domain       string
	EntityType   string
	EntityID     string
	CurrentStage string
	History      []WorkflowHistoryEntry
	Completed    bool
	Version      int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// WorkflowHistoryEntry records one action taken on an instance. Immutable once appended.
type WorkflowHistoryEntry struct {
	ID         uuid.UUID
	InstanceID uuid.UUID
	Stage      string
	ToStage    string
	Action     string
	Actor      Actor
	Comment    *string
	CreatedAt  time.Time
}
