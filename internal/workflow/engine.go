// Package workflow implements the declarative multi-stage approval state machine.
// All functions here are pure: they never touch storage and never mutate their inputs.
package workflow

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/doccontrol-backend/internal/domain"
)

// CanPerformAction reports whether role may perform action while an instance
// sits in stage.
func CanPerformAction(def *domain.WorkflowDefinition, stage, action, role string) bool {
	s, ok := def.Stage(stage)
	if !ok || def.IsFinal(stage) {
		return false
	}
	return s.Allows(action) && s.Authorizes(role)
}

// NextStage resolves the explicit (stage, action) transition.
func NextStage(def *domain.WorkflowDefinition, stage, action string) (string, bool) {
	s, ok := def.Stage(stage)
	if !ok {
		return "", false
	}
	to, ok := s.Transitions[action]
	return to, ok
}

// IsComplete reports whether stage is final.
func IsComplete(def *domain.WorkflowDefinition, stage string) bool {
	return def.IsFinal(stage)
}

// Outcome returns the terminal outcome of stage, or StageOutcomeNone when the
// stage is not final.
func Outcome(def *domain.WorkflowDefinition, stage string) domain.StageOutcome {
	if !def.IsFinal(stage) {
		return domain.StageOutcomeNone
	}
	s, ok := def.Stage(stage)
	if !ok {
		return domain.StageOutcomeNone
	}
	return s.Outcome
}

// NewInstance returns a fresh instance positioned at the initial stage with
// empty history.
func NewInstance(def *domain.WorkflowDefinition, entityID string, now time.Time) domain.WorkflowInstance {
	return domain.WorkflowInstance{
		ID:           uuid.New(),
		Domain:       def.Domain,
		EntityType:   def.EntityType,
		EntityID:     entityID,
		CurrentStage: def.InitialStage,
		History:      []domain.WorkflowHistoryEntry{},
		Completed:    def.IsFinal(def.InitialStage),
		Version:      1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Transition applies action by actor to inst and returns the advanced copy.
//
// Action legality is checked before authorization: an action the stage does
// not declare yields ErrInvalidTransition regardless of role; a legal action
// by an unauthorized role yields ErrPermissionDenied. Either way inst is
// returned unchanged.
func Transition(
	def *domain.WorkflowDefinition,
	inst domain.WorkflowInstance,
	action string,
	actor domain.Actor,
	comment *string,
	now time.Time,
) (domain.WorkflowInstance, error) {
	transitionErr := func(err error, role string) error {
		return &domain.TransitionError{
			EntityType: inst.EntityType,
			EntityID:   inst.EntityID,
			Stage:      inst.CurrentStage,
			Action:     action,
			Role:       role,
			Err:        err,
		}
	}

	if inst.Completed || def.IsFinal(inst.CurrentStage) {
		return inst, transitionErr(domain.ErrInvalidTransition, "")
	}

	stage, ok := def.Stage(inst.CurrentStage)
	if !ok || !stage.Allows(action) {
		return inst, transitionErr(domain.ErrInvalidTransition, "")
	}
	to, ok := stage.Transitions[action]
	if !ok {
		return inst, transitionErr(domain.ErrInvalidTransition, "")
	}
	if _, ok := def.Stage(to); !ok {
		return inst, transitionErr(domain.ErrInvalidTransition, "")
	}

	if !stage.Authorizes(actor.Role) {
		return inst, transitionErr(domain.ErrPermissionDenied, actor.Role)
	}

	next := inst
	next.History = slices.Clone(inst.History)
	next.History = append(next.History, domain.WorkflowHistoryEntry{
		ID:         uuid.New(),
		InstanceID: inst.ID,
		Stage:      inst.CurrentStage,
		ToStage:    to,
		Action:     action,
		Actor:      actor,
		Comment:    comment,
		CreatedAt:  now,
	})
	next.CurrentStage = to
	next.Completed = def.IsFinal(to)
	next.UpdatedAt = now

	return next, nil
}
