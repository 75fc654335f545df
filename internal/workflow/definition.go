package workflow

import (
	"errors"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/doccontrol-backend/internal/domain"
)

// definitionFile is the on-disk YAML shape of a workflow definition.
type definitionFile struct {
	Domain       string      `yaml:"domain"`
	Name         string      `yaml:"name"`
	EntityType   string      `yaml:"entity_type"`
	InitialStage string      `yaml:"initial_stage"`
	FinalStages  []string    `yaml:"final_stages"`
	Stages       []stageFile `yaml:"stages"`
}

type stageFile struct {
	ID          string           `yaml:"id"`
	Name        string           `yaml:"name"`
	Roles       []string         `yaml:"roles"`
	Outcome     string           `yaml:"outcome"`
	Transitions []transitionFile `yaml:"transitions"`
}

type transitionFile struct {
	Action string `yaml:"action"`
	To     string `yaml:"to"`
}

// Parse decodes a YAML workflow definition and validates it.
func Parse(data []byte) (domain.WorkflowDefinition, error) {
	var f definitionFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return domain.WorkflowDefinition{}, fmt.Errorf("decode definition: %w", err)
	}

	def, err := f.toDomain()
	if err != nil {
		return domain.WorkflowDefinition{}, err
	}
	if err := Validate(def); err != nil {
		return domain.WorkflowDefinition{}, err
	}
	return def, nil
}

func (f definitionFile) toDomain() (domain.WorkflowDefinition, error) {
	def := domain.WorkflowDefinition{
		Domain:       f.Domain,
		Name:         f.Name,
		EntityType:   f.EntityType,
		InitialStage: f.InitialStage,
		FinalStages:  f.FinalStages,
		Stages:       make([]domain.WorkflowStage, 0, len(f.Stages)),
	}
	if def.EntityType == "" {
		def.EntityType = def.Domain
	}

	for _, sf := range f.Stages {
		stage := domain.WorkflowStage{
			ID:            sf.ID,
			Name:          sf.Name,
			RequiredRoles: sf.Roles,
			Outcome:       domain.StageOutcome(sf.Outcome),
			Transitions:   make(map[string]string, len(sf.Transitions)),
		}
		for _, tr := range sf.Transitions {
			if _, dup := stage.Transitions[tr.Action]; dup {
				return domain.WorkflowDefinition{}, fmt.Errorf("workflow %q: stage %q: duplicate action %q", f.Domain, sf.ID, tr.Action)
			}
			stage.Transitions[tr.Action] = tr.To
			stage.AllowedActions = append(stage.AllowedActions, tr.Action)
			if !slices.Contains(stage.NextStages, tr.To) {
				stage.NextStages = append(stage.NextStages, tr.To)
			}
		}
		def.Stages = append(def.Stages, stage)
	}

	return def, nil
}

// Validate checks the structural rules every definition must satisfy before it
// can be registered. All problems are reported together.
func Validate(def domain.WorkflowDefinition) error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if def.Domain == "" {
		fail("domain is required")
	}
	if len(def.Stages) == 0 {
		fail("at least one stage is required")
	}

	ids := make(map[string]bool, len(def.Stages))
	for _, s := range def.Stages {
		if s.ID == "" {
			fail("stage id is required")
			continue
		}
		if ids[s.ID] {
			fail("duplicate stage %q", s.ID)
		}
		ids[s.ID] = true
	}

	if !ids[def.InitialStage] {
		fail("initial stage %q is not defined", def.InitialStage)
	}
	if len(def.FinalStages) == 0 {
		fail("at least one final stage is required")
	}
	if def.IsFinal(def.InitialStage) {
		fail("initial stage %q must not be final", def.InitialStage)
	}

	for _, s := range def.Stages {
		final := def.IsFinal(s.ID)
		switch {
		case final && len(s.AllowedActions) > 0:
			fail("final stage %q must not declare actions", s.ID)
		case final && s.Outcome != domain.StageOutcomeApproved && s.Outcome != domain.StageOutcomeRejected:
			fail("final stage %q needs an outcome of approved or rejected", s.ID)
		case !final && s.Outcome != domain.StageOutcomeNone:
			fail("non-final stage %q must not declare an outcome", s.ID)
		case !final && len(s.AllowedActions) == 0:
			fail("stage %q has no actions and is not final", s.ID)
		}

		for _, action := range s.AllowedActions {
			to := s.Transitions[action]
			if action == "" {
				fail("stage %q declares an empty action", s.ID)
			}
			if !ids[to] {
				fail("stage %q action %q targets undefined stage %q", s.ID, action, to)
			}
		}
	}

	for _, id := range def.FinalStages {
		if !ids[id] {
			fail("final stage %q is not defined", id)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("workflow %q: %w", def.Domain, errors.Join(errs...))
	}
	return nil
}
