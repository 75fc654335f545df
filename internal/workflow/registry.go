package workflow

import (
	"fmt"
	"sort"

	"github.com/heartmarshall/doccontrol-backend/internal/domain"
)

// Registry holds the validated workflow definitions known to the service.
// It is immutable after construction and safe for concurrent use.
type Registry struct {
	byDomain     map[string]*domain.WorkflowDefinition
	byEntityType map[string]*domain.WorkflowDefinition
}

// NewRegistry validates and indexes defs. Domains and entity types must be unique.
func NewRegistry(defs ...domain.WorkflowDefinition) (*Registry, error) {
	r := &Registry{
		byDomain:     make(map[string]*domain.WorkflowDefinition, len(defs)),
		byEntityType: make(map[string]*domain.WorkflowDefinition, len(defs)),
	}

	for i := range defs {
		def := defs[i]
		if err := Validate(def); err != nil {
			return nil, err
		}
		if _, dup := r.byDomain[def.Domain]; dup {
			return nil, fmt.Errorf("workflow %q: registered twice", def.Domain)
		}
		if _, dup := r.byEntityType[def.EntityType]; dup {
			return nil, fmt.Errorf("workflow %q: entity type %q already bound", def.Domain, def.EntityType)
		}
		r.byDomain[def.Domain] = &def
		r.byEntityType[def.EntityType] = &def
	}

	return r, nil
}

// Get returns the definition registered for a domain.
func (r *Registry) Get(workflowDomain string) (*domain.WorkflowDefinition, error) {
	def, ok := r.byDomain[workflowDomain]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownWorkflowDomain, workflowDomain)
	}
	return def, nil
}

// ForEntityType returns the definition governing entityType. Domain names are
// accepted as a fallback.
func (r *Registry) ForEntityType(entityType string) (*domain.WorkflowDefinition, error) {
	if def, ok := r.byEntityType[entityType]; ok {
		return def, nil
	}
	return r.Get(entityType)
}

// Domains lists registered domains in lexical order.
func (r *Registry) Domains() []string {
	out := make([]string, 0, len(r.byDomain))
	for d := range r.byDomain {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// AuthorizedStages lists every (entity type, stage) pair in which role may
// act. Stages without required roles are open to every role.
func (r *Registry) AuthorizedStages(role string) []domain.StageRef {
	var refs []domain.StageRef
	for _, d := range r.Domains() {
		def := r.byDomain[d]
		for i := range def.Stages {
			s := &def.Stages[i]
			if def.IsFinal(s.ID) || !s.Authorizes(role) {
				continue
			}
			refs = append(refs, domain.StageRef{EntityType: def.EntityType, Stage: s.ID})
		}
	}
	return refs
}
