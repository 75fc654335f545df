package rest

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/doccontrol-backend/internal/domain"
	"github.com/heartmarshall/doccontrol-backend/pkg/ctxutil"
)

type workflowCatalog interface {
	Domains() []string
	Get(workflowDomain string) (*domain.WorkflowDefinition, error)
	AuthorizedStages(role string) []domain.StageRef
}

// WorkflowHandler exposes the loaded workflow definitions read-only.
type WorkflowHandler struct {
	catalog workflowCatalog
	log     *slog.Logger
}

// NewWorkflowHandler creates a WorkflowHandler.
func NewWorkflowHandler(catalog workflowCatalog, logger *slog.Logger) *WorkflowHandler {
	return &WorkflowHandler{catalog: catalog, log: logger.With("handler", "workflow")}
}

type workflowResponse struct {
	Domain       string          `json:"domain"`
	Name         string          `json:"name"`
	EntityType   string          `json:"entity_type"`
	InitialStage string          `json:"initial_stage"`
	FinalStages  []string        `json:"final_stages"`
	Stages       []stageResponse `json:"stages"`
}

type stageResponse struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	RequiredRoles []string          `json:"required_roles"`
	Actions       []string          `json:"actions"`
	Transitions   map[string]string `json:"transitions"`
	Outcome       string            `json:"outcome,omitempty"`
}

type stageRefResponse struct {
	EntityType string `json:"entity_type"`
	Stage      string `json:"stage"`
}

// List handles GET /api/v1/workflows.
func (h *WorkflowHandler) List(w http.ResponseWriter, r *http.Request) {
	domains := h.catalog.Domains()
	out := make([]workflowResponse, 0, len(domains))
	for _, d := range domains {
		def, err := h.catalog.Get(d)
		if err != nil {
			handleError(w, r, h.log, err)
			return
		}
		out = append(out, toWorkflowResponse(def))
	}
	writeJSON(w, http.StatusOK, out)
}

// Get handles GET /api/v1/workflows/{domain}.
func (h *WorkflowHandler) Get(w http.ResponseWriter, r *http.Request) {
	def, err := h.catalog.Get(r.PathValue("domain"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toWorkflowResponse(def))
}

// MyStages handles GET /api/v1/workflows/stages/mine: the stages the
// caller's role may act on.
func (h *WorkflowHandler) MyStages(w http.ResponseWriter, r *http.Request) {
	actor, ok := ctxutil.ActorFromCtx(r.Context())
	if !ok {
		handleError(w, r, h.log, domain.ErrUnauthorized)
		return
	}
	refs := h.catalog.AuthorizedStages(actor.Role)
	out := make([]stageRefResponse, len(refs))
	for i, ref := range refs {
		out[i] = stageRefResponse{EntityType: ref.EntityType, Stage: ref.Stage}
	}
	writeJSON(w, http.StatusOK, out)
}

func toWorkflowResponse(def *domain.WorkflowDefinition) workflowResponse {
	stages := make([]stageResponse, len(def.Stages))
	for i, s := range def.Stages {
		roles := s.RequiredRoles
		if roles == nil {
			roles = []string{}
		}
		transitions := s.Transitions
		if transitions == nil {
			transitions = map[string]string{}
		}
		stages[i] = stageResponse{
			ID:            s.ID,
			Name:          s.Name,
			RequiredRoles: roles,
			Actions:       s.AllowedActions,
			Transitions:   transitions,
			Outcome:       string(s.Outcome),
		}
	}
	return workflowResponse{
		Domain:       def.Domain,
		Name:         def.Name,
		EntityType:   def.EntityType,
		InitialStage: def.InitialStage,
		FinalStages:  def.FinalStages,
		Stages:       stages,
	}
}
