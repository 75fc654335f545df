package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/doccontrol-backend/internal/domain"
	"github.com/heartmarshall/doccontrol-backend/internal/service/approval"
)

type approvalService interface {
	CreateApprovalRequest(ctx context.Context, input approval.CreateRequestInput) (approval.Detail, error)
	ProcessApproval(ctx context.Context, input approval.ProcessInput) (approval.Detail, error)
	GetApprovalRequests(ctx context.Context, input approval.ListInput) ([]domain.ApprovalRequest, error)
	GetApprovalHistory(ctx context.Context, input approval.ListInput) ([]domain.ApprovalRequest, error)
	GetApprovalRequest(ctx context.Context, id uuid.UUID) (approval.Detail, error)
	AvailableActions(ctx context.Context, d approval.Detail) ([]string, error)
}

// ApprovalHandler serves /approvals.
type ApprovalHandler struct {
	svc approvalService
	log *slog.Logger
}

// NewApprovalHandler creates an ApprovalHandler.
func NewApprovalHandler(svc approvalService, logger *slog.Logger) *ApprovalHandler {
	return &ApprovalHandler{svc: svc, log: logger.With("handler", "approval")}
}

type createApprovalRequest struct {
	EntityType string  `json:"entity_type"`
	EntityID   string  `json:"entity_id"`
	Comment    *string `json:"comment"`
}

type processApprovalRequest struct {
	Action  string  `json:"action"`
	Comment *string `json:"comment"`
}

type approvalResponse struct {
	ID                 string     `json:"id"`
	EntityType         string     `json:"entity_type"`
	EntityID           string     `json:"entity_id"`
	WorkflowInstanceID string     `json:"workflow_instance_id"`
	RequesterID        string     `json:"requester_id"`
	RequesterName      string     `json:"requester_name"`
	CurrentApproverID  *uuid.UUID `json:"current_approver_id,omitempty"`
	Status             string     `json:"status"`
	CurrentStage       string     `json:"current_stage"`
	Comment            *string    `json:"comment,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type approvalDetailResponse struct {
	approvalResponse
	Version          int                    `json:"version"`
	Completed        bool                   `json:"completed"`
	History          []workflowStepResponse `json:"history"`
	AvailableActions []string               `json:"available_actions"`
}

type workflowStepResponse struct {
	Stage     string    `json:"stage"`
	ToStage   string    `json:"to_stage"`
	Action    string    `json:"action"`
	ActorID   string    `json:"actor_id"`
	ActorName string    `json:"actor_name"`
	ActorRole string    `json:"actor_role"`
	Comment   *string   `json:"comment,omitempty"`
	At        time.Time `json:"at"`
}

// Create handles POST /api/v1/approvals.
func (h *ApprovalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createApprovalRequest
	if err := decode(w, r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	d, err := h.svc.CreateApprovalRequest(r.Context(), approval.CreateRequestInput{
		EntityType: req.EntityType,
		EntityID:   req.EntityID,
		Comment:    req.Comment,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	h.writeDetail(w, r, http.StatusCreated, d)
}

// Get handles GET /api/v1/approvals/{id}.
func (h *ApprovalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	d, err := h.svc.GetApprovalRequest(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	h.writeDetail(w, r, http.StatusOK, d)
}

// Process handles POST /api/v1/approvals/{id}/actions.
func (h *ApprovalHandler) Process(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	var req processApprovalRequest
	if err := decode(w, r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	d, err := h.svc.ProcessApproval(r.Context(), approval.ProcessInput{
		RequestID: id,
		Action:    req.Action,
		Comment:   req.Comment,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	h.writeDetail(w, r, http.StatusOK, d)
}

// Inbox handles GET /api/v1/approvals/inbox?limit=.
func (h *ApprovalHandler) Inbox(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.svc.GetApprovalRequests)
}

// History handles GET /api/v1/approvals/history?limit=.
func (h *ApprovalHandler) History(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.svc.GetApprovalHistory)
}

func (h *ApprovalHandler) list(
	w http.ResponseWriter,
	r *http.Request,
	fetch func(context.Context, approval.ListInput) ([]domain.ApprovalRequest, error),
) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	reqs, err := fetch(r.Context(), approval.ListInput{Limit: limit})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]approvalResponse, len(reqs))
	for i := range reqs {
		out[i] = toApprovalResponse(reqs[i])
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *ApprovalHandler) writeDetail(w http.ResponseWriter, r *http.Request, status int, d approval.Detail) {
	actions, err := h.svc.AvailableActions(r.Context(), d)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	if actions == nil {
		actions = []string{}
	}

	history := make([]workflowStepResponse, len(d.Instance.History))
	for i, e := range d.Instance.History {
		history[i] = workflowStepResponse{
			Stage:     e.Stage,
			ToStage:   e.ToStage,
			Action:    e.Action,
			ActorID:   e.Actor.ID.String(),
			ActorName: e.Actor.Name,
			ActorRole: e.Actor.Role,
			Comment:   e.Comment,
			At:        e.CreatedAt,
		}
	}

	writeJSON(w, status, approvalDetailResponse{
		approvalResponse: toApprovalResponse(d.Request),
		Version:          d.Instance.Version,
		Completed:        d.Instance.Completed,
		History:          history,
		AvailableActions: actions,
	})
}

func toApprovalResponse(a domain.ApprovalRequest) approvalResponse {
	return approvalResponse{
		ID:                 a.ID.String(),
		EntityType:         a.EntityType,
		EntityID:           a.EntityID,
		WorkflowInstanceID: a.WorkflowInstanceID.String(),
		RequesterID:        a.RequesterID.String(),
		RequesterName:      a.RequesterName,
		CurrentApproverID:  a.CurrentApproverID,
		Status:             string(a.Status),
		CurrentStage:       a.CurrentStage,
		Comment:            a.Comment,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}
