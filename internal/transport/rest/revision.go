package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/doccontrol-backend/internal/domain"
	"github.com/heartmarshall/doccontrol-backend/internal/service/revision"
)

type revisionService interface {
	CreateRevision(ctx context.Context, input revision.CreateInput) (domain.DocumentRevision, error)
	GetCurrentRevision(ctx context.Context, documentID string) (domain.DocumentRevision, error)
	GetRevision(ctx context.Context, id uuid.UUID) (domain.DocumentRevision, error)
	ListRevisions(ctx context.Context, documentID string) ([]domain.DocumentRevision, error)
	CompareRevisions(ctx context.Context, input revision.CompareInput) (domain.RevisionComparison, error)
	SubmitForReview(ctx context.Context, revisionID uuid.UUID) (domain.DocumentRevision, error)
	ApproveRevision(ctx context.Context, revisionID uuid.UUID) (domain.DocumentRevision, error)
}

// RevisionHandler serves document revisions.
type RevisionHandler struct {
	svc revisionService
	log *slog.Logger
}

// NewRevisionHandler creates a RevisionHandler.
func NewRevisionHandler(svc revisionService, logger *slog.Logger) *RevisionHandler {
	return &RevisionHandler{svc: svc, log: logger.With("handler", "revision")}
}

type createRevisionRequest struct {
	ArtifactRef string  `json:"artifact_ref"`
	Size        int64   `json:"size"`
	Changes     *string `json:"changes"`
}

type revisionResponse struct {
	ID          string     `json:"id"`
	DocumentID  string     `json:"document_id"`
	Letter      string     `json:"letter"`
	Version     int        `json:"version"`
	Status      string     `json:"status"`
	ArtifactRef string     `json:"artifact_ref"`
	Size        int64      `json:"size"`
	CreatedBy   string     `json:"created_by"`
	ApprovedBy  *uuid.UUID `json:"approved_by,omitempty"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	Changes     *string    `json:"changes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type comparisonResponse struct {
	Old           revisionResponse `json:"old"`
	New           revisionResponse `json:"new"`
	ChangeSummary []string         `json:"change_summary"`
}

// Create handles POST /api/v1/documents/{documentID}/revisions.
func (h *RevisionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRevisionRequest
	if err := decode(w, r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	rev, err := h.svc.CreateRevision(r.Context(), revision.CreateInput{
		DocumentID:  r.PathValue("documentID"),
		ArtifactRef: req.ArtifactRef,
		Size:        req.Size,
		Changes:     req.Changes,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRevisionResponse(rev))
}

// List handles GET /api/v1/documents/{documentID}/revisions.
func (h *RevisionHandler) List(w http.ResponseWriter, r *http.Request) {
	revs, err := h.svc.ListRevisions(r.Context(), r.PathValue("documentID"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	out := make([]revisionResponse, len(revs))
	for i := range revs {
		out[i] = toRevisionResponse(revs[i])
	}
	writeJSON(w, http.StatusOK, out)
}

// Current handles GET /api/v1/documents/{documentID}/revisions/current.
func (h *RevisionHandler) Current(w http.ResponseWriter, r *http.Request) {
	rev, err := h.svc.GetCurrentRevision(r.Context(), r.PathValue("documentID"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toRevisionResponse(rev))
}

// Compare handles GET /api/v1/documents/{documentID}/revisions/compare?a=&b=.
func (h *RevisionHandler) Compare(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	cmp, err := h.svc.CompareRevisions(r.Context(), revision.CompareInput{
		DocumentID: r.PathValue("documentID"),
		A:          q.Get("a"),
		B:          q.Get("b"),
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	summary := cmp.ChangeSummary
	if summary == nil {
		summary = []string{}
	}
	writeJSON(w, http.StatusOK, comparisonResponse{
		Old:           toRevisionResponse(cmp.Old),
		New:           toRevisionResponse(cmp.New),
		ChangeSummary: summary,
	})
}

// Get handles GET /api/v1/revisions/{id}.
func (h *RevisionHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.byID(w, r, h.svc.GetRevision)
}

// Submit handles POST /api/v1/revisions/{id}/submit.
func (h *RevisionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	h.byID(w, r, h.svc.SubmitForReview)
}

// Approve handles POST /api/v1/revisions/{id}/approve.
func (h *RevisionHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.byID(w, r, h.svc.ApproveRevision)
}

func (h *RevisionHandler) byID(
	w http.ResponseWriter,
	r *http.Request,
	op func(context.Context, uuid.UUID) (domain.DocumentRevision, error),
) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	rev, err := op(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toRevisionResponse(rev))
}

func toRevisionResponse(r domain.DocumentRevision) revisionResponse {
	return revisionResponse{
		ID:          r.ID.String(),
		DocumentID:  r.DocumentID,
		Letter:      r.Letter,
		Version:     r.Version,
		Status:      string(r.Status),
		ArtifactRef: r.ArtifactRef,
		Size:        r.Size,
		CreatedBy:   r.CreatedBy.String(),
		ApprovedBy:  r.ApprovedBy,
		ApprovedAt:  r.ApprovedAt,
		Changes:     r.Changes,
		CreatedAt:   r.CreatedAt,
	}
}
