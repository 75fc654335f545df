package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/doccontrol-backend/internal/domain"
	"github.com/heartmarshall/doccontrol-backend/internal/service/transmittal"
)

type transmittalService interface {
	Create(ctx context.Context, input transmittal.CreateInput) (domain.Transmittal, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Transmittal, error)
	ListForProject(ctx context.Context, projectID uuid.UUID) ([]domain.Transmittal, error)
	ListPendingFor(ctx context.Context, userID uuid.UUID) ([]domain.Transmittal, error)
	History(ctx context.Context, id uuid.UUID) ([]domain.TransmittalHistoryEntry, error)
	GenerateCoverSheet(ctx context.Context, id uuid.UUID) ([]byte, error)
	Send(ctx context.Context, id uuid.UUID) (domain.Transmittal, error)
	MarkReceived(ctx context.Context, id uuid.UUID) (domain.Transmittal, error)
	Acknowledge(ctx context.Context, id uuid.UUID, comment *string) (domain.Transmittal, error)
	Reject(ctx context.Context, id uuid.UUID, comment string) (domain.Transmittal, error)
}

// TransmittalHandler serves /transmittals.
type TransmittalHandler struct {
	svc transmittalService
	log *slog.Logger
}

// NewTransmittalHandler creates a TransmittalHandler.
func NewTransmittalHandler(svc transmittalService, logger *slog.Logger) *TransmittalHandler {
	return &TransmittalHandler{svc: svc, log: logger.With("handler", "transmittal")}
}

type partyPayload struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Organization string    `json:"organization,omitempty"`
}

type transmittalDocumentPayload struct {
	DocumentID     string `json:"document_id"`
	DocumentNumber string `json:"document_number,omitempty"`
	Revision       string `json:"revision,omitempty"`
	Copies         int    `json:"copies"`
	Format         string `json:"format"`
	Action         string `json:"action"`
}

type createTransmittalRequest struct {
	ProjectID   uuid.UUID                    `json:"project_id"`
	ProjectCode *string                      `json:"project_code"`
	Subject     string                       `json:"subject"`
	Type        string                       `json:"type"`
	Sender      *partyPayload                `json:"sender"`
	Recipient   partyPayload                 `json:"recipient"`
	DueAt       *time.Time                   `json:"due_at"`
	Documents   []transmittalDocumentPayload `json:"documents"`
	Notes       *string                      `json:"notes"`
}

type commentRequest struct {
	Comment *string `json:"comment"`
}

type transmittalResponse struct {
	ID          string                       `json:"id"`
	Number      string                       `json:"number"`
	ProjectID   string                       `json:"project_id"`
	ProjectCode *string                      `json:"project_code,omitempty"`
	Subject     string                       `json:"subject"`
	Type        string                       `json:"type"`
	Status      string                       `json:"status"`
	Sender      partyPayload                 `json:"sender"`
	Recipient   partyPayload                 `json:"recipient"`
	IssuedAt    *time.Time                   `json:"issued_at,omitempty"`
	DueAt       *time.Time                   `json:"due_at,omitempty"`
	Documents   []transmittalDocumentPayload `json:"documents"`
	Notes       *string                      `json:"notes,omitempty"`
	CreatedBy   string                       `json:"created_by"`
	CreatedAt   time.Time                    `json:"created_at"`
	UpdatedAt   time.Time                    `json:"updated_at"`
}

type transmittalHistoryResponse struct {
	Action     string    `json:"action"`
	FromStatus *string   `json:"from_status,omitempty"`
	ToStatus   string    `json:"to_status"`
	ActorID    string    `json:"actor_id"`
	ActorName  string    `json:"actor_name"`
	Comment    *string   `json:"comment,omitempty"`
	At         time.Time `json:"at"`
}

// Create handles POST /api/v1/transmittals.
func (h *TransmittalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTransmittalRequest
	if err := decode(w, r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	in := transmittal.CreateInput{
		ProjectID:   req.ProjectID,
		ProjectCode: req.ProjectCode,
		Subject:     req.Subject,
		Type:        domain.TransmittalType(req.Type),
		Recipient:   domain.Party(req.Recipient),
		DueAt:       req.DueAt,
		Notes:       req.Notes,
		Documents:   make([]domain.TransmittalDocument, len(req.Documents)),
	}
	if req.Sender != nil {
		in.Sender = domain.Party(*req.Sender)
	}
	for i, d := range req.Documents {
		in.Documents[i] = domain.TransmittalDocument{
			DocumentID:     d.DocumentID,
			DocumentNumber: d.DocumentNumber,
			Revision:       d.Revision,
			Copies:         d.Copies,
			Format:         domain.DocumentFormat(d.Format),
			Action:         domain.TransmittalAction(d.Action),
		}
	}

	t, err := h.svc.Create(r.Context(), in)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTransmittalResponse(t))
}

// Get handles GET /api/v1/transmittals/{id}.
func (h *TransmittalHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.byID(w, r, h.svc.Get)
}

// Send handles POST /api/v1/transmittals/{id}/send.
func (h *TransmittalHandler) Send(w http.ResponseWriter, r *http.Request) {
	h.byID(w, r, h.svc.Send)
}

// Receive handles POST /api/v1/transmittals/{id}/receive.
func (h *TransmittalHandler) Receive(w http.ResponseWriter, r *http.Request) {
	h.byID(w, r, h.svc.MarkReceived)
}

// Acknowledge handles POST /api/v1/transmittals/{id}/acknowledge.
func (h *TransmittalHandler) Acknowledge(w http.ResponseWriter, r *http.Request) {
	h.withComment(w, r, h.svc.Acknowledge)
}

// Reject handles POST /api/v1/transmittals/{id}/reject.
func (h *TransmittalHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.withComment(w, r, func(ctx context.Context, id uuid.UUID, comment *string) (domain.Transmittal, error) {
		c := ""
		if comment != nil {
			c = *comment
		}
		return h.svc.Reject(ctx, id, c)
	})
}

// History handles GET /api/v1/transmittals/{id}/history.
func (h *TransmittalHandler) History(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	entries, err := h.svc.History(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	out := make([]transmittalHistoryResponse, len(entries))
	for i, e := range entries {
		var from *string
		if e.FromStatus != nil {
			s := string(*e.FromStatus)
			from = &s
		}
		out[i] = transmittalHistoryResponse{
			Action:     e.Action,
			FromStatus: from,
			ToStatus:   string(e.ToStatus),
			ActorID:    e.Actor.ID.String(),
			ActorName:  e.Actor.Name,
			Comment:    e.Comment,
			At:         e.CreatedAt,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// CoverSheet handles GET /api/v1/transmittals/{id}/cover-sheet.
func (h *TransmittalHandler) CoverSheet(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	pdf, err := h.svc.GenerateCoverSheet(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.Header().Set("Content-Disposition", `inline; filename="transmittal-`+id.String()+`.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

// ListForProject handles GET /api/v1/projects/{projectID}/transmittals.
func (h *TransmittalHandler) ListForProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathUUID(r, "projectID")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	h.writeList(w, r, func(ctx context.Context) ([]domain.Transmittal, error) {
		return h.svc.ListForProject(ctx, projectID)
	})
}

// Pending handles GET /api/v1/transmittals/pending?user_id=. Without
// user_id it lists the caller's own pending transmittals.
func (h *TransmittalHandler) Pending(w http.ResponseWriter, r *http.Request) {
	userID, err := optionalUUID(r.URL.Query().Get("user_id"), "user_id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	h.writeList(w, r, func(ctx context.Context) ([]domain.Transmittal, error) {
		if userID == nil {
			return h.svc.ListPendingFor(ctx, uuid.Nil)
		}
		return h.svc.ListPendingFor(ctx, *userID)
	})
}

func (h *TransmittalHandler) writeList(
	w http.ResponseWriter,
	r *http.Request,
	fetch func(context.Context) ([]domain.Transmittal, error),
) {
	ts, err := fetch(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	out := make([]transmittalResponse, len(ts))
	for i := range ts {
		out[i] = toTransmittalResponse(ts[i])
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *TransmittalHandler) byID(
	w http.ResponseWriter,
	r *http.Request,
	op func(context.Context, uuid.UUID) (domain.Transmittal, error),
) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	t, err := op(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransmittalResponse(t))
}

func (h *TransmittalHandler) withComment(
	w http.ResponseWriter,
	r *http.Request,
	op func(context.Context, uuid.UUID, *string) (domain.Transmittal, error),
) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	var req commentRequest
	if r.ContentLength != 0 {
		if err := decode(w, r, &req); err != nil {
			handleError(w, r, h.log, err)
			return
		}
	}
	t, err := op(r.Context(), id, req.Comment)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransmittalResponse(t))
}

func toTransmittalResponse(t domain.Transmittal) transmittalResponse {
	docs := make([]transmittalDocumentPayload, len(t.Documents))
	for i, d := range t.Documents {
		docs[i] = transmittalDocumentPayload{
			DocumentID:     d.DocumentID,
			DocumentNumber: d.DocumentNumber,
			Revision:       d.Revision,
			Copies:         d.Copies,
			Format:         string(d.Format),
			Action:         string(d.Action),
		}
	}
	return transmittalResponse{
		ID:          t.ID.String(),
		Number:      t.Number,
		ProjectID:   t.ProjectID.String(),
		ProjectCode: t.ProjectCode,
		Subject:     t.Subject,
		Type:        string(t.Type),
		Status:      string(t.Status),
		Sender:      partyPayload(t.Sender),
		Recipient:   partyPayload(t.Recipient),
		IssuedAt:    t.IssuedAt,
		DueAt:       t.DueAt,
		Documents:   docs,
		Notes:       t.Notes,
		CreatedBy:   t.CreatedBy.String(),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
