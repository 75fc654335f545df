package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/doccontrol-backend/internal/domain"
)

type auditService interface {
	Query(ctx context.Context, f domain.AuditFilter) ([]domain.AuditLogEntry, error)
}

// AuditHandler serves the read side of the audit log.
type AuditHandler struct {
	svc auditService
	log *slog.Logger
}

// NewAuditHandler creates an AuditHandler.
func NewAuditHandler(svc auditService, logger *slog.Logger) *AuditHandler {
	return &AuditHandler{svc: svc, log: logger.With("handler", "audit")}
}

type auditEntryResponse struct {
	ID         string         `json:"id"`
	ActorID    string         `json:"actor_id"`
	ActorName  string         `json:"actor_name"`
	Action     string         `json:"action"`
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	EntityName string         `json:"entity_name,omitempty"`
	Before     map[string]any `json:"before,omitempty"`
	After      map[string]any `json:"after,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// Query handles GET /api/v1/audit with optional actor_id, entity_type,
// entity_id, action, from, to (RFC 3339), limit and offset.
func (h *AuditHandler) Query(w http.ResponseWriter, r *http.Request) {
	f, err := parseAuditFilter(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	entries, err := h.svc.Query(r.Context(), f)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]auditEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = auditEntryResponse{
			ID:         e.ID.String(),
			ActorID:    e.ActorID.String(),
			ActorName:  e.ActorName,
			Action:     string(e.Action),
			EntityType: string(e.EntityType),
			EntityID:   e.EntityID,
			EntityName: e.EntityName,
			Before:     e.Before,
			After:      e.After,
			Metadata:   e.Metadata,
			CreatedAt:  e.CreatedAt,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func parseAuditFilter(r *http.Request) (domain.AuditFilter, error) {
	q := r.URL.Query()
	var (
		f    domain.AuditFilter
		errs []domain.FieldError
		err  error
	)

	if f.ActorID, err = optionalUUID(q.Get("actor_id"), "actor_id"); err != nil {
		errs = append(errs, domain.FieldError{Field: "actor_id", Message: "must be a UUID"})
	}
	if v := q.Get("entity_type"); v != "" {
		et := domain.EntityType(v)
		f.EntityType = &et
	}
	if v := q.Get("entity_id"); v != "" {
		f.EntityID = &v
	}
	if v := q.Get("action"); v != "" {
		a := domain.AuditAction(v)
		f.Action = &a
	}
	for _, p := range []struct {
		name string
		dst  **time.Time
	}{{"from", &f.From}, {"to", &f.To}} {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		t, perr := time.Parse(time.RFC3339, v)
		if perr != nil {
			errs = append(errs, domain.FieldError{Field: p.name, Message: "must be an RFC 3339 timestamp"})
			continue
		}
		*p.dst = &t
	}
	if f.Limit, err = queryInt(r, "limit"); err != nil {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be an integer"})
	}
	if f.Offset, err = queryInt(r, "offset"); err != nil {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be an integer"})
	}

	if len(errs) > 0 {
		return domain.AuditFilter{}, domain.NewValidationErrors(errs)
	}
	return f, nil
}
