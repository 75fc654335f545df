package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/doccontrol-backend/internal/domain"
	"github.com/heartmarshall/doccontrol-backend/internal/service/serial"
)

type serialService interface {
	Issue(ctx context.Context, input serial.IssueInput) (domain.SerialLedgerEntry, error)
	Ledger(ctx context.Context, category string, limit int) ([]domain.SerialLedgerEntry, error)
	Reserve(ctx context.Context, input serial.ReserveInput) (domain.SerialReservation, error)
	Consume(ctx context.Context, reservationID, holderID uuid.UUID) (domain.SerialReservation, error)
}

// SerialHandler serves /serials.
type SerialHandler struct {
	svc serialService
	log *slog.Logger
}

// NewSerialHandler creates a SerialHandler.
func NewSerialHandler(svc serialService, logger *slog.Logger) *SerialHandler {
	return &SerialHandler{svc: svc, log: logger.With("handler", "serial")}
}

type issueSerialRequest struct {
	Category    string  `json:"category"`
	ProjectCode *string `json:"project_code"`
}

type reserveSerialRequest struct {
	Category string     `json:"category"`
	HolderID *uuid.UUID `json:"holder_id"`
}

type consumeReservationRequest struct {
	HolderID *uuid.UUID `json:"holder_id"`
}

type serialResponse struct {
	ID            string     `json:"id"`
	Category      string     `json:"category"`
	Serial        string     `json:"serial"`
	Sequence      int64      `json:"sequence"`
	Period        string     `json:"period,omitempty"`
	ProjectCode   *string    `json:"project_code,omitempty"`
	ReservationID *uuid.UUID `json:"reservation_id,omitempty"`
	IssuedAt      time.Time  `json:"issued_at"`
}

type reservationResponse struct {
	ID         string     `json:"id"`
	Serial     string     `json:"serial"`
	Category   string     `json:"category"`
	HolderID   string     `json:"holder_id"`
	ExpiresAt  time.Time  `json:"expires_at"`
	ConsumedAt *time.Time `json:"consumed_at,omitempty"`
	ExpiredAt  *time.Time `json:"expired_at,omitempty"`
}

type validateSerialResponse struct {
	Serial   string         `json:"serial"`
	Category string         `json:"category,omitempty"`
	Valid    bool           `json:"valid"`
	Parts    *partsResponse `json:"parts,omitempty"`
}

type partsResponse struct {
	ProjectCode string `json:"project_code,omitempty"`
	Prefix      string `json:"prefix"`
	Category    string `json:"category"`
	Period      string `json:"period,omitempty"`
	Number      int64  `json:"number"`
}

// Issue handles POST /api/v1/serials.
func (h *SerialHandler) Issue(w http.ResponseWriter, r *http.Request) {
	var req issueSerialRequest
	if err := decode(w, r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	e, err := h.svc.Issue(r.Context(), serial.IssueInput{Category: req.Category, ProjectCode: req.ProjectCode})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSerialResponse(e))
}

// Ledger handles GET /api/v1/serials/ledger/{category}?limit=.
func (h *SerialHandler) Ledger(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	entries, err := h.svc.Ledger(r.Context(), r.PathValue("category"), limit)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	out := make([]serialResponse, len(entries))
	for i := range entries {
		out[i] = toSerialResponse(entries[i])
	}
	writeJSON(w, http.StatusOK, out)
}

// Validate handles GET /api/v1/serials/validate?serial=&category=. It is a
// pure format check; it does not consult the ledger.
func (h *SerialHandler) Validate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	raw := strings.TrimSpace(q.Get("serial"))
	if raw == "" {
		handleError(w, r, h.log, domain.NewValidationError("serial", "required"))
		return
	}
	category := strings.ToUpper(strings.TrimSpace(q.Get("category")))

	resp := validateSerialResponse{Serial: raw, Category: category}
	if parts, err := serial.Parse(raw); err == nil {
		resp.Parts = &partsResponse{
			ProjectCode: parts.ProjectCode,
			Prefix:      parts.Prefix,
			Category:    parts.Category,
			Period:      parts.Period,
			Number:      parts.Number,
		}
		resp.Valid = category == "" || serial.Validate(raw, category)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Reserve handles POST /api/v1/serials/reservations.
func (h *SerialHandler) Reserve(w http.ResponseWriter, r *http.Request) {
	var req reserveSerialRequest
	if err := decode(w, r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	in := serial.ReserveInput{Category: req.Category}
	if req.HolderID != nil {
		in.HolderID = *req.HolderID
	}
	res, err := h.svc.Reserve(r.Context(), in)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toReservationResponse(res))
}

// Consume handles POST /api/v1/serials/reservations/{id}/consume.
func (h *SerialHandler) Consume(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	var req consumeReservationRequest
	if r.ContentLength != 0 {
		if err := decode(w, r, &req); err != nil {
			handleError(w, r, h.log, err)
			return
		}
	}
	holder := uuid.Nil
	if req.HolderID != nil {
		holder = *req.HolderID
	}
	res, err := h.svc.Consume(r.Context(), id, holder)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toReservationResponse(res))
}

func toSerialResponse(e domain.SerialLedgerEntry) serialResponse {
	return serialResponse{
		ID:            e.ID.String(),
		Category:      e.Category,
		Serial:        e.Serial,
		Sequence:      e.Sequence,
		Period:        e.Period,
		ProjectCode:   e.ProjectCode,
		ReservationID: e.ReservationID,
		IssuedAt:      e.IssuedAt,
	}
}

func toReservationResponse(r domain.SerialReservation) reservationResponse {
	return reservationResponse{
		ID:         r.ID.String(),
		Serial:     r.Serial,
		Category:   r.Category,
		HolderID:   r.HolderID.String(),
		ExpiresAt:  r.ExpiresAt,
		ConsumedAt: r.ConsumedAt,
		ExpiredAt:  r.ExpiredAt,
	}
}
