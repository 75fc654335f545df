package rest

import (
	"net/http"
	"strings"

	"github.com/heartmarshall/doccontrol-backend/internal/transport/middleware"
)

// APIPrefix is the mount point of the versioned API.
const APIPrefix = "/api/v1"

// Handlers groups every REST handler the router mounts.
type Handlers struct {
	Health      *HealthHandler
	Approval    *ApprovalHandler
	Workflow    *WorkflowHandler
	Serial      *SerialHandler
	Revision    *RevisionHandler
	Transmittal *TransmittalHandler
	Audit       *AuditHandler
}

// NewRouter mounts the probes at the root and the API under APIPrefix.
// apiMW wraps only the API routes (auth, rate limiting).
func NewRouter(h Handlers, apiMW middleware.Middleware) http.Handler {
	api := http.NewServeMux()
	route := func(pattern string, fn http.HandlerFunc) {
		method, path, _ := strings.Cut(pattern, " ")
		api.HandleFunc(method+" "+APIPrefix+path, fn)
	}

	route("POST /approvals", h.Approval.Create)
	route("GET /approvals/inbox", h.Approval.Inbox)
	route("GET /approvals/history", h.Approval.History)
	route("GET /approvals/{id}", h.Approval.Get)
	route("POST /approvals/{id}/actions", h.Approval.Process)

	route("GET /workflows", h.Workflow.List)
	route("GET /workflows/stages/mine", h.Workflow.MyStages)
	route("GET /workflows/{domain}", h.Workflow.Get)

	route("POST /serials", h.Serial.Issue)
	route("GET /serials/validate", h.Serial.Validate)
	route("GET /serials/ledger/{category}", h.Serial.Ledger)
	route("POST /serials/reservations", h.Serial.Reserve)
	route("POST /serials/reservations/{id}/consume", h.Serial.Consume)

	route("POST /documents/{documentID}/revisions", h.Revision.Create)
	route("GET /documents/{documentID}/revisions", h.Revision.List)
	route("GET /documents/{documentID}/revisions/current", h.Revision.Current)
	route("GET /documents/{documentID}/revisions/compare", h.Revision.Compare)
	route("GET /revisions/{id}", h.Revision.Get)
	route("POST /revisions/{id}/submit", h.Revision.Submit)
	route("POST /revisions/{id}/approve", h.Revision.Approve)

	route("POST /transmittals", h.Transmittal.Create)
	route("GET /transmittals/pending", h.Transmittal.Pending)
	route("GET /transmittals/{id}", h.Transmittal.Get)
	route("GET /transmittals/{id}/history", h.Transmittal.History)
	route("GET /transmittals/{id}/cover-sheet", h.Transmittal.CoverSheet)
	route("POST /transmittals/{id}/send", h.Transmittal.Send)
	route("POST /transmittals/{id}/receive", h.Transmittal.Receive)
	route("POST /transmittals/{id}/acknowledge", h.Transmittal.Acknowledge)
	route("POST /transmittals/{id}/reject", h.Transmittal.Reject)
	route("GET /projects/{projectID}/transmittals", h.Transmittal.ListForProject)

	route("GET /audit", h.Audit.Query)

	api.HandleFunc(APIPrefix+"/", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", "no such endpoint")
	})

	root := http.NewServeMux()
	root.HandleFunc("GET /live", h.Health.Live)
	root.HandleFunc("GET /ready", h.Health.Ready)
	root.HandleFunc("GET /health", h.Health.Health)
	if apiMW == nil {
		root.Handle(APIPrefix+"/", api)
	} else {
		root.Handle(APIPrefix+"/", apiMW(api))
	}
	return root
}
