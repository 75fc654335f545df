package rest

import (
	"context"
	"net/http"
	"sort"
	"time"
)

const healthTimeout = 3 * time.Second

// Check probes one dependency.
type Check func(ctx context.Context) error

// Component is a named dependency probe. A failing critical component takes
// the service down; a failing optional one only degrades it.
type Component struct {
	Name     string
	Check    Check
	Critical bool
}

// HealthHandler serves the /live, /ready and /health probes.
type HealthHandler struct {
	components []Component
	version    string
	now        func() time.Time
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(version string, components ...Component) *HealthHandler {
	sorted := append([]Component(nil), components...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	return &HealthHandler{components: sorted, version: version, now: time.Now}
}

// HealthResponse is the JSON body of every probe.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the result of one component probe.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
}

// Live always answers 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: h.now()})
}

// Ready answers 503 when a critical component is down.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	status, _ := h.probe(r.Context(), true)
	code := http.StatusOK
	if status == "down" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, HealthResponse{Status: status, Timestamp: h.now()})
}

// Health probes every component and reports latency and version.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status, comps := h.probe(r.Context(), false)
	code := http.StatusOK
	if status == "down" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, HealthResponse{
		Status:     status,
		Version:    h.version,
		Components: comps,
		Timestamp:  h.now(),
	})
}

// probe returns "ok", "degraded" or "down".
func (h *HealthHandler) probe(ctx context.Context, criticalOnly bool) (string, map[string]CompStatus) {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	overall := "ok"
	comps := make(map[string]CompStatus, len(h.components))
	for _, c := range h.components {
		if criticalOnly && !c.Critical {
			continue
		}
		start := time.Now()
		err := c.Check(ctx)
		latency := time.Since(start)

		if err == nil {
			comps[c.Name] = CompStatus{Status: "ok", Latency: latency.String()}
			continue
		}
		comps[c.Name] = CompStatus{Status: "down"}
		switch {
		case c.Critical:
			overall = "down"
		case overall == "ok":
			overall = "degraded"
		}
	}
	return overall, comps
}
