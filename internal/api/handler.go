package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"github.com/lux-bot/lux/internal/cogs"
	"github.com/lux-bot/lux/internal/metrics"
	"github.com/lux-bot/lux/internal/process"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// Handler exposes the bot's runtime state over HTTP.
type Handler struct {
	registry cogs.Registry
	state    *process.State
	metrics  *metrics.Metrics

	clock     func() time.Time
	startedAt time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// WithHandlerMetrics keeps the enabled-cogs gauge in sync with toggles.
func WithHandlerMetrics(m *metrics.Metrics) HandlerOption {
	return func(h *Handler) {
		h.metrics = m
	}
}

// NewHandler constructs a Handler with the provided dependencies.
func NewHandler(registry cogs.Registry, state *process.State, opts ...HandlerOption) *Handler {
	h := &Handler{
		registry: registry,
		state:    state,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	h.startedAt = h.clock()
	h.syncCogGauge()
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	now := h.clock()
	resp := healthResponse{
		Status:        "ok",
		Mode:          h.mode(),
		UptimeSeconds: int64(now.Sub(h.startedAt).Seconds()),
		Timestamp:     now,
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleListCogs(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := cogsResponse{
		Cogs:    h.registry.List(),
		Enabled: h.registry.EnabledCount(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetCog(w http.ResponseWriter, r *http.Request) {
	cog, err := h.registry.Get(r.PathValue("name"))
	if err != nil {
		writeCogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cog)
}

func (h *Handler) handlePutCog(w http.ResponseWriter, r *http.Request) {
	var req cogStateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}
	if req.Enabled == nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "enabled must be provided")
		return
	}

	name := r.PathValue("name")
	if err := h.registry.SetEnabled(name, *req.Enabled); err != nil {
		writeCogError(w, err)
		return
	}
	h.syncCogGauge()

	cog, err := h.registry.Get(name)
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cog)
}

func (h *Handler) mode() string {
	if h.state != nil && h.state.Production() {
		return "production"
	}
	return "debug"
}

func (h *Handler) syncCogGauge() {
	if h.metrics != nil {
		h.metrics.CogsEnabled.Set(float64(h.registry.EnabledCount()))
	}
}

func writeCogError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cogs.ErrUnknownCog):
		writeError(w, http.StatusNotFound, "Unknown cog", err.Error())
	case errors.Is(err, cogs.ErrInvalidCogName):
		writeError(w, http.StatusBadRequest, "Invalid cog name", err.Error())
	default:
		writeInternalError(w, err)
	}
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type cogStateRequest struct {
	Enabled *bool `json:"enabled"`
}

type cogsResponse struct {
	Cogs    []cogs.Cog `json:"cogs"`
	Enabled int        `json:"enabled"`
}

type healthResponse struct {
	Status        string    `json:"status"`
	Mode          string    `json:"mode"`
	UptimeSeconds int64     `json:"uptimeSeconds"`
	Timestamp     time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, errorResponse{
		Error:   message,
		Details: details,
	})
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
