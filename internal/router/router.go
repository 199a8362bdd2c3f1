// Package router translates tagged action requests into prompt/response
// cycles. Every invocation is independent: decode, dispatch, respond, done.
package router

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"leadflow/internal/actions"
	findleads "leadflow/internal/actions/discovery/find-leads"
	"leadflow/internal/activity"
	apperrors "leadflow/internal/common/errors"
	"leadflow/internal/common/logger"
	"leadflow/internal/common/metrics"
	"leadflow/internal/common/observability"
	"leadflow/internal/leadindex"
	"leadflow/internal/outreach"
	"leadflow/internal/usage"
	"leadflow/internal/users"
	"leadflow/pkg/catalog"
)

const userIDHeader = "X-User-ID"

// envelope is the response wrapper; data and error are mutually exclusive.
type envelope struct {
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// Router dispatches the closed action set and the supporting endpoints.
type Router struct {
	handlers map[catalog.Action]actions.Handler
	logger   logger.Logger

	// Optional collaborators; nil disables the feature.
	activity *activity.Store
	usage    *usage.Tracker
	leads    *leadindex.Index
	outreach *outreach.Service
	users    *users.Store
	obs      *observability.Observability
}

// Option configures optional collaborators on the Router.
type Option func(*Router)

func WithActivityStore(s *activity.Store) Option      { return func(r *Router) { r.activity = s } }
func WithUsageTracker(t *usage.Tracker) Option        { return func(r *Router) { r.usage = t } }
func WithLeadIndex(x *leadindex.Index) Option         { return func(r *Router) { r.leads = x } }
func WithOutreach(s *outreach.Service) Option         { return func(r *Router) { r.outreach = s } }
func WithUserStore(s *users.Store) Option             { return func(r *Router) { r.users = s } }
func WithObservability(o *observability.Observability) Option {
	return func(r *Router) { r.obs = o }
}

func New(handlerList []actions.Handler, log logger.Logger, opts ...Option) *Router {
	handlers := make(map[catalog.Action]actions.Handler, len(handlerList))
	for _, h := range handlerList {
		handlers[h.Name()] = h
	}

	r := &Router{
		handlers: handlers,
		logger: log.With(map[string]interface{}{
			"component": "router",
		}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Handler returns the HTTP handler for the service routes.
func (r *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/actions", r.handleActions)
	mux.HandleFunc("/v1/outreach/send", r.handleOutreachSend)
	mux.HandleFunc("/v1/leads/search", r.handleLeadSearch)
	mux.HandleFunc("/healthz", r.handleHealthz)
	return mux
}

func writeCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-User-ID")
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	ae := apperrors.AsActionError(err)
	writeJSON(w, ae.HTTPStatus(), envelope{Error: ae.Message})
}

func (r *Router) handleActions(w http.ResponseWriter, req *http.Request) {
	writeCORS(w)

	switch req.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusNoContent)
		return
	case http.MethodPost:
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(req.Body)
	if err != nil {
		writeError(w, apperrors.NewBadRequestError(err.Error()))
		return
	}

	var probe struct {
		Action string `json:"action"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		writeError(w, apperrors.NewBadRequestError("request body must be JSON"))
		return
	}

	// Unknown actions are rejected before any upstream cost is incurred.
	if _, ok := catalog.Lookup(probe.Action); !ok {
		writeError(w, apperrors.NewUnknownActionError(probe.Action))
		return
	}
	handler, ok := r.handlers[catalog.Action(probe.Action)]
	if !ok {
		writeError(w, apperrors.NewUnknownActionError(probe.Action))
		return
	}

	userID := req.Header.Get(userIDHeader)
	if err := r.checkSuspension(req.Context(), userID); err != nil {
		writeError(w, err)
		return
	}

	started := time.Now()
	metrics.ActionRequests.WithLabelValues(probe.Action).Inc()

	result, err := handler.Handle(req.Context(), body)

	duration := time.Since(started)
	metrics.ActionDuration.WithLabelValues(probe.Action).Observe(duration.Seconds())
	if r.obs != nil {
		r.obs.RecordActionDuration(req.Context(), probe.Action, duration)
	}

	if err != nil {
		ae := apperrors.AsActionError(err)
		metrics.ActionFailures.WithLabelValues(probe.Action, string(ae.Kind)).Inc()
		if r.obs != nil {
			r.obs.RecordActionProcessed(req.Context(), probe.Action, "failed")
		}
		r.logger.Error("action failed", map[string]interface{}{
			"action": probe.Action,
			"kind":   string(ae.Kind),
			"error":  ae.Message,
		})
		writeError(w, ae)
		return
	}

	if r.obs != nil {
		r.obs.RecordActionProcessed(req.Context(), probe.Action, "completed")
	}
	r.afterSuccess(req.Context(), userID, probe.Action, result)

	writeJSON(w, http.StatusOK, envelope{Data: result})
}

// afterSuccess runs the best-effort collaborators. None of them can fail the
// action; failures are logged and dropped.
func (r *Router) afterSuccess(ctx context.Context, userID, action string, result interface{}) {
	if r.activity != nil && userID != "" {
		if err := r.activity.Record(ctx, userID, action); err != nil {
			r.logger.Warn("activity log write failed", map[string]interface{}{
				"action": action,
				"error":  err.Error(),
			})
		}
	}

	if r.usage != nil && userID != "" {
		if _, err := r.usage.Increment(ctx, userID, action); err != nil {
			r.logger.Warn("usage counter update failed", map[string]interface{}{
				"action": action,
				"error":  err.Error(),
			})
		}
	}

	if r.leads != nil && action == string(catalog.FindLeads) {
		if out, ok := result.(*findleads.Output); ok {
			if err := r.leads.IndexLeads(ctx, out.Leads); err != nil {
				r.logger.Warn("lead indexing failed", map[string]interface{}{
					"count": len(out.Leads),
					"error": err.Error(),
				})
			}
		}
	}
}

func (r *Router) checkSuspension(ctx context.Context, userID string) error {
	if r.users == nil || userID == "" {
		return nil
	}
	suspended, err := r.users.IsSuspended(ctx, userID)
	if err != nil {
		// The suspension check is advisory; a store outage must not take
		// the action path down with it.
		r.logger.Warn("suspension check failed", map[string]interface{}{
			"userId": userID,
			"error":  err.Error(),
		})
		return nil
	}
	if suspended {
		return apperrors.NewSuspendedError(userID)
	}
	return nil
}

func (r *Router) handleOutreachSend(w http.ResponseWriter, req *http.Request) {
	writeCORS(w)

	switch req.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusNoContent)
		return
	case http.MethodPost:
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if !r.outreach.Enabled() {
		writeJSON(w, http.StatusNotImplemented, envelope{Error: "outreach delivery is not configured"})
		return
	}

	var delivery outreach.Request
	if err := json.NewDecoder(req.Body).Decode(&delivery); err != nil {
		writeError(w, apperrors.NewBadRequestError("request body must be JSON"))
		return
	}

	result, err := r.outreach.Send(req.Context(), &delivery)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Data: result})
}

func (r *Router) handleLeadSearch(w http.ResponseWriter, req *http.Request) {
	writeCORS(w)

	if req.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if r.leads == nil {
		writeJSON(w, http.StatusNotImplemented, envelope{Error: "lead search is not configured"})
		return
	}

	query := req.URL.Query().Get("q")
	if query == "" {
		writeError(w, apperrors.NewBadRequestError("q is required"))
		return
	}
	size, _ := strconv.Atoi(req.URL.Query().Get("size"))

	leads, err := r.leads.Search(req.Context(), query, size)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Data: leads})
}

func (r *Router) handleHealthz(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
