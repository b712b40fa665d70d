package rest

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"sync/atomic"

	"github.com/afland/duende-publisher/internal/events/application"
	"github.com/afland/duende-publisher/internal/platform/logger"
)

// TriggerHandler exposes the batch to external schedulers over HTTP. One
// batch at a time: a second trigger while a run is in flight gets a 409
// rather than a competing claim loop in the same process.
type TriggerHandler struct {
	creator *application.CreatorService
	secret  string
	logger  logger.Logger
	running atomic.Bool
}

// NewTriggerHandler creates a new trigger handler
func NewTriggerHandler(creator *application.CreatorService, secret string, logger logger.Logger) *TriggerHandler {
	return &TriggerHandler{
		creator: creator,
		secret:  secret,
		logger:  logger,
	}
}

// PostRun handles POST /run
func (h *TriggerHandler) PostRun(w http.ResponseWriter, r *http.Request) {
	if h.secret != "" {
		provided := r.Header.Get("X-Trigger-Secret")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(h.secret)) != 1 {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
	}

	if !h.running.CompareAndSwap(false, true) {
		http.Error(w, "a batch is already running", http.StatusConflict)
		return
	}
	defer h.running.Store(false)

	// The batch outlives a disconnected scheduler; only process shutdown
	// cancels it.
	report, err := h.creator.RunBatch(context.WithoutCancel(r.Context()))
	if err != nil {
		h.logger.Error(r.Context(), "triggered batch failed", "error", err)
		http.Error(w, "batch failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"processed":     report.Processed,
		"failed":        report.Failed,
		"reverted":      report.Reverted,
		"quota_stopped": report.QuotaStopped,
		"tokens_used":   report.TokensUsed,
	})
}
