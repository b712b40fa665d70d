package runner

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/afland/duende-publisher/internal/adapters/rest"
)

// NewHTTPServer wires the trigger and health endpoints for serve mode
func NewHTTPServer(
	config Config,
	triggerHandler *rest.TriggerHandler,
	healthHandler *rest.HealthHandler,
) *http.Server {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", healthHandler.GetHealth)
	r.Post("/run", triggerHandler.PostRun)

	return &http.Server{
		Addr:    config.ServerAddress,
		Handler: r,
		// A triggered batch can legitimately run for minutes; only bound the
		// read side.
		ReadHeaderTimeout: 10 * time.Second,
	}
}
