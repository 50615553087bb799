// Package httpapi exposes the versioned REST API for plant records.
package httpapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/ckonkol1/plant-tracker/internal/app/domain/plant"
	"github.com/ckonkol1/plant-tracker/internal/app/services/plants"
	apperrors "github.com/ckonkol1/plant-tracker/internal/errors"
	"github.com/ckonkol1/plant-tracker/internal/httputil"
	"github.com/ckonkol1/plant-tracker/internal/logging"
	"github.com/ckonkol1/plant-tracker/internal/metrics"
	"github.com/ckonkol1/plant-tracker/internal/middleware"
)

// handler bundles the HTTP endpoints for the plant service.
type handler struct {
	plants *plants.Service
	log    *logging.Logger
}

// Options configures the router middleware stack.
type Options struct {
	JWTSecret       []byte
	AllowedOrigins  []string
	RateLimitPerSec int
	RateLimitBurst  int
}

// NewRouter returns the fully wired router: tracing, metrics, CORS, rate
// limiting and JWT authentication around the /v1/plants resource, plus the
// unauthenticated /health and /metrics endpoints.
func NewRouter(service *plants.Service, log *logging.Logger, opts Options) http.Handler {
	if log == nil {
		log = logging.NewDefault("httpapi")
	}
	h := &handler{plants: service, log: log}

	router := mux.NewRouter()
	router.Use(middleware.MetricsMiddleware())

	router.HandleFunc("/health", h.health).Methods(http.MethodGet)
	router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	v1 := router.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/plants", h.list).Methods(http.MethodGet)
	v1.HandleFunc("/plants/{id}", h.get).Methods(http.MethodGet)
	v1.Handle("/plants", middleware.RequireAdmin(http.HandlerFunc(h.create))).Methods(http.MethodPut)
	v1.Handle("/plants/{id}", middleware.RequireAdmin(http.HandlerFunc(h.update))).Methods(http.MethodPatch)
	v1.Handle("/plants/{id}", middleware.RequireAdmin(http.HandlerFunc(h.delete))).Methods(http.MethodDelete)

	auth := middleware.NewAuthMiddleware(opts.JWTSecret, log, []string{"/health", "/metrics"})
	tracing := middleware.NewTracingMiddleware(log)
	cors := middleware.NewCORSMiddleware(opts.AllowedOrigins)

	// Auth runs before the limiter so authenticated callers are keyed by
	// user ID rather than sharing a per-address bucket.
	var stack http.Handler = router
	if opts.RateLimitPerSec > 0 {
		limiter := middleware.NewRateLimiter(opts.RateLimitPerSec, opts.RateLimitBurst, log)
		limiter.StartCleanup(time.Minute)
		stack = limiter.Handler(stack)
	}
	stack = auth.Handler(stack)
	stack = cors.Handler(stack)
	stack = tracing.Handler(stack)

	return stack
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"service":   "plant-tracker",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// list returns every plant; an empty store maps to 404.
func (h *handler) list(w http.ResponseWriter, r *http.Request) {
	result, err := h.plants.GetAll(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	if len(result) == 0 {
		httputil.WriteError(w, r, apperrors.NotFound("No plants were found."))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := plantID(r)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	result, err := h.plants.GetByID(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *handler) create(w http.ResponseWriter, r *http.Request) {
	var payload plant.CreateRequest
	if err := httputil.DecodeJSON(r.Body, &payload); err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	if fieldErrs := payload.Validate(); !fieldErrs.Empty() {
		httputil.WriteError(w, r, apperrors.Validation("One or more fields failed validation.", fieldErrs))
		return
	}

	id, err := h.plants.Create(r.Context(), payload.ToPlant())
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := plantID(r)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	var payload plant.UpdateRequest
	if err := httputil.DecodeJSON(r.Body, &payload); err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	if fieldErrs := payload.Validate(); !fieldErrs.Empty() {
		httputil.WriteError(w, r, apperrors.Validation("One or more fields failed validation.", fieldErrs))
		return
	}

	result, err := h.plants.Update(r.Context(), payload.ToPlant(id))
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := plantID(r)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	if err := h.plants.Delete(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// plantID extracts and validates the {id} path parameter. The id must be a
// well-formed, non-nil UUID.
func plantID(r *http.Request) (string, error) {
	raw := mux.Vars(r)["id"]

	id, err := uuid.Parse(raw)
	if err != nil {
		return "", apperrors.BadArgument("Invalid GUID format: %s", raw)
	}
	if id == uuid.Nil {
		return "", apperrors.BadArgument("Plant Id cannot be an empty GUID")
	}
	return id.String(), nil
}
