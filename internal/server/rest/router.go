// Package rest is the HTTP API: routing, authentication, request decoding
// and error mapping over the services.
package rest

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/lifelog/internal/logging"
	"github.com/dmitrijs2005/lifelog/internal/server/services"
	"github.com/dmitrijs2005/lifelog/internal/server/storage"
	"github.com/gorilla/mux"
)

// Deps is everything the router needs.
type Deps struct {
	Users      *services.UserService
	Categories *services.CategoryService
	Records    *services.RecordService
	Stats      *services.StatsService
	Verifier   TokenVerifier
	Files      storage.FileStore
	Metrics    *Metrics
	Logger     logging.Logger

	// Ping backs /healthz; nil means always healthy.
	Ping           func(context.Context) error
	MaxUploadBytes int64
	AllowedOrigins []string
}

type handlers struct {
	users      *services.UserService
	categories *services.CategoryService
	records    *services.RecordService
	stats      *services.StatsService
	verifier   TokenVerifier
	files      storage.FileStore
	ping       func(context.Context) error
	maxBody    int64
	logger     logging.Logger
}

// memory kept by multipart parsing before spilling to temp files
const multipartMemory = 8 << 20

func NewRouter(d Deps) http.Handler {
	h := &handlers{
		users:      d.Users,
		categories: d.Categories,
		records:    d.Records,
		stats:      d.Stats,
		verifier:   d.Verifier,
		files:      d.Files,
		ping:       d.Ping,
		maxBody:    d.MaxUploadBytes,
		logger:     d.Logger.With("module", "http_server"),
	}

	r := mux.NewRouter()
	r.Use(h.logRequests)
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware)
		r.Handle("/metrics", d.Metrics.Handler()).Methods(http.MethodGet)
	}
	r.Use(h.recoverPanics, h.limitBody)

	r.HandleFunc("/healthz", h.health).Methods(http.MethodGet)
	r.HandleFunc("/uploads/{name}", h.serveUpload).Methods(http.MethodGet, http.MethodHead)

	r.HandleFunc("/api/auth/signup", h.signup).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", h.login).Methods(http.MethodPost)
	r.Handle("/api/auth/me", h.requireAuth(h.me)).Methods(http.MethodGet)

	r.Handle("/api/users/me", h.requireAuth(h.me)).Methods(http.MethodGet)
	r.Handle("/api/users/profile", h.requireAuth(h.updateProfile)).Methods(http.MethodPut)

	r.Handle("/api/categories", h.requireAuth(h.listCategories)).Methods(http.MethodGet)
	r.Handle("/api/categories", h.requireAuth(h.createCategory)).Methods(http.MethodPost)
	r.Handle("/api/categories/{id}", h.requireAuth(h.getCategory)).Methods(http.MethodGet)
	r.Handle("/api/categories/{id}", h.requireAuth(h.updateCategory)).Methods(http.MethodPut)
	r.Handle("/api/categories/{id}", h.requireAuth(h.deleteCategory)).Methods(http.MethodDelete)

	// stats before {id} so it is not taken for a record id
	r.Handle("/api/records/stats", h.requireAuth(h.recordStats)).Methods(http.MethodGet)
	r.Handle("/api/records", h.requireAuth(h.listRecords)).Methods(http.MethodGet)
	r.Handle("/api/records", h.requireAuth(h.createRecord)).Methods(http.MethodPost)
	r.Handle("/api/records/{id}", h.requireAuth(h.getRecord)).Methods(http.MethodGet)
	r.Handle("/api/records/{id}", h.requireAuth(h.updateRecord)).Methods(http.MethodPut)
	r.Handle("/api/records/{id}", h.requireAuth(h.deleteRecord)).Methods(http.MethodDelete)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeMessage(w, http.StatusNotFound, msgNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return cors(d.AllowedOrigins, r)
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	if h.ping != nil {
		if err := h.ping(r.Context()); err != nil {
			h.logger.Warn(r.Context(), "health check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
