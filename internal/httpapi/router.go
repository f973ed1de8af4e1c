package httpapi

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/lotusfa/ipa-api/internal/dict"
	"github.com/lotusfa/ipa-api/internal/eventlog"
	"github.com/lotusfa/ipa-api/internal/store"
)

type RouterConfig struct {
	// Admin access
	AdminAPIKey string

	// JWT for the admin endpoints
	JWTSecret string
	JWTExpiry time.Duration
}

type Router struct {
	cfg      RouterConfig
	logger   *log.Logger
	registry *dict.Registry
	store    *store.Store // nil when no database is configured
	eventLog *eventlog.Logger
	mux      *http.ServeMux
}

func NewRouter(cfg RouterConfig, logger *log.Logger, registry *dict.Registry, s *store.Store, eventLog *eventlog.Logger) http.Handler {
	r := &Router{
		cfg:      cfg,
		logger:   logger,
		registry: registry,
		store:    s,
		eventLog: eventLog,
		mux:      http.NewServeMux(),
	}

	r.routes()
	return withSentryRecovery(withCORS(r.mux))
}

func (r *Router) routes() {
	// Health check
	r.mux.HandleFunc("GET /healthz", r.handleHealthz)

	// Translation API (public)
	r.mux.HandleFunc("POST /ipa", r.handleTranslate)
	r.mux.HandleFunc("GET /list_all_language", r.handleListLanguages)
	r.mux.HandleFunc("GET /list_all_format", r.handleListFormats)
	r.mux.HandleFunc("GET /languages", r.handleLanguageDetails)

	// Interactive clients (the web toolbox re-translates as the user types)
	r.mux.HandleFunc("GET /ws/translate", r.handleTranslateWS)

	// Admin endpoints (API key exchanged for a JWT)
	r.mux.HandleFunc("POST /admin/token", r.handleAdminToken)
	r.mux.HandleFunc("POST /admin/reload", r.withAdmin(r.handleAdminReload))
	r.mux.HandleFunc("GET /admin/stats", r.withAdmin(r.handleAdminStats))
	r.mux.HandleFunc("GET /admin/requests", r.withAdmin(r.handleAdminRequests))
}

func (r *Router) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func withSentryRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				hub := sentry.CurrentHub().Clone()
				hub.Scope().SetRequest(req)
				hub.RecoverWithContext(req.Context(), err)
				hub.Flush(2 * time.Second)
				http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, req)
	})
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		if req.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, req)
	})
}

// captureError sends an error to Sentry with request context
func captureError(req *http.Request, err error, msg string) {
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetRequest(req)
		scope.SetExtra("message", msg)
		sentry.CaptureException(err)
	})
}
