package httpapi

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"complainthub.org/internal/auth"
	"complainthub.org/internal/complaint"
	"complainthub.org/internal/obs"
	"complainthub.org/internal/report"
	"complainthub.org/internal/stream"
)

// ReadyProbe reports readiness, pinging the database when one is configured.
type ReadyProbe struct {
	DB *sql.DB
}

func (rp ReadyProbe) Check(ctx context.Context) error {
	if rp.DB == nil {
		return nil
	}
	return rp.DB.PingContext(ctx)
}

// API is the HTTP layer.
type API struct {
	mux        *http.ServeMux
	readyProbe ReadyProbe
	version    string

	auth       *auth.Service
	tokens     *auth.TokenManager
	complaints *complaint.Service
	reports    *report.Service
	events     *stream.Stream

	// Tunables applied by Handler; overridable before the server starts.
	CORSOrigins []string
	RateBurst   int
	RatePerSec  int
}

// New wires all routes.
func New(rp ReadyProbe, version string, authSvc *auth.Service, tokens *auth.TokenManager,
	complaints *complaint.Service, reports *report.Service, events *stream.Stream) *API {

	a := &API{
		mux:         http.NewServeMux(),
		readyProbe:  rp,
		version:     version,
		auth:        authSvc,
		tokens:      tokens,
		complaints:  complaints,
		reports:     reports,
		events:      events,
		CORSOrigins: []string{"http://localhost:3000", "http://localhost:3001"},
		RateBurst:   20,
		RatePerSec:  10,
	}

	// auth
	a.mux.HandleFunc("/auth/register", a.handleRegister)
	a.mux.HandleFunc("/auth/login", a.handleLogin)
	a.mux.HandleFunc("/auth/logout", a.handleLogout)

	// complaints
	a.mux.HandleFunc("/complaints", a.handleComplaintsCollection)
	a.mux.HandleFunc("/complaints/", a.handleComplaintResource)

	// admin
	a.mux.HandleFunc("/admin/reports", a.handleReports)
	a.mux.HandleFunc("/admin/stream", a.handleStream)

	// health/ready/info
	a.mux.HandleFunc("/healthz", a.Healthz)
	a.mux.HandleFunc("/readyz", a.Ready)
	a.mux.HandleFunc("/v1/info", a.Info)

	// Prometheus metrics
	a.mux.Handle("/metrics", obs.Handler())

	a.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	return a
}

// Handler returns the fully wrapped http.Handler for the server.
func (a *API) Handler() http.Handler {
	h := http.Handler(a.mux)
	h = a.withAuth(h)
	h = LoggingJSON(h)
	h = MaxBodyBytes(h, 1<<20)
	h = RateLimit(h, a.RateBurst, a.RatePerSec)
	h = CORS(h, a.CORSOrigins)
	h = SecurityHeaders(h)
	h = RequestID(h)
	return obs.Instrument(h)
}

// --- Handlers ---

func (a *API) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "complainthub-api",
		"version": a.version,
	})
}

func (a *API) Ready(w http.ResponseWriter, r *http.Request) {
	if err := a.readyProbe.Check(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "not_ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ready",
	})
}

func (a *API) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    "complainthub-api",
		"time":    time.Now().UTC().Format(time.RFC3339),
		"version": a.version,
	})
}
