package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
)

func (a *API) handleReports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	if !a.requireAdmin(w, r) {
		return
	}
	snap, err := a.reports.Generate(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "report generation failed")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// handleStream streams activity events to admin dashboards over SSE.
func (a *API) handleStream(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	if !a.requireAdmin(w, r) {
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, r, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for evt := range a.events.Subscribe(r.Context()) {
		data, err := json.Marshal(evt)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "event: activity\ndata: %s\n\n", data)
		flusher.Flush()
	}
}
