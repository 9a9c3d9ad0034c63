// Package web serves the sync state over HTTP for people who prefer a
// browser tab to a terminal. Read-only: nothing here mutates the
// variable or the watcher.
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"sympath/internal/model"
	"sympath/internal/sympath"
	"sympath/internal/watch"
)

// Source is where the server reads state from: the watcher's published
// snapshots, never the service directly.
type Source interface {
	Latest() (watch.Event, bool)
}

// StartServer serves until ctx is cancelled.
func StartServer(ctx context.Context, addr string, source Source) {
	mux := http.NewServeMux()

	mux.HandleFunc("/", handleIndex)
	mux.HandleFunc("/api/state", handleState(source))
	mux.HandleFunc("/api/report", handleReport(source))

	server := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	fmt.Printf("Serving sympath status at http://%s\n", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		fmt.Printf("Web server error: %v\n", err)
	}
}

func handleState(source Source) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ev, ok := source.Latest()
		if !ok {
			http.Error(w, "no poll completed yet", http.StatusServiceUnavailable)
			return
		}

		response := struct {
			sympath.Report
			LastPoll  time.Time `json:"LastPoll"`
			LastEvent string    `json:"LastEvent"`
			Version   string    `json:"Version"`
		}{
			Report:    ev.Report,
			LastPoll:  ev.At,
			LastEvent: string(ev.Kind),
			Version:   model.Version,
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}
}

func handleReport(source Source) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ev, ok := source.Latest()
		if !ok {
			http.Error(w, "no poll completed yet", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprint(w, sympath.FormatReport(ev.Report, r.URL.Query().Get("verbose") == "1"))
	}
}

// The index page is a tiny self-refreshing viewer over /api/report.
const indexHTML = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>sympath</title>
<style>
body { font-family: monospace; margin: 2em; background: #1e1e2e; color: #cdd6f4; }
pre { font-size: 14px; }
</style>
</head>
<body>
<pre id="report">loading...</pre>
<script>
async function refresh() {
  const res = await fetch('/api/report?verbose=1');
  document.getElementById('report').textContent =
    res.ok ? await res.text() : 'waiting for first poll...';
}
refresh();
setInterval(refresh, 3000);
</script>
</body>
</html>`

func handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexHTML)
}
