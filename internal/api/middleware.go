package api

import (
	"net/http"
	"strings"
	"time"
)

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) withObservability(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		dur := time.Since(start)
		s.metrics.RecordHTTPRequest(routeLabel(r.URL.Path), r.Method, rec.status, dur)
		s.log.LogRequest(r.Method, r.URL.Path, rec.status, dur)
	})
}

// routeLabel collapses job ids so metric labels stay bounded.
func routeLabel(path string) string {
	if !strings.HasPrefix(path, "/jobs/") {
		return path
	}
	if strings.HasSuffix(strings.TrimSuffix(path, "/"), "/result") {
		return "/jobs/{id}/result"
	}
	return "/jobs/{id}"
}
