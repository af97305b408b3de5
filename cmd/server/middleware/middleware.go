package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// RequestId echoes the caller's X-Request-Id header or generates one, on
// both the request (for downstream handlers) and the response.
func RequestId(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if len(id) == 0 {
			id = uuid.NewString()
			r.Header.Set("X-Request-Id", id)
		}
		w.Header().Set("X-Request-Id", id)

		next.ServeHTTP(w, r)
	})
}

// Latency reports wall time in an X-Latency-Ms response header. The header
// is written together with the status line, so it covers handler time up to
// the first byte.
func Latency(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(&latencyWriter{ResponseWriter: w, start: time.Now()}, r)
	})
}

type latencyWriter struct {
	http.ResponseWriter
	start time.Time
	wrote bool
}

func (w *latencyWriter) WriteHeader(status int) {
	if !w.wrote {
		w.wrote = true
		ms := float64(time.Since(w.start).Microseconds()) / 1000.0
		w.Header().Set("X-Latency-Ms", fmt.Sprintf("%.2f", ms))
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *latencyWriter) Write(b []byte) (int, error) {
	if !w.wrote {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}
