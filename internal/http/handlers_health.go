package httpx

import (
	"context"
	"net/http"
	"time"
)

const readyTimeout = 2 * time.Second

type healthBody struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// healthHandler answers liveness probes. When ready is set it is called with
// a short deadline and a failure turns the answer into 503, so a replica
// that lost its state store drops out of rotation.
func healthHandler(ready func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code, body := http.StatusOK, healthBody{Status: "ok"}
		if ready != nil {
			ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
			defer cancel()
			if err := ready(ctx); err != nil {
				code, body = http.StatusServiceUnavailable, healthBody{Status: "unavailable", Error: err.Error()}
			}
		}

		if r.Method == http.MethodHead {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Cache-Control", "no-store")
			w.WriteHeader(code)
			return
		}
		WriteJSON(w, code, body)
	}
}
