package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		ready    func(context.Context) error
		wantCode int
		wantBody string
	}{
		{name: "liveness only", method: http.MethodGet, wantCode: http.StatusOK, wantBody: "{\"status\":\"ok\"}\n"},
		{
			name:     "ready",
			method:   http.MethodGet,
			ready:    func(context.Context) error { return nil },
			wantCode: http.StatusOK,
			wantBody: "{\"status\":\"ok\"}\n",
		},
		{
			name:     "store down",
			method:   http.MethodGet,
			ready:    func(context.Context) error { return errors.New("dial tcp: refused") },
			wantCode: http.StatusServiceUnavailable,
			wantBody: "{\"status\":\"unavailable\",\"error\":\"dial tcp: refused\"}\n",
		},
		{
			name:     "head has no body",
			method:   http.MethodHead,
			ready:    func(context.Context) error { return errors.New("down") },
			wantCode: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			healthHandler(tt.ready)(rec, httptest.NewRequest(tt.method, "/healthz", nil))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
			assert.Equal(t, tt.wantBody, rec.Body.String())
		})
	}
}
