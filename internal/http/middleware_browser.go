package httpx

import (
	"context"
	"net/http"
	"strings"
)

type browserRequestKey struct{}

// BrowserDetection returns a middleware that records whether the request
// comes from a browser (HTML) or a programmatic client (JSON). Error
// responses use it to pick a themed page or a JSON body.
func BrowserDetection() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), browserRequestKey{}, isBrowserRequest(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IsBrowserRequest reports whether r was classified as a browser request.
// Without the middleware the request is classified on the spot.
func IsBrowserRequest(r *http.Request) bool {
	if v, ok := r.Context().Value(browserRequestKey{}).(bool); ok {
		return v
	}
	return isBrowserRequest(r)
}

// jsonPaths are routes that only ever answer with JSON.
//
//nolint:gochecknoglobals // static lookup
var jsonPaths = map[string]bool{
	"/ui/state": true,
	"/healthz":  true,
}

func isBrowserRequest(r *http.Request) bool {
	path := r.URL.Path
	if jsonPaths[path] || strings.HasPrefix(path, "/static/") {
		return false
	}
	if IsHTMX(r) {
		return true
	}

	accept := strings.ToLower(r.Header.Get("Accept"))
	switch {
	case accept == "":
		return true
	case strings.Contains(accept, "text/html"):
		return true
	case strings.Contains(accept, "application/json"):
		return false
	default:
		return strings.Contains(accept, "*/*")
	}
}
