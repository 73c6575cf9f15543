package httpx

import (
	"encoding/json"
	"net/http"
	"strings"
)

// IsHTMX reports whether the request was initiated by htmx (Hx-Request: true).
func IsHTMX(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Hx-Request"), "true")
}

// WantsPartial reports whether the handler should answer with the app
// fragment instead of the full document. History restores need the full
// document because htmx swaps it into <body>.
func WantsPartial(r *http.Request) bool {
	return IsHTMX(r) && !strings.EqualFold(r.Header.Get("Hx-History-Restore-Request"), "true")
}

// TriggerEvents sets Hx-Trigger so htmx fires each event on the client after
// the swap. Events already present in the header are kept.
func TriggerEvents(w http.ResponseWriter, events ...string) {
	if len(events) == 0 {
		return
	}
	m := map[string]any{}
	if existing := w.Header().Get("Hx-Trigger"); existing != "" {
		if err := json.Unmarshal([]byte(existing), &m); err != nil {
			m = map[string]any{existing: true}
		}
	}
	for _, e := range events {
		m[e] = true
	}
	b, err := json.Marshal(m)
	if err != nil {
		return
	}
	w.Header().Set("Hx-Trigger", string(b))
}
