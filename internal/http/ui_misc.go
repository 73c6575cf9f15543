package httpx

import (
	"errors"
	"net/http"
	"strconv"
)

// NotFound handles 404 errors.
// For browser requests, it renders an HTML error page.
// For API requests, it returns a JSON error response.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	if IsBrowserRequest(r) {
		h.renderErrorPage(w, r, http.StatusNotFound, "The page you're looking for doesn't exist.")
	} else {
		h.renderAPINotFound(w, r)
	}
}

// renderErrorPage renders the themed error document with a link back home.
func (h *UIHandlers) renderErrorPage(w http.ResponseWriter, r *http.Request, code int, message string) {
	title := "Page Not Found"
	if code != http.StatusNotFound {
		title = "Something Went Wrong"
	}
	data := map[string]any{
		"Title":    title + " - " + h.Site.name(),
		"Heading":  title,
		"Code":     strconv.Itoa(code),
		"Message":  message,
		"SiteName": h.Site.name(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if h.T == nil {
		// Fallback to plain text if no template renderer available
		http.Error(w, http.StatusText(code), code)
		return
	}
	if err := h.T.RenderError(w, r, data); err != nil {
		h.logger().Error("failed to render error page", "error", err, "code", code)
		http.Error(w, http.StatusText(code), code)
	}
}

// renderAPINotFound renders a JSON 404 response.
func (h *UIHandlers) renderAPINotFound(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, ErrorParams{
		Code:    http.StatusNotFound,
		ErrCode: "not_found",
		Err:     errors.New("not found"),
	})
}
