package httpx

import (
	"context"
	"html"
	"log/slog"
	"net/http"

	"github.com/jobboard/jobboard-ui/internal/domain/view"
	"github.com/jobboard/jobboard-ui/internal/ports"
	"github.com/jobboard/jobboard-ui/internal/service"
)

// ViewService is the subset of the view service the UI needs.
type ViewService interface {
	Start(ctx context.Context, visitorID string, q view.QuerySource) (service.Result, error)
	Current(ctx context.Context, visitorID string) (service.Result, error)
	Navigate(ctx context.Context, visitorID string, page view.Page) (service.Result, error)
	SelectJob(ctx context.Context, visitorID string, jobID int64) (service.Result, error)
	Login(ctx context.Context, visitorID string, creds ports.Credentials) (service.Result, error)
	Logout(ctx context.Context, visitorID string) (service.Result, error)
}

// Compile-time interface assertion to ensure the concrete service satisfies the UI interface.
var _ ViewService = (*service.ViewService)(nil)

// UIHandlers serves browser-facing routes.
type UIHandlers struct {
	T       *TemplateRenderer
	View    ViewService
	Catalog ports.JobCatalog
	Site    SiteOptions
	IsDev   bool // Development mode flag for enhanced error reporting
	Logger  *slog.Logger
}

// logger returns the configured logger or falls back to slog.Default().
func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// PageMeta contains metadata for page rendering.
type PageMeta struct {
	Title       string
	PageTitle   string
	Description string
	CurrentPage string
}

// basePageData constructs the common page data map.
func basePageData(r *http.Request, meta PageMeta) map[string]any {
	data := map[string]any{
		"Title":           meta.Title,
		"PageTitle":       meta.PageTitle,
		"Description":     meta.Description,
		"CurrentPage":     meta.CurrentPage,
		"IsAuthenticated": false,
		"IsAdminShell":    false,
	}

	if csrfToken := GetCSRFToken(r); csrfToken != "" {
		data["CSRFToken"] = csrfToken
	}

	return data
}

// renderOpts carries per-response extras for renderResult.
type renderOpts struct {
	FieldErrors map[string]string
	Form        map[string]string
}

// pageData builds the template data for a transition result.
func (h *UIHandlers) pageData(r *http.Request, res service.Result, opts renderOpts) map[string]any {
	switch v := res.View.(type) {
	case view.AdminShell:
		user := v.User
		return NewTemplateData(r, MetaForAdmin(h.Site)).
			WithSite(h.Site).
			WithUser(&user).
			With("IsAdminShell", true).
			Build()
	case view.Normal:
		b := NewTemplateData(r, MetaForPage(v.Page, h.Site)).
			WithSite(h.Site).
			WithUser(res.State.User).
			WithFieldErrors(opts.FieldErrors).
			With("Props", v.Props).
			With("Nav", navItems(v.Nav)).
			With("Chat", chatViewModel(v.Chat))
		if opts.Form != nil {
			b.With("Form", opts.Form)
		}
		data := b.Build()
		if err := h.fetchPage(r.Context(), v, data); err != nil {
			h.logger().ErrorContext(r.Context(), "page data fetch failed",
				"page", v.Page,
				"error", err,
			)
			markPageError(data)
		}
		return data
	default:
		return NewTemplateData(r, MetaForPage(view.PageHome, h.Site)).WithSite(h.Site).Build()
	}
}

// renderResult renders the app for res: the full document for plain
// requests, the app fragment for htmx requests.
func (h *UIHandlers) renderResult(w http.ResponseWriter, r *http.Request, res service.Result, opts renderOpts) {
	data := h.pageData(r, res, opts)

	if !WantsPartial(r) {
		if err := h.T.RenderFull(w, r, data); err != nil {
			h.logAndRenderTemplateError(w, r, err, "full page render")
		}
		return
	}

	if res.Effects.Has(view.EffectScrollTop) {
		TriggerEvents(w, EventScrollTop)
	}
	title, _ := data["Title"].(string)
	if err := h.T.RenderFragment(w, r, title, data); err != nil {
		h.logAndRenderTemplateError(w, r, err, "partial app render")
	}
}

func markPageError(data map[string]any) {
	data["Error"] = true
	if _, ok := data["ErrorMessage"]; ok {
		return
	}
	data["ErrorMessage"] = "An unexpected error occurred. Please try again."
}

// logAndRenderTemplateError logs template errors and renders them in dev mode.
func (h *UIHandlers) logAndRenderTemplateError(w http.ResponseWriter, r *http.Request, err error, context string) {
	h.logger().Error("template rendering failed",
		"error", err,
		"context", context,
		"path", r.URL.Path,
		"method", r.Method,
	)

	// In dev mode, show detailed error in the response
	if h.IsDev {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		errHTML := html.EscapeString(err.Error())
		pathHTML := html.EscapeString(r.URL.Path)
		contextHTML := html.EscapeString(context)
		if _, writeErr := w.Write([]byte(`
			<div style="padding: 20px; background: #fee; border: 2px solid #c33; border-radius: 4px; margin: 20px; font-family: monospace;">
				<h2 style="color: #c33; margin-top: 0;">Template Rendering Error</h2>
				<p><strong>Context:</strong> ` + contextHTML + `</p>
				<p><strong>Path:</strong> ` + pathHTML + `</p>
				<p><strong>Error:</strong></p>
				<pre style="background: #fff; padding: 10px; border: 1px solid #ccc; overflow-x: auto;">` + errHTML + `</pre>
			</div>
		`)); writeErr != nil {
			h.logger().Error("failed to write template error response", "error", writeErr)
		}
		return
	}

	// In production, show generic error
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
