package httpx

import (
	"bytes"
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"regexp"
	"strings"

	jobboard "github.com/jobboard/jobboard-ui"
	"github.com/jobboard/jobboard-ui/internal/ports"
)

const (
	staticDir = "frontend/static"

	cacheImmutable  = "public, max-age=31536000, immutable"
	cacheRevalidate = "no-cache"
)

// hashedAsset matches fingerprinted bundles such as app.1a2b3c4d.js(.map).
//
//nolint:gochecknoglobals // compiled once
var hashedAsset = regexp.MustCompile(`\.[a-f0-9]{8}\.(?:js|css)(?:\.map)?$`)

// RouterServices holds everything the router wires into handlers.
type RouterServices struct {
	View         ViewService
	Catalog      ports.JobCatalog
	Site         SiteOptions
	CookieDomain string
	// TemplateFS overrides the template filesystem (tests).
	TemplateFS fs.FS
	// NewVisitorID overrides visitor id generation (tests).
	NewVisitorID func() string
	// Ready backs /healthz, e.g. a Redis ping. Nil means liveness only.
	Ready func(context.Context) error
	// IsDev serves templates and assets from disk.
	IsDev  bool
	Logger *slog.Logger
}

func (s RouterServices) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// NewRouter builds the application handler. Unmatched paths get the themed
// 404 page or a JSON 404 depending on the client.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	health := healthHandler(services.Ready)
	mux.Handle("GET /healthz", health)
	mux.Handle("HEAD /healthz", health)
	mux.Handle("GET /static/", staticHandler(services.IsDev, services.logger()))

	ui := newUIHandlers(services)
	if ui != nil && services.View != nil {
		registerUIRoutes(mux, ui, uiRouteConfig{
			CookieDomain: services.CookieDomain,
			NewVisitorID: services.NewVisitorID,
		})
	}

	return BrowserDetection()(&notFoundHandler{mux: mux, uiHandlers: ui})
}

// templateFS picks an explicit override, the working tree in dev mode, or
// the embedded copy.
func templateFS(services RouterServices) fs.FS {
	switch {
	case services.TemplateFS != nil:
		return services.TemplateFS
	case services.IsDev:
		return os.DirFS(TemplatePathFromRoot)
	}
	sub, err := fs.Sub(jobboard.TemplateFS, TemplatePathFromRoot)
	if err != nil {
		services.logger().Warn("embedded templates unavailable, reading from disk", "error", err)
		return os.DirFS(TemplatePathFromRoot)
	}
	return sub
}

// newUIHandlers returns nil when the templates fail to parse; the router
// then serves only health and static routes.
func newUIHandlers(services RouterServices) *UIHandlers {
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: templateFS(services),
		Logger:     services.Logger,
	})
	if err != nil {
		services.logger().Error("failed to create template renderer", slog.Any("error", err))
		return nil
	}
	return &UIHandlers{
		T:       tr,
		View:    services.View,
		Catalog: services.Catalog,
		Site:    services.Site,
		IsDev:   services.IsDev,
		Logger:  services.Logger,
	}
}

// staticHandler serves /static/* from disk in dev mode and from the embedded
// copy otherwise. Fingerprinted files are cached for a year; everything else
// revalidates.
func staticHandler(isDev bool, logger *slog.Logger) http.Handler {
	var root http.FileSystem = http.Dir(staticDir)
	if !isDev {
		if sub, err := fs.Sub(jobboard.StaticFS, staticDir); err == nil {
			root = http.FS(sub)
		} else {
			logger.Warn("embedded static assets unavailable, reading from disk", "error", err)
		}
	}
	files := http.StripPrefix("/static/", http.FileServer(root))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hashedAsset.MatchString(r.URL.Path) {
			w.Header().Set("Cache-Control", cacheImmutable)
		} else {
			w.Header().Set("Cache-Control", cacheRevalidate)
		}
		files.ServeHTTP(w, r)
	})
}

// notFoundHandler buffers the mux response so a 404 from an unmatched
// pattern can be replaced with the site's own not-found answer.
type notFoundHandler struct {
	mux        *http.ServeMux
	uiHandlers *UIHandlers
}

func (h *notFoundHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cw := newCaptureWriter()
	h.mux.ServeHTTP(cw, r)

	// Missing assets keep the file server's plain answer.
	if cw.status != http.StatusNotFound || strings.HasPrefix(r.URL.Path, "/static/") {
		cw.flushTo(w)
		return
	}
	if h.uiHandlers == nil {
		http.NotFound(w, r)
		return
	}
	h.uiHandlers.NotFound(w, r)
}

// captureWriter holds the header, status and body until flushTo.
type captureWriter struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func newCaptureWriter() *captureWriter {
	return &captureWriter{header: make(http.Header), status: http.StatusOK}
}

func (c *captureWriter) Header() http.Header         { return c.header }
func (c *captureWriter) WriteHeader(code int)        { c.status = code }
func (c *captureWriter) Write(b []byte) (int, error) { return c.body.Write(b) }

func (c *captureWriter) flushTo(w http.ResponseWriter) {
	dst := w.Header()
	for k, vs := range c.header {
		dst[k] = append(dst[k], vs...)
	}
	w.WriteHeader(c.status)
	_, _ = c.body.WriteTo(w)
}

// uiRouteConfig holds configuration for UI route registration.
type uiRouteConfig struct {
	CookieDomain string
	NewVisitorID func() string
}

// wrap applies the visitor cookie and CSRF protection to UI routes.
func (cfg uiRouteConfig) wrap() func(http.Handler) http.Handler {
	visitor := VisitorSession(VisitorConfig{CookieDomain: cfg.CookieDomain, NewID: cfg.NewVisitorID})
	csrf := CSRFProtection(CSRFConfig{CookieDomain: cfg.CookieDomain})
	return func(h http.Handler) http.Handler {
		return visitor(csrf(h))
	}
}

func registerUIRoutes(mux *http.ServeMux, h *UIHandlers, cfg uiRouteConfig) {
	wrap := cfg.wrap()
	mux.Handle("GET /{$}", wrap(http.HandlerFunc(h.Index)))
	mux.Handle("GET /ui/state", wrap(http.HandlerFunc(h.State)))
	mux.Handle("POST /ui/navigate", wrap(http.HandlerFunc(h.Navigate)))
	mux.Handle("POST /ui/jobs/{id}/select", wrap(http.HandlerFunc(h.SelectJob)))
	mux.Handle("POST /ui/login", wrap(http.HandlerFunc(h.Login)))
	mux.Handle("POST /ui/logout", wrap(http.HandlerFunc(h.Logout)))
}
