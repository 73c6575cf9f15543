package httpx

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"net/http"

	corefuncs "github.com/jobboard/jobboard-ui/internal/http/templates/core"
)

// Template names executed by the handlers.
const (
	tmplLayout = "layout"
	tmplApp    = "app"
	tmplError  = "error-layout"
)

// templateGlobs lists the files parsed into one set, relative to the template root.
//
//nolint:gochecknoglobals // static list
var templateGlobs = []string{"*.tmpl", "pages/*.tmpl", "partials/*.tmpl"}

// TemplateRenderer executes the page templates into buffered responses, so a
// failing template never leaves a half-written body.
type TemplateRenderer struct {
	t      *template.Template
	logger *slog.Logger
}

// TemplateRendererConfig holds configuration for creating a TemplateRenderer.
type TemplateRendererConfig struct {
	TemplateFS fs.FS        // required
	Logger     *slog.Logger // optional
}

// NewTemplateRenderer parses every template under cfg.TemplateFS.
func NewTemplateRenderer(cfg TemplateRendererConfig) (*TemplateRenderer, error) {
	if cfg.TemplateFS == nil {
		return nil, errors.New("TemplateFS is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var t *template.Template
	funcs := corefuncs.Funcs(corefuncs.Deps{
		Template:           &t,
		ContentTemplateFor: ContentTemplateFor,
	})
	funcs["jobList"] = jobList

	parsed, err := template.New("root").Funcs(funcs).ParseFS(cfg.TemplateFS, templateGlobs...)
	if err != nil {
		logger.Error("template parsing failed", slog.Any("error", err))
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	t = parsed
	return &TemplateRenderer{t: t, logger: logger}, nil
}

// RenderFull writes the whole document: layout, app shell and page.
func (r *TemplateRenderer) RenderFull(w http.ResponseWriter, _ *http.Request, data any) error {
	var buf bytes.Buffer
	if err := r.Execute(&buf, tmplLayout, data); err != nil {
		return err
	}
	return r.send(w, tmplLayout, &buf)
}

// RenderFragment writes the app shell that htmx swaps into #app, preceded by
// a <title> element so the document title follows the page.
func (r *TemplateRenderer) RenderFragment(w http.ResponseWriter, _ *http.Request, title string, data any) error {
	var buf bytes.Buffer
	buf.WriteString("<title>")
	template.HTMLEscape(&buf, []byte(title))
	buf.WriteString("</title>")
	if err := r.Execute(&buf, tmplApp, data); err != nil {
		return err
	}
	return r.send(w, tmplApp, &buf)
}

// RenderError writes the standalone error document.
func (r *TemplateRenderer) RenderError(w http.ResponseWriter, _ *http.Request, data any) error {
	var buf bytes.Buffer
	if err := r.Execute(&buf, tmplError, data); err != nil {
		return err
	}
	return r.send(w, tmplError, &buf)
}

// Execute renders a named template into w without touching headers.
func (r *TemplateRenderer) Execute(w io.Writer, name string, data any) error {
	if err := r.t.ExecuteTemplate(w, name, data); err != nil {
		r.logger.Error("template execution failed", slog.String("template", name), slog.Any("error", err))
		return err
	}
	return nil
}

func (r *TemplateRenderer) send(w http.ResponseWriter, name string, buf *bytes.Buffer) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		r.logger.Error("failed to write rendered template", slog.String("template", name), slog.Any("error", err))
		return err
	}
	return nil
}
