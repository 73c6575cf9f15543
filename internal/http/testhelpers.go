package httpx

import (
	"os"
	"strings"
	"testing"
)

// SkipIfNoTemplates skips t when the template tree is not reachable from the
// package directory.
func SkipIfNoTemplates(t *testing.T) {
	t.Helper()
	if _, err := os.Stat(TemplatePathFromTest); err != nil {
		t.Skipf("templates not available: %v", err)
	}
}

// RequireTemplateRenderer parses the on-disk templates or skips t.
func RequireTemplateRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	SkipIfNoTemplates(t)
	tr, err := NewTemplateRenderer(TemplateRendererConfig{TemplateFS: os.DirFS(TemplatePathFromTest)})
	if err != nil {
		t.Fatalf("parse templates: %v", err)
	}
	return tr
}

// ContainsAll reports whether s contains every one of subs.
func ContainsAll(s string, subs []string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
