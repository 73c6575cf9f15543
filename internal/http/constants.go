package httpx

import "github.com/jobboard/jobboard-ui/internal/domain/view"

// CurrentPage values that are not view pages.
const (
	// PageAdmin marks the admin shell in layout data.
	PageAdmin = "admin"
)

// Template paths used for loading templates in tests and production.
const (
	// Template directory paths.
	TemplatePathFromRoot = "frontend/templates"       // From project root
	TemplatePathFromTest = "../../frontend/templates" // From internal/http test files
)

// HTMX event names emitted by the UI handlers.
const (
	// EventScrollTop asks the client to scroll the window to the top.
	EventScrollTop = "scrollTop"
)

// Content templates are defined once and reused to avoid per-call allocations.
//
//nolint:gochecknoglobals // static read-only lookup for templates; avoids per-call allocations
var contentTemplates = map[string]string{
	string(view.PageHome):       "home-content",
	string(view.PageJobs):       "jobs-content",
	string(view.PageInvite):     "invite-content",
	string(view.PageSettings):   "settings-content",
	string(view.PageRegister):   "register-content",
	string(view.PageJobDetails): "job-details-content",
	string(view.PageAdsPlan):    "ads-plan-content",
	PageAdmin:                   "admin-shell-content",
}

// ContentTemplateMap returns the mapping from CurrentPage to template name.
// This is the single source of truth for page-to-template mapping.
func ContentTemplateMap() map[string]string { return contentTemplates }

// ContentTemplateFor returns the content template for the given CurrentPage.
// Falls back to home-content for unknown pages.
func ContentTemplateFor(currentPage string) string {
	if name, ok := ContentTemplateMap()[currentPage]; ok {
		return name
	}
	return "home-content"
}
