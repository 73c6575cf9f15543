package httpx

import (
	"net/http"
	"strings"

	"github.com/jobboard/jobboard-ui/internal/domain/view"
	"github.com/jobboard/jobboard-ui/internal/http/ui/viewmodel"
)

// TemplateDataBuilder provides a fluent API for building template data maps.
type TemplateDataBuilder struct {
	data map[string]any
	r    *http.Request
}

// NewTemplateData creates a new TemplateDataBuilder initialized with basePageData.
func NewTemplateData(r *http.Request, meta PageMeta) *TemplateDataBuilder {
	return &TemplateDataBuilder{
		data: basePageData(r, meta),
		r:    r,
	}
}

// WithSite adds site-wide settings (name, analytics).
func (b *TemplateDataBuilder) WithSite(site SiteOptions) *TemplateDataBuilder {
	b.data["SiteName"] = site.name()
	if site.AnalyticsID != "" {
		b.data["AnalyticsID"] = site.AnalyticsID
	}
	return b
}

// WithUser adds the logged-in user. A nil user leaves the data anonymous.
func (b *TemplateDataBuilder) WithUser(u *view.User) *TemplateDataBuilder {
	if u == nil {
		return b
	}
	b.data["User"] = userViewModel(u)
	b.data["IsAuthenticated"] = true
	return b
}

// WithError sets a general error message.
func (b *TemplateDataBuilder) WithError(msg string) *TemplateDataBuilder {
	b.data["Error"] = true
	b.data["ErrorMessage"] = msg
	return b
}

// WithFieldErrors adds field-level validation errors.
func (b *TemplateDataBuilder) WithFieldErrors(errs map[string]string) *TemplateDataBuilder {
	if len(errs) > 0 {
		b.data["Errors"] = errs
	}
	return b
}

// With adds a custom field to the template data.
func (b *TemplateDataBuilder) With(key string, value any) *TemplateDataBuilder {
	b.data[key] = value
	return b
}

// Build returns the final template data map.
func (b *TemplateDataBuilder) Build() map[string]any {
	return b.data
}

func userViewModel(u *view.User) *viewmodel.User {
	if u == nil {
		return nil
	}
	name := u.DisplayName()
	initial := ""
	for _, r := range name {
		initial = strings.ToUpper(string(r))
		break
	}
	return &viewmodel.User{
		Name:    name,
		Email:   u.Email,
		Role:    string(u.Role),
		Initial: initial,
	}
}
