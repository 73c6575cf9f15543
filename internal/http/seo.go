package httpx

import (
	"strings"

	"github.com/jobboard/jobboard-ui/internal/domain/view"
)

// DefaultSiteName is used when no site name is configured.
const DefaultSiteName = "Jobboard"

// SiteOptions holds site-wide presentation settings.
type SiteOptions struct {
	Name string
	// BaseURL is the public origin used for share links.
	BaseURL string
	// AnalyticsID is a Google Analytics measurement id. Empty disables the tag.
	AnalyticsID string
}

func (s SiteOptions) name() string {
	if n := strings.TrimSpace(s.Name); n != "" {
		return n
	}
	return DefaultSiteName
}

type pageSEO struct {
	heading     string
	description string
}

//nolint:gochecknoglobals // static read-only lookup for page metadata
var seoByPage = map[view.Page]pageSEO{
	view.PageHome:       {"Home", "Find hourly and part-time jobs near you and apply in minutes."},
	view.PageJobs:       {"Jobs", "Browse the latest job openings from local employers."},
	view.PageInvite:     {"Invite friends", "Invite friends to find work and earn rewards."},
	view.PageSettings:   {"Account", "Sign in to manage your applications and saved jobs."},
	view.PageRegister:   {"Post a job", "Create an employer account and post your first job."},
	view.PageJobDetails: {"Job details", "Read the full job description and apply."},
	view.PageAdsPlan:    {"Advertising plans", "Promote your listings with a featured advertising plan."},
}

// MetaForPage returns the layout metadata for a rendered page.
func MetaForPage(page view.Page, site SiteOptions) PageMeta {
	seo, ok := seoByPage[page]
	if !ok {
		seo = seoByPage[view.PageHome]
		page = view.PageHome
	}
	return PageMeta{
		Title:       seo.heading + " | " + site.name(),
		PageTitle:   seo.heading,
		Description: seo.description,
		CurrentPage: page.String(),
	}
}

// MetaForAdmin returns the layout metadata for the admin shell.
func MetaForAdmin(site SiteOptions) PageMeta {
	return PageMeta{
		Title:       "Admin | " + site.name(),
		PageTitle:   "Admin",
		Description: "Site administration.",
		CurrentPage: PageAdmin,
	}
}

// MetaForJob refines job-details metadata with the job itself.
func MetaForJob(meta PageMeta, title, company string, site SiteOptions) PageMeta {
	if title == "" {
		return meta
	}
	meta.Title = title + " at " + company + " | " + site.name()
	meta.Description = "Apply for " + title + " at " + company + "."
	return meta
}
