package httpx

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jobboard/jobboard-ui/internal/domain/view"
	corefuncs "github.com/jobboard/jobboard-ui/internal/http/templates/core"
	"github.com/jobboard/jobboard-ui/internal/http/ui/viewmodel"
	"github.com/jobboard/jobboard-ui/internal/ports"
)

const (
	homeFeaturedLimit = 3
	homeRecentLimit   = 5
	summaryLength     = 140
)

type navEntry struct {
	label string
	icon  string
}

// Pages shown in the bottom navigation. Detail pages are reached from content.
//
//nolint:gochecknoglobals // static read-only lookup for navigation labels
var navEntries = map[view.Page]navEntry{
	view.PageHome:     {"Home", "home"},
	view.PageJobs:     {"Jobs", "briefcase"},
	view.PageRegister: {"Post", "plus"},
	view.PageInvite:   {"Invite", "gift"},
	view.PageSettings: {"Account", "user"},
}

//nolint:gochecknoglobals // static catalog of advertising plans
var adPlans = []viewmodel.AdPlan{
	{
		ID:       "basic",
		Name:     "Basic",
		Price:    "$0",
		Period:   "per post",
		Features: []string{"Listed for 14 days", "Standard placement"},
	},
	{
		ID:       "featured",
		Name:     "Featured",
		Price:    "$29",
		Period:   "per post",
		Features: []string{"Listed for 30 days", "Shown on the home page", "Highlighted in search"},
		Popular:  true,
	},
	{
		ID:       "unlimited",
		Name:     "Unlimited",
		Price:    "$99",
		Period:   "per month",
		Features: []string{"Unlimited posts", "All listings featured", "Priority support"},
	},
}

// navItems maps the nav input to template items, keeping only nav pages.
func navItems(n view.Nav) []viewmodel.NavItem {
	items := make([]viewmodel.NavItem, 0, len(navEntries))
	for _, p := range n.Items {
		entry, ok := navEntries[p]
		if !ok {
			continue
		}
		items = append(items, viewmodel.NavItem{
			Page:   p.String(),
			Label:  entry.label,
			Icon:   entry.icon,
			Active: p == n.Current,
		})
	}
	return items
}

func chatViewModel(c view.Chat) viewmodel.Chat {
	if c.User == nil {
		return viewmodel.Chat{Greeting: "Hi there! Questions about a job? We're here to help."}
	}
	u := userViewModel(c.User)
	return viewmodel.Chat{
		Greeting: fmt.Sprintf("Hi %s, how can we help today?", u.Name),
		User:     u,
	}
}

func jobCard(j ports.Job) viewmodel.JobCard {
	return viewmodel.JobCard{
		ID:          j.ID,
		Title:       j.Title,
		Company:     j.Company,
		Location:    j.Location,
		JobType:     j.JobType,
		Salary:      j.Salary,
		Description: j.Description,
		Featured:    j.Featured,
		PostedAt:    j.PostedAt,
	}
}

func jobCards(jobs []ports.Job) []viewmodel.JobCard {
	cards := make([]viewmodel.JobCard, 0, len(jobs))
	for _, j := range jobs {
		c := jobCard(j)
		c.Description = corefuncs.Truncate(c.Description, summaryLength)
		cards = append(cards, c)
	}
	return cards
}

// fetchPage adds page-specific data for the rendered page.
func (h *UIHandlers) fetchPage(ctx context.Context, v view.Normal, data map[string]any) error {
	switch v.Page {
	case view.PageHome:
		return h.fetchHome(ctx, data)
	case view.PageJobs:
		return h.fetchJobs(ctx, data)
	case view.PageJobDetails:
		return h.fetchJobDetails(ctx, v.Props.JobID, data)
	case view.PageInvite:
		data["InviteURL"] = h.inviteURL()
	case view.PageAdsPlan:
		data["Plans"] = adPlans
	case view.PageSettings, view.PageRegister:
	}
	return nil
}

func (h *UIHandlers) fetchHome(ctx context.Context, data map[string]any) error {
	if h.Catalog == nil {
		return nil
	}
	featured, err := h.Catalog.List(ctx, ports.JobListOptions{FeaturedOnly: true, Limit: homeFeaturedLimit})
	if err != nil {
		return fmt.Errorf("list featured jobs: %w", err)
	}
	recent, err := h.Catalog.List(ctx, ports.JobListOptions{Limit: homeRecentLimit})
	if err != nil {
		return fmt.Errorf("list recent jobs: %w", err)
	}
	data["FeaturedJobs"] = jobCards(featured)
	data["RecentJobs"] = jobCards(recent)
	return nil
}

func (h *UIHandlers) fetchJobs(ctx context.Context, data map[string]any) error {
	if h.Catalog == nil {
		data["Jobs"] = []viewmodel.JobCard{}
		return nil
	}
	jobs, err := h.Catalog.List(ctx, ports.JobListOptions{})
	if err != nil {
		return fmt.Errorf("list jobs: %w", err)
	}
	data["Jobs"] = jobCards(jobs)
	return nil
}

// fetchJobDetails loads the selected job. A missing selection or unknown id
// renders the not-found state rather than an error.
func (h *UIHandlers) fetchJobDetails(ctx context.Context, id *int64, data map[string]any) error {
	if id == nil || h.Catalog == nil {
		data["JobNotFound"] = true
		return nil
	}
	job, err := h.Catalog.Get(ctx, *id)
	if errors.Is(err, ports.ErrJobNotFound) {
		data["JobNotFound"] = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("get job %d: %w", *id, err)
	}

	card := jobCard(job)
	data["Job"] = card
	meta := MetaForJob(PageMeta{
		Title:       stringValue(data, "Title"),
		PageTitle:   stringValue(data, "PageTitle"),
		Description: stringValue(data, "Description"),
		CurrentPage: stringValue(data, "CurrentPage"),
	}, card.Title, card.Company, h.Site)
	data["Title"] = meta.Title
	data["Description"] = meta.Description
	return nil
}

func (h *UIHandlers) inviteURL() string {
	base := strings.TrimRight(strings.TrimSpace(h.Site.BaseURL), "/")
	return base + "/?page=" + view.PageRegister.String()
}

// jobListData feeds the job-list partial.
type jobListData struct {
	Jobs       []viewmodel.JobCard
	Selectable bool
	CSRFToken  string
}

// jobList bundles a listing with the selection capability for templates.
func jobList(jobs []viewmodel.JobCard, selectable bool, csrfToken any) jobListData {
	token, _ := csrfToken.(string)
	return jobListData{Jobs: jobs, Selectable: selectable, CSRFToken: token}
}

func stringValue(data map[string]any, key string) string {
	s, _ := data[key].(string)
	return s
}
