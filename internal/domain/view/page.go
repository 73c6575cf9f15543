package view

// Page identifies one of the pages of the public site.
// Keep string form so values round-trip through forms, URLs and stored state.
type Page string

const (
	PageHome       Page = "home"
	PageJobs       Page = "jobs"
	PageInvite     Page = "invite"
	PageSettings   Page = "settings"
	PageRegister   Page = "register"
	PageJobDetails Page = "job-details"
	PageAdsPlan    Page = "ads-plan"
)

// DefaultPage is used whenever a page identifier cannot be honoured.
const DefaultPage = PageHome

//nolint:gochecknoglobals // static allow-list
var allPages = []Page{
	PageHome,
	PageJobs,
	PageInvite,
	PageSettings,
	PageRegister,
	PageJobDetails,
	PageAdsPlan,
}

// AllPages returns the closed set of page identifiers.
func AllPages() []Page {
	out := make([]Page, len(allPages))
	copy(out, allPages)
	return out
}

// Valid reports whether p is a member of the closed page set.
func (p Page) Valid() bool {
	switch p {
	case PageHome, PageJobs, PageInvite, PageSettings, PageRegister, PageJobDetails, PageAdsPlan:
		return true
	default:
		return false
	}
}

func (p Page) String() string { return string(p) }

// ParsePage returns the page for s and whether s was a member of the set.
// Non-members yield DefaultPage.
func ParsePage(s string) (Page, bool) {
	p := Page(s)
	if p.Valid() {
		return p, true
	}
	return DefaultPage, false
}
