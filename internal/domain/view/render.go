package view

// View is the top-level render selection. It has exactly two variants,
// AdminShell and Normal.
type View interface {
	isView()
}

// AdminShell replaces the whole public tree for admin users.
// Its only action is logout.
type AdminShell struct {
	User User
}

// Normal is the public tree: one page, the bottom navigation and the chat widget.
type Normal struct {
	// Requested is the page id held in state, which may be outside the set.
	Requested Page
	// Page is the page actually rendered.
	Page  Page
	Props Props
	Nav   Nav
	Chat  Chat
}

func (AdminShell) isView() {}
func (Normal) isView()     {}

// Props are the inputs handed to a page. Capability flags mark which actions
// the page may emit; data fields are only set when the page receives them.
type Props struct {
	CanNavigate  bool
	CanSelectJob bool
	CanLogin     bool
	CanLogout    bool
	User         *User
	JobID        *int64
}

// Nav is the bottom navigation input.
type Nav struct {
	Current Page
	Items   []Page
}

// Chat is the chat widget input. User is nil for anonymous visitors.
type Chat struct {
	User *User
}

// Select maps a state to its view. Admin users get the admin shell regardless
// of the current page; everyone else gets the page keyed by s.Page, with
// unknown pages rendered as the home page.
func Select(s State) View {
	if s.User.IsAdmin() {
		return AdminShell{User: *s.User}
	}

	page := PageFor(s.Page)
	return Normal{
		Requested: s.Page,
		Page:      page,
		Props:     propsFor(page, s),
		Nav:       Nav{Current: s.Page, Items: AllPages()},
		Chat:      Chat{User: s.User},
	}
}

// PageFor returns the page rendered for p.
func PageFor(p Page) Page {
	switch p {
	case PageHome:
		return PageHome
	case PageJobs:
		return PageJobs
	case PageInvite:
		return PageInvite
	case PageSettings:
		return PageSettings
	case PageRegister:
		return PageRegister
	case PageJobDetails:
		return PageJobDetails
	case PageAdsPlan:
		return PageAdsPlan
	default:
		return PageHome
	}
}

func propsFor(page Page, s State) Props {
	switch page {
	case PageHome:
		return Props{CanNavigate: true, CanSelectJob: true, User: s.User}
	case PageJobs:
		return Props{CanSelectJob: true}
	case PageInvite:
		return Props{}
	case PageSettings:
		return Props{CanNavigate: true, CanLogin: true, CanLogout: true, User: s.User}
	case PageRegister:
		return Props{CanNavigate: true}
	case PageJobDetails:
		return Props{CanNavigate: true, User: s.User, JobID: s.JobID}
	case PageAdsPlan:
		return Props{CanNavigate: true, User: s.User}
	default:
		return Props{CanNavigate: true, CanSelectJob: true, User: s.User}
	}
}
