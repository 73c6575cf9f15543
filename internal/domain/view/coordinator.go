// Package view holds the page-selection core of the site: the page enum,
// startup resolution, the state transitions and the render selection.
// It is pure and free of HTTP and storage concerns.
package view

// State is the tuple owned by the coordinator.
type State struct {
	Page  Page   `json:"page"`
	User  *User  `json:"user,omitempty"`
	JobID *int64 `json:"job_id,omitempty"`
}

// NewState seeds a state from the startup resolution. No user is logged in.
func NewState(in Initial) State {
	page := in.Page
	if page == "" {
		page = DefaultPage
	}
	return State{Page: page, JobID: in.JobID}
}

// Effect is a side effect requested by a transition for the rendering layer.
type Effect uint8

const (
	EffectNone      Effect = 0
	EffectScrollTop Effect = 1 << 0
)

// Has reports whether e contains f.
func (e Effect) Has(f Effect) bool { return f != EffectNone && e&f == f }

// Coordinator applies transitions to a State.
// It is not safe for concurrent use; callers serialize access.
type Coordinator struct {
	state State
}

// NewCoordinator returns a coordinator holding s.
func NewCoordinator(s State) *Coordinator {
	return &Coordinator{state: s}
}

// State returns a copy of the current state.
func (c *Coordinator) State() State { return c.state }

// Login records user. Non-admin users land on the settings page, which doubles
// as their dashboard. Admins keep the current page; the admin shell ignores it.
func (c *Coordinator) Login(user User) Effect {
	u := user
	c.state.User = &u
	if u.Role != RoleAdmin {
		c.state.Page = PageSettings
	}
	return EffectNone
}

// Logout clears the user and returns to the settings page, which shows the
// login form when nobody is logged in.
func (c *Coordinator) Logout() Effect {
	c.state.User = nil
	c.state.Page = PageSettings
	return EffectNone
}

// SelectJob records the selected job and opens its details page.
func (c *Coordinator) SelectJob(id int64) Effect {
	c.state.JobID = &id
	c.state.Page = PageJobDetails
	return EffectScrollTop
}

// Navigate sets the current page as given. No allow-list check happens here;
// unknown pages are handled by Select.
func (c *Coordinator) Navigate(page Page) Effect {
	c.state.Page = page
	return EffectNone
}

// View returns the render selection for the current state.
func (c *Coordinator) View() View { return Select(c.state) }
