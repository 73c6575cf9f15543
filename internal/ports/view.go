// Package ports defines interfaces (hexagonal ports) the view service depends on.
// Implementations live in internal/adapters; orchestration in internal/service.
package ports

import (
	"context"
	"time"

	"github.com/jobboard/jobboard-ui/internal/domain/view"
)

// StateStore persists the view state of a visitor between requests.
// Get returns an error satisfying errors.Is(err, ErrStateNotFound) when the
// visitor has no stored state.
type StateStore interface {
	Save(ctx context.Context, visitorID string, st view.State) error
	Get(ctx context.Context, visitorID string) (view.State, error)
	Delete(ctx context.Context, visitorID string) error
}

// Identity is what an IdentityProvider knows about a login attempt.
type Identity struct {
	UserID string
	Email  string
	Name   string
	Groups []string
}

// Credentials carries the login form input.
type Credentials struct {
	Email string
	Name  string
}

// IdentityProvider resolves login credentials to an identity.
type IdentityProvider interface {
	Lookup(ctx context.Context, creds Credentials) (Identity, error)
}

// RoleMapper maps an identity to an application role.
type RoleMapper interface {
	Map(id Identity) view.Role
}

// Job is a listing as shown on the public pages.
type Job struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	JobType     string    `json:"job_type,omitempty"`
	Salary      string    `json:"salary,omitempty"`
	Description string    `json:"description,omitempty"`
	Featured    bool      `json:"featured,omitempty"`
	PostedAt    time.Time `json:"posted_at"`
}

// JobCatalog serves job listings to the pages.
type JobCatalog interface {
	List(ctx context.Context, opts JobListOptions) ([]Job, error)
	Get(ctx context.Context, id int64) (Job, error)
}

// JobListOptions narrows a listing.
type JobListOptions struct {
	FeaturedOnly bool
	Limit        int
}
