package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jobboard/jobboard-ui/internal/domain/view"
	"github.com/jobboard/jobboard-ui/internal/observability/statsd"
	"github.com/jobboard/jobboard-ui/internal/ports"
)

// ErrVisitorRequired is returned when a call carries no visitor id.
var ErrVisitorRequired = errors.New("visitor id is required")

// ViewServiceOptions groups dependencies for ViewService.
type ViewServiceOptions struct {
	Store    ports.StateStore
	Identity ports.IdentityProvider
	Roles    ports.RoleMapper
	Metrics  statsd.Sink
	Logger   *slog.Logger
}

// ViewService runs view transitions for visitors: it loads the visitor's
// state, applies one coordinator transition, saves the result and reports
// the render selection.
type ViewService struct {
	store    ports.StateStore
	identity ports.IdentityProvider
	roles    ports.RoleMapper
	metrics  statsd.Sink
	logger   *slog.Logger
	locks    *keyedMutex
}

// Result is the outcome of a transition.
type Result struct {
	VisitorID string
	State     view.State
	View      view.View
	Effects   view.Effect
}

// NewViewService constructs a ViewService. Store is required.
func NewViewService(opts ViewServiceOptions) (*ViewService, error) {
	if opts.Store == nil {
		return nil, errors.New("state store is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = statsd.Discard
	}
	return &ViewService{
		store:    opts.Store,
		identity: opts.Identity,
		roles:    opts.Roles,
		metrics:  metrics,
		logger:   logger.With("component", "view_service"),
		locks:    newKeyedMutex(),
	}, nil
}

// MustNewViewService is like NewViewService but panics on error.
func MustNewViewService(opts ViewServiceOptions) *ViewService {
	svc, err := NewViewService(opts)
	if err != nil {
		panic(err)
	}
	return svc
}

// NewVisitorID returns a fresh random visitor id.
func NewVisitorID() string {
	return uuid.NewString()
}

// Start handles a full page load: the query is resolved into the initial
// page and job id. A logged-in user is kept.
func (s *ViewService) Start(ctx context.Context, visitorID string, q view.QuerySource) (Result, error) {
	initial := view.Resolve(q)
	return s.apply(ctx, visitorID, "start", func(st view.State) (view.State, view.Effect) {
		st.Page = initial.Page
		st.JobID = initial.JobID
		return st, view.EffectNone
	})
}

// Current returns the visitor's state without changing it. Unknown visitors
// get the default state, which is not persisted.
func (s *ViewService) Current(ctx context.Context, visitorID string) (Result, error) {
	if visitorID == "" {
		return Result{}, ErrVisitorRequired
	}
	unlock := s.locks.Lock(visitorID)
	defer unlock()

	st, err := s.load(ctx, visitorID)
	if err != nil {
		return Result{}, err
	}
	return Result{VisitorID: visitorID, State: st, View: view.Select(st)}, nil
}

// Navigate moves the visitor to page. The page is not validated; unknown
// pages render the home page.
func (s *ViewService) Navigate(ctx context.Context, visitorID string, page view.Page) (Result, error) {
	return s.apply(ctx, visitorID, "navigate", transition(func(c *view.Coordinator) view.Effect {
		return c.Navigate(page)
	}))
}

// SelectJob records the selected job and opens its details page.
func (s *ViewService) SelectJob(ctx context.Context, visitorID string, jobID int64) (Result, error) {
	return s.apply(ctx, visitorID, "select_job", transition(func(c *view.Coordinator) view.Effect {
		return c.SelectJob(jobID)
	}))
}

// Login resolves creds to a user and logs the visitor in. Lookup errors wrap
// ports.ErrInvalidCredentials when the input itself is unusable.
func (s *ViewService) Login(ctx context.Context, visitorID string, creds ports.Credentials) (Result, error) {
	if visitorID == "" {
		return Result{}, ErrVisitorRequired
	}
	user, err := s.resolveUser(ctx, creds)
	if err != nil {
		s.count("view.login_failed", nil)
		return Result{}, err
	}
	return s.apply(ctx, visitorID, "login", transition(func(c *view.Coordinator) view.Effect {
		return c.Login(user)
	}))
}

// Logout clears the user and shows the settings page.
func (s *ViewService) Logout(ctx context.Context, visitorID string) (Result, error) {
	return s.apply(ctx, visitorID, "logout", transition(func(c *view.Coordinator) view.Effect {
		return c.Logout()
	}))
}

// Forget drops all stored state for the visitor.
func (s *ViewService) Forget(ctx context.Context, visitorID string) error {
	if visitorID == "" {
		return nil
	}
	unlock := s.locks.Lock(visitorID)
	defer unlock()

	if err := s.store.Delete(ctx, visitorID); err != nil {
		return fmt.Errorf("delete view state: %w", err)
	}
	return nil
}

func (s *ViewService) resolveUser(ctx context.Context, creds ports.Credentials) (view.User, error) {
	if s.identity == nil {
		return view.User{}, errors.New("identity provider is not configured")
	}
	identity, err := s.identity.Lookup(ctx, creds)
	if err != nil {
		return view.User{}, fmt.Errorf("lookup identity: %w", err)
	}

	role := view.RoleGuest
	if s.roles != nil {
		role = s.roles.Map(identity)
	}

	return view.User{
		ID:    identity.UserID,
		Email: identity.Email,
		Name:  identity.Name,
		Role:  role,
	}, nil
}

type stateFunc func(view.State) (view.State, view.Effect)

func transition(fn func(*view.Coordinator) view.Effect) stateFunc {
	return func(st view.State) (view.State, view.Effect) {
		c := view.NewCoordinator(st)
		eff := fn(c)
		return c.State(), eff
	}
}

// apply runs fn on the visitor's state under the visitor's lock and saves it.
func (s *ViewService) apply(ctx context.Context, visitorID, name string, fn stateFunc) (Result, error) {
	if visitorID == "" {
		return Result{}, ErrVisitorRequired
	}
	unlock := s.locks.Lock(visitorID)
	defer unlock()

	start := time.Now()
	st, err := s.load(ctx, visitorID)
	if err != nil {
		return Result{}, err
	}

	next, eff := fn(st)
	if err := s.store.Save(ctx, visitorID, next); err != nil {
		return Result{}, fmt.Errorf("save view state: %w", err)
	}

	v := view.Select(next)
	s.record(name, v, time.Since(start))
	s.logger.DebugContext(ctx, "view transition",
		"transition", name,
		"page", next.Page,
		"admin", next.User.IsAdmin(),
	)

	return Result{VisitorID: visitorID, State: next, View: v, Effects: eff}, nil
}

func (s *ViewService) load(ctx context.Context, visitorID string) (view.State, error) {
	st, err := s.store.Get(ctx, visitorID)
	switch {
	case err == nil:
		return st, nil
	case errors.Is(err, ports.ErrStateNotFound):
		return view.NewState(view.Initial{}), nil
	default:
		return view.State{}, fmt.Errorf("load view state: %w", err)
	}
}

func (s *ViewService) record(name string, v view.View, elapsed time.Duration) {
	tags := map[string]string{"transition": name, "shell": "normal"}
	if n, ok := v.(view.Normal); ok {
		tags["page"] = n.Page.String()
	} else {
		tags["shell"] = "admin"
	}
	s.metrics.Count("view.transition", 1, tags)
	s.metrics.Timing("view.transition.duration", elapsed, map[string]string{"transition": name})
}

func (s *ViewService) count(name string, tags map[string]string) {
	s.metrics.Count(name, 1, tags)
}
