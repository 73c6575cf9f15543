package service

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/jobboard/jobboard-ui/internal/adapters/memstore"
	"github.com/jobboard/jobboard-ui/internal/domain/view"
	"github.com/jobboard/jobboard-ui/internal/mocks"
	"github.com/jobboard/jobboard-ui/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type countingSink struct {
	mu     sync.Mutex
	counts map[string]int64
}

func (c *countingSink) Count(name string, value int64, _ map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.counts == nil {
		c.counts = map[string]int64{}
	}
	c.counts[name] += value
}
func (c *countingSink) Gauge(string, float64, map[string]string)        {}
func (c *countingSink) Timing(string, time.Duration, map[string]string) {}

func newTestService(t *testing.T, identity ports.IdentityProvider, roles ports.RoleMapper) (*ViewService, *countingSink) {
	t.Helper()
	sink := &countingSink{}
	svc, err := NewViewService(ViewServiceOptions{
		Store:    memstore.NewStateStore(time.Hour),
		Identity: identity,
		Roles:    roles,
		Metrics:  sink,
	})
	require.NoError(t, err)
	return svc, sink
}

func TestNewViewService_RequiresStore(t *testing.T) {
	_, err := NewViewService(ViewServiceOptions{})
	require.Error(t, err)
	assert.Panics(t, func() { MustNewViewService(ViewServiceOptions{}) })
}

func TestViewService_StartResolvesQuery(t *testing.T) {
	svc, _ := newTestService(t, nil, nil)
	ctx := context.Background()

	res, err := svc.Start(ctx, "v1", url.Values{"page": {"jobs"}, "jobId": {"42"}})
	require.NoError(t, err)
	assert.Equal(t, view.PageJobs, res.State.Page)
	require.NotNil(t, res.State.JobID)
	assert.Equal(t, int64(42), *res.State.JobID)
	assert.Equal(t, view.EffectNone, res.Effects)

	res, err = svc.Start(ctx, "v1", url.Values{"page": {"admin"}})
	require.NoError(t, err)
	assert.Equal(t, view.PageHome, res.State.Page)
	assert.Nil(t, res.State.JobID)
}

func TestViewService_StartKeepsUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	idp := mocks.NewMockIdentityProvider(ctrl)
	roles := mocks.NewMockRoleMapper(ctrl)
	idp.EXPECT().Lookup(gomock.Any(), ports.Credentials{Email: "jane@example.com"}).
		Return(ports.Identity{UserID: "u1", Email: "jane@example.com", Groups: []string{"members"}}, nil)
	roles.EXPECT().Map(gomock.Any()).Return(view.RoleMember)

	svc, _ := newTestService(t, idp, roles)
	ctx := context.Background()

	_, err := svc.Login(ctx, "v1", ports.Credentials{Email: "jane@example.com"})
	require.NoError(t, err)

	res, err := svc.Start(ctx, "v1", url.Values{"page": {"invite"}})
	require.NoError(t, err)
	assert.Equal(t, view.PageInvite, res.State.Page)
	require.NotNil(t, res.State.User)
	assert.Equal(t, "u1", res.State.User.ID)
}

func TestViewService_CurrentUnknownVisitor(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStateStore(ctrl)
	store.EXPECT().Get(gomock.Any(), "v1").Return(view.State{}, ports.ErrStateNotFound)

	svc := MustNewViewService(ViewServiceOptions{Store: store})
	res, err := svc.Current(context.Background(), "v1")
	require.NoError(t, err)
	assert.Equal(t, view.PageHome, res.State.Page)
	assert.IsType(t, view.Normal{}, res.View)
}

func TestViewService_NavigateAndSelect(t *testing.T) {
	svc, sink := newTestService(t, nil, nil)
	ctx := context.Background()

	res, err := svc.Navigate(ctx, "v1", view.PageAdsPlan)
	require.NoError(t, err)
	assert.Equal(t, view.PageAdsPlan, res.State.Page)

	res, err = svc.SelectJob(ctx, "v1", 7)
	require.NoError(t, err)
	assert.Equal(t, view.PageJobDetails, res.State.Page)
	assert.True(t, res.Effects.Has(view.EffectScrollTop))
	normal, ok := res.View.(view.Normal)
	require.True(t, ok)
	require.NotNil(t, normal.Props.JobID)
	assert.Equal(t, int64(7), *normal.Props.JobID)

	cur, err := svc.Current(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, res.State, cur.State)
	assert.Equal(t, int64(2), sink.counts["view.transition"])
}

func TestViewService_NavigateUnknownPageRendersHome(t *testing.T) {
	svc, _ := newTestService(t, nil, nil)

	res, err := svc.Navigate(context.Background(), "v1", view.Page("nowhere"))
	require.NoError(t, err)
	assert.Equal(t, view.Page("nowhere"), res.State.Page)
	normal, ok := res.View.(view.Normal)
	require.True(t, ok)
	assert.Equal(t, view.PageHome, normal.Page)
}

func TestViewService_AdminLoginShowsShell(t *testing.T) {
	ctrl := gomock.NewController(t)
	idp := mocks.NewMockIdentityProvider(ctrl)
	roles := mocks.NewMockRoleMapper(ctrl)
	idp.EXPECT().Lookup(gomock.Any(), gomock.Any()).Return(ports.Identity{UserID: "a1", Email: "boss@example.com"}, nil)
	roles.EXPECT().Map(gomock.Any()).Return(view.RoleAdmin)

	svc, _ := newTestService(t, idp, roles)
	ctx := context.Background()

	_, err := svc.Navigate(ctx, "v1", view.PageJobs)
	require.NoError(t, err)

	res, err := svc.Login(ctx, "v1", ports.Credentials{Email: "boss@example.com"})
	require.NoError(t, err)
	assert.Equal(t, view.PageJobs, res.State.Page, "admin login keeps the page")
	shell, ok := res.View.(view.AdminShell)
	require.True(t, ok)
	assert.Equal(t, "boss@example.com", shell.User.Email)

	res, err = svc.Logout(ctx, "v1")
	require.NoError(t, err)
	assert.Nil(t, res.State.User)
	assert.Equal(t, view.PageSettings, res.State.Page)
	assert.IsType(t, view.Normal{}, res.View)
}

func TestViewService_LoginLookupError(t *testing.T) {
	ctrl := gomock.NewController(t)
	idp := mocks.NewMockIdentityProvider(ctrl)
	lookupErr := errors.Join(ports.ErrInvalidCredentials, errors.New("bad email"))
	idp.EXPECT().Lookup(gomock.Any(), gomock.Any()).Return(ports.Identity{}, lookupErr)

	svc, sink := newTestService(t, idp, mocks.NewMockRoleMapper(ctrl))
	_, err := svc.Login(context.Background(), "v1", ports.Credentials{})
	require.ErrorIs(t, err, ports.ErrInvalidCredentials)
	assert.Equal(t, int64(1), sink.counts["view.login_failed"])

	cur, err := svc.Current(context.Background(), "v1")
	require.NoError(t, err)
	assert.Nil(t, cur.State.User)
}

func TestViewService_StoreErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStateStore(ctrl)
	boom := errors.New("boom")

	svc := MustNewViewService(ViewServiceOptions{Store: store})
	ctx := context.Background()

	store.EXPECT().Get(gomock.Any(), "v1").Return(view.State{}, boom)
	_, err := svc.Navigate(ctx, "v1", view.PageJobs)
	require.ErrorIs(t, err, boom)

	store.EXPECT().Get(gomock.Any(), "v1").Return(view.State{}, ports.ErrStateNotFound)
	store.EXPECT().Save(gomock.Any(), "v1", gomock.Any()).Return(boom)
	_, err = svc.Navigate(ctx, "v1", view.PageJobs)
	require.ErrorIs(t, err, boom)
}

func TestViewService_RequiresVisitor(t *testing.T) {
	svc, _ := newTestService(t, nil, nil)
	ctx := context.Background()

	_, err := svc.Navigate(ctx, "", view.PageJobs)
	require.ErrorIs(t, err, ErrVisitorRequired)
	_, err = svc.Current(ctx, "")
	require.ErrorIs(t, err, ErrVisitorRequired)
	_, err = svc.Login(ctx, "", ports.Credentials{})
	require.ErrorIs(t, err, ErrVisitorRequired)
}

func TestViewService_Forget(t *testing.T) {
	svc, _ := newTestService(t, nil, nil)
	ctx := context.Background()

	_, err := svc.Navigate(ctx, "v1", view.PageJobs)
	require.NoError(t, err)
	require.NoError(t, svc.Forget(ctx, "v1"))

	cur, err := svc.Current(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, view.PageHome, cur.State.Page)
}

func TestViewService_ConcurrentTransitionsSerialised(t *testing.T) {
	svc, sink := newTestService(t, nil, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_, err := svc.SelectJob(ctx, "v1", id)
			assert.NoError(t, err)
		}(int64(i))
	}
	wg.Wait()

	assert.Equal(t, int64(50), sink.counts["view.transition"])
	assert.Equal(t, 0, svc.locks.size())
}

func TestNewVisitorID(t *testing.T) {
	a, b := NewVisitorID(), NewVisitorID()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}
