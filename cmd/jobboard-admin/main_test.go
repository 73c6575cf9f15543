package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jobboard/jobboard-ui/internal/adapters/catalog"
	"github.com/jobboard/jobboard-ui/internal/adapters/memstore"
	"github.com/jobboard/jobboard-ui/internal/domain/view"
	"github.com/jobboard/jobboard-ui/internal/ports"
	"github.com/jobboard/jobboard-ui/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func TestDescribeView(t *testing.T) {
	admin := &view.User{Email: "boss@example.com", Role: view.RoleAdmin}

	assert.Equal(t, "admin-shell", describeView(view.Select(view.State{Page: view.PageJobs, User: admin})))
	assert.Equal(t, "jobs", describeView(view.Select(view.State{Page: view.PageJobs})))
	assert.Equal(t, `home (requested "nope")`, describeView(view.Select(view.State{Page: "nope"})))
}

func TestMatchesState(t *testing.T) {
	member := view.State{Page: view.PageSettings, User: &view.User{Role: view.RoleMember}}
	anon := view.State{Page: view.PageHome}

	assert.True(t, matchesState(member, listStatesOptions{}))
	assert.True(t, matchesState(member, listStatesOptions{Role: "member", Page: "settings"}))
	assert.False(t, matchesState(member, listStatesOptions{Page: "home"}))
	assert.False(t, matchesState(member, listStatesOptions{Role: "anonymous"}))
	assert.True(t, matchesState(anon, listStatesOptions{Role: "anonymous"}))
	assert.False(t, matchesState(anon, listStatesOptions{Role: "admin"}))
}

func TestRenderStateRows(t *testing.T) {
	var buf bytes.Buffer
	rows := []stateRow{
		{
			VisitorID: "v1",
			State:     view.State{Page: view.PageJobDetails, JobID: int64Ptr(101)},
			TTL:       90 * time.Minute,
		},
		{
			VisitorID: "v2",
			State: view.State{
				Page: view.PageHome,
				User: &view.User{Email: "boss@example.com", Role: view.RoleAdmin},
			},
			TTL: -1 * time.Second,
		},
	}
	require.NoError(t, renderStateRows(&buf, rows))

	out := buf.String()
	assert.Contains(t, out, "VISITOR")
	assert.Contains(t, out, "job-details")
	assert.Contains(t, out, "101")
	assert.Contains(t, out, "1h30m0s")
	assert.Contains(t, out, "admin-shell")
	assert.Contains(t, out, "no expiry")
	assert.Contains(t, out, "Total: 2")
}

func TestRenderStateRowsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderStateRows(&buf, nil))
	assert.Contains(t, buf.String(), "no view states found")
}

func TestPrintState(t *testing.T) {
	st := view.State{
		Page: view.PageSettings,
		User: &view.User{Email: "jane@example.com", Name: "Jane", Role: view.RoleMember},
	}

	var buf bytes.Buffer
	require.NoError(t, printState(&buf, showStateOptions{VisitorID: "v1"}, st))
	assert.Contains(t, buf.String(), "Jane <jane@example.com> role=member")
	assert.Contains(t, buf.String(), "Renders: settings")

	buf.Reset()
	require.NoError(t, printState(&buf, showStateOptions{VisitorID: "v1", RawJSON: true}, st))
	assert.Contains(t, buf.String(), `"page": "settings"`)
}

func TestParseClearStatesFlags(t *testing.T) {
	_, err := parseClearStatesFlags(nil)
	require.Error(t, err)

	_, err = parseClearStatesFlags([]string{"--all", "--visitor", "v1"})
	require.Error(t, err)

	opts, err := parseClearStatesFlags([]string{"--visitor", " v1 ", "--yes"})
	require.NoError(t, err)
	assert.Equal(t, "v1", opts.VisitorID)
	assert.True(t, opts.Yes)
}

func TestParseListStatesFlags(t *testing.T) {
	opts, err := parseListStatesFlags([]string{"--role", "Admin", "--limit", "5"})
	require.NoError(t, err)
	assert.Equal(t, "admin", opts.Role)
	assert.Equal(t, 5, opts.Limit)

	_, err = parseListStatesFlags([]string{"--role", "owner"})
	require.Error(t, err)

	_, err = parseListStatesFlags([]string{"--limit", "-1"})
	require.Error(t, err)
}

func TestClearStatesConfirmation(t *testing.T) {
	all := clearStatesOptions{All: true}.confirmation()

	var out bytes.Buffer
	require.NoError(t, all.ask(strings.NewReader("yes\n"), &out))
	assert.Contains(t, out.String(), "WARNING")

	out.Reset()
	require.ErrorIs(t, all.ask(strings.NewReader("n\n"), &out), errAborted)

	one := clearStatesOptions{VisitorID: "v1"}.confirmation()
	out.Reset()
	require.ErrorIs(t, one.ask(strings.NewReader(""), &out), errAborted)
	assert.Contains(t, out.String(), `About to clear view state for visitor "v1".`)

	dry := clearStatesOptions{All: true, DryRun: true}.confirmation()
	assert.True(t, dry.Skip)
	out.Reset()
	require.NoError(t, dry.ask(strings.NewReader(""), &out))
	assert.Empty(t, out.String())
}

func TestParseStartupQuery(t *testing.T) {
	tests := map[string]string{
		"https://jobs.example.com/?page=jobs": "jobs",
		"/?page=invite":                       "invite",
		"page=settings&jobId=3":               "settings",
		"":                                    "",
	}
	for in, want := range tests {
		q, err := parseStartupQuery(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, q.Get("page"), in)
	}
}

func TestPrintResolution(t *testing.T) {
	cat, err := catalog.New([]byte(`[{"id": 3, "title": "Baker", "company": "Crumbs"}]`))
	require.NoError(t, err)

	q, err := parseStartupQuery("page=job-details&jobId=3")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, printResolution(context.Background(), &buf, view.Resolve(q), cat))
	assert.Contains(t, buf.String(), "Page:  job-details")
	assert.Contains(t, buf.String(), "JobID: 3 (Baker at Crumbs)")
	assert.Contains(t, buf.String(), "Renders: job-details")

	q, err = parseStartupQuery("page=bogus&jobId=99")
	require.NoError(t, err)
	buf.Reset()
	require.NoError(t, printResolution(context.Background(), &buf, view.Resolve(q), cat))
	assert.Contains(t, buf.String(), "Page:  home")
	assert.Contains(t, buf.String(), "99 (not in catalog)")
}

func TestRenderJobs(t *testing.T) {
	cat, err := catalog.New([]byte(`[
		{"id": 1, "title": "Baker", "company": "Crumbs", "featured": true, "posted_at": "2024-05-01T00:00:00Z"},
		{"id": 2, "title": "Porter", "company": "Inn"}
	]`))
	require.NoError(t, err)

	jobs, err := cat.List(context.Background(), ports.JobListOptions{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, renderJobs(&buf, jobs))
	assert.Contains(t, buf.String(), "2024-05-01")
	assert.Contains(t, buf.String(), "Catalog OK: 2 job(s)")
}

func TestCommandsHaveDescriptions(t *testing.T) {
	for name, c := range commands() {
		assert.Equal(t, name, c.name)
		assert.NotEmpty(t, c.description, name)
		assert.NotNil(t, c.run, name)
	}
}

type failingForgetter struct{ failOn string }

func (f failingForgetter) Forget(_ context.Context, visitorID string) error {
	if visitorID == f.failOn {
		return errors.New("connection reset")
	}
	return nil
}

func TestForgetStates(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewStateStore(time.Hour)
	svc := service.MustNewViewService(service.ViewServiceOptions{Store: store})

	for _, id := range []string{"v1", "v2", "v3"} {
		_, err := svc.Navigate(ctx, id, view.PageJobs)
		require.NoError(t, err)
	}

	deleted, err := forgetStates(ctx, svc, []string{"v1", "v3"})
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)
	assert.Equal(t, 1, store.Len())

	cur, err := svc.Current(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, view.PageHome, cur.State.Page)
}

func TestForgetStates_StopsOnError(t *testing.T) {
	deleted, err := forgetStates(context.Background(), failingForgetter{failOn: "v2"}, []string{"v1", "v2", "v3"})
	require.Error(t, err)
	assert.Equal(t, 1, deleted)
	assert.Contains(t, err.Error(), "clear view state v2")
}
