package catalog

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/jobboard/jobboard-ui/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seed = `[
  {"id": 1, "title": "Barista", "company": "Bean Co", "featured": false, "posted_at": "2024-01-01T00:00:00Z"},
  {"id": 2, "title": "Line Cook", "company": "Grill", "featured": true, "posted_at": "2024-03-01T00:00:00Z"},
  {"id": 3, "title": "Driver", "company": "Fast", "featured": true, "posted_at": "2024-02-01T00:00:00Z"}
]`

func TestCatalog_ListOrdersNewestFirst(t *testing.T) {
	c, err := New([]byte(seed))
	require.NoError(t, err)

	jobs, err := c.List(context.Background(), ports.JobListOptions{})
	require.NoError(t, err)
	require.Len(t, jobs, 3)
	assert.Equal(t, []int64{2, 3, 1}, []int64{jobs[0].ID, jobs[1].ID, jobs[2].ID})
}

func TestCatalog_ListFeaturedWithLimit(t *testing.T) {
	c, err := New([]byte(seed))
	require.NoError(t, err)

	jobs, err := c.List(context.Background(), ports.JobListOptions{FeaturedOnly: true, Limit: 1})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, int64(2), jobs[0].ID)
}

func TestCatalog_Get(t *testing.T) {
	c, err := New([]byte(seed))
	require.NoError(t, err)

	job, err := c.Get(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Driver", job.Title)

	_, err = c.Get(context.Background(), 99)
	assert.ErrorIs(t, err, ports.ErrJobNotFound)
}

func TestCatalog_ListReturnsCopy(t *testing.T) {
	c, err := New([]byte(seed))
	require.NoError(t, err)

	jobs, err := c.List(context.Background(), ports.JobListOptions{})
	require.NoError(t, err)
	jobs[0].Title = "changed"

	job, err := c.Get(context.Background(), jobs[0].ID)
	require.NoError(t, err)
	assert.NotEqual(t, "changed", job.Title)
}

func TestCatalog_CanceledContext(t *testing.T) {
	c, err := New([]byte(seed))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.List(ctx, ports.JobListOptions{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestNew_RejectsBadSeeds(t *testing.T) {
	_, err := New([]byte(`{`))
	require.Error(t, err)

	_, err = New([]byte(`[{"id": 1, "title": ""}]`))
	require.Error(t, err)

	_, err = New([]byte(`[{"id": 1, "title": "a"}, {"id": 1, "title": "b"}]`))
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	fsys := fstest.MapFS{"data/jobs.json": {Data: []byte(seed)}}

	c, err := Load(fsys, "data/jobs.json")
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())

	_, err = Load(fsys, "missing.json")
	require.Error(t, err)
}
