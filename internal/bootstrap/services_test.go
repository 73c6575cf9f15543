package bootstrap

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/jobboard/jobboard-ui/config"
	"github.com/jobboard/jobboard-ui/internal/adapters/memstore"
	"github.com/jobboard/jobboard-ui/internal/domain/view"
	"github.com/jobboard/jobboard-ui/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServicesMemoryStore(t *testing.T) {
	services, err := NewServices(&ServiceDeps{Config: testAppConfig(), Logger: discardLogger()})
	require.NoError(t, err)
	require.NotNil(t, services.View)
	require.NotNil(t, services.Catalog)
	assert.Nil(t, services.Metrics)

	jobs, err := services.Catalog.List(context.Background(), ports.JobListOptions{})
	require.NoError(t, err)
	assert.NotEmpty(t, jobs)

	res, err := services.View.Start(context.Background(), "visitor-1", url.Values{"page": {"jobs"}})
	require.NoError(t, err)
	assert.Equal(t, view.PageJobs, res.State.Page)
}

func TestNewServicesRequiresConfig(t *testing.T) {
	_, err := NewServices(nil)
	require.Error(t, err)

	_, err = NewServices(&ServiceDeps{})
	require.Error(t, err)
}

func TestNewServicesRedisStoreRequiresClient(t *testing.T) {
	cfg := testAppConfig()
	cfg.ViewState.Store = config.StateStoreRedis

	_, err := NewServices(&ServiceDeps{Config: cfg, Logger: discardLogger()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis client")
}

func TestBuildStateStoreMemory(t *testing.T) {
	store, err := buildStateStore(config.ViewStateConfig{Store: config.StateStoreMemory, MemoryCapacity: 2}, nil)
	require.NoError(t, err)
	require.IsType(t, &memstore.StateStore{}, store)

	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.Save(ctx, id, view.State{}))
	}
	assert.Equal(t, 2, store.(*memstore.StateStore).Len())
}

func TestLoadCatalogFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.json")
	data := `[{"id": 7, "title": "Barista", "company": "Bean There", "location": "Leeds"}]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cat, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, 1, cat.Len())

	job, err := cat.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Barista", job.Title)
}

func TestLoadCatalogMissingFile(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestBuildMetricsDisabled(t *testing.T) {
	assert.Nil(t, buildMetrics(discardLogger(), config.ObservabilityConfig{}))
}
