package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	jobboard "github.com/jobboard/jobboard-ui"
	"github.com/jobboard/jobboard-ui/config"
	"github.com/jobboard/jobboard-ui/internal/adapters/catalog"
	"github.com/jobboard/jobboard-ui/internal/adapters/memstore"
	redisadapter "github.com/jobboard/jobboard-ui/internal/adapters/redis"
	"github.com/jobboard/jobboard-ui/internal/observability/statsd"
	"github.com/jobboard/jobboard-ui/internal/ports"
	"github.com/jobboard/jobboard-ui/internal/service"
	"github.com/redis/go-redis/v9"
)

// embeddedCatalog is the seed catalog path inside jobboard.DataFS.
const embeddedCatalog = "frontend/data/jobs.json"

// ServiceDeps contains dependencies for building services.
type ServiceDeps struct {
	Config      *config.AppConfig
	RedisClient redis.UniversalClient // required when VIEW_STATE_STORE=redis
	Logger      *slog.Logger
}

// ServiceContainer holds the services the HTTP layer needs.
type ServiceContainer struct {
	View    *service.ViewService
	Catalog ports.JobCatalog
	Metrics *statsd.Client // nil when metrics are disabled
}

// NewServices wires stores, identity, catalog and metrics into the view service.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service config is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config

	store, err := buildStateStore(cfg.ViewState, deps.RedisClient)
	if err != nil {
		return ServiceContainer{}, err
	}

	identity, err := BuildIdentity(IdentityConfig{Auth: cfg.Auth, Logger: logger})
	if err != nil {
		return ServiceContainer{}, err
	}

	cat, err := LoadCatalog(cfg.Site.CatalogPath)
	if err != nil {
		return ServiceContainer{}, err
	}
	logger.Info("job catalog loaded", "jobs", cat.Len(), "source", catalogSource(cfg.Site.CatalogPath))

	metrics := buildMetrics(logger, cfg.Observability)
	opts := service.ViewServiceOptions{
		Store:    store,
		Identity: identity.Provider,
		Roles:    identity.Roles,
		Logger:   logger,
	}
	if metrics != nil {
		opts.Metrics = metrics
		metrics.Gauge("catalog.jobs", float64(cat.Len()), nil)
	}

	view, err := service.NewViewService(opts)
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("create view service: %w", err)
	}

	return ServiceContainer{View: view, Catalog: cat, Metrics: metrics}, nil
}

//nolint:ireturn // the store implementation is chosen by configuration.
func buildStateStore(cfg config.ViewStateConfig, client redis.UniversalClient) (ports.StateStore, error) {
	switch cfg.Store {
	case config.StateStoreRedis:
		if client == nil {
			return nil, errors.New("VIEW_STATE_STORE=redis requires a redis client")
		}
		return redisadapter.NewStateStoreWithPrefix(client, cfg.KeyPrefix, cfg.TTL), nil
	case config.StateStoreMemory, "":
		return memstore.NewStateStore(cfg.TTL, memstore.WithCapacity(cfg.MemoryCapacity)), nil
	default:
		return nil, fmt.Errorf("unknown view state store %q", cfg.Store)
	}
}

// LoadCatalog reads the job catalog at path, or the embedded seed when path
// is empty.
func LoadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		cat, err := catalog.Load(jobboard.DataFS, embeddedCatalog)
		if err != nil {
			return nil, fmt.Errorf("load embedded job catalog: %w", err)
		}
		return cat, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read job catalog: %w", err)
	}
	cat, err := catalog.New(data)
	if err != nil {
		return nil, fmt.Errorf("parse job catalog %s: %w", path, err)
	}
	return cat, nil
}

func catalogSource(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}

// buildMetrics returns a statsd client, or nil when metrics are off or the
// client cannot be created.
func buildMetrics(logger *slog.Logger, cfg config.ObservabilityConfig) *statsd.Client {
	if !cfg.Metrics.IsEnabled() {
		return nil
	}
	client, err := statsd.NewClient(statsd.Config{
		Enabled:    true,
		Address:    cfg.Metrics.StatsdAddress,
		Prefix:     cfg.Metrics.Prefix,
		Logger:     logger,
		GlobalTags: cfg.Metrics.Tags,
	})
	if err != nil {
		logger.Error("failed to initialise statsd client", "error", err)
		return nil
	}
	return client
}
