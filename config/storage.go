package config

import (
	"fmt"
	"strings"
	"time"
)

// StateStoreKind selects where visitor view state is kept.
type StateStoreKind string

const (
	// StateStoreMemory keeps state in process. Single instance only.
	StateStoreMemory StateStoreKind = "memory"
	// StateStoreRedis keeps state in Redis so instances can share it.
	StateStoreRedis StateStoreKind = "redis"
)

// UnmarshalText implements encoding.TextUnmarshaler for StateStoreKind.
func (k *StateStoreKind) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "memory", "redis":
		*k = StateStoreKind(v)
		return nil
	default:
		return fmt.Errorf("invalid StateStoreKind: %q (valid options: memory, redis)", v)
	}
}

const (
	defaultViewStateTTL      = 24 * time.Hour
	minViewStateTTL          = time.Minute
	defaultViewStateCapacity = 10000
)

// ViewStateConfig controls per-visitor view state storage.
type ViewStateConfig struct {
	Store StateStoreKind `env:"VIEW_STATE_STORE" envDefault:"memory"`
	// TTL is refreshed on every save.
	TTL time.Duration `env:"VIEW_STATE_TTL" envDefault:"24h"`
	// KeyPrefix namespaces Redis keys.
	KeyPrefix string `env:"VIEW_STATE_KEY_PREFIX" envDefault:"jobboard:view:"`
	// MemoryCapacity caps visitors held by the memory store.
	MemoryCapacity int `env:"VIEW_STATE_MEMORY_CAPACITY" envDefault:"10000"`
}

// Sanitize applies guardrails to view state settings.
func (c *ViewStateConfig) Sanitize() {
	if c.Store == "" {
		c.Store = StateStoreMemory
	}
	if c.TTL <= 0 {
		c.TTL = defaultViewStateTTL
	}
	if c.TTL < minViewStateTTL {
		c.TTL = minViewStateTTL
	}
	c.KeyPrefix = strings.TrimSpace(c.KeyPrefix)
	if c.MemoryCapacity <= 0 {
		c.MemoryCapacity = defaultViewStateCapacity
	}
}

// RedisConfig contains Redis configuration.
type RedisConfig struct {
	URI                string   `env:"URI"                  envDefault:"localhost:6379"`
	Password           string   `env:"PASSWORD"             envDefault:""`
	SentinelPort       string   `env:"SENTINEL_PORT"        envDefault:"26379"`
	SentinelNodes      []string `env:"SENTINEL_NODES"       envDefault:"localhost:26379"`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"    envDefault:""`
	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
	ClusterNodes       []string `env:"CLUSTER_NODES"        envDefault:""`
	UseCluster         bool     `env:"USE_CLUSTER"          envDefault:"false"`
}
