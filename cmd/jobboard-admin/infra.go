package main

import (
	"errors"
	"fmt"

	"github.com/jobboard/jobboard-ui/config"
	redisadapter "github.com/jobboard/jobboard-ui/internal/adapters/redis"
	"github.com/jobboard/jobboard-ui/internal/bootstrap"
	"github.com/jobboard/jobboard-ui/internal/service"
	"github.com/redis/go-redis/v9"
)

var errMemoryStore = errors.New("VIEW_STATE_STORE=memory keeps state inside the server process; nothing to inspect")

// stateConn is an open Redis view state store.
type stateConn struct {
	client redis.UniversalClient
	store  *redisadapter.StateStore
	views  *service.ViewService
}

func (c *stateConn) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// openStateStore connects to the configured Redis view state store.
func openStateStore(cmdCtx *commandContext) (*stateConn, error) {
	cfg := cmdCtx.Config.ViewState
	if cfg.Store != config.StateStoreRedis {
		return nil, errMemoryStore
	}

	client, err := bootstrap.ConnectRedis(cmdCtx.Ctx, bootstrap.RedisConnectConfig{
		Redis:  cmdCtx.Config.Redis,
		Logger: cmdCtx.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	store := redisadapter.NewStateStoreWithPrefix(client, cfg.KeyPrefix, cfg.TTL)
	views, err := service.NewViewService(service.ViewServiceOptions{Store: store, Logger: cmdCtx.Logger})
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("build view service: %w", err)
	}
	return &stateConn{client: client, store: store, views: views}, nil
}
