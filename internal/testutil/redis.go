// Package testutil provides helpers for tests that talk to real infrastructure.
package testutil

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	pingTimeout = 2 * time.Second
	// lockTTL bounds how long a crashed test run can hold a database.
	lockTTL  = 30 * time.Minute
	lockKey  = "jobboard:testutil:db_lock:%d"
	maxRedis = 15
)

// redisCandidates are probed in order when REDIS_ADDR is unset.
//
//nolint:gochecknoglobals // static list
var redisCandidates = []string{"redis:6379", "localhost:6379", "localhost:56379"}

// SetupTestRedis returns a client bound to an empty, exclusively reserved
// Redis database. The test is skipped when no server answers, or fails when
// TEST_REQUIRE_REDIS or TEST_REQUIRE_INFRA is set.
func SetupTestRedis(t testing.TB) *redis.Client {
	t.Helper()

	addr, ok := findRedis()
	if !ok {
		if requireRedis() {
			t.Fatal("redis not available for testing")
		}
		t.Skip("redis not available for testing")
	}

	db := reserveDB(t, addr)
	client := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	t.Cleanup(func() {
		if err := client.Close(); err != nil {
			t.Logf("close test redis client: %v", err)
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("flush test redis db %d: %v", db, err)
	}
	return client
}

func findRedis() (string, bool) {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return addr, ping(addr)
	}
	for _, addr := range redisCandidates {
		if ping(addr) {
			return addr, true
		}
	}
	return "", false
}

func ping(addr string) bool {
	client := redis.NewClient(&redis.Options{Addr: addr, DialTimeout: pingTimeout})
	defer func() { _ = client.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}

// reserveDB picks a database for this test. TEST_REDIS_DB pins it; otherwise
// a lock key in DB 0 claims the first free index in 1..15 so parallel
// package runs never flush each other's data.
func reserveDB(t testing.TB, addr string) int {
	t.Helper()
	if v := os.Getenv("TEST_REDIS_DB"); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i >= 0 {
			return i
		}
		t.Logf("ignoring invalid TEST_REDIS_DB=%q", v)
	}

	meta := redis.NewClient(&redis.Options{Addr: addr})
	defer func() { _ = meta.Close() }()

	owner := fmt.Sprintf("%d:%d", os.Getpid(), time.Now().UnixNano())
	for i := 1; i <= maxRedis; i++ {
		key := fmt.Sprintf(lockKey, i)
		ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		ok, err := meta.SetNX(ctx, key, owner, lockTTL).Result()
		cancel()
		if err != nil || !ok {
			continue
		}
		t.Cleanup(func() { releaseDB(addr, key, owner) })
		return i
	}

	t.Log("no free redis db, sharing db 15")
	return maxRedis
}

func releaseDB(addr, key, owner string) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer func() { _ = client.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if v, err := client.Get(ctx, key).Result(); err == nil && v == owner {
		client.Del(ctx, key)
	}
}

func requireRedis() bool {
	return envBool("TEST_REQUIRE_REDIS") || envBool("TEST_REQUIRE_INFRA")
}

func envBool(name string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(name))) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
