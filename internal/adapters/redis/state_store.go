// Package redis provides Redis-based adapters for the job board UI.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jobboard/jobboard-ui/internal/domain/view"
	"github.com/jobboard/jobboard-ui/internal/ports"
	"github.com/redis/go-redis/v9"
)

// DefaultStateTTL is used when NewStateStore receives a non-positive TTL.
const DefaultStateTTL = 24 * time.Hour

const scanBatch = 100

// StateStore is a Redis-backed view state store for multi-instance deployments.
// Every Save refreshes the key TTL, so idle visitors expire after ttl.
type StateStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewStateStore creates a Redis state store using the "view:" key prefix.
func NewStateStore(client redis.UniversalClient, ttl time.Duration) *StateStore {
	return NewStateStoreWithPrefix(client, "view:", ttl)
}

// NewStateStoreWithPrefix creates a Redis state store with a custom key prefix.
func NewStateStoreWithPrefix(client redis.UniversalClient, prefix string, ttl time.Duration) *StateStore {
	if ttl <= 0 {
		ttl = DefaultStateTTL
	}
	return &StateStore{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// Save stores st for visitorID and refreshes its expiry.
func (s *StateStore) Save(ctx context.Context, visitorID string, st view.State) error {
	if visitorID == "" {
		return errors.New("visitor ID cannot be empty")
	}

	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal view state: %w", err)
	}

	if err := s.client.Set(ctx, s.prefix+visitorID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Get returns the state for visitorID or ports.ErrStateNotFound.
func (s *StateStore) Get(ctx context.Context, visitorID string) (view.State, error) {
	if visitorID == "" {
		return view.State{}, ports.ErrStateNotFound
	}

	data, err := s.client.Get(ctx, s.prefix+visitorID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return view.State{}, ports.ErrStateNotFound
		}
		return view.State{}, fmt.Errorf("redis get: %w", err)
	}

	var st view.State
	if unmarshalErr := json.Unmarshal(data, &st); unmarshalErr != nil {
		// A corrupt record is dropped so the visitor starts over.
		if delErr := s.Delete(ctx, visitorID); delErr != nil {
			return view.State{}, errors.Join(
				fmt.Errorf("unmarshal view state: %w", unmarshalErr),
				fmt.Errorf("cleanup corrupt view state: %w", delErr),
			)
		}
		return view.State{}, fmt.Errorf("unmarshal view state: %w", unmarshalErr)
	}

	return st, nil
}

func (s *StateStore) Delete(ctx context.Context, visitorID string) error {
	if visitorID == "" {
		return nil // Nothing to delete
	}
	return s.client.Del(ctx, s.prefix+visitorID).Err()
}

// Entry describes one stored visitor state.
type Entry struct {
	VisitorID string
	TTL       time.Duration
}

// Scan calls fn for every visitor state under the store prefix. Keys that
// expire mid-scan are skipped. Iteration stops at the first error from fn.
func (s *StateStore) Scan(ctx context.Context, fn func(Entry) error) error {
	iter := s.client.Scan(ctx, 0, s.prefix+"*", scanBatch).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		ttl, err := s.client.TTL(ctx, key).Result()
		if err != nil {
			return fmt.Errorf("redis ttl %s: %w", key, err)
		}
		if ttl == -2*time.Second {
			continue
		}
		if err := fn(Entry{VisitorID: strings.TrimPrefix(key, s.prefix), TTL: ttl}); err != nil {
			return err
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan: %w", err)
	}
	return nil
}

// TTL returns the expiry applied on each save.
func (s *StateStore) TTL() time.Duration { return s.ttl }
