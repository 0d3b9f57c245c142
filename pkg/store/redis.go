package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"
)

// Redis reads templates from a Redis hash mapping template names to
// sources.
type Redis struct {
	client *redis.Client
	key    string
}

// NewRedis creates a Redis-backed store reading the given hash key.
func NewRedis(client *redis.Client, key string) *Redis {
	return &Redis{client: client, key: key}
}

// List returns every template stored in the hash, sorted by name so that
// registration order is deterministic.
func (s *Redis) List(ctx context.Context) ([]Template, error) {
	entries, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read template hash %q: %w", s.key, err)
	}

	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	templates := make([]Template, 0, len(names))
	for _, name := range names {
		templates = append(templates, Template{Name: name, Source: entries[name]})
	}
	return templates, nil
}
