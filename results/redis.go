package results

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/klejdi94/simscore/core"
	"github.com/redis/go-redis/v9"
)

const (
	redisKeyDocument = "results"
	redisKeyItem     = "item:%s"
	redisKeyItems    = "items"
)

// RedisClient is the minimal Redis interface needed (satisfied by *redis.Client, *redis.ClusterClient).
type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RedisWriter stores the full document under {prefix}results, each item result under
// {prefix}item:{id} and the ordered item ids as a JSON array under {prefix}items.
type RedisWriter struct {
	client RedisClient
	prefix string
}

// NewRedisWriter creates a writer using the given Redis client. Optional key prefix (e.g. "simscore:").
func NewRedisWriter(client RedisClient, prefix string) *RedisWriter {
	if prefix != "" && !strings.HasSuffix(prefix, ":") {
		prefix += ":"
	}
	return &RedisWriter{client: client, prefix: prefix}
}

func (r *RedisWriter) key(format string, a ...interface{}) string {
	return r.prefix + fmt.Sprintf(format, a...)
}

// Location returns the key of the full document.
func (r *RedisWriter) Location() string {
	return r.key(redisKeyDocument)
}

// Write implements Writer.
func (r *RedisWriter) Write(ctx context.Context, rs core.ResultSet) error {
	doc, err := Marshal(rs)
	if err != nil {
		return fmt.Errorf("redis results encode: %w", err)
	}
	if err := r.client.Set(ctx, r.key(redisKeyDocument), doc, 0).Err(); err != nil {
		return fmt.Errorf("redis results: %w", err)
	}
	for _, id := range rs.Keys() {
		res, _ := rs.Get(id)
		data, err := marshal(res)
		if err != nil {
			return fmt.Errorf("redis results encode %q: %w", id, err)
		}
		if err := r.client.Set(ctx, r.key(redisKeyItem, id), data, 0).Err(); err != nil {
			return fmt.Errorf("redis results %q: %w", id, err)
		}
	}
	ids, err := marshal(rs.Keys())
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key(redisKeyItems), ids, 0).Err(); err != nil {
		return fmt.Errorf("redis results: %w", err)
	}
	return nil
}

var _ RedisClient = (redis.UniversalClient)(nil)
