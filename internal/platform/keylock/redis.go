package keylock

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/ideascore-backend/internal/platform/logger"
)

// releaseScript deletes the key only if it still holds our token, so a lock
// that expired and was taken by someone else is never released by us.
var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Redis is a Locker shared by every replica pointed at the same Redis.
type Redis struct {
	rdb    goredis.UniversalClient
	log    *logger.Logger
	prefix string
	ttl    time.Duration
	retry  time.Duration
}

type RedisOptions struct {
	Prefix string
	TTL    time.Duration
	Retry  time.Duration
}

func NewRedis(rdb goredis.UniversalClient, log *logger.Logger, opts RedisOptions) *Redis {
	prefix := strings.TrimSpace(opts.Prefix)
	if prefix == "" {
		prefix = "ideascore:lock:"
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	retry := opts.Retry
	if retry <= 0 {
		retry = 25 * time.Millisecond
	}
	return &Redis{
		rdb:    rdb,
		log:    log.With("service", "RedisKeyLock"),
		prefix: prefix,
		ttl:    ttl,
		retry:  retry,
	}
}

func (r *Redis) Lock(ctx context.Context, key string) (func(), error) {
	if r == nil || r.rdb == nil {
		return nil, errors.New("redis key lock not initialized")
	}
	full := r.prefix + key
	token := uuid.NewString()

	ticker := time.NewTicker(r.retry)
	defer ticker.Stop()
	for {
		ok, err := r.rdb.SetNX(ctx, full, token, r.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire lock %s: %w", key, err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// Release with a fresh context so a cancelled request still frees the key.
			relCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := releaseScript.Run(relCtx, r.rdb, []string{full}, token).Err(); err != nil && !errors.Is(err, goredis.Nil) {
				r.log.Warn("release lock failed", "key", key, "error", err)
			}
		})
	}, nil
}
