package app

import (
	"context"
	"fmt"
	"strings"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/ideascore-backend/internal/platform/keylock"
	"github.com/yungbote/ideascore-backend/internal/platform/logger"
	"github.com/yungbote/ideascore-backend/internal/platform/redisx"
)

type Clients struct {
	Redis  *goredis.Client
	Locker keylock.Locker
}

// wireClients connects optional infrastructure. Without redis.addr score
// upserts are serialized in-process only.
func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	if strings.TrimSpace(cfg.Redis.Addr) == "" {
		log.Info("Redis not configured; using in-process score locks")
		return Clients{Locker: keylock.NewLocal()}, nil
	}
	rdb, err := redisx.NewClient(ctx, log, cfg.Redis.Addr)
	if err != nil {
		return Clients{}, fmt.Errorf("init redis: %w", err)
	}
	locker := keylock.NewRedis(rdb, log, keylock.RedisOptions{
		Prefix: cfg.Redis.LockPrefix,
		TTL:    cfg.Redis.LockTTL,
	})
	return Clients{Redis: rdb, Locker: locker}, nil
}

func (c Clients) Close() {
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
}
