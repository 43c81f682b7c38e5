package lock

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/config"
)

var ErrLockTimeout = errors.New("timed out waiting for write lock")

const retryInterval = 50 * time.Millisecond

// 只删除自己持有的锁，避免锁过期后误删别人的锁
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker 让多个进程共享同一把写锁，满足 scheduler.Locker
type RedisLocker struct {
	cfg *config.Config
	rdb *redis.Client
}

func NewRedisLocker(cfg *config.Config, rdb *redis.Client) *RedisLocker {
	return &RedisLocker{
		cfg: cfg,
		rdb: rdb,
	}
}

func (l *RedisLocker) Lock() (func(), error) {
	// 每次加锁使用新的 token，释放时据此确认锁仍归自己所有
	token := uuid.NewString()

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(l.cfg.Redis.LockWaitTimeout)*time.Second)
	defer cancel()

	key := l.cfg.Redis.LockKey
	expiration := time.Duration(l.cfg.Redis.LockExpiration) * time.Second

	for {
		ok, err := l.rdb.SetNX(ctx, key, token, expiration).Result()
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return nil, ErrLockTimeout
			}
			return nil, err
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ErrLockTimeout
		case <-time.After(retryInterval):
		}
	}

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(l.cfg.Redis.ConnectTimeout)*time.Second)
		defer cancel()

		if err := releaseScript.Run(ctx, l.rdb, []string{key}, token).Err(); err != nil {
			// 释放失败时锁会在过期后自动失效
			slog.Warn("无法释放 redis 锁", "key", key, "error", err)
		}
	}, nil
}
