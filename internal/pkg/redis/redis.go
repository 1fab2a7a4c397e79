package redis

import (
	"backoffice-service/config"
	"context"
	"fmt"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

func SetupClient(cfg *config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// Locker hands out named distributed mutexes. Booking creation takes one
// per resource so two instances cannot race each other past the
// availability check.
type Locker interface {
	Acquire(ctx context.Context, name string) (release func() error, err error)
}

type locksmith struct {
	rs *redsync.Redsync
}

func NewLocker(client *redis.Client) Locker {
	pool := goredis.NewPool(client)
	return &locksmith{rs: redsync.New(pool)}
}

func (l *locksmith) Acquire(ctx context.Context, name string) (func() error, error) {
	mutex := l.rs.NewMutex(name,
		redsync.WithExpiry(15*time.Second),
		redsync.WithTries(8),
	)
	if err := mutex.LockContext(ctx); err != nil {
		return nil, err
	}
	return func() error {
		_, err := mutex.UnlockContext(ctx)
		return err
	}, nil
}
