// internal/game/backends.go
package game

import (
	"context"

	"github.com/joedrago/clue/internal/cache"
	"github.com/joedrago/clue/internal/config"
	"github.com/joedrago/clue/internal/database"
	"github.com/sirupsen/logrus"
)

// Backends are the optional services a session can report to.
type Backends struct {
	Queue *cache.Queue    // nil without REDIS_ADDR
	Store *database.Store // nil without DATABASE_URL

	closers []func()
}

// ConnectBackends connects whatever cfg names. A backend that cannot be reached is
// logged and left out.
func ConnectBackends(ctx context.Context, cfg config.Config, log logrus.FieldLogger) *Backends {
	b := &Backends{}
	if cfg.RedisAddr != "" {
		rdb, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			log.WithError(err).Warn("deductions will not be queued")
		} else {
			b.Queue = cache.NewQueue(rdb, cfg.QueueName)
			b.closers = append(b.closers, func() { rdb.Close() })
		}
	}
	if cfg.DatabaseURL != "" {
		pool, err := database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.WithError(err).Warn("sessions will not be stored")
		} else {
			store := database.NewStore(pool)
			if err := store.Migrate(ctx); err != nil {
				log.WithError(err).Warn("sessions will not be stored")
				pool.Close()
			} else {
				b.Store = store
				b.closers = append(b.closers, pool.Close)
			}
		}
	}
	return b
}

// Apply fills the publisher and store of opts from the connected backends.
func (b *Backends) Apply(opts Options) Options {
	if b.Queue != nil {
		opts.Publisher = b.Queue
	}
	if b.Store != nil {
		opts.Store = b.Store
	}
	return opts
}

func (b *Backends) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}
