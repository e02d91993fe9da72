// cmd/historian/main.go is an asynchronous historian service that pops deduction
// records from a Redis queue and persists them to a PostgreSQL database.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joedrago/clue/internal/cache"
	"github.com/joedrago/clue/internal/config"
	"github.com/joedrago/clue/internal/database"
	"github.com/joedrago/clue/internal/historian"
	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	logger := cfg.Logger()
	if cfg.RedisAddr == "" || cfg.DatabaseURL == "" {
		logger.Fatal("the historian needs both REDIS_ADDR and DATABASE_URL")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		logger.Fatal(err)
	}
	defer rdb.Close()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal(err)
	}
	defer pool.Close()

	store := database.NewStore(pool)
	if err := store.Migrate(ctx); err != nil {
		logger.Fatal(err)
	}

	hs := historian.New(cache.NewQueue(rdb, cfg.QueueName), store, historian.Config{
		BatchSize:     cfg.HistorianBatchSize,
		FlushInterval: cfg.FlushInterval(),
		Logger:        logger,
	})
	if err := hs.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal(err)
	}
}
