// internal/config/config.go
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"
)

// Config holds every setting the binaries read from the environment.
type Config struct {
	Output     string `env:"CLUE_OUTPUT" envDefault:"color"`
	MaxPlayers int    `env:"CLUE_MAX_PLAYERS" envDefault:"10"`
	LogLevel   string `env:"CLUE_LOG_LEVEL" envDefault:"warn"`

	// RedisAddr is optional; deductions are not queued without it.
	RedisAddr string `env:"REDIS_ADDR"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`
	QueueName string `env:"CLUE_QUEUE_NAME" envDefault:"clue_deductions"`

	// DatabaseURL is optional; sessions are not stored without it.
	DatabaseURL string `env:"DATABASE_URL"`

	ServerAddr string `env:"CLUE_SERVER_ADDR" envDefault:":8080"`

	HistorianBatchSize int `env:"HISTORIAN_BATCH_SIZE" envDefault:"20"`
	HistorianFlushMS   int `env:"HISTORIAN_FLUSH_MS" envDefault:"500"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses a Config and checks it.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.MaxPlayers < 2 {
		return Config{}, fmt.Errorf("CLUE_MAX_PLAYERS must be at least 2, got %d", cfg.MaxPlayers)
	}
	if cfg.HistorianBatchSize < 1 {
		return Config{}, fmt.Errorf("HISTORIAN_BATCH_SIZE must be positive, got %d", cfg.HistorianBatchSize)
	}
	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, fmt.Errorf("CLUE_LOG_LEVEL: %w", err)
	}
	return cfg, nil
}

func (c Config) FlushInterval() time.Duration {
	return time.Duration(c.HistorianFlushMS) * time.Millisecond
}

// Logger builds the process logger at the configured level.
func (c Config) Logger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if lvl, err := logrus.ParseLevel(c.LogLevel); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}
