// internal/historian/historian.go drains the deduction queue into the database in batches.
package historian

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/joedrago/clue/internal/cache"
	"github.com/sirupsen/logrus"
)

// Source yields queued records. *cache.Queue satisfies it.
type Source interface {
	Pop(ctx context.Context, timeout time.Duration) (cache.DeductionRecord, error)
}

// Sink stores a batch of records. *database.Store satisfies it.
type Sink interface {
	InsertDeductions(ctx context.Context, records []cache.DeductionRecord) error
}

type Config struct {
	BatchSize     int
	FlushInterval time.Duration
	// PopTimeout bounds each blocking read so the ticker and cancellation are noticed.
	// It never exceeds FlushInterval.
	PopTimeout time.Duration
	Logger     logrus.FieldLogger
}

// Service batches records from a Source and flushes them to a Sink when the batch
// fills up or the flush interval passes.
type Service struct {
	src        Source
	sink       Sink
	batchSize  int
	flushDelay time.Duration
	popTimeout time.Duration
	log        logrus.FieldLogger

	batchMu sync.Mutex
	batch   []cache.DeductionRecord
}

func New(src Source, sink Sink, cfg Config) *Service {
	if cfg.BatchSize < 1 {
		cfg.BatchSize = 20
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = 500 * time.Millisecond
	}
	// a blocking read must not hold the ticker flush back longer than one interval
	if cfg.PopTimeout <= 0 || cfg.PopTimeout > cfg.FlushInterval {
		cfg.PopTimeout = min(3*time.Second, cfg.FlushInterval)
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	return &Service{
		src:        src,
		sink:       sink,
		batchSize:  cfg.BatchSize,
		flushDelay: cfg.FlushInterval,
		popTimeout: cfg.PopTimeout,
		log:        cfg.Logger,
		batch:      make([]cache.DeductionRecord, 0, cfg.BatchSize),
	}
}

// Run reads until ctx is cancelled, then flushes what is left.
func (hs *Service) Run(ctx context.Context) error {
	ticker := time.NewTicker(hs.flushDelay)
	defer ticker.Stop()

	hs.log.Info("clue historian started")
	for {
		select {
		case <-ctx.Done():
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			hs.Flush(flushCtx)
			cancel()
			hs.log.Info("clue historian shutting down")
			return ctx.Err()

		case <-ticker.C:
			hs.Flush(ctx)

		default:
			rec, err := hs.src.Pop(ctx, hs.popTimeout)
			if err != nil {
				if !errors.Is(err, cache.ErrEmpty) && ctx.Err() == nil {
					hs.log.WithError(err).Error("pop deduction")
				}
				continue
			}
			hs.append(ctx, rec)
		}
	}
}

// append adds a record to the batch and flushes if the batch is full.
func (hs *Service) append(ctx context.Context, rec cache.DeductionRecord) {
	hs.batchMu.Lock()
	hs.batch = append(hs.batch, rec)
	full := len(hs.batch) >= hs.batchSize
	hs.batchMu.Unlock()

	if full {
		hs.Flush(ctx)
	}
}

// Flush writes the pending batch in one transaction and reports how many records
// were written. A failed batch is logged and dropped.
func (hs *Service) Flush(ctx context.Context) int {
	hs.batchMu.Lock()
	if len(hs.batch) == 0 {
		hs.batchMu.Unlock()
		return 0
	}
	batchCopy := make([]cache.DeductionRecord, len(hs.batch))
	copy(batchCopy, hs.batch)
	hs.batch = hs.batch[:0]
	hs.batchMu.Unlock()

	if err := hs.sink.InsertDeductions(ctx, batchCopy); err != nil {
		hs.log.WithError(err).WithField("records", len(batchCopy)).Error("flush deductions")
		return 0
	}
	hs.log.WithField("records", len(batchCopy)).Debug("flushed deductions")
	return len(batchCopy)
}
