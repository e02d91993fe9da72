// internal/cache/redis.go
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultQueueName is the Redis list deduction records are pushed to.
const DefaultQueueName = "clue_deductions"

// ErrEmpty is returned by Pop when no record arrived before the timeout.
var ErrEmpty = errors.New("queue empty")

// DeductionRecord holds one journaled step of a session, for the historian.
type DeductionRecord struct {
	SessionID uuid.UUID `json:"session_id"`
	Seq       int       `json:"seq"`
	Type      string    `json:"type"`
	Subject   string    `json:"subject,omitempty"`
	Detail    string    `json:"detail"`
	Timestamp int64     `json:"timestamp"`
}

// Connect opens a client to addr and pings it.
func Connect(ctx context.Context, addr string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return rdb, nil
}

// Queue is a Redis list of DeductionRecords.
type Queue struct {
	Client redis.Cmdable
	Name   string
}

func NewQueue(client redis.Cmdable, name string) *Queue {
	if name == "" {
		name = DefaultQueueName
	}
	return &Queue{Client: client, Name: name}
}

// Publish serializes the record to JSON and pushes it onto the queue.
func (q *Queue) Publish(ctx context.Context, record DeductionRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal DeductionRecord: %w", err)
	}
	if err := q.Client.RPush(ctx, q.Name, data).Err(); err != nil {
		return fmt.Errorf("failed to RPush to Redis list '%s': %w", q.Name, err)
	}
	return nil
}

// Pop blocks up to timeout for the next record.
func (q *Queue) Pop(ctx context.Context, timeout time.Duration) (DeductionRecord, error) {
	res, err := q.Client.BLPop(ctx, timeout, q.Name).Result()
	if errors.Is(err, redis.Nil) {
		return DeductionRecord{}, ErrEmpty
	}
	if err != nil {
		return DeductionRecord{}, fmt.Errorf("BLPop %s: %w", q.Name, err)
	}
	// BLPop returns [key, value]
	if len(res) != 2 {
		return DeductionRecord{}, fmt.Errorf("BLPop %s: unexpected reply of %d elements", q.Name, len(res))
	}

	var rec DeductionRecord
	if err := json.Unmarshal([]byte(res[1]), &rec); err != nil {
		return DeductionRecord{}, fmt.Errorf("decode deduction record: %w", err)
	}
	return rec, nil
}
