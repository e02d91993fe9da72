// internal/database/session.go
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/joedrago/clue/internal/cache"
)

// SaveSession upserts the final snapshot of a session.
func (s *Store) SaveSession(ctx context.Context, id uuid.UUID, solved bool, snapshot []byte) error {
	err := pgx.BeginTxFunc(ctx, s.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		q := `
			INSERT INTO sessions (id, solved, snapshot, updated_at)
			VALUES ($1, $2, $3, now())
			ON CONFLICT (id) DO UPDATE SET solved = $2, snapshot = $3, updated_at = now()
		`
		_, err := tx.Exec(ctx, q, id, solved, snapshot)
		return err
	})
	if err != nil {
		return fmt.Errorf("tx upsert session %s: %w", id, err)
	}
	return nil
}

// InsertDeductions writes a batch of records in a single transaction. Records that
// were already stored are skipped.
func (s *Store) InsertDeductions(ctx context.Context, records []cache.DeductionRecord) error {
	if len(records) == 0 {
		return nil
	}
	err := pgx.BeginTxFunc(ctx, s.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		for _, rec := range records {
			if err := insertDeductionTx(ctx, tx, rec); err != nil {
				return fmt.Errorf("insertDeductionTx: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("tx insert deductions: %w", err)
	}
	return nil
}

func insertDeductionTx(ctx context.Context, tx pgx.Tx, rec cache.DeductionRecord) error {
	q := `
		INSERT INTO deductions (session_id, seq, type, subject, detail, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (session_id, seq) DO NOTHING
	`
	_, err := tx.Exec(ctx, q, rec.SessionID, rec.Seq, rec.Type, rec.Subject, rec.Detail, time.UnixMilli(rec.Timestamp))
	return err
}
