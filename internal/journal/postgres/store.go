package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"miniswap/internal/model"
)

// Store provides Postgres persistence for the event journal.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// PutEventBatch inserts event records, keyed by sequence number. Replaying
// the same sequence is a no-op, so a restarted run does not duplicate rows.
func (s *Store) PutEventBatch(events []model.EventRecord) error {
	if len(events) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, event := range events {
		payload, err := json.Marshal(event.Decoded)
		if err != nil {
			return fmt.Errorf("marshal event payload: %w", err)
		}
		batch.Queue(`
			INSERT INTO amm_events (seq, event_name, emitted_at, payload, created_at)
			VALUES ($1, $2, $3, $4, now())
			ON CONFLICT (seq) DO NOTHING
		`,
			int64(event.Seq),
			event.EventName,
			event.EmittedAt,
			payload,
		)
	}

	br := s.pool.SendBatch(context.Background(), batch)
	defer br.Close()

	for range events {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}
