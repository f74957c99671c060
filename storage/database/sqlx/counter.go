package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/meritum/core/counter"
)

const counterMaxRetries = 5

type counterAllocator struct {
	db *sqlx.DB
}

func NewCounterAllocator(db *sqlx.DB) counter.Allocator {
	return &counterAllocator{db: db}
}

// Next runs the read-increment-write as a single upsert; the row lock makes
// concurrent callers queue up, so each one sees a distinct value. Lost
// concurrency races under stricter isolation levels are retried.
func (a *counterAllocator) Next(ctx context.Context, name string) (int, error) {
	const q = `
		INSERT INTO counters (name, value) VALUES ($1, 1)
		ON CONFLICT (name) DO UPDATE SET value = counters.value + 1
		RETURNING value`

	var next int
	var err error
	for attempt := 0; attempt < counterMaxRetries; attempt++ {
		err = a.db.GetContext(ctx, &next, q, name)
		if err == nil {
			return next, nil
		}
		if !isSerializationFailure(err) {
			return 0, err
		}
	}
	return 0, err
}
