package dummydb

import (
	"context"

	"github.com/trezcool/meritum/core/counter"
)

type counterAllocator struct {
	db *counterTable
}

func NewCounterAllocator(db *DB) counter.Allocator {
	return &counterAllocator{db: db.counter}
}

// Next holds the table lock for the whole read-increment-write, so concurrent
// callers always see distinct, gap-free values.
func (a *counterAllocator) Next(ctx context.Context, name string) (int, error) {
	a.db.Lock()
	defer a.db.Unlock()

	next := a.db.table[name] + 1
	a.db.table[name] = next
	return next, nil
}
