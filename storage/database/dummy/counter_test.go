package dummydb

import (
	"context"
	"sync"
	"testing"

	"github.com/trezcool/meritum/core/counter"
)

func TestCounterAllocator_Next(t *testing.T) {
	db, err := Open()
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	alloc := NewCounterAllocator(db)
	ctx := context.Background()

	for want := 1; want <= 3; want++ {
		got, err := alloc.Next(ctx, counter.EventID)
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		if got != want {
			t.Errorf("Next() = %d; want %d", got, want)
		}
	}

	// independent counters do not share sequences
	got, err := alloc.Next(ctx, counter.OrganizerID)
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if got != 1 {
		t.Errorf("Next(organizerId) = %d; want 1", got)
	}
}

func TestCounterAllocator_concurrent(t *testing.T) {
	db, err := Open()
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	alloc := NewCounterAllocator(db)

	const n = 100
	values := make(chan int, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			v, err := alloc.Next(context.Background(), counter.EventID)
			if err != nil {
				t.Errorf("Next() error = %v", err)
				return
			}
			values <- v
		}()
	}
	wg.Wait()
	close(values)

	// all values distinct and gap-free
	seen := make(map[int]bool, n)
	for v := range values {
		if seen[v] {
			t.Errorf("duplicate value %d", v)
		}
		seen[v] = true
	}
	for v := 1; v <= n; v++ {
		if !seen[v] {
			t.Errorf("missing value %d", v)
		}
	}
}
