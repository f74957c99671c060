// Package counter allocates strictly increasing integer IDs off named
// counter records. The read-increment-write must execute as one atomic unit;
// concurrent callers never receive the same value.
package counter

import "context"

// Counter names are part of the storage contract.
const (
	EventID     = "eventId"
	OrganizerID = "organizerId"
)

type Allocator interface {
	// Next reads the counter (0 if absent), writes back value+1 and returns
	// it. Implementations retry on conflicting concurrent writes.
	Next(ctx context.Context, name string) (int, error)
}
