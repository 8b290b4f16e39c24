package gateway

import (
	"context"
	"time"
)

// Failure describes one failed gateway call.
type Failure struct {
	Op      string
	Target  string // chat id or requested name; empty for list
	Status  int
	Message string
	At      time.Time
}

// FailureRecorder receives every failure the gateway returns.
// Implementations must not block for long; they run on the caller's goroutine.
type FailureRecorder interface {
	RecordFailure(ctx context.Context, f Failure) error
}
