// Package clock holds the waiting helpers of the polling loops.
package clock

import (
	"context"
	"time"
)

// Sleep blocks for d or until ctx is done, whichever comes first, and returns
// ctx.Err() in the latter case. A non-positive d only checks ctx.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
