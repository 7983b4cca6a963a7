package samples

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/aalvaropc/fnkit/internal/domain"
)

const maxDelayMS = math.MaxInt64 / int64(time.Millisecond)

// Delay blocks for ms milliseconds and returns ms unchanged.
// Cancelling ctx interrupts the wait; no partial result is returned.
func Delay(ctx context.Context, ms int) (int, error) {
	if ms < 0 {
		return 0, &domain.OpError{
			Op:   "samples.delay",
			Kind: domain.KindInvalidInput,
			Err:  fmt.Errorf("negative duration %dms: %w", ms, domain.ErrInvalidInput),
		}
	}
	if err := ctx.Err(); err != nil {
		return 0, interrupted(err)
	}

	// Waits longer than time.Duration can hold only end on cancellation.
	if int64(ms) > maxDelayMS {
		<-ctx.Done()
		return 0, interrupted(ctx.Err())
	}

	t := time.NewTimer(time.Duration(ms) * time.Millisecond)
	defer t.Stop()

	select {
	case <-t.C:
		return ms, nil
	case <-ctx.Done():
		return 0, interrupted(ctx.Err())
	}
}

func interrupted(cause error) error {
	return &domain.OpError{
		Op:   "samples.delay",
		Kind: domain.KindInterrupted,
		Err:  fmt.Errorf("%w: %w", domain.ErrInterrupted, cause),
	}
}
