package lightning

import (
	"context"
	"fmt"
	"time"
)

// Run starts the animation and renders a frame every frameInterval until
// ctx is cancelled, an error occurs, or the animation has been stopped and
// all segments have finished.  Frame times are measured from the call to
// Run.
//
// In the last case Run returns nil, on cancellation it returns ctx.Err().
func (a *Animation) Run(ctx context.Context, frameInterval time.Duration) error {
	if frameInterval <= 0 {
		return fmt.Errorf("frame interval %s: %w", frameInterval, ErrInvalidParameter)
	}

	t0 := time.Now()
	if err := a.Start(0); err != nil {
		return err
	}

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case t := <-ticker.C:
			if err := a.Tick(t.Sub(t0)); err != nil {
				return err
			}
			if a.Done() {
				return nil
			}
		}
	}
}
