package execution

import "context"

// AwaitPauseGate blocks until the pause gate is open or ctx is canceled. It
// is the context-aware counterpart to checkpoint, exposed for the async
// mirror: async step entries do not call it automatically, so a host that
// wants async bodies to honor Pause/Proceed must call this explicitly.
func (e *Execution) AwaitPauseGate(ctx context.Context) error {
	select {
	case <-e.pauseGate:
		e.pauseGate <- struct{}{}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
