package asyncexec_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stepflow/runtime/asyncexec"
	"github.com/stepflow/runtime/config"
	"github.com/stepflow/runtime/effectuation"
	"github.com/stepflow/runtime/execution"
	"github.com/stepflow/runtime/logger"
)

func TestAsyncEffectuateDedupMatchesSync(t *testing.T) {
	main := logger.NewCollectingLogger()
	exec := execution.New(config.DefaultExecutionConfig("app"), main)
	async := asyncexec.New(exec)

	step := effectuation.New("f1", "A")
	ctx := context.Background()

	runs := 0
	body := func(ctx context.Context) (any, error) {
		runs++
		return nil, nil
	}

	if _, err := async.Effectuate(ctx, step, body); err != nil {
		t.Fatalf("first Effectuate: %v", err)
	}
	if _, err := async.Effectuate(ctx, step, body); err != nil {
		t.Fatalf("second Effectuate: %v", err)
	}

	if runs != 1 {
		t.Errorf("runs = %d, want 1 (dedup applies to async mirror too)", runs)
	}
}

func TestAsyncEffectuatePropagatesBodyError(t *testing.T) {
	main := logger.NewCollectingLogger()
	exec := execution.New(config.DefaultExecutionConfig("app"), main)
	async := asyncexec.New(exec)

	wantErr := errors.New("body failed")
	step := effectuation.New("f1", "A")

	_, err := async.Effectuate(context.Background(), step, func(ctx context.Context) (any, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want %v", err, wantErr)
	}
}

func TestAsyncEffectuateDoesNotObservePauseGate(t *testing.T) {
	main := logger.NewCollectingLogger()
	exec := execution.New(config.DefaultExecutionConfig("app"), main)
	async := asyncexec.New(exec)

	exec.Pause()
	defer exec.Proceed()

	step := effectuation.New("f1", "A")
	done := make(chan struct{})
	go func() {
		defer close(done)
		async.Effectuate(context.Background(), step, func(ctx context.Context) (any, error) {
			return nil, nil
		})
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("async step entry blocked on the closed pause gate")
	}
}

func TestAwaitPauseGateRespectsContextCancellation(t *testing.T) {
	main := logger.NewCollectingLogger()
	exec := execution.New(config.DefaultExecutionConfig("app"), main)
	async := asyncexec.New(exec)

	exec.Pause()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := async.AwaitPauseGate(ctx); err == nil {
		t.Error("expected AwaitPauseGate to return the cancellation error while the gate is closed")
	}
}

func TestAwaitPauseGateReturnsOnceProceedCalled(t *testing.T) {
	main := logger.NewCollectingLogger()
	exec := execution.New(config.DefaultExecutionConfig("app"), main)
	async := asyncexec.New(exec)

	exec.Pause()
	done := make(chan error, 1)
	go func() {
		done <- async.AwaitPauseGate(context.Background())
	}()

	exec.Proceed()

	if err := <-done; err != nil {
		t.Errorf("AwaitPauseGate returned %v, want nil after Proceed", err)
	}
}
