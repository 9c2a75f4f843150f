// Package batch fans a slice of work items out to a worker pool, each
// worker driving its own sibling supervisor forked from a parent execution.
// The supervisor itself prescribes no scheduling; this package is the
// host-side convenience built on the Parallel fork primitive.
package batch

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/stepflow/runtime/config"
	"github.com/stepflow/runtime/event"
	"github.com/stepflow/runtime/execution"
	"github.com/stepflow/runtime/observability"
)

// Diagnostics event types emitted through the configured observer.
const (
	EventBatchStart     observability.EventType = "batch.start"
	EventBatchComplete  observability.EventType = "batch.complete"
	EventWorkerStart    observability.EventType = "batch.worker.start"
	EventWorkerComplete observability.EventType = "batch.worker.complete"
)

// ItemProcessor processes a single work item against a sibling supervisor.
// exec is forked from the parent execution for the worker running this item:
// it shares the parent's sinks and worst-severity accumulator but has its
// own dedup set and context stacks, so processors on different workers never
// contend on supervisor state. pos reports the item's position within the
// batch, ready to pass to exec.LogItem.
type ItemProcessor[TItem, TResult any] func(
	ctx context.Context,
	exec *execution.Execution,
	item TItem,
	pos event.ItemPositionInfo,
) (TResult, error)

// ProgressFunc is called after each successfully processed item with the
// number completed so far, the batch size, and the item's result. Not
// called for failed items.
type ProgressFunc[TResult any] func(completed, total int, result TResult)

type indexedItem[TItem any] struct {
	index int
	item  TItem
}

type indexedResult[TResult any] struct {
	index  int
	result TResult
	err    error
}

// Result holds the outcome of ProcessItems: successes and failures as dense
// slices, both ordered by original item index.
type Result[TItem, TResult any] struct {
	Results []TResult
	Errors  []ItemError[TItem]
}

// ProcessItems distributes items across a worker pool and processes each
// one through processor. Results are returned in original item order
// regardless of completion order.
//
// Worker count follows cfg: an explicit MaxWorkers wins, otherwise
// min(NumCPU*2, WorkerCap, len(items)), never below 1. With FailFast (the
// default) the first processor error cancels the remaining work and
// ProcessItems returns a *BatchError; with FailFast off, every item is
// attempted and an error is returned only when all of them failed.
//
// Every worker forks its own sibling supervisor from parent once, up front,
// and reuses it for each item it picks up. Step dedup is therefore scoped
// per worker, not per batch.
func ProcessItems[TItem, TResult any](
	ctx context.Context,
	cfg config.BatchConfig,
	parent *execution.Execution,
	items []TItem,
	processor ItemProcessor[TItem, TResult],
	progress ProgressFunc[TResult],
) (Result[TItem, TResult], error) {
	observer, err := observability.GetObserver(observerName(cfg))
	if err != nil {
		return Result[TItem, TResult]{}, fmt.Errorf("failed to resolve observer: %w", err)
	}

	emit := func(t observability.EventType, level observability.Level, data map[string]any) {
		observer.OnEvent(ctx, observability.Event{
			Type:      t,
			Level:     level,
			Timestamp: time.Now(),
			Source:    "batch.ProcessItems",
			Data:      data,
		})
	}

	if len(items) == 0 {
		emit(EventBatchStart, observability.LevelInfo, map[string]any{
			"item_count": 0, "worker_count": 0, "fail_fast": cfg.FailFast(),
		})
		emit(EventBatchComplete, observability.LevelInfo, map[string]any{
			"items_processed": 0, "items_failed": 0, "error": false,
		})
		return Result[TItem, TResult]{Results: []TResult{}, Errors: []ItemError[TItem]{}}, nil
	}

	workerCount := calculateWorkerCount(cfg.MaxWorkers, cfg.WorkerCap, len(items))

	emit(EventBatchStart, observability.LevelInfo, map[string]any{
		"item_count":   len(items),
		"worker_count": workerCount,
		"fail_fast":    cfg.FailFast(),
	})

	workQueue := make(chan indexedItem[TItem], len(items))
	resultChannel := make(chan indexedResult[TResult], len(items))
	done := make(chan struct{})

	var results []TResult
	var itemErrors []ItemError[TItem]

	go func() {
		results, itemErrors = collectResults(resultChannel, len(items), items)
		close(done)
	}()

	var cancelCtx context.Context
	var cancel context.CancelFunc
	if cfg.FailFast() {
		cancelCtx, cancel = context.WithCancel(ctx)
		defer cancel()
	} else {
		cancelCtx = ctx
		cancel = func() {}
	}

	var wg sync.WaitGroup
	var completed atomic.Int32

	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			processWorker(
				cancelCtx,
				workerID,
				parent.Parallel(),
				workQueue,
				resultChannel,
				processor,
				progress,
				&completed,
				len(items),
				emit,
				cfg.FailFast(),
				cancel,
			)
		}(i)
	}

	for i, item := range items {
		workQueue <- indexedItem[TItem]{index: i, item: item}
	}
	close(workQueue)

	wg.Wait()
	close(resultChannel)
	<-done

	result := Result[TItem, TResult]{Results: results, Errors: itemErrors}
	failed := len(itemErrors) > 0 && (cfg.FailFast() || len(results) == 0)

	emit(EventBatchComplete, observability.LevelInfo, map[string]any{
		"items_processed": len(results),
		"items_failed":    len(itemErrors),
		"error":           failed || ctx.Err() != nil,
	})

	if ctx.Err() != nil {
		return result, fmt.Errorf("batch execution cancelled: %w", ctx.Err())
	}
	if failed {
		return result, &BatchError[TItem]{Errors: itemErrors}
	}
	return result, nil
}

func observerName(cfg config.BatchConfig) string {
	if cfg.Observer == "" {
		return "noop"
	}
	return cfg.Observer
}

// calculateWorkerCount applies the sizing rule documented on
// config.BatchConfig.
func calculateWorkerCount(maxWorkers, workerCap, itemCount int) int {
	if maxWorkers > 0 {
		return maxWorkers
	}

	workers := min(min(runtime.NumCPU()*2, workerCap), itemCount)
	if workers <= 0 {
		workers = 1
	}
	return workers
}

func processWorker[TItem, TResult any](
	ctx context.Context,
	workerID int,
	exec *execution.Execution,
	workQueue <-chan indexedItem[TItem],
	resultChannel chan<- indexedResult[TResult],
	processor ItemProcessor[TItem, TResult],
	progress ProgressFunc[TResult],
	completed *atomic.Int32,
	total int,
	emit func(observability.EventType, observability.Level, map[string]any),
	failFast bool,
	cancel context.CancelFunc,
) {
	for {
		select {
		case <-ctx.Done():
			return
		case work, ok := <-workQueue:
			if !ok {
				return
			}

			emit(EventWorkerStart, observability.LevelVerbose, map[string]any{
				"worker_id": workerID, "item_index": work.index, "total_items": total,
			})

			pos := event.ItemPositionInfo{Index: work.index, Total: total}
			result, err := processor(ctx, exec, work.item, pos)

			emit(EventWorkerComplete, observability.LevelVerbose, map[string]any{
				"worker_id": workerID, "item_index": work.index, "total_items": total, "error": err != nil,
			})

			if err != nil {
				resultChannel <- indexedResult[TResult]{index: work.index, err: err}
				if failFast {
					cancel()
					return
				}
			} else {
				resultChannel <- indexedResult[TResult]{index: work.index, result: result}
				if progress != nil {
					count := completed.Add(1)
					progress(int(count), total, result)
				}
			}
		}
	}
}

// collectResults runs in its own goroutine so the result channel never
// backs up against the workers, then rebuilds original item order from the
// carried indices.
func collectResults[TItem, TResult any](
	resultChannel <-chan indexedResult[TResult],
	itemCount int,
	items []TItem,
) ([]TResult, []ItemError[TItem]) {
	resultMap := make(map[int]TResult)
	errorMap := make(map[int]error)

	for r := range resultChannel {
		if r.err != nil {
			errorMap[r.index] = r.err
		} else {
			resultMap[r.index] = r.result
		}
	}

	results := make([]TResult, 0, len(resultMap))
	itemErrors := make([]ItemError[TItem], 0, len(errorMap))

	for i := 0; i < itemCount; i++ {
		if r, ok := resultMap[i]; ok {
			results = append(results, r)
		}
		if err, ok := errorMap[i]; ok {
			itemErrors = append(itemErrors, ItemError[TItem]{Index: i, Item: items[i], Err: err})
		}
	}

	return results, itemErrors
}
