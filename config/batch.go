package config

// BatchConfig controls batch.ProcessItems' worker pool sizing, error
// handling mode, and diagnostics routing.
//
// Worker Pool Sizing:
//   - MaxWorkers = 0: auto-detect as min(runtime.NumCPU()*2, WorkerCap, item count)
//   - MaxWorkers > 0: use that exact count
//
// FailFastNil is a pointer so that an absent JSON field is distinguishable
// from an explicit false; use FailFast() to read it.
type BatchConfig struct {
	MaxWorkers  int    `json:"maxWorkers,omitempty"`
	WorkerCap   int    `json:"workerCap,omitempty"`
	FailFastNil *bool  `json:"failFast,omitempty"`
	Observer    string `json:"observer,omitempty"`
}

// DefaultBatchConfig returns a fail-fast configuration capped at 16 workers
// with diagnostics discarded.
func DefaultBatchConfig() BatchConfig {
	failFast := true
	return BatchConfig{WorkerCap: 16, FailFastNil: &failFast, Observer: "noop"}
}

// FailFast reports the configured fail-fast mode, defaulting to true when
// unset.
func (c BatchConfig) FailFast() bool {
	if c.FailFastNil == nil {
		return true
	}
	return *c.FailFastNil
}

// Merge applies non-zero values from source into c.
func (c *BatchConfig) Merge(source BatchConfig) {
	if source.MaxWorkers > 0 {
		c.MaxWorkers = source.MaxWorkers
	}
	if source.WorkerCap > 0 {
		c.WorkerCap = source.WorkerCap
	}
	if source.FailFastNil != nil {
		c.FailFastNil = source.FailFastNil
	}
	if source.Observer != "" {
		c.Observer = source.Observer
	}
}
