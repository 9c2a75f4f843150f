package batch

import (
	"fmt"
	"sort"
	"strings"
)

// ItemError captures a single item's processing failure: the item's original
// index, the item itself, and the underlying error, so failures can be
// correlated back to input data or retried selectively.
type ItemError[TItem any] struct {
	Index int
	Item  TItem
	Err   error
}

// BatchError wraps item failures from ProcessItems. It is returned when
// fail-fast tripped on any failure, or when fail-fast was off and every
// item failed. Unwrap returns all underlying errors, so errors.Is and
// errors.As search across every failure.
type BatchError[TItem any] struct {
	Errors []ItemError[TItem]
}

// Error returns a categorized summary: full detail for a single failure,
// error-text frequency buckets for several.
func (e *BatchError[TItem]) Error() string {
	if len(e.Errors) == 0 {
		return "batch execution failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("batch execution failed: item %d: %v", e.Errors[0].Index, e.Errors[0].Err)
	}

	counts := make(map[string]int)
	for _, itemErr := range e.Errors {
		counts[itemErr.Err.Error()]++
	}

	type bucket struct {
		text  string
		count int
	}
	buckets := make([]bucket, 0, len(counts))
	for text, count := range counts {
		buckets = append(buckets, bucket{text, count})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].count != buckets[j].count {
			return buckets[i].count > buckets[j].count
		}
		return buckets[i].text < buckets[j].text
	})

	parts := make([]string, len(buckets))
	for i, b := range buckets {
		noun := "items"
		if b.count == 1 {
			noun = "item"
		}
		parts[i] = fmt.Sprintf("'%s' (%d %s)", b.text, b.count, noun)
	}

	return fmt.Sprintf("batch execution failed: %d items failed with %d error types: %s",
		len(e.Errors), len(buckets), strings.Join(parts, ", "))
}

// Unwrap returns the underlying errors for errors.Is / errors.As.
func (e *BatchError[TItem]) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, itemErr := range e.Errors {
		errs[i] = itemErr.Err
	}
	return errs
}
