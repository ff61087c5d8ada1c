// Package settle provides an all-settled aggregation primitive: run a set of
// independent operations concurrently and collect every outcome, success or
// failure, without one operation short-circuiting the others.
package settle

import (
	"context"
	"sync"
)

// Result is one slot of an aggregate outcome. Err == nil means the operation
// settled successfully and Value holds its result.
type Result[T any] struct {
	Value T
	Err   error
}

// Ok reports whether the slot settled successfully.
func (r Result[T]) Ok() bool { return r.Err == nil }

// All runs every task in its own goroutine and blocks until each has settled.
// The returned slice is index-aligned with tasks regardless of completion
// order. Every task is launched before any is awaited, and each goroutine
// writes only its own slot, so the aggregate resolves exactly once, after the
// last task finishes. An empty task list resolves immediately.
//
// All itself never fails; a task's error lands in its own slot.
func All[T any](ctx context.Context, tasks []func(context.Context) (T, error)) []Result[T] {
	results := make([]Result[T], len(tasks))
	if len(tasks) == 0 {
		return results
	}

	var wg sync.WaitGroup
	wg.Add(len(tasks))
	for i, task := range tasks {
		go func(i int, task func(context.Context) (T, error)) {
			defer wg.Done()
			v, err := task(ctx)
			results[i] = Result[T]{Value: v, Err: err}
		}(i, task)
	}
	wg.Wait()

	return results
}
