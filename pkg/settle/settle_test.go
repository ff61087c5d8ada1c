package settle_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinywideclouds/go-pushover/pkg/settle"
)

func TestAll_Lifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("Order preserved regardless of completion order", func(t *testing.T) {
		// Later slots finish first; the output must still be index-aligned.
		tasks := make([]func(context.Context) (int, error), 4)
		for i := range tasks {
			i := i
			delay := time.Duration(len(tasks)-i) * 10 * time.Millisecond
			tasks[i] = func(context.Context) (int, error) {
				time.Sleep(delay)
				return i, nil
			}
		}

		results := settle.All(ctx, tasks)

		require.Len(t, results, 4)
		for i, res := range results {
			require.NoError(t, res.Err)
			assert.Equal(t, i, res.Value)
		}
	})

	t.Run("Empty input resolves immediately", func(t *testing.T) {
		results := settle.All(ctx, []func(context.Context) (string, error){})
		require.NotNil(t, results)
		assert.Empty(t, results)
	})

	t.Run("One failure never contaminates other slots", func(t *testing.T) {
		boom := fmt.Errorf("slot exploded")
		tasks := []func(context.Context) (string, error){
			func(context.Context) (string, error) { return "a", nil },
			func(context.Context) (string, error) { return "", boom },
			func(context.Context) (string, error) { return "c", nil },
		}

		results := settle.All(ctx, tasks)

		require.Len(t, results, 3)
		assert.True(t, results[0].Ok())
		assert.Equal(t, "a", results[0].Value)
		assert.ErrorIs(t, results[1].Err, boom)
		assert.True(t, results[2].Ok())
		assert.Equal(t, "c", results[2].Value)
	})

	t.Run("All tasks launched before any is awaited", func(t *testing.T) {
		// Every task blocks until all of them have started. Sequential
		// launch-then-await would deadlock here.
		const n = 4
		var entered sync.WaitGroup
		entered.Add(n)

		tasks := make([]func(context.Context) (int, error), n)
		for i := range tasks {
			i := i
			tasks[i] = func(context.Context) (int, error) {
				entered.Done()
				entered.Wait()
				return i, nil
			}
		}

		results := settle.All(ctx, tasks)
		require.Len(t, results, n)
	})

	t.Run("Aggregate resolves only after the slowest task settles", func(t *testing.T) {
		gate := make(chan struct{})
		tasks := []func(context.Context) (string, error){
			func(context.Context) (string, error) { return "fast", nil },
			func(context.Context) (string, error) {
				<-gate
				return "slow", nil
			},
		}

		done := make(chan []settle.Result[string], 1)
		go func() { done <- settle.All(ctx, tasks) }()

		select {
		case <-done:
			t.Fatal("aggregate resolved before the slow task settled")
		case <-time.After(50 * time.Millisecond):
		}

		close(gate)

		select {
		case results := <-done:
			require.Len(t, results, 2)
			assert.Equal(t, "fast", results[0].Value)
			assert.Equal(t, "slow", results[1].Value)
		case <-time.After(2 * time.Second):
			t.Fatal("aggregate never resolved after the slow task settled")
		}
	})
}
