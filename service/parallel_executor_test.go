package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/pysmell/domain"
)

func countingTask(name string, counter *int32) domain.ExecutableTask {
	return NewSimpleTask(name, true, func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(counter, 1)
		return nil, nil
	})
}

func TestExecuteRunsAllTasks(t *testing.T) {
	executor := NewParallelExecutor()

	var counter int32
	tasks := make([]domain.ExecutableTask, 20)
	for i := range tasks {
		tasks[i] = countingTask(fmt.Sprintf("task-%d", i), &counter)
	}

	require.NoError(t, executor.Execute(context.Background(), tasks))
	assert.Equal(t, int32(20), atomic.LoadInt32(&counter))
}

func TestExecuteSkipsDisabledTasks(t *testing.T) {
	executor := NewParallelExecutor()

	var counter int32
	tasks := []domain.ExecutableTask{
		countingTask("enabled", &counter),
		NewSimpleTask("disabled", false, func(ctx context.Context) (interface{}, error) {
			atomic.AddInt32(&counter, 100)
			return nil, nil
		}),
	}

	require.NoError(t, executor.Execute(context.Background(), tasks))
	assert.Equal(t, int32(1), atomic.LoadInt32(&counter))
}

func TestExecuteReturnsTaskError(t *testing.T) {
	executor := NewParallelExecutor()

	boom := errors.New("boom")
	tasks := []domain.ExecutableTask{
		NewSimpleTask("ok", true, func(ctx context.Context) (interface{}, error) {
			return nil, nil
		}),
		NewSimpleTask("failing", true, func(ctx context.Context) (interface{}, error) {
			return nil, boom
		}),
	}

	err := executor.Execute(context.Background(), tasks)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failing")
}

func TestExecuteCancelledContext(t *testing.T) {
	executor := NewParallelExecutor()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var counter int32
	err := executor.Execute(ctx, []domain.ExecutableTask{countingTask("never", &counter)})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(0), atomic.LoadInt32(&counter))
}

func TestExecuteRespectsConcurrencyLimit(t *testing.T) {
	executor := NewParallelExecutor()
	executor.SetMaxConcurrency(2)

	var mu sync.Mutex
	running, peak := 0, 0

	tasks := make([]domain.ExecutableTask, 10)
	for i := range tasks {
		tasks[i] = NewSimpleTask(fmt.Sprintf("task-%d", i), true, func(ctx context.Context) (interface{}, error) {
			mu.Lock()
			running++
			if running > peak {
				peak = running
			}
			mu.Unlock()

			mu.Lock()
			running--
			mu.Unlock()
			return nil, nil
		})
	}

	require.NoError(t, executor.Execute(context.Background(), tasks))

	mu.Lock()
	defer mu.Unlock()
	assert.LessOrEqual(t, peak, 2)
	assert.GreaterOrEqual(t, peak, 1)
}

func TestExecuteEmptyTaskList(t *testing.T) {
	executor := NewParallelExecutor()
	require.NoError(t, executor.Execute(context.Background(), nil))
}

func TestSimpleTaskWithoutFunction(t *testing.T) {
	task := NewSimpleTask("empty", true, nil)
	_, err := task.Execute(context.Background())
	require.Error(t, err)
}
