package workerpool

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPool_SubmitWithResult(t *testing.T) {
	pool, err := New(2, zap.NewNop())
	require.NoError(t, err)
	defer pool.Shutdown()

	ch := pool.SubmitWithResult(func() (interface{}, error) {
		return 42, nil
	})

	result := <-ch
	assert.NoError(t, result.Error)
	assert.Equal(t, 42, result.Data)
}

func TestPool_SubmitWithResult_Error(t *testing.T) {
	pool, err := New(1, zap.NewNop())
	require.NoError(t, err)
	defer pool.Shutdown()

	ch := pool.SubmitWithResult(func() (interface{}, error) {
		return nil, fmt.Errorf("boom")
	})

	result := <-ch
	assert.EqualError(t, result.Error, "boom")
}

func TestPool_Each_FillsEverySlot(t *testing.T) {
	pool, err := New(3, zap.NewNop())
	require.NoError(t, err)
	defer pool.Shutdown()

	slots := make([]int, 16)
	pool.Each(len(slots), func(i int) {
		slots[i] = i * i
	})

	for i, v := range slots {
		assert.Equal(t, i*i, v)
	}
}

func TestPool_SubmitAfterShutdown(t *testing.T) {
	pool, err := New(1, zap.NewNop())
	require.NoError(t, err)
	pool.Shutdown()

	var ran atomic.Bool
	err = pool.Submit(func() { ran.Store(true) })
	assert.ErrorIs(t, err, ErrPoolClosed)
	assert.False(t, ran.Load())
}
