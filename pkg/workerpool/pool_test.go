package workerpool_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/kidsisland/pkg/workerpool"
)

func TestPool_SubmitAndWait(t *testing.T) {
	pool := workerpool.New(context.Background(), 4)

	const n = 100
	var count atomic.Int64
	for i := 0; i < n; i++ {
		require.NoError(t, pool.SubmitWait(func(context.Context) error {
			count.Add(1)
			return nil
		}))
	}

	require.NoError(t, pool.Wait())
	assert.Equal(t, int64(n), count.Load())
}

func TestPool_JoinsErrors(t *testing.T) {
	pool := workerpool.New(context.Background(), 2)
	errA := errors.New("a")
	errB := errors.New("b")

	require.NoError(t, pool.SubmitWait(func(context.Context) error { return errA }))
	require.NoError(t, pool.SubmitWait(func(context.Context) error { return nil }))
	require.NoError(t, pool.SubmitWait(func(context.Context) error { return errB }))

	err := pool.Wait()
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
}

func TestPool_SubmitWaitBlocksUntilQueued(t *testing.T) {
	pool := workerpool.New(context.Background(), 1)

	blocker := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, pool.SubmitWait(func(context.Context) error {
		close(started)
		<-blocker
		return nil
	}))
	<-started

	// Queue holds two; the third submit waits for room.
	require.NoError(t, pool.SubmitWait(func(context.Context) error { return nil }))
	require.NoError(t, pool.SubmitWait(func(context.Context) error { return nil }))

	queued := make(chan error, 1)
	go func() { queued <- pool.SubmitWait(func(context.Context) error { return nil }) }()

	select {
	case <-queued:
		t.Fatal("SubmitWait returned while the queue was full")
	case <-time.After(50 * time.Millisecond):
	}

	close(blocker)
	require.NoError(t, <-queued)
	assert.NoError(t, pool.Wait())
}

func TestPool_ErrPoolClosed(t *testing.T) {
	pool := workerpool.New(context.Background(), 2)
	require.NoError(t, pool.Wait())

	assert.ErrorIs(t, pool.SubmitWait(func(context.Context) error { return nil }), workerpool.ErrPoolClosed)
	assert.NoError(t, pool.Wait(), "second Wait is a no-op")
}

func TestPool_PanicBecomesError(t *testing.T) {
	pool := workerpool.New(context.Background(), 1)

	require.NoError(t, pool.SubmitWait(func(context.Context) error { panic("boom") }))

	ran := make(chan struct{})
	require.NoError(t, pool.SubmitWait(func(context.Context) error {
		close(ran)
		return nil
	}))

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not survive the panic")
	}
	assert.ErrorContains(t, pool.Wait(), "task panicked: boom")
}

func TestPool_CancelledContextSkipsTasks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pool := workerpool.New(ctx, 1)

	blocker := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, pool.SubmitWait(func(context.Context) error {
		close(started)
		<-blocker
		return nil
	}))
	<-started

	var ran atomic.Bool
	require.NoError(t, pool.SubmitWait(func(context.Context) error {
		ran.Store(true)
		return nil
	}))

	cancel()
	close(blocker)

	assert.ErrorIs(t, pool.Wait(), context.Canceled)
	assert.False(t, ran.Load())
}
