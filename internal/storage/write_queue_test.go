package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/paysnap/internal/common"
	"github.com/Veraticus/paysnap/internal/model"
)

type countingWriter struct {
	err      error
	inFlight atomic.Int32
	maxSeen  atomic.Int32
	mu       sync.Mutex
	ids      []string
}

func (w *countingWriter) Insert(_ context.Context, r model.ExpenseRecord) error {
	n := w.inFlight.Add(1)
	defer w.inFlight.Add(-1)
	for {
		seen := w.maxSeen.Load()
		if n <= seen || w.maxSeen.CompareAndSwap(seen, n) {
			break
		}
	}
	time.Sleep(time.Millisecond)

	w.mu.Lock()
	w.ids = append(w.ids, r.ID)
	w.mu.Unlock()
	return w.err
}

func TestWriteQueue_SerializesWrites(t *testing.T) {
	w := &countingWriter{}
	q := NewWriteQueue(w, 4)
	defer func() { _ = q.Close() }()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec := model.ExpenseRecord{ID: fmt.Sprintf("r-%d", i)}
			assert.NoError(t, q.Insert(context.Background(), rec))
		}(i)
	}
	wg.Wait()

	assert.Len(t, w.ids, 20)
	assert.Equal(t, int32(1), w.maxSeen.Load())
}

func TestWriteQueue_PropagatesError(t *testing.T) {
	boom := errors.New("disk full")
	q := NewWriteQueue(&countingWriter{err: boom}, 1)
	defer func() { _ = q.Close() }()

	err := q.Insert(context.Background(), model.ExpenseRecord{ID: "x"})
	assert.ErrorIs(t, err, boom)
}

func TestWriteQueue_ClosedRejects(t *testing.T) {
	q := NewWriteQueue(&countingWriter{}, 1)
	require.NoError(t, q.Close())
	require.NoError(t, q.Close())

	err := q.Insert(context.Background(), model.ExpenseRecord{ID: "x"})
	assert.ErrorIs(t, err, common.ErrQueueClosed)
}

func TestWriteQueue_WithSQLite(t *testing.T) {
	store := createTestStorage(t)
	q := NewWriteQueue(store, 0)
	ctx := context.Background()

	rec := testRecord("q-1", -12, model.CategoryFood, time.Now())
	require.NoError(t, q.Insert(ctx, rec))
	require.NoError(t, q.Close())

	got, err := store.GetRecord(ctx, "q-1")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryFood, got.Category)
}
