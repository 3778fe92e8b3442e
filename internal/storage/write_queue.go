package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/Veraticus/paysnap/internal/common"
	"github.com/Veraticus/paysnap/internal/model"
)

// DefaultQueueSize is the number of pending writes buffered before Insert blocks.
const DefaultQueueSize = 64

// RecordWriter performs the actual write.
type RecordWriter interface {
	Insert(ctx context.Context, record model.ExpenseRecord) error
}

type writeRequest struct {
	ctx    context.Context
	result chan error
	record model.ExpenseRecord
}

// WriteQueue funnels record inserts through a single worker so writes are
// applied one at a time in submission order. It is safe for concurrent use.
type WriteQueue struct {
	writer    RecordWriter
	requests  chan writeRequest
	closeChan chan struct{}
	wg        sync.WaitGroup
	mu        sync.RWMutex
	closed    bool
}

// NewWriteQueue starts the worker. size bounds the pending buffer.
func NewWriteQueue(writer RecordWriter, size int) *WriteQueue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	q := &WriteQueue{
		writer:    writer,
		requests:  make(chan writeRequest, size),
		closeChan: make(chan struct{}),
	}
	q.wg.Add(1)
	go q.worker()
	return q
}

// Insert enqueues record and waits for the write to finish. A write that has
// been enqueued still runs if ctx ends while waiting.
func (q *WriteQueue) Insert(ctx context.Context, record model.ExpenseRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	req := writeRequest{
		ctx:    ctx,
		record: record,
		result: make(chan error, 1),
	}

	if err := q.enqueue(ctx, req); err != nil {
		return err
	}

	select {
	case err := <-req.result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *WriteQueue) enqueue(ctx context.Context, req writeRequest) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return common.ErrQueueClosed
	}

	select {
	case q.requests <- req:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-q.closeChan:
		return common.ErrQueueClosed
	}
}

func (q *WriteQueue) worker() {
	defer q.wg.Done()

	for {
		select {
		case req := <-q.requests:
			q.process(req)
		case <-q.closeChan:
			// Drain what was accepted before Close.
			for {
				select {
				case req := <-q.requests:
					q.process(req)
				default:
					return
				}
			}
		}
	}
}

func (q *WriteQueue) process(req writeRequest) {
	err := q.writer.Insert(context.WithoutCancel(req.ctx), req.record)
	if err != nil {
		err = fmt.Errorf("queued insert of %s: %w", req.record.ID, err)
	}
	req.result <- err
}

// Close stops accepting writes, flushes the pending ones, and waits for the
// worker to exit.
func (q *WriteQueue) Close() error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	close(q.closeChan)
	q.mu.Unlock()

	q.wg.Wait()
	return nil
}
