package store

import (
	"context"
	"sync"
	"time"

	"github.com/go-logr/logr"

	"todo/internal/service"
)

// DefaultWriteTimeout bounds a single background save.
const DefaultWriteTimeout = 5 * time.Second

// Saver persists a full task list.
type Saver interface {
	Save(ctx context.Context, tasks []service.Task) error
}

// Writer persists list snapshots on a single goroutine, in enqueue order.
//
// Enqueue never waits for I/O. While a save is in flight, newer snapshots
// replace each other and only the latest one is written next, so a stale
// list is never written after a newer one.
type Writer struct {
	saver   Saver
	log     logr.Logger
	onError func(error)
	timeout time.Duration

	mu      sync.Mutex
	pending []service.Task
	dirty   bool
	closed  bool
	lastErr error
	writes  int

	wake chan struct{}
	stop chan struct{}
	done chan struct{}
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithLogger sets the logger for write failures and dropped writes.
func WithLogger(log logr.Logger) WriterOption {
	return func(w *Writer) { w.log = log }
}

// WithErrorHandler registers fn to be called on the writer goroutine
// after every failed save.
func WithErrorHandler(fn func(error)) WriterOption {
	return func(w *Writer) { w.onError = fn }
}

// WithWriteTimeout overrides DefaultWriteTimeout.
func WithWriteTimeout(d time.Duration) WriterOption {
	return func(w *Writer) { w.timeout = d }
}

// NewWriter starts a Writer that saves through s.
// Close must be called to stop it.
func NewWriter(s Saver, opts ...WriterOption) *Writer {
	w := &Writer{
		saver:   s,
		log:     logr.Discard(),
		timeout: DefaultWriteTimeout,
		wake:    make(chan struct{}, 1),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	go w.run()
	return w
}

// Enqueue schedules tasks to be saved. The slice is copied.
// Snapshots enqueued after Close are dropped.
func (w *Writer) Enqueue(tasks []service.Task) {
	snapshot := make([]service.Task, len(tasks))
	copy(snapshot, tasks)

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		w.log.Info("dropping write after close", "tasks", len(snapshot))
		return
	}
	w.pending = snapshot
	w.dirty = true
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
	}
}

// Writes returns the number of completed save attempts.
func (w *Writer) Writes() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.writes
}

// Close saves any pending snapshot and stops the writer.
// It returns the error of the last save attempt, or ctx.Err() if ctx ends
// before the writer finishes.
func (w *Writer) Close(ctx context.Context) error {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.stop)
	}
	w.mu.Unlock()

	select {
	case <-w.done:
	case <-ctx.Done():
		return ctx.Err()
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastErr
}

func (w *Writer) run() {
	defer close(w.done)
	for {
		select {
		case <-w.wake:
			w.flush()
		case <-w.stop:
			w.flush()
			return
		}
	}
}

// flush saves the pending snapshot, if any.
func (w *Writer) flush() {
	w.mu.Lock()
	if !w.dirty {
		w.mu.Unlock()
		return
	}
	tasks := w.pending
	w.pending = nil
	w.dirty = false
	w.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	err := w.saver.Save(ctx, tasks)
	cancel()

	w.mu.Lock()
	w.lastErr = err
	w.writes++
	w.mu.Unlock()

	if err != nil {
		w.log.Error(err, "save failed", "tasks", len(tasks))
		if w.onError != nil {
			w.onError(err)
		}
		return
	}
	w.log.V(1).Info("saved", "tasks", len(tasks))
}
