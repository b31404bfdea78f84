package todo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"todo/internal/service"
	"todo/internal/store"
)

// Storage is the persistence the holder hydrates from and writes back to.
type Storage interface {
	store.Saver
	Load(ctx context.Context) ([]service.Task, error)
	Quarantine(ctx context.Context) error
}

// Holder is the canonical task list. It implements service.Service.
type Holder struct {
	mu     sync.Mutex
	list   *List
	newKey func() string
	log    logr.Logger
	writer *store.Writer
	closer io.Closer

	onWriteError func(error)
}

var _ service.Service = (*Holder)(nil)

// Option configures a Holder.
type Option func(*Holder)

// WithKeyFunc replaces the key generator. The default returns random UUIDs.
func WithKeyFunc(fn func() string) Option {
	return func(h *Holder) { h.newKey = fn }
}

// WithLogger sets the logger.
func WithLogger(log logr.Logger) Option {
	return func(h *Holder) { h.log = log }
}

// WithWriteErrorHandler registers fn to be called when a background save fails.
func WithWriteErrorHandler(fn func(error)) Option {
	return func(h *Holder) { h.onWriteError = fn }
}

// WithCloser closes c after the writer has drained.
func WithCloser(c io.Closer) Option {
	return func(h *Holder) { h.closer = c }
}

// Open loads the stored list and starts the write-back writer.
//
// Malformed stored data is copied aside and the holder starts empty.
// A storage read failure is returned as an error, since the first write
// would otherwise replace data that was never read.
func Open(ctx context.Context, s Storage, opts ...Option) (*Holder, error) {
	h := &Holder{
		newKey: uuid.NewString,
		log:    logr.Discard(),
	}
	for _, opt := range opts {
		opt(h)
	}

	tasks, err := s.Load(ctx)
	switch {
	case errors.Is(err, store.ErrMalformed):
		h.log.Error(err, "stored tasks unreadable, starting with an empty list", "quarantine", store.QuarantineKey)
		if qerr := s.Quarantine(ctx); qerr != nil {
			return nil, fmt.Errorf("keep unreadable tasks: %w", qerr)
		}
		tasks = nil
	case err != nil:
		return nil, err
	}

	h.list = NewList(tasks)
	h.writer = store.NewWriter(s,
		store.WithLogger(h.log.WithName("writer")),
		store.WithErrorHandler(h.onWriteError),
	)
	h.log.V(1).Info("hydrated", "tasks", h.list.Len())
	return h, nil
}

// Tasks returns a copy of the list.
func (h *Holder) Tasks() []service.Task {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.list.Tasks()
}

// AddTask appends an open task. Blank text is ignored.
func (h *Holder) AddTask(text string) (service.Task, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	t, ok := h.list.Add(h.newKey(), text)
	if !ok {
		h.log.V(1).Info("ignoring blank task text")
		return service.Task{}, false
	}
	h.persist()
	return t, true
}

// ToggleTask flips the completion of the task with key.
func (h *Holder) ToggleTask(key string) (service.Task, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	t, ok := h.list.Toggle(key)
	if !ok {
		h.log.V(1).Info("toggle: no task with key", "key", key)
		return service.Task{}, false
	}
	h.persist()
	return t, true
}

// DeleteTask removes the task with key.
// Callers are responsible for confirming with the user first.
func (h *Holder) DeleteTask(key string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.list.Delete(key) {
		h.log.V(1).Info("delete: no task with key", "key", key)
		return false
	}
	h.persist()
	return true
}

// Close waits for pending writes, then closes the storage closer if set.
func (h *Holder) Close(ctx context.Context) error {
	err := h.writer.Close(ctx)
	if h.closer != nil {
		if cerr := h.closer.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// persist hands the current list to the writer. Caller holds h.mu.
func (h *Holder) persist() {
	h.writer.Enqueue(h.list.Tasks())
}
