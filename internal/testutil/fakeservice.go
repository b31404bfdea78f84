// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"todo/internal/backend/googletasks"
	"todo/internal/service"
)

// FakeService is an in-memory service.Service with predictable keys
// (k1, k2, ...).
type FakeService struct {
	mu     sync.Mutex
	tasks  []service.Task
	nextID int
	closed bool

	// Mutations counts successful mutations; each one would trigger a save.
	Mutations int

	// CloseErr is returned from Close.
	CloseErr error
}

// NewFakeService creates a FakeService holding tasks.
func NewFakeService(tasks ...service.Task) *FakeService {
	return &FakeService{tasks: append([]service.Task(nil), tasks...)}
}

// Seed adds a task with an explicit key, bypassing the mutation counter.
func (f *FakeService) Seed(key, text string, completed bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, service.Task{Key: key, Task: text, Completed: completed})
}

// Closed reports whether Close was called.
func (f *FakeService) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// Tasks implements service.Service.
func (f *FakeService) Tasks() []service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]service.Task{}, f.tasks...)
}

// AddTask implements service.Service.
func (f *FakeService) AddTask(text string) (service.Task, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if strings.TrimSpace(text) == "" {
		return service.Task{}, false
	}
	f.nextID++
	t := service.Task{Key: fmt.Sprintf("k%d", f.nextID), Task: text}
	f.tasks = append(f.tasks, t)
	f.Mutations++
	return t, true
}

// ToggleTask implements service.Service.
func (f *FakeService) ToggleTask(key string) (service.Task, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].Key == key {
			f.tasks[i].Completed = !f.tasks[i].Completed
			f.Mutations++
			return f.tasks[i], true
		}
	}
	return service.Task{}, false
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.Key == key {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			f.Mutations++
			return true
		}
	}
	return false
}

// Close implements service.Service.
func (f *FakeService) Close(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return f.CloseErr
}

// FakeRemote is an in-memory service.Remote.
type FakeRemote struct {
	mu    sync.Mutex
	lists []service.RemoteList
	tasks map[string][]RemoteTask

	// Error injection for testing
	DefaultListErr error
	ResolveListErr error
	CreateTaskErr  error

	// FailAfter is how many tasks CreateTask accepts before returning
	// CreateTaskErr.
	FailAfter int
}

// RemoteTask is a task recorded by FakeRemote.
type RemoteTask struct {
	Title     string
	Completed bool
}

// NewFakeRemote creates a FakeRemote with a default list "My Tasks".
func NewFakeRemote() *FakeRemote {
	return &FakeRemote{
		lists: []service.RemoteList{{ID: "@default", Title: "My Tasks", IsDefault: true}},
		tasks: make(map[string][]RemoteTask),
	}
}

// AddList adds a named list.
func (f *FakeRemote) AddList(id, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, service.RemoteList{ID: id, Title: title})
}

// TasksIn returns the tasks created in a list.
func (f *FakeRemote) TasksIn(listID string) []RemoteTask {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]RemoteTask(nil), f.tasks[listID]...)
}

// DefaultList implements service.Remote.
func (f *FakeRemote) DefaultList(ctx context.Context) (service.RemoteList, error) {
	if f.DefaultListErr != nil {
		return service.RemoteList{}, f.DefaultListErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lists[0], nil
}

// ResolveList implements service.Remote.
func (f *FakeRemote) ResolveList(ctx context.Context, name string) (service.RemoteList, error) {
	if f.ResolveListErr != nil {
		return service.RemoteList{}, f.ResolveListErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.lists {
		if strings.EqualFold(strings.TrimSpace(l.Title), strings.TrimSpace(name)) {
			return l, nil
		}
	}
	return service.RemoteList{}, fmt.Errorf("%w: %s", googletasks.ErrListNotFound, name)
}

// CreateTask implements service.Remote.
func (f *FakeRemote) CreateTask(ctx context.Context, listID, title string, completed bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CreateTaskErr != nil {
		created := 0
		for _, ts := range f.tasks {
			created += len(ts)
		}
		if created >= f.FailAfter {
			return f.CreateTaskErr
		}
	}
	f.tasks[listID] = append(f.tasks[listID], RemoteTask{Title: title, Completed: completed})
	return nil
}
