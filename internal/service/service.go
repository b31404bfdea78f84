// Package service defines the task record and the interfaces commands use.
package service

import "context"

// Service is the list state holder as seen by commands.
// It owns the ordered task list; every successful mutation is written back
// to storage without the caller waiting for it.
type Service interface {
	// Tasks returns a copy of the current list in insertion order.
	Tasks() []Task

	// AddTask appends a new open task. Text that is empty after trimming
	// is ignored and reported as false.
	AddTask(text string) (Task, bool)

	// ToggleTask flips the completed flag of the task with the given key.
	// Returns false if no task matches.
	ToggleTask(key string) (Task, bool)

	// DeleteTask removes the task with the given key.
	// Returns false if no task matches.
	DeleteTask(key string) bool

	// Close waits for pending writes and releases storage.
	// Returns the last write error, if any.
	Close(ctx context.Context) error
}

// Remote is a task service tasks can be copied into.
// Commands never import the Google SDK directly.
type Remote interface {
	// DefaultList returns the user's default list.
	DefaultList(ctx context.Context) (RemoteList, error)

	// ResolveList finds a list by name (case-insensitive, trimmed).
	ResolveList(ctx context.Context, name string) (RemoteList, error)

	// CreateTask creates a task in the list, optionally already completed.
	CreateTask(ctx context.Context, listID, title string, completed bool) error
}
