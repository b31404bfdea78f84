// Package service defines the task record and the interfaces commands use.
package service

// Task is a single to-do item.
// The JSON field names are the persisted layout and must not change.
type Task struct {
	Key       string `json:"key"`
	Task      string `json:"task"`
	Completed bool   `json:"completed"`
}

// RemoteList is a task list on a remote task service.
type RemoteList struct {
	ID        string
	Title     string
	IsDefault bool
}
