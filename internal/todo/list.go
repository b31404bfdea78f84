// Package todo holds the task list in memory and writes it back to storage
// after every change.
package todo

import (
	"strings"

	"todo/internal/service"
)

// List is an ordered task list. It does no I/O.
type List struct {
	tasks []service.Task
}

// NewList creates a List holding a copy of tasks.
func NewList(tasks []service.Task) *List {
	l := &List{tasks: make([]service.Task, len(tasks))}
	copy(l.tasks, tasks)
	return l
}

// Len returns the number of tasks.
func (l *List) Len() int { return len(l.tasks) }

// Tasks returns a copy of the tasks in order.
func (l *List) Tasks() []service.Task {
	out := make([]service.Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}

// Add appends an open task with the given key and text.
// Text that is blank after trimming is rejected.
func (l *List) Add(key, text string) (service.Task, bool) {
	if strings.TrimSpace(text) == "" {
		return service.Task{}, false
	}
	t := service.Task{Key: key, Task: text}
	l.tasks = append(l.tasks, t)
	return t, true
}

// Toggle flips the completed flag of the first task with key.
func (l *List) Toggle(key string) (service.Task, bool) {
	i := l.index(key)
	if i < 0 {
		return service.Task{}, false
	}
	l.tasks[i].Completed = !l.tasks[i].Completed
	return l.tasks[i], true
}

// Delete removes every task with key.
// Keys are expected to be unique, but data loaded from storage may not be.
func (l *List) Delete(key string) bool {
	kept := l.tasks[:0]
	for _, t := range l.tasks {
		if t.Key != key {
			kept = append(kept, t)
		}
	}
	removed := len(kept) != len(l.tasks)
	// Zero the tail so dropped records are not kept alive.
	for i := len(kept); i < len(l.tasks); i++ {
		l.tasks[i] = service.Task{}
	}
	l.tasks = kept
	return removed
}

func (l *List) index(key string) int {
	for i, t := range l.tasks {
		if t.Key == key {
			return i
		}
	}
	return -1
}
