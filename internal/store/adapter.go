// Package store persists the task list as one serialized blob in a
// key-value store.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"todo/internal/kv"
	"todo/internal/service"
)

const (
	// Key is the fixed key the task list is stored under.
	Key = "todos"

	// QuarantineKey holds the last blob that failed to decode.
	QuarantineKey = Key + ".corrupt"
)

// ErrMalformed indicates the stored blob is not a task list.
var ErrMalformed = errors.New("malformed task data")

// Adapter loads and saves the whole task list.
type Adapter struct {
	kv  kv.Store
	key string
}

// NewAdapter creates an Adapter over s using Key.
func NewAdapter(s kv.Store) *Adapter {
	return &Adapter{kv: s, key: Key}
}

// Load reads the stored list.
// A missing or empty value yields an empty list.
// A value that does not decode yields an error wrapping ErrMalformed.
func (a *Adapter) Load(ctx context.Context) ([]service.Task, error) {
	raw, ok, err := a.kv.Get(ctx, a.key)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	if !ok {
		return []service.Task{}, nil
	}
	return Decode(raw)
}

// Save overwrites the stored list with tasks.
func (a *Adapter) Save(ctx context.Context, tasks []service.Task) error {
	raw, err := Encode(tasks)
	if err != nil {
		return err
	}
	if err := a.kv.Set(ctx, a.key, raw); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

// Quarantine copies the current stored value to QuarantineKey.
func (a *Adapter) Quarantine(ctx context.Context) error {
	raw, ok, err := a.kv.Get(ctx, a.key)
	if err != nil {
		return fmt.Errorf("quarantine tasks: %w", err)
	}
	if !ok {
		return nil
	}
	if err := a.kv.Set(ctx, QuarantineKey, raw); err != nil {
		return fmt.Errorf("quarantine tasks: %w", err)
	}
	return nil
}

// Encode serializes tasks as a JSON array. A nil list encodes as [].
func Encode(tasks []service.Task) (string, error) {
	if tasks == nil {
		tasks = []service.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return "", fmt.Errorf("encode tasks: %w", err)
	}
	return string(data), nil
}

// Decode parses a JSON array of tasks, keeping its order.
// Blank input and JSON null decode to an empty list.
func Decode(raw string) ([]service.Task, error) {
	if strings.TrimSpace(raw) == "" {
		return []service.Task{}, nil
	}
	var tasks []service.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if tasks == nil {
		tasks = []service.Task{}
	}
	return tasks, nil
}
