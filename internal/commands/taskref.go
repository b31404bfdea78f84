package commands

import (
	"errors"
	"fmt"
	"strconv"

	"todo/internal/service"
)

// TaskRef identifies a task by its 1-based row number or by its key.
type TaskRef struct {
	Num int    // row number as printed by list; 0 when Key is set
	Key string // task key from --key
}

var (
	// ErrTaskRefRequired indicates neither a row number nor a key was given.
	ErrTaskRefRequired = errors.New("task reference required")

	// ErrOutOfRange indicates a row number past the end of the list.
	ErrOutOfRange = errors.New("task number out of range")
)

// ParseTaskRef parses a task reference from positional args and the
// --key flag value.
//
//   - key set, no args: reference by key
//   - key set and args: error
//   - one all-digit arg: reference by row number
//   - anything else: invalid task reference
func ParseTaskRef(args []string, key string) (TaskRef, error) {
	if key != "" {
		if len(args) > 0 {
			return TaskRef{}, errors.New("cannot use both --key and a task number")
		}
		return TaskRef{Key: key}, nil
	}
	if len(args) == 0 {
		return TaskRef{}, ErrTaskRefRequired
	}
	if len(args) > 1 {
		return TaskRef{}, fmt.Errorf("unexpected argument: %s", args[1])
	}
	if !isAllDigits(args[0]) {
		return TaskRef{}, fmt.Errorf("invalid task reference: %s", args[0])
	}
	num, err := strconv.Atoi(args[0])
	if err != nil {
		return TaskRef{}, fmt.Errorf("invalid task reference: %s", args[0])
	}
	return TaskRef{Num: num}, nil
}

// isAllDigits returns true if s is non-empty and only ASCII digits.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Resolve returns the task ref points at in tasks.
// A key reference that matches nothing yields a Task carrying only the key,
// so the holder treats it as a no-op.
func (r TaskRef) Resolve(tasks []service.Task) (service.Task, error) {
	if r.Key != "" {
		for _, t := range tasks {
			if t.Key == r.Key {
				return t, nil
			}
		}
		return service.Task{Key: r.Key}, nil
	}
	if r.Num < 1 || r.Num > len(tasks) {
		return service.Task{}, fmt.Errorf("%w: %d", ErrOutOfRange, r.Num)
	}
	return tasks[r.Num-1], nil
}
