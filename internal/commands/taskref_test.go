package commands

import (
	"errors"
	"testing"

	"todo/internal/service"
)

func TestParseTaskRef_Number(t *testing.T) {
	ref, err := ParseTaskRef([]string{"5"}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Num != 5 || ref.Key != "" {
		t.Errorf("expected row 5, got %+v", ref)
	}
}

func TestParseTaskRef_Key(t *testing.T) {
	ref, err := ParseTaskRef(nil, "1700000000000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Key != "1700000000000" || ref.Num != 0 {
		t.Errorf("expected key reference, got %+v", ref)
	}
}

func TestParseTaskRef_Errors(t *testing.T) {
	tests := []struct {
		args []string
		key  string
		want string
	}{
		{nil, "", "task reference required"},
		{[]string{"abc"}, "", "invalid task reference: abc"},
		{[]string{"-1"}, "", "invalid task reference: -1"},
		{[]string{"1", "2"}, "", "unexpected argument: 2"},
		{[]string{"99999999999999999999"}, "", "invalid task reference: 99999999999999999999"},
		{[]string{"1"}, "k", "cannot use both --key and a task number"},
	}
	for _, tt := range tests {
		_, err := ParseTaskRef(tt.args, tt.key)
		if err == nil {
			t.Errorf("args %v key %q: expected error", tt.args, tt.key)
			continue
		}
		if err.Error() != tt.want {
			t.Errorf("args %v key %q: expected %q, got %q", tt.args, tt.key, tt.want, err.Error())
		}
	}
}

func TestParseTaskRef_RequiredSentinel(t *testing.T) {
	_, err := ParseTaskRef(nil, "")
	if !errors.Is(err, ErrTaskRefRequired) {
		t.Errorf("expected ErrTaskRefRequired, got %v", err)
	}
}

func TestTaskRef_Resolve(t *testing.T) {
	tasks := []service.Task{{Key: "a", Task: "one"}, {Key: "b", Task: "two"}}

	got, err := TaskRef{Num: 2}.Resolve(tasks)
	if err != nil || got.Key != "b" {
		t.Errorf("expected row 2 to be b, got %+v err=%v", got, err)
	}

	got, err = TaskRef{Key: "a"}.Resolve(tasks)
	if err != nil || got.Task != "one" {
		t.Errorf("expected key a to resolve, got %+v err=%v", got, err)
	}

	got, err = TaskRef{Key: "missing"}.Resolve(tasks)
	if err != nil || got.Key != "missing" || got.Task != "" {
		t.Errorf("expected key-only task for unknown key, got %+v err=%v", got, err)
	}

	for _, n := range []int{0, 3} {
		_, err := TaskRef{Num: n}.Resolve(tasks)
		if !errors.Is(err, ErrOutOfRange) {
			t.Errorf("row %d: expected ErrOutOfRange, got %v", n, err)
		}
	}
}
