package output

import (
	"bytes"
	"testing"

	"todo/internal/service"
)

func TestFormatTask(t *testing.T) {
	tests := []struct {
		name  string
		num   int
		task  service.Task
		color bool
		want  string
	}{
		{"open", 1, service.Task{Task: "Buy milk"}, false, "   1  [ ] Buy milk\n"},
		{"done plain", 12, service.Task{Task: "Walk dog", Completed: true}, false, "  12  [x] Walk dog\n"},
		{"done color", 3, service.Task{Task: "Walk dog", Completed: true}, true, "   3  [x] \x1b[2m\x1b[9mWalk dog\x1b[0m\n"},
		{"open color", 3, service.Task{Task: "Walk dog"}, true, "   3  [ ] Walk dog\n"},
		{"newlines", 2, service.Task{Task: "line one\nline two"}, false, "   2  [ ] line one line two\n"},
		{"blank", 2, service.Task{Task: "  "}, false, "   2  [ ] (untitled)\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			FormatTask(&buf, tt.num, tt.task, tt.color)
			if buf.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, buf.String())
			}
		})
	}
}

func TestFormatHeader(t *testing.T) {
	var buf bytes.Buffer
	FormatHeader(&buf)

	want := "------------\nToDo List\n------------\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}
