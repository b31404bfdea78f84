// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"todo/internal/service"
)

const (
	// Separator frames the shell title.
	Separator = "------------"

	// Title is the shell heading.
	Title = "ToDo List"

	// OpenMarker and DoneMarker show a task's completion state.
	OpenMarker = "[ ]"
	DoneMarker = "[x]"

	strikeOn = "\x1b[9m"
	styleOff = "\x1b[0m"
	dimOn    = "\x1b[2m"
	untitled = "(untitled)"
)

// FormatTask writes one row: "{N:>4}  {MARKER} {TEXT}\n".
// With color set, completed text is struck through and dimmed.
func FormatTask(w io.Writer, num int, task service.Task, color bool) {
	marker := OpenMarker
	text := normalizeText(task.Task)
	if task.Completed {
		marker = DoneMarker
		if color {
			text = dimOn + strikeOn + text + styleOff
		}
	}
	fmt.Fprintf(w, "%4d  %s %s\n", num, marker, text)
}

// FormatTasks writes all rows numbered from 1.
func FormatTasks(w io.Writer, tasks []service.Task, color bool) {
	for i, t := range tasks {
		FormatTask(w, i+1, t, color)
	}
}

// FormatHeader writes the shell heading.
func FormatHeader(w io.Writer) {
	fmt.Fprintln(w, Separator)
	fmt.Fprintln(w, Title)
	fmt.Fprintln(w, Separator)
}

// normalizeText makes task text fit on one row.
// Newlines become spaces; blank text becomes "(untitled)".
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	text = strings.ReplaceAll(text, "\n", " ")
	if strings.TrimSpace(text) == "" {
		return untitled
	}
	return text
}
