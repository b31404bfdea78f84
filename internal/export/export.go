// Package export renders the task list as JSON, CSV or PDF.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"todo/internal/service"
)

// Formats lists the supported format names.
var Formats = []string{"json", "csv", "pdf"}

// ErrUnknownFormat is returned for a format not in Formats.
var ErrUnknownFormat = errors.New("unknown format")

// Export renders tasks in the named format (case-insensitive).
func Export(tasks []service.Task, format string) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return toJSON(tasks)
	case "csv":
		return toCSV(tasks)
	case "pdf":
		return toPDF(tasks)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

func toJSON(tasks []service.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []service.Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func toCSV(tasks []service.Task) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"key", "task", "completed"}); err != nil {
		return nil, err
	}
	for _, t := range tasks {
		if err := w.Write([]string{t.Key, t.Task, strconv.FormatBool(t.Completed)}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func toPDF(tasks []service.Task) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "ToDo List")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	if len(tasks) == 0 {
		pdf.Cell(40, 8, "No tasks.")
	}
	for i, t := range tasks {
		marker := "[ ]"
		if t.Completed {
			marker = "[x]"
		}
		line := fmt.Sprintf("%d. %s %s", i+1, marker, tr(t.Task))
		if t.Completed {
			pdf.SetTextColor(150, 150, 150)
		}
		pdf.MultiCell(0, 7, line, "0", "L", false)
		pdf.SetTextColor(0, 0, 0)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
