package todo

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"todo/internal/config"
)

func TestOpenConfigured_FileStore(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{Dir: dir}

	h, err := OpenConfigured(context.Background(), cfg, WithKeyFunc(sequentialKeys()))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	h.AddTask("Buy milk")
	if err := h.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "todos.json"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := `[{"key":"k1","task":"Buy milk","completed":false}]`
	if string(data) != want {
		t.Errorf("stored %s, want %s", data, want)
	}

	h, err = OpenConfigured(context.Background(), cfg)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer h.Close(context.Background())
	if got := h.Tasks(); len(got) != 1 || got[0].Task != "Buy milk" {
		t.Errorf("reopened tasks = %+v", got)
	}
}

func TestOpenConfigured_WriteFailureWarns(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "store")
	var warnings bytes.Buffer
	cfg := &config.Config{Dir: dir, Warnings: &warnings}

	h, err := OpenConfigured(context.Background(), cfg)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	// A regular file where the directory should be makes the save fail.
	if err := os.WriteFile(dir, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	h.AddTask("Buy milk")
	if err := h.Close(context.Background()); err == nil {
		t.Fatal("expected close to report the failed save")
	}
	if !strings.HasPrefix(warnings.String(), "warning: save failed: ") {
		t.Errorf("warnings = %q", warnings.String())
	}
}
