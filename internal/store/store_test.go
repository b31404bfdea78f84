package store

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"todo/internal/kv"
	"todo/internal/service"
)

func TestAdapter_LoadEmptyStore(t *testing.T) {
	a := NewAdapter(kv.NewMemory())

	tasks, err := a.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tasks == nil || len(tasks) != 0 {
		t.Errorf("expected empty non-nil list, got %#v", tasks)
	}
}

func TestAdapter_RoundTrip(t *testing.T) {
	a := NewAdapter(kv.NewMemory())
	ctx := context.Background()

	want := []service.Task{
		{Key: "1700000000000", Task: "Buy milk", Completed: false},
		{Key: "b", Task: "Walk dog", Completed: true},
		{Key: "c", Task: "  padded  ", Completed: false},
	}
	if err := a.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := a.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch\nwant: %#v\ngot:  %#v", want, got)
	}
}

func TestAdapter_PersistedLayout(t *testing.T) {
	mem := kv.NewMemory()
	a := NewAdapter(mem)
	ctx := context.Background()

	if err := a.Save(ctx, []service.Task{{Key: "1700000000000", Task: "Buy milk"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	raw, ok, _ := mem.Get(ctx, "todos")
	if !ok {
		t.Fatal("expected value under key todos")
	}
	expected := `[{"key":"1700000000000","task":"Buy milk","completed":false}]`
	if raw != expected {
		t.Errorf("expected %s, got %s", expected, raw)
	}

	if err := a.Save(ctx, nil); err != nil {
		t.Fatalf("save empty: %v", err)
	}
	raw, _, _ = mem.Get(ctx, "todos")
	if raw != "[]" {
		t.Errorf("expected [], got %s", raw)
	}
}

func TestAdapter_LoadMalformed(t *testing.T) {
	mem := kv.NewMemory()
	ctx := context.Background()
	mem.Set(ctx, Key, `{"not":"a list"`)
	a := NewAdapter(mem)

	_, err := a.Load(ctx)
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}

	if err := a.Quarantine(ctx); err != nil {
		t.Fatalf("quarantine: %v", err)
	}
	raw, ok, _ := mem.Get(ctx, QuarantineKey)
	if !ok || raw != `{"not":"a list"` {
		t.Errorf("expected blob copied to %s, got %q", QuarantineKey, raw)
	}
}

func TestDecode_BlankAndNull(t *testing.T) {
	for _, raw := range []string{"", "  ", "null"} {
		tasks, err := Decode(raw)
		if err != nil {
			t.Errorf("Decode(%q): unexpected error %v", raw, err)
		}
		if len(tasks) != 0 {
			t.Errorf("Decode(%q): expected empty list, got %v", raw, tasks)
		}
	}
}

type failingStore struct {
	kv.Store
}

func (failingStore) Get(ctx context.Context, key string) (string, bool, error) {
	return "", false, errors.New("disk on fire")
}

func TestAdapter_LoadReadError(t *testing.T) {
	a := NewAdapter(failingStore{kv.NewMemory()})

	_, err := a.Load(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, ErrMalformed) {
		t.Error("read failure must not be reported as malformed data")
	}
}

// recordingSaver records every saved snapshot and can be slowed down.
type recordingSaver struct {
	mu    sync.Mutex
	saved [][]service.Task
	delay time.Duration
	err   error
}

func (r *recordingSaver) Save(ctx context.Context, tasks []service.Task) error {
	if r.delay > 0 {
		time.Sleep(r.delay)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = append(r.saved, tasks)
	return r.err
}

func (r *recordingSaver) snapshots() [][]service.Task {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saved
}

func listOf(n int) []service.Task {
	tasks := make([]service.Task, n)
	for i := range tasks {
		tasks[i] = service.Task{Key: string(rune('a' + i)), Task: "t"}
	}
	return tasks
}

func TestWriter_LatestSnapshotWins(t *testing.T) {
	saver := &recordingSaver{delay: 2 * time.Millisecond}
	w := NewWriter(saver)

	const n = 20
	for i := 1; i <= n; i++ {
		w.Enqueue(listOf(i))
	}
	if err := w.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}

	saved := saver.snapshots()
	if len(saved) == 0 {
		t.Fatal("expected at least one save")
	}
	if got := len(saved[len(saved)-1]); got != n {
		t.Errorf("expected last save to hold %d tasks, got %d", n, got)
	}
	// Snapshots only ever grow here, so any stale write shows up as a shrink.
	for i := 1; i < len(saved); i++ {
		if len(saved[i]) <= len(saved[i-1]) {
			t.Errorf("save %d wrote %d tasks after %d", i, len(saved[i]), len(saved[i-1]))
		}
	}
}

func TestWriter_SnapshotIsCopied(t *testing.T) {
	saver := &recordingSaver{}
	w := NewWriter(saver)

	tasks := []service.Task{{Key: "a", Task: "original"}}
	w.Enqueue(tasks)
	tasks[0].Task = "mutated"
	w.Close(context.Background())

	saved := saver.snapshots()
	if saved[len(saved)-1][0].Task != "original" {
		t.Errorf("expected writer to keep its own copy, got %q", saved[len(saved)-1][0].Task)
	}
}

func TestWriter_ErrorReportedNotFatal(t *testing.T) {
	saver := &recordingSaver{err: errors.New("read-only filesystem")}
	var mu sync.Mutex
	var handled []error
	w := NewWriter(saver, WithErrorHandler(func(err error) {
		mu.Lock()
		handled = append(handled, err)
		mu.Unlock()
	}))

	w.Enqueue(listOf(1))
	err := w.Close(context.Background())
	if err == nil || err.Error() != "read-only filesystem" {
		t.Errorf("expected last write error from Close, got %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(handled) != 1 {
		t.Errorf("expected error handler called once, got %d", len(handled))
	}
}

func TestWriter_EnqueueAfterCloseDropped(t *testing.T) {
	saver := &recordingSaver{}
	w := NewWriter(saver)
	w.Close(context.Background())

	w.Enqueue(listOf(3))
	if err := w.Close(context.Background()); err != nil {
		t.Errorf("second close: %v", err)
	}
	if n := len(saver.snapshots()); n != 0 {
		t.Errorf("expected no saves, got %d", n)
	}
}

func TestWriter_CloseTimeout(t *testing.T) {
	saver := &recordingSaver{delay: 200 * time.Millisecond}
	w := NewWriter(saver)
	w.Enqueue(listOf(1))
	// Let the writer pick the snapshot up.
	time.Sleep(20 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := w.Close(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
	// Drain so the goroutine finishes before the test exits.
	w.Close(context.Background())
}
