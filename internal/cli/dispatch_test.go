package cli_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"todo/internal/cli"
	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/kv"
	"todo/internal/service"
	"todo/internal/testutil"
	"todo/internal/todo"
)

// testFactory creates a service factory that returns the given FakeService
// and records the config it was called with.
func testFactory(svc *testutil.FakeService, seen **config.Config) cli.ServiceFactory {
	return func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		if seen != nil {
			*seen = cfg
		}
		return svc, nil
	}
}

func run(t *testing.T, d *cli.Dispatcher, input string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := d.Run(context.Background(), args, strings.NewReader(input), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc, nil))

	code, _, stderr := run(t, dispatcher, "", "unknowncmd")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc, nil))

	code, _, stderr := run(t, dispatcher, "", "--quiet")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_NoArgsLists(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed("k1", "Buy milk", false)
	svc.Seed("k2", "Walk dog", true)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc, nil))

	code, stdout, stderr := run(t, dispatcher, "")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	expected := "   1  [ ] Buy milk\n   2  [x] Walk dog\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
	if !svc.Closed() {
		t.Error("expected service to be closed")
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		t.Fatal("help must not open the store")
		return nil, nil
	})

	code, stdout, stderr := run(t, dispatcher, "", "help")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("expected help output to contain 'Usage:'")
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc, nil))

	code, stdout, stderr := run(t, dispatcher, "", "version")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "todo 0.1.0\n" {
		t.Errorf("expected 'todo 0.1.0\\n', got %q", stdout)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	svc := testutil.NewFakeService()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc, nil))

	code, _, stderr := run(t, dispatcher, "", "help", "--unknown")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagNeedsArgument(t *testing.T) {
	svc := testutil.NewFakeService()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc, nil))

	code, _, stderr := run(t, dispatcher, "", "toggle", "--key")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: flag needs an argument: -key\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_CommonFlags(t *testing.T) {
	svc := testutil.NewFakeService()
	var cfg *config.Config
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc, &cfg))
	dispatcher.EnableColor(true)

	code, stdout, stderr := run(t, dispatcher, "",
		"add", "--config", "/tmp/todo-test", "--dsn", "user:pw@/db", "--quiet", "--no-color", "Buy", "milk")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "" {
		t.Errorf("expected quiet add, got %q", stdout)
	}
	if cfg == nil {
		t.Fatal("factory was not called")
	}
	if cfg.Dir != "/tmp/todo-test" {
		t.Errorf("Dir = %q", cfg.Dir)
	}
	if cfg.DSN != "user:pw@/db" {
		t.Errorf("DSN = %q", cfg.DSN)
	}
	if !cfg.Quiet {
		t.Error("expected Quiet")
	}
	if cfg.Color {
		t.Error("--no-color must disable colour")
	}
	if got := svc.Tasks(); len(got) != 1 || got[0].Task != "Buy milk" {
		t.Errorf("tasks = %+v", got)
	}
}

func TestDispatcher_ColorEnabled(t *testing.T) {
	svc := testutil.NewFakeService()
	var cfg *config.Config
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc, &cfg))
	dispatcher.EnableColor(true)

	if code, _, _ := run(t, dispatcher, "", "list"); code != exitcode.Success {
		t.Fatalf("exit code %d", code)
	}
	if !cfg.Color {
		t.Error("expected colour to stay on")
	}
}

func TestDispatcher_DSNFromEnvironment(t *testing.T) {
	t.Setenv(config.DSNEnv, "env:pw@/db")
	svc := testutil.NewFakeService()
	var cfg *config.Config
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc, &cfg))

	if code, _, _ := run(t, dispatcher, "", "list"); code != exitcode.Success {
		t.Fatalf("exit code %d", code)
	}
	if cfg.DSN != "env:pw@/db" {
		t.Errorf("DSN = %q", cfg.DSN)
	}
}

func TestDispatcher_DebugLogsToStderr(t *testing.T) {
	svc := testutil.NewFakeService()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc, nil))

	code, _, stderr := run(t, dispatcher, "", "add", "--debug", "Buy milk")

	if code != exitcode.Success {
		t.Fatalf("exit code %d", code)
	}
	if !strings.Contains(stderr, "added task") {
		t.Errorf("expected debug output, got %q", stderr)
	}
}

func TestDispatcher_OpenFailure(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return nil, errors.New("disk on fire")
	})

	code, stdout, stderr := run(t, dispatcher, "", "list")

	if code != exitcode.StorageError {
		t.Errorf("expected exit code %d, got %d", exitcode.StorageError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	expected := "error: storage error: disk on fire\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_CloseFailure(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.CloseErr = errors.New("write todos: disk full")
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc, nil))

	code, stdout, stderr := run(t, dispatcher, "", "add", "Buy milk")

	if code != exitcode.StorageError {
		t.Errorf("expected exit code %d, got %d", exitcode.StorageError, code)
	}
	if stdout != "ok\n" {
		t.Errorf("expected ok, got %q", stdout)
	}
	expected := "error: storage error: changes may not be saved: write todos: disk full\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_CloseFailureKeepsCommandError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.CloseErr = errors.New("disk full")
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc, nil))

	code, _, _ := run(t, dispatcher, "", "toggle", "7")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
}

// readOnlyStore fails every write.
type readOnlyStore struct{ *kv.Memory }

func (readOnlyStore) Set(ctx context.Context, key, value string) error {
	return errors.New("read-only store")
}

// Save failures are reported from the writer goroutine while the shell
// keeps writing to the same stderr.
func TestDispatcher_ShellWarnsOnFailedSaves(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return todo.OpenStore(ctx, cfg, readOnlyStore{kv.NewMemory()})
	})

	input := "a one\nt 9\na two\nt 9\nt 1\nt 9\nq\n"
	code, stdout, stderr := run(t, dispatcher, input, "shell")

	if code != exitcode.StorageError {
		t.Errorf("expected exit code %d, got %d", exitcode.StorageError, code)
	}
	if !strings.Contains(stderr, "warning: save failed: ") {
		t.Errorf("expected a save warning, got %q", stderr)
	}
	if !strings.Contains(stderr, "error: task number out of range: 9\n") {
		t.Errorf("expected shell errors on stderr, got %q", stderr)
	}
	if !strings.HasSuffix(stderr, "error: storage error: changes may not be saved: save tasks: read-only store\n") {
		t.Errorf("expected the failure reported at exit, got %q", stderr)
	}
	if !strings.Contains(stdout, "   2  [ ] two\n") {
		t.Errorf("changes must stay in memory, got %q", stdout)
	}
}
