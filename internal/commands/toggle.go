package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
)

func init() {
	Register(&ToggleCmd{})
}

// ToggleCmd implements the toggle command.
type ToggleCmd struct {
	key string
}

// SetKey sets the --key value (for testing).
func (c *ToggleCmd) SetKey(key string) {
	c.key = key
}

func (c *ToggleCmd) Name() string      { return "toggle" }
func (c *ToggleCmd) Aliases() []string { return []string{"done"} }
func (c *ToggleCmd) Synopsis() string  { return "Mark a task completed, or open again" }
func (c *ToggleCmd) Usage() string     { return "todo toggle <n> | --key <key>" }
func (c *ToggleCmd) NeedsStore() bool  { return true }

func (c *ToggleCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.key, "key", "", "")
}

func (c *ToggleCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	task, code := resolveRef(svc, args, c.key, errOut)
	if code != exitcode.Success {
		return code
	}

	if _, ok := svc.ToggleTask(task.Key); !ok {
		cfg.Log.V(1).Info("no task with key", "key", task.Key)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// resolveRef parses a task reference and looks it up in the current list,
// printing the error and returning a non-zero exit code on failure.
func resolveRef(svc service.Service, args []string, key string, errOut io.Writer) (service.Task, int) {
	ref, err := ParseTaskRef(args, key)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return service.Task{}, exitcode.UserError
	}
	task, err := ref.Resolve(svc.Tasks())
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return service.Task{}, exitcode.UserError
	}
	return task, exitcode.Success
}
