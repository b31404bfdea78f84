package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/prompt"
	"todo/internal/service"
)

const (
	deleteTitle   = "Delete Task"
	deleteMessage = "Are you sure?"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct {
	key string
	yes bool
}

// SetKey sets the --key value (for testing).
func (c *RmCmd) SetKey(key string) {
	c.key = key
}

// SetYes sets the --yes flag (for testing).
func (c *RmCmd) SetYes(yes bool) {
	c.yes = yes
}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a task after confirmation" }
func (c *RmCmd) Usage() string     { return "todo rm [--yes] <n> | --key <key>" }
func (c *RmCmd) NeedsStore() bool  { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.key, "key", "", "")
	fs.BoolVar(&c.yes, "yes", false, "")
	fs.BoolVar(&c.yes, "y", false, "")
}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	task, code := resolveRef(svc, args, c.key, errOut)
	if code != exitcode.Success {
		return code
	}

	// Unknown keys are a no-op; don't ask about a task that isn't there.
	if task.Task == "" && !hasKey(svc.Tasks(), task.Key) {
		cfg.Log.V(1).Info("no task with key", "key", task.Key)
		if !cfg.Quiet {
			fmt.Fprintln(out, "ok")
		}
		return exitcode.Success
	}

	if !c.yes {
		ok, err := prompt.New(in, errOut).Confirm(ctx, deleteTitle, deleteMessage)
		if ctx.Err() != nil {
			// Interrupted at the prompt counts as no.
			ok, err = false, nil
		}
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		if !ok {
			if !cfg.Quiet {
				fmt.Fprintln(out, "cancelled")
			}
			return exitcode.Success
		}
	}

	svc.DeleteTask(task.Key)

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

func hasKey(tasks []service.Task, key string) bool {
	for _, t := range tasks {
		if t.Key == key {
			return true
		}
	}
	return false
}
