package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"todo/internal/backend/googletasks"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
)

// RemoteFactory creates the remote task service push copies into.
type RemoteFactory func(ctx context.Context, cfg *config.Config) (service.Remote, error)

func init() {
	Register(&PushCmd{})
}

// PushCmd implements the push command: a one-way copy of local tasks into
// a Google Tasks list. Nothing is read back or reconciled.
type PushCmd struct {
	listName string
	all      bool
	factory  RemoteFactory
}

// SetListName sets the --list value (for testing).
func (c *PushCmd) SetListName(name string) {
	c.listName = name
}

// SetAll sets the --all flag (for testing).
func (c *PushCmd) SetAll(all bool) {
	c.all = all
}

// SetRemoteFactory replaces the Google Tasks client (for testing).
func (c *PushCmd) SetRemoteFactory(f RemoteFactory) {
	c.factory = f
}

func (c *PushCmd) Name() string      { return "push" }
func (c *PushCmd) Aliases() []string { return nil }
func (c *PushCmd) Synopsis() string  { return "Copy open tasks to Google Tasks" }
func (c *PushCmd) Usage() string     { return "todo push [--list <list-name>] [--all]" }
func (c *PushCmd) NeedsStore() bool  { return true }

func (c *PushCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
	fs.BoolVar(&c.all, "all", false, "")
}

func (c *PushCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	factory := c.factory
	if factory == nil {
		if !cfg.HasOAuthClient() {
			fmt.Fprintf(errOut, "error: oauth_client.json not found in %s\n", cfg.Dir)
			return exitcode.AuthError
		}
		if !cfg.HasToken() {
			fmt.Fprintln(errOut, "error: not logged in (run: todo login)")
			return exitcode.AuthError
		}
		factory = googleRemote
	}

	remote, err := factory(ctx, cfg)
	if err != nil {
		return remoteFailure(errOut, err)
	}

	var list service.RemoteList
	if strings.TrimSpace(c.listName) != "" {
		list, err = remote.ResolveList(ctx, c.listName)
	} else {
		list, err = remote.DefaultList(ctx)
	}
	if err != nil {
		return remoteFailure(errOut, err)
	}

	pushed := 0
	for _, t := range svc.Tasks() {
		if t.Completed && !c.all {
			continue
		}
		if err := remote.CreateTask(ctx, list.ID, t.Task, t.Completed); err != nil {
			fmt.Fprintf(errOut, "error: pushed %d tasks before failing\n", pushed)
			return remoteFailure(errOut, err)
		}
		pushed++
		cfg.Log.V(1).Info("pushed task", "key", t.Key, "list", list.ID)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "pushed %d tasks to %s\n", pushed, list.Title)
	}
	return exitcode.Success
}

func googleRemote(ctx context.Context, cfg *config.Config) (service.Remote, error) {
	return googletasks.New(ctx, cfg)
}

// remoteFailure prints err and maps it to an exit code.
func remoteFailure(errOut io.Writer, err error) int {
	switch {
	case errors.Is(err, googletasks.ErrListNotFound), errors.Is(err, googletasks.ErrAmbiguousList):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	case errors.Is(err, googletasks.ErrAuth), errors.Is(err, googletasks.ErrNoOAuthClient):
		fmt.Fprintf(errOut, "error: auth error: %v\n", err)
		return exitcode.AuthError
	default:
		fmt.Fprintf(errOut, "error: remote error: %v\n", err)
		return exitcode.RemoteError
	}
}
