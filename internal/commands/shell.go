package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/output"
	"todo/internal/prompt"
	"todo/internal/service"
)

func init() {
	Register(&ShellCmd{})
}

// ShellCmd implements the interactive shell.
type ShellCmd struct{}

func (c *ShellCmd) Name() string      { return "shell" }
func (c *ShellCmd) Aliases() []string { return nil }
func (c *ShellCmd) Synopsis() string  { return "Edit the list interactively" }
func (c *ShellCmd) Usage() string     { return "todo shell" }
func (c *ShellCmd) NeedsStore() bool  { return true }

func (c *ShellCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ShellCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	s := &screen{
		cfg:    cfg,
		svc:    svc,
		prompt: prompt.New(in, out),
		out:    out,
		errOut: errOut,
	}
	return s.run(ctx)
}

const shellHelp = `Commands:
  a <text>   add a task
  t <n>      toggle task n
  d <n>      delete task n (asks first)
  l          show the list
  h          show this help
  q          quit
`

// screen is the shell's view state. It holds nothing that is persisted;
// the task list lives in svc.
type screen struct {
	cfg    *config.Config
	svc    service.Service
	prompt *prompt.Prompter
	out    io.Writer
	errOut io.Writer

	// input is the line being handled; cleared once a task is added.
	input string
}

func (s *screen) run(ctx context.Context) int {
	s.render()
	for {
		if ctx.Err() != nil {
			return exitcode.Success
		}
		line, err := s.prompt.Ask(ctx, "> ")
		if errors.Is(err, io.EOF) || ctx.Err() != nil {
			// Interrupted or end of input: leave the prompt on its own line.
			fmt.Fprintln(s.out)
			return exitcode.Success
		}
		if err != nil {
			fmt.Fprintf(s.errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		if quit := s.handle(ctx, line); quit {
			return exitcode.Success
		}
	}
}

// handle runs one input line. It returns true when the user quits.
func (s *screen) handle(ctx context.Context, line string) bool {
	verb, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)

	switch verb {
	case "":
	case "a", "add":
		s.input = rest
		s.add()
	case "t", "toggle", "done":
		s.toggle(rest)
	case "d", "rm", "delete":
		s.remove(ctx, rest)
	case "l", "ls", "list":
		s.render()
	case "h", "help", "?":
		fmt.Fprint(s.out, shellHelp)
	case "q", "quit", "exit":
		return true
	default:
		fmt.Fprintf(s.errOut, "error: unknown command: %s (h for help)\n", verb)
	}
	return false
}

func (s *screen) add() {
	if _, ok := s.svc.AddTask(s.input); !ok {
		return
	}
	s.input = ""
	s.render()
}

func (s *screen) toggle(arg string) {
	task, ok := s.lookup(arg)
	if !ok {
		return
	}
	s.svc.ToggleTask(task.Key)
	s.render()
}

func (s *screen) remove(ctx context.Context, arg string) {
	task, ok := s.lookup(arg)
	if !ok {
		return
	}
	confirmed, err := s.prompt.Confirm(ctx, deleteTitle, deleteMessage)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		fmt.Fprintf(s.errOut, "error: %v\n", err)
		return
	}
	if !confirmed {
		fmt.Fprintln(s.out, "cancelled")
		return
	}
	s.svc.DeleteTask(task.Key)
	s.render()
}

func (s *screen) lookup(arg string) (service.Task, bool) {
	ref, err := ParseTaskRef(strings.Fields(arg), "")
	if err != nil {
		fmt.Fprintf(s.errOut, "error: %v\n", err)
		return service.Task{}, false
	}
	task, err := ref.Resolve(s.svc.Tasks())
	if err != nil {
		fmt.Fprintf(s.errOut, "error: %v\n", err)
		return service.Task{}, false
	}
	return task, true
}

func (s *screen) render() {
	output.FormatHeader(s.out)
	tasks := s.svc.Tasks()
	if len(tasks) == 0 {
		fmt.Fprintln(s.out, "no tasks found")
		return
	}
	output.FormatTasks(s.out, tasks, s.cfg.Color)
}
