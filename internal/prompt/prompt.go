// Package prompt reads lines and yes/no answers from the user.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Prompter reads answers from in and writes questions to out.
// A single Prompter must be used per input stream, since it buffers.
// It is not safe for concurrent use.
//
// Reads happen on a background goroutine so that a cancelled context
// interrupts a prompt. A line requested before a cancel is kept and
// returned by the next read.
type Prompter struct {
	r *bufio.Reader
	w io.Writer

	once    sync.Once
	want    chan struct{}
	got     chan lineResult
	pending bool
}

type lineResult struct {
	line string
	err  error
}

// New creates a Prompter.
func New(in io.Reader, out io.Writer) *Prompter {
	r, ok := in.(*bufio.Reader)
	if !ok {
		r = bufio.NewReader(in)
	}
	return &Prompter{
		r:    r,
		w:    out,
		want: make(chan struct{}),
		got:  make(chan lineResult, 1),
	}
}

// ReadLine reads one line without its line ending.
// It returns io.EOF only when no characters were left to read, and
// ctx.Err() if ctx ends first.
func (p *Prompter) ReadLine(ctx context.Context) (string, error) {
	p.once.Do(func() { go p.readLoop() })

	if !p.pending {
		select {
		case p.want <- struct{}{}:
			p.pending = true
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	select {
	case res := <-p.got:
		p.pending = false
		return res.line, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// readLoop reads one line per request, so nothing is read ahead of
// what callers asked for.
func (p *Prompter) readLoop() {
	for range p.want {
		line, err := p.r.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			p.got <- lineResult{err: err}
			continue
		}
		p.got <- lineResult{line: strings.TrimRight(line, "\r\n")}
	}
}

// Ask writes question and reads the answer line.
func (p *Prompter) Ask(ctx context.Context, question string) (string, error) {
	fmt.Fprint(p.w, question)
	return p.ReadLine(ctx)
}

// Confirm asks "<title>: <message> [y/N] ".
// Only y or yes (any case) confirm; anything else, including end of
// input, declines. A cancelled ctx declines and returns ctx.Err().
func (p *Prompter) Confirm(ctx context.Context, title, message string) (bool, error) {
	answer, err := p.Ask(ctx, fmt.Sprintf("%s: %s [y/N] ", title, message))
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(p.w)
		return false, nil
	}
	if ctx.Err() != nil && err != nil {
		fmt.Fprintln(p.w)
		return false, err
	}
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
