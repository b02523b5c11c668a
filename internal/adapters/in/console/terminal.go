// Package console adapts a line-oriented terminal to ports.Console.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"butler/internal/core/ports"
)

// Terminal reads operator answers from in and writes prompts to out.
//
// A single goroutine owns the reader and hands each line to whichever Ask is
// waiting, so a read that timed out never swallows a later answer. A prompt
// that is still unanswered is not printed again.
type Terminal struct {
	out    io.Writer
	lines  chan string
	done   chan struct{}
	logger *slog.Logger

	mu      sync.Mutex
	err     error
	pending string
}

// NewTerminal starts reading lines from in.
func NewTerminal(in io.Reader, out io.Writer, logger *slog.Logger) *Terminal {
	t := &Terminal{
		out:    out,
		lines:  make(chan string),
		done:   make(chan struct{}),
		logger: logger.With("component", "console"),
	}
	go t.read(in)
	return t
}

// Ask implements ports.Console.
func (t *Terminal) Ask(ctx context.Context, prompt string, timeout time.Duration) (string, bool, error) {
	t.show(prompt)

	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case line := <-t.lines:
		t.answered()
		return strings.TrimSpace(line), true, nil
	case <-expired:
		return "", false, nil
	case <-ctx.Done():
		return "", false, ctx.Err()
	case <-t.done:
		return "", false, t.readErr()
	}
}

func (t *Terminal) show(prompt string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.pending == prompt {
		return
	}
	if t.pending != "" {
		fmt.Fprintln(t.out)
	}
	fmt.Fprint(t.out, prompt)
	t.pending = prompt
}

func (t *Terminal) answered() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending = ""
}

func (t *Terminal) read(in io.Reader) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		t.lines <- scanner.Text()
	}

	err := scanner.Err()
	if err == nil {
		err = io.EOF
	} else {
		t.logger.Error("Console read failed", "error", err)
	}

	t.mu.Lock()
	t.err = err
	t.mu.Unlock()
	close(t.done)
}

func (t *Terminal) readErr() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

var _ ports.Console = (*Terminal)(nil)
