package ports

import (
	"context"
	"time"
)

// Console is the line-oriented operator terminal.
type Console interface {
	// Ask shows prompt and waits for one line of input for at most timeout
	// (a non-positive timeout waits until ctx is done).
	//
	// Returns:
	//   - answer: the line, trimmed of surrounding whitespace
	//   - ok: false when no line arrived before the timeout
	//   - err: ctx.Err() when ctx is done, io.EOF when input is closed
	Ask(ctx context.Context, prompt string, timeout time.Duration) (answer string, ok bool, err error)
}
