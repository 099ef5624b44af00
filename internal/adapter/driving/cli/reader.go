package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

type lineResult struct {
	line string
	err  error
}

// LineReader presents a prompt and returns the next line typed in reply.
// Lines are read on a background goroutine so a pending question can be
// abandoned when the context is cancelled.
type LineReader struct {
	out   io.Writer
	lines chan lineResult
	done  chan struct{}
	once  sync.Once
}

// NewLineReader starts reading lines from in. Prompts are written to out.
func NewLineReader(in io.Reader, out io.Writer) *LineReader {
	lr := &LineReader{
		out:   out,
		lines: make(chan lineResult),
		done:  make(chan struct{}),
	}
	go lr.readLoop(bufio.NewReader(in))
	return lr
}

func (lr *LineReader) readLoop(r *bufio.Reader) {
	defer close(lr.lines)
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			if !lr.send(lineResult{line: strings.TrimRight(line, "\r\n")}) {
				return
			}
		}
		if err != nil {
			lr.send(lineResult{err: err})
			return
		}
	}
}

func (lr *LineReader) send(res lineResult) bool {
	select {
	case lr.lines <- res:
		return true
	case <-lr.done:
		return false
	}
}

// Ask writes prompt and blocks until a line arrives, the input ends (io.EOF)
// or ctx is cancelled. The returned line has its line terminator removed.
func (lr *LineReader) Ask(ctx context.Context, prompt string) (string, error) {
	if _, err := fmt.Fprint(lr.out, prompt); err != nil {
		return "", fmt.Errorf("write prompt: %w", err)
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-lr.lines:
		if !ok {
			return "", io.EOF
		}
		return res.line, res.err
	}
}

// Close stops the background reader. Safe to call more than once.
func (lr *LineReader) Close() {
	lr.once.Do(func() { close(lr.done) })
}
