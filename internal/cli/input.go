package cli

import (
	"bufio"
	"context"
	"io"
)

// lineReader reads input lines in the background so that waiting for an
// answer can also observe cancellation
type lineReader struct {
	lines chan string
}

func newLineReader(ctx context.Context, r io.Reader) *lineReader {
	lr := &lineReader{lines: make(chan string)}
	go func() {
		defer close(lr.lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lr.lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return lr
}

// Next returns the next line. ok is false on end of input or cancellation.
func (lr *lineReader) Next(ctx context.Context) (line string, ok bool) {
	select {
	case <-ctx.Done():
		return "", false
	case line, ok = <-lr.lines:
		return line, ok
	}
}
