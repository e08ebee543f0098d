package ffmpeg

import (
	"fmt"
	"strings"
)

// ExitError reports a tool that ran to completion with an exit status the
// caller does not accept.
type ExitError struct {
	Tool   string
	Code   int
	Output string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with code %d", e.Tool, e.Code)
}

// Tail returns at most the last n non-empty lines of the captured output.
func (e *ExitError) Tail(n int) []string {
	return tailLines(e.Output, n)
}

func tailLines(s string, n int) []string {
	s = strings.TrimSpace(s)
	if s == "" || n <= 0 {
		return nil
	}
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}
