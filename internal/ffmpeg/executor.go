package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
)

// ExecResult holds the outcome of a single tool invocation.
type ExecResult struct {
	// ExitCode is the process exit status. It is -1 when the process could
	// not be started or did not exit normally (e.g. killed by a signal).
	ExitCode int
	// Output is the captured stdout and stderr.
	Output string
	// Err is set only when the process could not be run to a normal exit;
	// a non-zero exit status alone is reported through ExitCode.
	Err error
}

// Executor abstracts command execution for testability. argv[0] is the
// executable.
type Executor interface {
	Run(ctx context.Context, argv []string) ExecResult
}

// CommandExecutor runs argv as a subprocess. When Tee is non-nil, output is
// copied to it in real time as well as captured.
type CommandExecutor struct {
	Tee io.Writer
}

// NewCommandExecutor returns an executor that tees tool output to stderr
// when verbose is set.
func NewCommandExecutor(verbose bool) *CommandExecutor {
	if verbose {
		return &CommandExecutor{Tee: os.Stderr}
	}
	return &CommandExecutor{}
}

// Run executes argv and blocks until it exits or ctx is cancelled.
func (e *CommandExecutor) Run(ctx context.Context, argv []string) ExecResult {
	if len(argv) == 0 {
		return ExecResult{ExitCode: -1, Err: errors.New("empty command")}
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	var buf bytes.Buffer
	var w io.Writer = &buf
	if e.Tee != nil {
		w = io.MultiWriter(&buf, e.Tee)
	}
	cmd.Stdout = w
	cmd.Stderr = w

	err := cmd.Run()
	res := ExecResult{Output: buf.String()}
	if err == nil {
		return res
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		if res.ExitCode >= 0 && ctx.Err() == nil {
			return res
		}
	} else {
		res.ExitCode = -1
	}
	if ctx.Err() != nil {
		res.Err = ctx.Err()
	} else {
		res.Err = err
	}
	return res
}
