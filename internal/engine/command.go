// Package engine implements the synthesis backends and the voice-conversion
// stage used by voices. Local tools run as subprocesses; Google runs over gRPC.
package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"
)

const (
	// maxStderr bounds how much of a tool's stderr is kept in an error.
	maxStderr = 512

	// waitDelay caps how long Wait blocks on output pipes held open by
	// grandchildren after the tool itself was killed.
	waitDelay = 2 * time.Second
)

// CommandError reports a subprocess that exited unsuccessfully.
type CommandError struct {
	Command string
	Err     error
	Stderr  string
}

func (e *CommandError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("%s: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Command, e.Err, e.Stderr)
}

func (e *CommandError) Unwrap() error { return e.Err }

// runCommand executes name with args until it exits or ctx is done.
// stdin may be nil. Cancellation surfaces as the context's error.
func runCommand(ctx context.Context, stdin io.Reader, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	cmd.WaitDelay = waitDelay

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s: %w", name, ctxErr)
	}
	if err != nil {
		return &CommandError{Command: name, Err: err, Stderr: tail(stderr.String(), maxStderr)}
	}
	return nil
}

func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}

// splitCommand turns a configured command line into a program and leading args.
func splitCommand(line string) (string, []string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil, errors.New("empty command")
	}
	return fields[0], fields[1:], nil
}
