package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"
)

const defaultKillDelay = time.Second * 5

// Invocation describes one completed run of the binary under test. Its exit status is recorded
// for diagnostics only; whether a feature passes is decided by the files the binary produced.
type Invocation struct {
	Args     []string
	ExitCode int
	TimedOut bool
	Duration time.Duration
}

// CommandLine returns the arguments joined with spaces, as they would be typed in a shell.
func (i Invocation) CommandLine() string {
	return strings.Join(i.Args, " ")
}

// LaunchError means the binary could not be started at all. Unlike a crash or a non-zero exit,
// this is never the binary's own behavior and should abort the whole run.
type LaunchError struct {
	Path string
	Err  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("cannot launch %q: %s", e.Path, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// Invoker runs the binary under test synchronously. args[0] is the executable path.
type Invoker interface {
	Invoke(ctx context.Context, args []string, stdout io.Writer) (Invocation, error)
}

// ProcessInvoker runs the binary as a child process. If stdout is nil, the process's standard
// output is discarded; standard error is passed through to ours.
type ProcessInvoker struct {
	// Timeout is the maximum time the process may run before it is killed. Zero means no limit.
	Timeout time.Duration

	// KillDelay bounds how long we wait for the process's I/O to be released after it has been
	// killed. Zero means a default of 5 seconds.
	KillDelay time.Duration
}

func (p ProcessInvoker) Invoke(ctx context.Context, args []string, stdout io.Writer) (Invocation, error) {
	if len(args) == 0 || args[0] == "" {
		return Invocation{}, &LaunchError{Err: errors.New("no executable specified")}
	}
	inv := Invocation{Args: append([]string(nil), args...), ExitCode: -1}

	runCtx := ctx
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, args[0], args[1:]...) //nolint:gosec
	cmd.Stdout = stdout
	cmd.Stderr = os.Stderr
	cmd.WaitDelay = p.KillDelay
	if cmd.WaitDelay <= 0 {
		cmd.WaitDelay = defaultKillDelay
	}

	startTime := time.Now()
	if err := cmd.Start(); err != nil {
		return inv, &LaunchError{Path: args[0], Err: err}
	}
	waitErr := cmd.Wait()
	inv.Duration = time.Since(startTime)
	if cmd.ProcessState != nil {
		inv.ExitCode = cmd.ProcessState.ExitCode()
	}

	if err := ctx.Err(); err != nil {
		return inv, err
	}
	if p.Timeout > 0 && errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		inv.TimedOut = true
		return inv, nil
	}
	var exitErr *exec.ExitError
	if waitErr != nil && !errors.As(waitErr, &exitErr) && !errors.Is(waitErr, exec.ErrWaitDelay) {
		return inv, fmt.Errorf("error waiting for %q: %w", args[0], waitErr)
	}
	return inv, nil
}
