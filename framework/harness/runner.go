package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"
)

// ExitStatus is the exit code of a finished tool invocation.
type ExitStatus int

const (
	// StatusOK is the exit status of a successful run.
	StatusOK ExitStatus = 0

	// StatusCancel is the exit status that the harness interprets as a user request to stop the
	// whole run, such as the tool being interrupted with ^C.
	StatusCancel ExitStatus = 2

	// StatusNotStarted is reported when the process could not be started or did not exit normally.
	StatusNotStarted ExitStatus = -1
)

func (s ExitStatus) OK() bool { return s == StatusOK }

func (s ExitStatus) IsCancel() bool { return s == StatusCancel }

// Runner executes an Invocation synchronously and reports its exit status. A non-zero exit
// status is not an error; an error means the command could not be run at all.
type Runner interface {
	Run(ctx context.Context, inv Invocation) (ExitStatus, error)
}

// OSRunner runs invocations as subprocesses of the harness.
type OSRunner struct{}

func (OSRunner) Run(ctx context.Context, inv Invocation) (ExitStatus, error) {
	if len(inv.Argv) == 0 {
		return StatusNotStarted, errors.New("empty argv")
	}
	stdout, closeStdout, err := openRedirect(inv.Stdout)
	if err != nil {
		return StatusNotStarted, err
	}
	defer closeStdout()
	stderr, closeStderr, err := openRedirect(inv.Stderr)
	if err != nil {
		return StatusNotStarted, err
	}
	defer closeStderr()

	// #nosec G204 -- argv comes from the harness configuration, not from fixture content.
	cmd := exec.CommandContext(ctx, inv.Argv[0], inv.Argv[1:]...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	err = cmd.Run()
	if err == nil {
		return StatusOK, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return statusFromExitError(exitErr), nil
	}
	return StatusNotStarted, fmt.Errorf("run %q failed: %w", inv.Argv, err)
}

// statusFromExitError maps termination by a signal to the shell convention of 128+signal, except
// that an interrupt is reported as StatusCancel.
func statusFromExitError(exitErr *exec.ExitError) ExitStatus {
	if code := exitErr.ExitCode(); code >= 0 {
		return ExitStatus(code)
	}
	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		if ws.Signal() == syscall.SIGINT {
			return StatusCancel
		}
		return ExitStatus(128 + int(ws.Signal()))
	}
	return StatusNotStarted
}

func openRedirect(path string) (io.Writer, func(), error) {
	if path == "" {
		return io.Discard, func() {}, nil
	}
	f, err := os.Create(path) //nolint:gosec
	if err != nil {
		return nil, nil, fmt.Errorf("cannot create redirection target: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
