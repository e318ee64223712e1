package executor

import (
	"context"
	"os"
	"os/exec"
	"time"

	"github.com/Cyclone1070/fastctx/internal/config"
)

// Result represents the outcome of a command execution.
type Result struct {
	Stdout    string
	Stderr    string
	ExitCode  int
	Truncated bool
}

// OSCommandExecutor runs read-only inspection commands with os/exec.
type OSCommandExecutor struct {
	config config.SandboxConfig
}

// NewOSCommandExecutor creates a new OSCommandExecutor with injected config.
func NewOSCommandExecutor(cfg config.SandboxConfig) *OSCommandExecutor {
	return &OSCommandExecutor{config: cfg}
}

// FindBinary returns the first candidate that resolves to an executable.
func (f *OSCommandExecutor) FindBinary(candidates ...string) (string, error) {
	for _, c := range candidates {
		if path, err := exec.LookPath(c); err == nil {
			return path, nil
		}
	}
	return "", &BinaryNotFoundError{Candidates: candidates}
}

// RunWithTimeout executes a command with a timeout and graceful shutdown.
// A non-zero exit is reported through both ExitCode and the returned error;
// output collected so far is always returned once the process has started.
func (f *OSCommandExecutor) RunWithTimeout(ctx context.Context, command []string, dir string, env []string, timeout time.Duration) (*Result, error) {
	if len(command) == 0 {
		return nil, os.ErrInvalid
	}

	grace := time.Duration(f.config.GracefulShutdownMs) * time.Millisecond
	maxBytes := int(f.config.MaxCommandOutputSize)
	stdout := newCollector(maxBytes)
	stderr := newCollector(maxBytes)

	// CommandContext is avoided so the process gets a chance to exit on interrupt.
	cmd := exec.Command(command[0], command[1:]...)
	cmd.Dir = dir
	cmd.Env = env
	cmd.Stdin = nil
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	// Orphaned children holding the pipes must not block Wait forever.
	cmd.WaitDelay = grace

	if err := cmd.Start(); err != nil {
		return nil, &CommandError{Cmd: command[0], Cause: err, Stage: "start"}
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var execErr error
	select {
	case err := <-done:
		execErr = err
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		<-done
		execErr = ctx.Err()
	case <-timer.C:
		_ = cmd.Process.Signal(os.Interrupt)
		select {
		case <-done:
		case <-time.After(grace):
			_ = cmd.Process.Kill()
			<-done
		}
		execErr = ErrTimeout
	}

	exitCode := 0
	if execErr != nil {
		exitCode = getExitCode(execErr)
		if execErr == ErrTimeout {
			exitCode = -1
		}
	}

	return &Result{
		Stdout:    stdout.String(),
		Stderr:    stderr.String(),
		ExitCode:  exitCode,
		Truncated: stdout.Truncated() || stderr.Truncated(),
	}, execErr
}

func getExitCode(err error) int {
	type exitCoder interface {
		ExitCode() int
	}
	if ec, ok := err.(exitCoder); ok {
		return ec.ExitCode()
	}
	return -1
}
