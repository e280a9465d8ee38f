package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// ExecRunner executes commands with os/exec, blocking until the process
// exits and capturing both output streams.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) (int, string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), stdout.String(), stderr.String(), nil
		}
		return -1, stdout.String(), stderr.String(), err
	}
	return 0, stdout.String(), stderr.String(), nil
}
