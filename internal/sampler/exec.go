package sampler

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

var (
	// ErrCommandNotFound means the query tool is not installed.
	ErrCommandNotFound = errors.New("command not found")
	// ErrNoSensor means the host exposes no matching sensor.
	ErrNoSensor = errors.New("no sensor")
)

// runCmd runs name with a hard timeout. Output is returned even on a
// non-zero exit so callers can inspect tool diagnostics.
func runCmd(ctx context.Context, timeout time.Duration, name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	cmd := exec.CommandContext(ctx, name, args...)
	// children that inherit the output pipe must not outlive the timeout
	cmd.WaitDelay = timeout
	out, err := cmd.CombinedOutput()
	if ctx.Err() == context.DeadlineExceeded {
		return "", fmt.Errorf("%s: timed out after %s", name, timeout)
	}
	if errors.Is(err, exec.ErrNotFound) {
		return "", fmt.Errorf("%w: %s", ErrCommandNotFound, name)
	}
	if err != nil {
		return string(out), fmt.Errorf("%s: %w", name, err)
	}
	return string(out), nil
}
