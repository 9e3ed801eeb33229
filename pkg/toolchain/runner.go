/*
Copyright © 2025 profilekit authors
SPDX-License-Identifier: Apache-2.0
*/

package toolchain

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/profilekit/profilectl/pkg/errors"
)

// Command describes a single external tool invocation.
type Command struct {
	// Tool is the executable name resolved from PATH.
	Tool string

	// Args are the command arguments.
	Args []string

	// Dir is the working directory. Empty means the current directory.
	Dir string

	// Timeout bounds the invocation. Zero means the caller's context
	// deadline applies unchanged.
	Timeout time.Duration
}

func (c Command) String() string {
	return fmt.Sprintf("%s %s", c.Tool, strings.Join(c.Args, " "))
}

// Runner executes external commands. The interface exists so the
// deployment pipeline can be tested without docker, helm, kubectl, or
// minikube installed.
type Runner interface {
	// Run executes the command and returns its combined output.
	Run(ctx context.Context, cmd Command) (string, error)

	// Look resolves the tool from PATH.
	Look(tool string) (string, error)
}

// ExecRunner runs commands through os/exec.
type ExecRunner struct{}

// NewExecRunner creates a Runner backed by os/exec.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Look resolves the tool from PATH.
func (r *ExecRunner) Look(tool string) (string, error) {
	path, err := exec.LookPath(tool)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeToolMissing,
			fmt.Sprintf("%s not found in PATH", tool), err)
	}
	return path, nil
}

// Run executes the command and returns its combined output. A non-zero
// exit is returned as a TOOL_FAILED error carrying the trailing output,
// which is where CLI tools put the reason.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (string, error) {
	path, err := r.Look(cmd.Tool)
	if err != nil {
		return "", err
	}

	if cmd.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cmd.Timeout)
		defer cancel()
	}

	start := time.Now()
	execCmd := exec.CommandContext(ctx, path, cmd.Args...)
	execCmd.Dir = cmd.Dir

	output, err := execCmd.CombinedOutput()
	slog.Debug("command finished",
		"command", cmd.String(),
		"duration", time.Since(start),
		"error", err != nil,
	)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr == context.DeadlineExceeded {
			return string(output), errors.Wrap(errors.ErrCodeTimeout,
				fmt.Sprintf("%s timed out after %v", cmd.String(), cmd.Timeout), err)
		}
		return string(output), errors.WrapWithContext(errors.ErrCodeToolFailed,
			fmt.Sprintf("%s failed", cmd.String()), err,
			map[string]any{"output": tailLines(string(output), 10)})
	}

	return string(output), nil
}

// RunWithRetry runs the command up to attempts times, pacing retries
// with the limiter so flaky daemons are not hammered. The last error
// wins; context cancellation stops the retry loop immediately.
func RunWithRetry(ctx context.Context, runner Runner, cmd Command, attempts int, limiter *rate.Limiter) (string, error) {
	if attempts < 1 {
		attempts = 1
	}

	var output string
	var err error
	for i := 0; i < attempts; i++ {
		if waitErr := limiter.Wait(ctx); waitErr != nil {
			return "", waitErr
		}

		output, err = runner.Run(ctx, cmd)
		if err == nil {
			return output, nil
		}
		if errors.CodeOf(err) == errors.ErrCodeToolMissing {
			return output, err
		}

		slog.Debug("command attempt failed",
			"command", cmd.String(),
			"attempt", i+1,
			"attempts", attempts,
		)
	}

	return output, err
}

// tailLines returns at most n trailing non-empty lines of s.
func tailLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
