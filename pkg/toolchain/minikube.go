/*
Copyright © 2025 profilekit authors
SPDX-License-Identifier: Apache-2.0
*/

package toolchain

import (
	"context"
	"log/slog"
	"strings"

	"github.com/profilekit/profilectl/pkg/defaults"
	"github.com/profilekit/profilectl/pkg/errors"
)

// Minikube wraps the minikube CLI invocations the pipeline needs.
type Minikube struct {
	runner Runner
}

// NewMinikube creates a Minikube wrapper over the given runner.
func NewMinikube(runner Runner) *Minikube {
	return &Minikube{runner: runner}
}

// IsRunning reports whether the minikube cluster is up. A non-running
// cluster makes `minikube status` exit non-zero, so a tool failure
// here means "not running", not a broken install.
func (m *Minikube) IsRunning(ctx context.Context) (bool, error) {
	output, err := m.runner.Run(ctx, Command{
		Tool:    "minikube",
		Args:    []string{"status", "--format", "{{.Host}}"},
		Timeout: defaults.ToolProbeTimeout,
	})
	if err != nil {
		if errors.CodeOf(err) == errors.ErrCodeToolFailed {
			return false, nil
		}
		return false, err
	}
	return strings.TrimSpace(output) == "Running", nil
}

// Start brings the minikube cluster up with the docker driver.
func (m *Minikube) Start(ctx context.Context) error {
	slog.Info("starting minikube cluster")

	_, err := m.runner.Run(ctx, Command{
		Tool:    "minikube",
		Args:    []string{"start", "--driver=docker"},
		Timeout: defaults.MinikubeStartTimeout,
	})
	return err
}
