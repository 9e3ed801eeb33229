/*
Copyright © 2025 profilekit authors
SPDX-License-Identifier: Apache-2.0
*/

package toolchain

import (
	"context"
	"log/slog"

	"github.com/profilekit/profilectl/pkg/defaults"
)

// Helm wraps the helm CLI invocations the pipeline needs.
type Helm struct {
	runner Runner
}

// NewHelm creates a Helm wrapper over the given runner.
func NewHelm(runner Runner) *Helm {
	return &Helm{runner: runner}
}

// Install installs the chart at chartDir as release into namespace,
// creating the namespace when absent.
func (h *Helm) Install(ctx context.Context, release, chartDir, namespace string) error {
	slog.Info("installing release",
		"release", release,
		"chart", chartDir,
		"namespace", namespace,
	)

	_, err := h.runner.Run(ctx, Command{
		Tool: "helm",
		Args: []string{
			"install", release, chartDir,
			"--namespace", namespace,
			"--create-namespace",
			"--wait",
		},
		Timeout: defaults.HelmInstallTimeout,
	})
	return err
}

// Uninstall removes the release from namespace. A missing release is
// not an error; reinstalls hit that case on every first run.
func (h *Helm) Uninstall(ctx context.Context, release, namespace string) error {
	output, err := h.runner.Run(ctx, Command{
		Tool:    "helm",
		Args:    []string{"uninstall", release, "--namespace", namespace},
		Timeout: defaults.HelmInstallTimeout,
	})
	if err != nil {
		slog.Debug("uninstall skipped", "release", release, "output", output)
	}
	return nil
}
