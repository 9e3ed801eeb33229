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

// Docker wraps the docker CLI invocations the pipeline needs.
type Docker struct {
	runner Runner
}

// NewDocker creates a Docker wrapper over the given runner.
func NewDocker(runner Runner) *Docker {
	return &Docker{runner: runner}
}

// Build builds the image from the Dockerfile in contextDir and tags it
// with imageRef.
func (d *Docker) Build(ctx context.Context, imageRef, contextDir string) error {
	slog.Info("building image", "image", imageRef, "context", contextDir)

	_, err := d.runner.Run(ctx, Command{
		Tool:    "docker",
		Args:    []string{"build", "-t", imageRef, "."},
		Dir:     contextDir,
		Timeout: defaults.DockerBuildTimeout,
	})
	return err
}

// Push pushes imageRef to its registry.
func (d *Docker) Push(ctx context.Context, imageRef string) error {
	slog.Info("pushing image", "image", imageRef)

	_, err := d.runner.Run(ctx, Command{
		Tool:    "docker",
		Args:    []string{"push", imageRef},
		Timeout: defaults.DockerPushTimeout,
	})
	return err
}
