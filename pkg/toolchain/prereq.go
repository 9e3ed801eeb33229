/*
Copyright © 2025 profilekit authors
SPDX-License-Identifier: Apache-2.0
*/

package toolchain

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/time/rate"

	"github.com/profilekit/profilectl/pkg/defaults"
	"github.com/profilekit/profilectl/pkg/errors"
)

// probeAttempts is how often a prerequisite probe is retried before the
// tool is declared unresponsive. Daemons that are still starting up
// typically answer on the second try.
const probeAttempts = 3

// prerequisite is one tool the deployment pipeline shells out to,
// with the cheap probe that proves it actually works.
type prerequisite struct {
	tool  string
	probe []string
}

// prerequisites are the tools required for an end-to-end deployment.
// The docker probe hits the daemon, not just the binary: a present
// client with a stopped daemon is the common failure mode.
var prerequisites = []prerequisite{
	{tool: "docker", probe: []string{"info", "--format", "{{.ServerVersion}}"}},
	{tool: "kubectl", probe: []string{"version", "--client", "--output", "yaml"}},
	{tool: "helm", probe: []string{"version", "--short"}},
	{tool: "minikube", probe: []string{"version", "--short"}},
}

var titleCaser = cases.Title(language.English)

// DisplayName returns the human-facing name of a tool for log and
// error output.
func DisplayName(tool string) string {
	return titleCaser.String(tool)
}

// VerifyPrerequisites checks that every required tool is installed and
// responding. The probes run concurrently and are retried with a short
// pause; the first hard failure cancels the rest and is returned.
func VerifyPrerequisites(ctx context.Context, runner Runner) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, p := range prerequisites {
		g.Go(func() error {
			if _, err := runner.Look(p.tool); err != nil {
				return errors.Wrap(errors.ErrCodeToolMissing,
					fmt.Sprintf("%s is required but not installed", DisplayName(p.tool)), err)
			}

			cmd := Command{
				Tool:    p.tool,
				Args:    p.probe,
				Timeout: defaults.ToolProbeTimeout,
			}
			limiter := rate.NewLimiter(rate.Every(defaults.ToolProbeRetryPause), 1)
			if _, err := RunWithRetry(gctx, runner, cmd, probeAttempts, limiter); err != nil {
				return errors.Wrap(errors.ErrCodeToolFailed,
					fmt.Sprintf("%s is installed but not responding", DisplayName(p.tool)), err)
			}

			slog.Debug("prerequisite verified", "tool", p.tool)
			return nil
		})
	}

	return g.Wait()
}
