/*
Copyright © 2025 profilekit authors
SPDX-License-Identifier: Apache-2.0
*/

package deployer

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/profilekit/profilectl/pkg/k8s/client"
	"github.com/profilekit/profilectl/pkg/profile"
	"github.com/profilekit/profilectl/pkg/renderer"
	"github.com/profilekit/profilectl/pkg/toolchain"
)

// Deployer drives the end-to-end pipeline: render, substitute, build,
// push, install, verify.
type Deployer struct {
	config      Config
	runner      toolchain.Runner
	clientset   client.Interface
	settleDelay time.Duration
}

// New creates a deployer for the given config.
func New(config Config, opts ...Option) *Deployer {
	d := &Deployer{
		config:      config,
		runner:      toolchain.NewExecRunner(),
		settleDelay: defaultSettleDelay,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Deploy runs the full pipeline and returns the run summary. The first
// failing step aborts the run; everything before it has already taken
// effect (this pipeline is not transactional).
func (d *Deployer) Deploy(ctx context.Context) (*Result, error) {
	start := time.Now()

	result, err := d.deploy(ctx)
	if err != nil {
		deploysTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	result.Duration = time.Since(start)
	deploysTotal.WithLabelValues("success").Inc()

	slog.Info("deployment complete",
		"run_id", result.RunID,
		"image", result.ImageRef,
		"namespace", result.Namespace,
		"duration", result.Duration,
	)

	return result, nil
}

func (d *Deployer) deploy(ctx context.Context) (*Result, error) {
	if err := d.config.Validate(); err != nil {
		return nil, err
	}

	result := &Result{RunID: uuid.NewString()}
	logger := slog.With("run_id", result.RunID)

	step := func(name string, fn func() error) error {
		stepStart := time.Now()
		logger.Info("step started", "step", name)

		err := fn()
		elapsed := time.Since(stepStart)
		deployStepDuration.WithLabelValues(name).Observe(elapsed.Seconds())
		if err != nil {
			logger.Error("step failed", "step", name, "duration", elapsed, "error", err)
			return err
		}

		result.Steps = append(result.Steps, Step{Name: name, Duration: elapsed})
		logger.Info("step finished", "step", name, "duration", elapsed)
		return nil
	}

	if err := step("prerequisites", func() error {
		return toolchain.VerifyPrerequisites(ctx, d.runner)
	}); err != nil {
		return nil, err
	}

	var prof *profile.Profile
	if err := step("render", func() error {
		var err error
		prof, err = profile.Load(d.config.ProfilePath)
		if err != nil {
			return err
		}
		r := renderer.New(renderer.WithStrictRules(d.config.StrictRules))
		result.Render, err = r.Render(ctx, prof, d.config.OutputDir)
		return err
	}); err != nil {
		return nil, err
	}

	name, err := prof.Name()
	if err != nil {
		return nil, err
	}
	result.Release = name
	result.Namespace = result.Render.Namespace

	if err := step("substitute", func() error {
		valuesPath := filepath.Join(d.config.OutputDir, "helm", "values.yaml")
		values, err := SubstituteRegistryUser(valuesPath, d.config.RegistryUser)
		if err != nil {
			return err
		}
		result.ImageRef = ImageReference(values)
		return nil
	}); err != nil {
		return nil, err
	}

	if !d.config.SkipCluster {
		if err := step("cluster", func() error {
			minikube := toolchain.NewMinikube(d.runner)
			running, err := minikube.IsRunning(ctx)
			if err != nil {
				return err
			}
			if running {
				logger.Debug("cluster already running")
				return nil
			}
			return minikube.Start(ctx)
		}); err != nil {
			return nil, err
		}
	}

	docker := toolchain.NewDocker(d.runner)
	if err := step("build", func() error {
		return docker.Build(ctx, result.ImageRef, d.config.OutputDir)
	}); err != nil {
		return nil, err
	}

	if !d.config.SkipPush {
		if err := step("push", func() error {
			return docker.Push(ctx, result.ImageRef)
		}); err != nil {
			return nil, err
		}
	}

	chartDir := filepath.Join(d.config.OutputDir, "helm")
	if err := step("install", func() error {
		helm := toolchain.NewHelm(d.runner)
		kubectl := toolchain.NewKubectl(d.runner)

		// Clean slate: a previous release in a half-deleted namespace
		// makes helm install fail in confusing ways.
		if err := helm.Uninstall(ctx, result.Release, result.Namespace); err != nil {
			return err
		}
		if err := kubectl.DeleteNamespace(ctx, result.Namespace); err != nil {
			return err
		}
		if d.settleDelay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(d.settleDelay):
			}
		}

		return helm.Install(ctx, result.Release, chartDir, result.Namespace)
	}); err != nil {
		return nil, err
	}

	if err := step("verify", func() error {
		report, err := d.verify(ctx, result.Namespace, result.Release)
		if err != nil {
			return err
		}
		result.Verification = report
		return nil
	}); err != nil {
		return nil, err
	}

	return result, nil
}
