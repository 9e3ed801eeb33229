/*
Copyright © 2025 profilekit authors
SPDX-License-Identifier: Apache-2.0
*/

package renderer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/profilekit/profilectl/pkg/errors"
	"github.com/profilekit/profilectl/pkg/profile"
)

// helmDirName is the name of the chart directory under the output root.
const helmDirName = "helm"

// Option configures a Renderer.
type Option func(*Renderer)

// WithStrictRules makes rendering fail when a network rule references a
// peer namespace that is not set, instead of matching all namespaces.
func WithStrictRules(strict bool) Option {
	return func(r *Renderer) {
		r.strictRules = strict
	}
}

// Renderer generates a Dockerfile and a Helm chart from a profile.
type Renderer struct {
	strictRules bool
}

// New creates a renderer with the given options.
func New(opts ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render generates all deployment artifacts for the profile under outputDir:
// a Dockerfile at the root and a complete Helm chart under helm/. The chart
// directory layout is:
//
//	outputDir/
//	  Dockerfile
//	  helm/
//	    Chart.yaml
//	    values.yaml
//	    templates/
//	      namespace.yaml
//	      deployment.yaml
//	      service.yaml
//	      networkpolicy.yaml
//
// Rendering is deterministic: the same profile always produces byte-identical
// artifacts.
func (r *Renderer) Render(ctx context.Context, prof *profile.Profile, outputDir string) (*Result, error) {
	start := time.Now()

	result, err := r.render(ctx, prof, outputDir)
	if err != nil {
		rendersTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	result.Duration = time.Since(start)
	renderDuration.Observe(result.Duration.Seconds())
	rendersTotal.WithLabelValues("success").Inc()

	slog.Debug("artifacts rendered",
		"files", len(result.Files),
		"total_size", result.TotalSize,
		"duration", result.Duration,
	)

	return result, nil
}

func (r *Renderer) render(ctx context.Context, prof *profile.Profile, outputDir string) (*Result, error) {
	if prof == nil {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "profile is required")
	}
	if err := prof.Validate(); err != nil {
		return nil, err
	}

	chartDir := filepath.Join(outputDir, helmDirName)
	templatesDir := filepath.Join(chartDir, "templates")
	if err := os.MkdirAll(templatesDir, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal,
			"failed to create output directory", err)
	}

	result := &Result{
		Files:     make([]string, 0, 7),
		OutputDir: outputDir,
	}

	// Dockerfile
	dockerfilePath, dockerfileSize, err := r.generateDockerfile(ctx, prof, outputDir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal,
			"failed to generate Dockerfile", err)
	}
	result.Files = append(result.Files, dockerfilePath)
	result.TotalSize += dockerfileSize

	// Chart.yaml
	chartPath, chartSize, err := r.generateChartYAML(ctx, prof, chartDir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal,
			"failed to generate Chart.yaml", err)
	}
	result.Files = append(result.Files, chartPath)
	result.TotalSize += chartSize

	// values.yaml
	valuesPath, valuesSize, err := r.generateValuesYAML(ctx, prof, chartDir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal,
			"failed to generate values.yaml", err)
	}
	result.Files = append(result.Files, valuesPath)
	result.TotalSize += valuesSize

	// namespace, deployment, and service templates
	manifestPaths, manifestSize, err := r.generateResourceTemplates(ctx, templatesDir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal,
			"failed to generate resource templates", err)
	}
	result.Files = append(result.Files, manifestPaths...)
	result.TotalSize += manifestSize

	// networkpolicy.yaml
	netpolPath, netpolSize, err := r.generateNetworkPolicies(ctx, prof, templatesDir)
	if err != nil {
		return nil, err
	}
	result.Files = append(result.Files, netpolPath)
	result.TotalSize += netpolSize

	name, err := prof.Name()
	if err != nil {
		return nil, err
	}
	imageTag, err := prof.ImageTag()
	if err != nil {
		return nil, err
	}
	result.ImageTag = imageTag
	result.Namespace = name
	imageRef := fmt.Sprintf("<registry-user>/%s:%s", name, imageTag)
	result.NextSteps = []string{
		fmt.Sprintf("docker build -t %s %s", imageRef, outputDir),
		fmt.Sprintf("docker push %s", imageRef),
		fmt.Sprintf("edit %s to replace %s with your registry user",
			valuesPath, PlaceholderRegistryUser),
		fmt.Sprintf("helm install %s %s", name, chartDir),
	}

	return result, nil
}

// writeArtifact writes content to path and returns the path and byte size.
func writeArtifact(path string, content []byte) (string, int64, error) {
	if err := os.WriteFile(path, content, 0600); err != nil {
		return "", 0, errors.Wrap(errors.ErrCodeInternal,
			fmt.Sprintf("failed to write %s", filepath.Base(path)), err)
	}
	return path, int64(len(content)), nil
}
