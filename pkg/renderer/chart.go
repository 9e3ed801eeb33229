/*
Copyright © 2025 profilekit authors
SPDX-License-Identifier: Apache-2.0
*/

package renderer

import (
	"context"
	"fmt"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/profilekit/profilectl/pkg/profile"
)

// PlaceholderRegistryUser is the registry-username token written into
// values.yaml. It must be substituted exactly once before the chart is
// usable; the deployer performs the substitution as a typed step, never
// a textual find-replace.
const PlaceholderRegistryUser = "YOUR_DOCKERHUB_USERNAME"

// chartAPIVersion is the Helm chart API version for generated charts.
const chartAPIVersion = "v2"

// ChartMetadata is the Chart.yaml document for the generated chart.
type ChartMetadata struct {
	APIVersion  string `yaml:"apiVersion"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Type        string `yaml:"type"`
	Version     string `yaml:"version"`
	AppVersion  string `yaml:"appVersion"`
}

// Values is the typed values.yaml document for the generated chart.
// The deployer reloads this struct to perform registry-user
// substitution, so the YAML shape must round-trip.
type Values struct {
	ReplicaCount int           `yaml:"replicaCount"`
	Image        ImageValues   `yaml:"image"`
	Namespace    string        `yaml:"namespace"`
	Service      ServiceValues `yaml:"service"`
	App          AppValues     `yaml:"app"`
}

// ImageValues configures the workload image in values.yaml.
type ImageValues struct {
	Repository string `yaml:"repository"`
	Tag        string `yaml:"tag"`
	PullPolicy string `yaml:"pullPolicy"`
}

// ServiceValues configures the Service in values.yaml.
type ServiceValues struct {
	Type string `yaml:"type"`
	Port int    `yaml:"port"`
}

// AppValues configures workload identity and entry command in values.yaml.
type AppValues struct {
	Name    string   `yaml:"name"`
	Command []string `yaml:"command"`
}

// NewChartMetadata builds the Chart.yaml content from a profile.
func NewChartMetadata(prof *profile.Profile) (*ChartMetadata, error) {
	name, err := prof.Name()
	if err != nil {
		return nil, err
	}
	version, err := prof.Version()
	if err != nil {
		return nil, err
	}

	return &ChartMetadata{
		APIVersion:  chartAPIVersion,
		Name:        name,
		Description: fmt.Sprintf("Auto-generated chart for profile %s", name),
		Type:        "application",
		Version:     version,
		AppVersion:  version,
	}, nil
}

// NewValues builds the values.yaml content from a profile. The image
// repository carries the registry-user placeholder.
func NewValues(prof *profile.Profile) (*Values, error) {
	name, err := prof.Name()
	if err != nil {
		return nil, err
	}
	tag, err := prof.ImageTag()
	if err != nil {
		return nil, err
	}

	return &Values{
		ReplicaCount: prof.ReplicaCount(),
		Image: ImageValues{
			Repository: fmt.Sprintf("%s/%s", PlaceholderRegistryUser, name),
			Tag:        tag,
			PullPolicy: profile.DefaultPullPolicy,
		},
		Namespace: name,
		Service: ServiceValues{
			Type: prof.ServiceType(),
			Port: prof.ServicePort(),
		},
		App: AppValues{
			Name:    name,
			Command: prof.EntryCommand(),
		},
	}, nil
}

// generateChartYAML writes helm/Chart.yaml.
func (r *Renderer) generateChartYAML(ctx context.Context, prof *profile.Profile, chartDir string) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	meta, err := NewChartMetadata(prof)
	if err != nil {
		return "", 0, err
	}

	content, err := yaml.Marshal(meta)
	if err != nil {
		return "", 0, fmt.Errorf("failed to marshal Chart.yaml: %w", err)
	}

	return writeArtifact(filepath.Join(chartDir, "Chart.yaml"), content)
}

// generateValuesYAML writes helm/values.yaml.
func (r *Renderer) generateValuesYAML(ctx context.Context, prof *profile.Profile, chartDir string) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	values, err := NewValues(prof)
	if err != nil {
		return "", 0, err
	}

	content, err := yaml.Marshal(values)
	if err != nil {
		return "", 0, fmt.Errorf("failed to marshal values.yaml: %w", err)
	}

	return writeArtifact(filepath.Join(chartDir, "values.yaml"), content)
}
