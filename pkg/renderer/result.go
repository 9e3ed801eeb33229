/*
Copyright © 2025 profilekit authors
SPDX-License-Identifier: Apache-2.0
*/

package renderer

import (
	"fmt"
	"time"
)

// Result summarizes a completed render: the artifacts written, their
// total size, and the follow-up steps for deploying them.
type Result struct {
	// Files contains the paths of generated files in write order.
	Files []string `json:"files" yaml:"files"`

	// TotalSize is the total size in bytes of all generated files.
	TotalSize int64 `json:"total_size_bytes" yaml:"total_size_bytes"`

	// Duration is the time taken to render all artifacts.
	Duration time.Duration `json:"duration" yaml:"duration"`

	// OutputDir is the directory artifacts were written under.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// ImageTag is the derived image tag for the generated Dockerfile.
	ImageTag string `json:"image_tag" yaml:"image_tag"`

	// Namespace is the target namespace for the generated chart.
	Namespace string `json:"namespace" yaml:"namespace"`

	// NextSteps contains ordered instructions for using the artifacts.
	NextSteps []string `json:"next_steps" yaml:"next_steps"`
}

// Summary returns a human-readable one-line summary of the render.
func (r *Result) Summary() string {
	return fmt.Sprintf("Generated %d files (%s) in %v under %s.",
		len(r.Files),
		formatBytes(r.TotalSize),
		r.Duration.Round(time.Millisecond),
		r.OutputDir,
	)
}

// formatBytes formats bytes into human-readable form.
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
