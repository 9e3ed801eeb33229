/*
Copyright © 2025 profilekit authors
SPDX-License-Identifier: Apache-2.0
*/

package renderer

import (
	"context"
	_ "embed"
	"path/filepath"
)

// The namespace, deployment, and service manifests are written
// verbatim: every resource-specific field is a Helm template reference
// resolved at install time, so nothing in them depends on the profile.
var (
	//go:embed templates/namespace.yaml
	namespaceManifest []byte

	//go:embed templates/deployment.yaml
	deploymentManifest []byte

	//go:embed templates/service.yaml
	serviceManifest []byte
)

// generateResourceTemplates writes the three parameterized manifests
// into helm/templates/.
func (r *Renderer) generateResourceTemplates(ctx context.Context, templatesDir string) ([]string, int64, error) {
	manifests := []struct {
		name    string
		content []byte
	}{
		{name: "namespace.yaml", content: namespaceManifest},
		{name: "deployment.yaml", content: deploymentManifest},
		{name: "service.yaml", content: serviceManifest},
	}

	files := make([]string, 0, len(manifests))
	var totalSize int64

	for _, m := range manifests {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}

		path, size, err := writeArtifact(filepath.Join(templatesDir, m.name), m.content)
		if err != nil {
			return nil, 0, err
		}
		files = append(files, path)
		totalSize += size
	}

	return files, totalSize, nil
}
