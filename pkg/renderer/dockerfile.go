/*
Copyright © 2025 profilekit authors
SPDX-License-Identifier: Apache-2.0
*/

package renderer

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/profilekit/profilectl/pkg/profile"
)

//go:embed templates/Dockerfile.tmpl
var dockerfileTemplate string

// dockerfileData is the template input for the generated Dockerfile.
type dockerfileData struct {
	BaseImage string
	Packages  []string
	// CommandJSON is the JSON-encoded exec form of the entry command.
	CommandJSON string
}

// generateDockerfile writes the container build file. The package list
// is installed in a single step (an empty list is tolerated by apt-get)
// and the package-manager cache is cleared in the same layer.
func (r *Renderer) generateDockerfile(ctx context.Context, prof *profile.Profile, dir string) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	baseImage, err := prof.BaseImage()
	if err != nil {
		return "", 0, err
	}

	commandJSON, err := json.Marshal(prof.EntryCommand())
	if err != nil {
		return "", 0, fmt.Errorf("failed to encode entry command: %w", err)
	}

	tmpl, err := template.New("Dockerfile").Parse(dockerfileTemplate)
	if err != nil {
		return "", 0, fmt.Errorf("failed to parse Dockerfile template: %w", err)
	}

	var buf strings.Builder
	err = tmpl.Execute(&buf, dockerfileData{
		BaseImage:   baseImage,
		Packages:    prof.Packages,
		CommandJSON: string(commandJSON),
	})
	if err != nil {
		return "", 0, fmt.Errorf("failed to render Dockerfile: %w", err)
	}

	return writeArtifact(filepath.Join(dir, "Dockerfile"), []byte(buf.String()))
}
