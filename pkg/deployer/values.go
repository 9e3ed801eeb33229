/*
Copyright © 2025 profilekit authors
SPDX-License-Identifier: Apache-2.0
*/

package deployer

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/distribution/reference"
	"gopkg.in/yaml.v3"

	"github.com/profilekit/profilectl/pkg/errors"
	"github.com/profilekit/profilectl/pkg/renderer"
	"github.com/profilekit/profilectl/pkg/serializer"
)

// SubstituteRegistryUser rewrites values.yaml so the image repository
// carries the real registry user instead of the placeholder.
//
// The file is reloaded into the renderer's Values struct and the
// repository field replaced as a value, so the substitution cannot
// touch anything else in the document. A repository that no longer
// starts with the placeholder is rejected: substituting twice would
// silently push to the wrong repository.
func SubstituteRegistryUser(valuesPath, user string) (*renderer.Values, error) {
	values, err := serializer.FromFile[renderer.Values](valuesPath)
	if err != nil {
		return nil, err
	}

	prefix := renderer.PlaceholderRegistryUser + "/"
	if !strings.HasPrefix(values.Image.Repository, prefix) {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest,
			"values.yaml already substituted or not generated by this tool",
			map[string]any{"repository": values.Image.Repository})
	}

	values.Image.Repository = user + "/" + strings.TrimPrefix(values.Image.Repository, prefix)

	imageRef := fmt.Sprintf("%s:%s", values.Image.Repository, values.Image.Tag)
	if _, err := reference.ParseNormalizedNamed(imageRef); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("substituted image reference %q is invalid", imageRef), err)
	}

	content, err := yaml.Marshal(values)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal,
			"failed to marshal values.yaml", err)
	}
	if err := os.WriteFile(valuesPath, content, 0600); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal,
			"failed to rewrite values.yaml", err)
	}

	slog.Debug("registry user substituted",
		"path", valuesPath,
		"repository", values.Image.Repository,
	)

	return values, nil
}

// ImageReference returns the full image reference from substituted
// values.
func ImageReference(values *renderer.Values) string {
	return fmt.Sprintf("%s:%s", values.Image.Repository, values.Image.Tag)
}
