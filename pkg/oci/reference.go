/*
Copyright © 2025 profilekit authors
SPDX-License-Identifier: Apache-2.0
*/

package oci

import (
	"fmt"
	"strings"

	"github.com/distribution/reference"

	apperrors "github.com/profilekit/profilectl/pkg/errors"
)

// URIScheme marks a publish target as an OCI registry reference,
// e.g. "oci://ghcr.io/org/charts/webapp:1.2.0".
const URIScheme = "oci://"

// Reference is a parsed OCI publish target.
type Reference struct {
	// Registry is the registry host, e.g. "ghcr.io" or "localhost:5000".
	Registry string

	// Repository is the repository path, e.g. "org/charts/webapp".
	Repository string

	// Tag is the artifact tag. Empty means the caller applies a default.
	Tag string
}

// IsOCITarget reports whether target carries the oci:// scheme.
func IsOCITarget(target string) bool {
	return strings.HasPrefix(target, URIScheme)
}

// ParseReference parses an oci:// target into its components, using
// docker reference normalization for validation.
func ParseReference(target string) (*Reference, error) {
	if !IsOCITarget(target) {
		return nil, apperrors.Newf(apperrors.ErrCodeInvalidRequest,
			"publish target %q must start with %s", target, URIScheme)
	}

	ref, err := reference.ParseNormalizedNamed(strings.TrimPrefix(target, URIScheme))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid OCI reference %q", target), err)
	}

	var tag string
	if tagged, ok := ref.(reference.Tagged); ok {
		tag = tagged.Tag()
	}

	return &Reference{
		Registry:   reference.Domain(ref),
		Repository: reference.Path(ref),
		Tag:        tag,
	}, nil
}

// String returns the target in oci:// form.
func (r *Reference) String() string {
	if r.Tag == "" {
		return fmt.Sprintf("%s%s/%s", URIScheme, r.Registry, r.Repository)
	}
	return fmt.Sprintf("%s%s/%s:%s", URIScheme, r.Registry, r.Repository, r.Tag)
}

// ImageReference returns the docker-style reference without the scheme.
func (r *Reference) ImageReference() string {
	if r.Tag == "" {
		return fmt.Sprintf("%s/%s", r.Registry, r.Repository)
	}
	return fmt.Sprintf("%s/%s:%s", r.Registry, r.Repository, r.Tag)
}

// WithDefaultTag returns the reference with tag applied when none was
// given in the target.
func (r *Reference) WithDefaultTag(tag string) *Reference {
	if r.Tag != "" {
		return r
	}
	return &Reference{
		Registry:   r.Registry,
		Repository: r.Repository,
		Tag:        tag,
	}
}
