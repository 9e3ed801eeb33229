/*
Copyright © 2025 profilekit authors
SPDX-License-Identifier: Apache-2.0
*/

package profile

import (
	"fmt"
	"log/slog"

	"github.com/distribution/reference"
	"k8s.io/apimachinery/pkg/util/validation"

	apperrors "github.com/profilekit/profilectl/pkg/errors"
	"github.com/profilekit/profilectl/pkg/serializer"
)

// DefaultPath is the profile file name looked up in the working
// directory when no path is given.
const DefaultPath = "profile.yaml"

// Load reads and parses a profile document from the given path.
// An empty path falls back to DefaultPath. A missing file or malformed
// YAML is fatal; required fields are checked lazily on first access,
// not here.
func Load(path string) (*Profile, error) {
	if path == "" {
		path = DefaultPath
	}

	prof, err := serializer.FromFile[Profile](path)
	if err != nil {
		return nil, err
	}

	slog.Debug("profile loaded",
		"path", path,
		"name", prof.Meta.Name,
		"packages", len(prof.Packages),
		"rules", len(prof.Network.Rules),
	)

	return prof, nil
}

// Validate checks that the profile produces valid identifiers for
// Kubernetes resource names and Docker image references, and that
// every network rule is well formed.
//
// This is stricter than rendering requires; malformed values would
// otherwise surface as rejected manifests downstream.
func (p *Profile) Validate() error {
	name, err := p.Name()
	if err != nil {
		return err
	}
	if msgs := validation.IsDNS1123Label(name); len(msgs) > 0 {
		return apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("profile.name %q is not a valid Kubernetes name: %s", name, msgs[0]),
			map[string]any{"name": name})
	}

	baseImage, err := p.BaseImage()
	if err != nil {
		return err
	}
	if _, err := reference.ParseNormalizedNamed(baseImage); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("base image %q is not a valid image reference", baseImage), err)
	}

	if _, err := p.Version(); err != nil {
		return err
	}

	for i, rule := range p.Network.Rules {
		if err := validateRule(i, rule); err != nil {
			return err
		}
	}

	return nil
}

func validateRule(index int, rule Rule) error {
	switch rule.Direction {
	case DirectionIngress, DirectionEgress:
	default:
		return apperrors.Newf(apperrors.ErrCodeInvalidRequest,
			"network.rules[%d]: unknown direction %q (must be %q or %q)",
			index, rule.Direction, DirectionIngress, DirectionEgress)
	}

	if rule.Protocol == "" {
		return apperrors.Newf(apperrors.ErrCodeInvalidRequest,
			"network.rules[%d]: missing protocol", index)
	}

	if msgs := validation.IsValidPortNum(rule.Port); len(msgs) > 0 {
		return apperrors.Newf(apperrors.ErrCodeInvalidRequest,
			"network.rules[%d]: invalid port %d: %s", index, rule.Port, msgs[0])
	}

	if ns := rule.PeerNamespace(); ns != "" {
		if msgs := validation.IsDNS1123Label(ns); len(msgs) > 0 {
			return apperrors.Newf(apperrors.ErrCodeInvalidRequest,
				"network.rules[%d]: peer namespace %q is not a valid Kubernetes name: %s",
				index, ns, msgs[0])
		}
	}

	return nil
}
