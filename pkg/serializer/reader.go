/*
Copyright © 2025 profilekit authors
SPDX-License-Identifier: Apache-2.0
*/

package serializer

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "github.com/profilekit/profilectl/pkg/errors"
)

// FormatFromPath determines the serialization format based on file extension.
// Supported extensions:
//   - .json → FormatJSON
//   - .yaml, .yml → FormatYAML
//   - .table, .txt → FormatTable
//
// Returns FormatYAML as default for unknown extensions.
// Extension matching is case-insensitive.
func FormatFromPath(filePath string) Format {
	lowerPath := strings.ToLower(filePath)
	switch {
	case strings.HasSuffix(lowerPath, ".json"):
		return FormatJSON
	case strings.HasSuffix(lowerPath, ".yaml"), strings.HasSuffix(lowerPath, ".yml"):
		return FormatYAML
	case strings.HasSuffix(lowerPath, ".table"), strings.HasSuffix(lowerPath, ".txt"):
		return FormatTable
	default:
		slog.Debug("unknown file extension, defaulting to YAML", "filePath", filePath)
		return FormatYAML
	}
}

// FromFile reads and decodes a local YAML document into T.
//
// The file must exist and parse cleanly; both failures are returned as
// coded errors (NOT_FOUND and INVALID_REQUEST respectively) so callers
// can report them without inspecting error strings.
func FromFile[T any](path string) (*T, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(apperrors.ErrCodeNotFound,
				fmt.Sprintf("file not found: %s", path), err)
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal,
			fmt.Sprintf("failed to open %s", path), err)
	}
	defer f.Close()

	return Decode[T](f, path)
}

// Decode decodes a YAML document from r into T.
// The source argument is used only for error messages.
func Decode[T any](r io.Reader, source string) (*T, error) {
	var out T
	dec := yaml.NewDecoder(r)
	dec.KnownFields(false)
	if err := dec.Decode(&out); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("failed to parse %s", source), err)
	}
	return &out, nil
}
