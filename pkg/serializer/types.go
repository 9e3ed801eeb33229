/*
Copyright © 2025 profilekit authors
SPDX-License-Identifier: Apache-2.0
*/

package serializer

import "context"

// Serializer writes structured data to a configured destination and format.
// Close must be called to release file handles for file-backed serializers.
type Serializer interface {
	Serialize(ctx context.Context, data any) error
	Close() error
}

// Format represents the output format type.
type Format string

const (
	// FormatJSON outputs data in JSON format.
	FormatJSON Format = "json"
	// FormatYAML outputs data in YAML format.
	FormatYAML Format = "yaml"
	// FormatTable outputs data in table format.
	FormatTable Format = "table"
)

// IsUnknown reports whether the format is not one of the supported values.
func (f Format) IsUnknown() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatTable:
		return false
	default:
		return true
	}
}

// SupportedFormats returns a list of all supported output formats.
func SupportedFormats() []string {
	return []string{
		string(FormatJSON),
		string(FormatYAML),
		string(FormatTable),
	}
}
