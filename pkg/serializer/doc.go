// Package serializer handles reading and writing structured data in
// JSON, YAML, and table formats.
//
// Writers target stdout or files and are used by the CLI to print
// render and deploy summaries. The generic FromFile reader loads YAML
// documents (profiles, chart values) into typed structs with coded
// errors for missing or malformed files.
package serializer
