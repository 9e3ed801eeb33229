// Package profile defines the declarative input document for
// profilectl and its derived naming conventions.
//
// A profile describes a target environment: the OS base image, the
// packages to install, an optional entry command, and the network
// rules to enforce around the deployed workload. The renderer consumes
// a loaded Profile to emit a Dockerfile and a Helm chart.
//
// Required fields (profile.name, profile.version, os.distro,
// os.version) are checked lazily through accessor methods rather than
// a pre-flight schema pass; Validate offers an optional stricter check
// of identifier shapes before rendering.
package profile
