/*
Copyright © 2025 profilekit authors
SPDX-License-Identifier: Apache-2.0
*/

// Package oci publishes rendered Helm charts to OCI registries.
//
// A publish target is an oci:// URI, e.g.
// "oci://ghcr.io/org/charts/webapp:1.2.0". The chart directory is
// packaged as a single reproducible tar layer inside an OCI 1.1
// artifact manifest and pushed with ORAS; registry credentials come
// from the docker credential store.
package oci
