/*
Copyright © 2025 profilekit authors
SPDX-License-Identifier: Apache-2.0
*/

// Package cli defines the profilectl command line interface: the
// generate command for rendering artifacts from a profile and the
// deploy command for the end-to-end pipeline. Commands stay thin;
// the work happens in pkg/renderer and pkg/deployer.
package cli
