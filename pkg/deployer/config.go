/*
Copyright © 2025 profilekit authors
SPDX-License-Identifier: Apache-2.0
*/

package deployer

import (
	"time"

	"github.com/profilekit/profilectl/pkg/defaults"
	"github.com/profilekit/profilectl/pkg/errors"
	"github.com/profilekit/profilectl/pkg/k8s/client"
	"github.com/profilekit/profilectl/pkg/toolchain"
)

// Config holds the inputs for an end-to-end deployment.
type Config struct {
	// ProfilePath is the profile document. Empty means profile.yaml in
	// the working directory.
	ProfilePath string

	// OutputDir is where artifacts are rendered before deployment.
	OutputDir string

	// RegistryUser replaces the registry placeholder in values.yaml and
	// prefixes the pushed image reference.
	RegistryUser string

	// Kubeconfig is the kubeconfig path used for verification. Empty
	// triggers the standard discovery chain.
	Kubeconfig string

	// SkipPush leaves the built image local. Useful with a cluster that
	// shares the host docker daemon.
	SkipPush bool

	// SkipCluster assumes a reachable cluster instead of managing
	// minikube.
	SkipCluster bool

	// StrictRules fails rendering on network rules without a peer
	// namespace.
	StrictRules bool
}

// Validate checks that the config can drive a deployment.
func (c Config) Validate() error {
	if c.RegistryUser == "" {
		return errors.New(errors.ErrCodeInvalidRequest, "registry user is required")
	}
	if c.OutputDir == "" {
		return errors.New(errors.ErrCodeInvalidRequest, "output directory is required")
	}
	return nil
}

// Option configures a Deployer.
type Option func(*Deployer)

// WithRunner injects the command runner. Tests use this to avoid
// shelling out.
func WithRunner(runner toolchain.Runner) Option {
	return func(d *Deployer) {
		d.runner = runner
	}
}

// WithClientset injects the Kubernetes client used for verification.
// Tests pass the client-go fake clientset.
func WithClientset(clientset client.Interface) Option {
	return func(d *Deployer) {
		d.clientset = clientset
	}
}

// WithSettleDelay overrides the pause between tearing down a previous
// release and reinstalling.
func WithSettleDelay(delay time.Duration) Option {
	return func(d *Deployer) {
		d.settleDelay = delay
	}
}

// defaultSettleDelay is applied when no override is given.
const defaultSettleDelay = defaults.ReinstallSettleDelay
