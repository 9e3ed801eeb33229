/*
Copyright © 2025 profilekit authors
SPDX-License-Identifier: Apache-2.0
*/

package defaults

import "time"

// External tool timeouts for orchestrated command-line invocations.
const (
	// ToolProbeTimeout bounds prerequisite version checks (docker --version, etc.).
	ToolProbeTimeout = 10 * time.Second

	// ToolProbeRetryPause paces repeated prerequisite probes, covering
	// the window where a daemon is still starting up.
	ToolProbeRetryPause = 500 * time.Millisecond

	// DockerBuildTimeout bounds docker image builds.
	DockerBuildTimeout = 10 * time.Minute

	// DockerPushTimeout bounds registry pushes.
	DockerPushTimeout = 10 * time.Minute

	// HelmInstallTimeout bounds helm install/uninstall operations.
	HelmInstallTimeout = 5 * time.Minute

	// MinikubeStartTimeout bounds cluster startup; first start pulls images.
	MinikubeStartTimeout = 10 * time.Minute

	// NamespaceDeleteTimeout bounds namespace cleanup before reinstall.
	NamespaceDeleteTimeout = 2 * time.Minute
)

// Kubernetes API timeouts for verification after deployment.
const (
	// PodReadyTimeout is the default wait for the deployed pod to become ready.
	PodReadyTimeout = 2 * time.Minute

	// PodReadyPollInterval is the polling cadence while waiting for pod readiness.
	PodReadyPollInterval = 500 * time.Millisecond

	// VerifyTimeout bounds the post-install resource inspection.
	VerifyTimeout = 30 * time.Second
)

// Deployment constants.
const (
	// ReinstallSettleDelay gives the API server time to finish deleting
	// resources from a previous release before reinstalling.
	ReinstallSettleDelay = 3 * time.Second
)
