/*
Copyright © 2025 profilekit authors
SPDX-License-Identifier: Apache-2.0
*/

package toolchain

import (
	"context"
	"log/slog"

	"github.com/profilekit/profilectl/pkg/defaults"
)

// Kubectl wraps the kubectl CLI invocations the pipeline needs.
type Kubectl struct {
	runner Runner
}

// NewKubectl creates a Kubectl wrapper over the given runner.
func NewKubectl(runner Runner) *Kubectl {
	return &Kubectl{runner: runner}
}

// DeleteNamespace deletes the namespace and waits for it to be gone so
// a following install starts from a clean slate. A missing namespace
// is not an error.
func (k *Kubectl) DeleteNamespace(ctx context.Context, namespace string) error {
	output, err := k.runner.Run(ctx, Command{
		Tool: "kubectl",
		Args: []string{
			"delete", "namespace", namespace,
			"--ignore-not-found",
			"--wait",
		},
		Timeout: defaults.NamespaceDeleteTimeout,
	})
	if err != nil {
		slog.Debug("namespace delete failed", "namespace", namespace, "output", output)
	}
	return err
}
