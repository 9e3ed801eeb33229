/*
Copyright © 2025 profilekit authors
SPDX-License-Identifier: Apache-2.0
*/

package deployer

import (
	"fmt"
	"time"

	"github.com/profilekit/profilectl/pkg/renderer"
)

// Step records one completed pipeline step.
type Step struct {
	Name     string        `json:"name" yaml:"name"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// Result summarizes a completed deployment run.
type Result struct {
	// RunID uniquely identifies this deployment run in logs.
	RunID string `json:"run_id" yaml:"run_id"`

	// ImageRef is the image that was built and pushed.
	ImageRef string `json:"image_ref" yaml:"image_ref"`

	// Release is the Helm release name, equal to the profile name.
	Release string `json:"release" yaml:"release"`

	// Namespace is the namespace the release was installed into.
	Namespace string `json:"namespace" yaml:"namespace"`

	// Steps are the executed pipeline steps in order.
	Steps []Step `json:"steps" yaml:"steps"`

	// Duration is the total wall time of the run.
	Duration time.Duration `json:"duration" yaml:"duration"`

	// Render carries the artifact summary from the render step.
	Render *renderer.Result `json:"render,omitempty" yaml:"render,omitempty"`

	// Verification carries the post-install cluster checks.
	Verification *VerifyReport `json:"verification,omitempty" yaml:"verification,omitempty"`
}

// NextSteps returns follow-up commands for inspecting and cleaning up
// the deployment.
func (r *Result) NextSteps() []string {
	return []string{
		fmt.Sprintf("kubectl get all -n %s", r.Namespace),
		fmt.Sprintf("kubectl get networkpolicy -n %s", r.Namespace),
		fmt.Sprintf("kubectl logs -l app=%s -n %s", r.Release, r.Namespace),
		fmt.Sprintf("helm uninstall %s --namespace %s", r.Release, r.Namespace),
		fmt.Sprintf("kubectl delete namespace %s", r.Namespace),
	}
}

// VerifyReport describes the state of the deployment after install.
type VerifyReport struct {
	// ReadyPods counts the app pods in Running state with Ready=true.
	ReadyPods int `json:"ready_pods" yaml:"ready_pods"`

	// Policies lists the NetworkPolicy names present in the namespace.
	Policies []string `json:"policies" yaml:"policies"`

	// LogSample is a short tail of one pod's log output.
	LogSample string `json:"log_sample,omitempty" yaml:"log_sample,omitempty"`
}
