/*
Copyright © 2025 profilekit authors
SPDX-License-Identifier: Apache-2.0
*/

package deployer

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/wait"
	"k8s.io/utils/ptr"

	"github.com/profilekit/profilectl/pkg/defaults"
	"github.com/profilekit/profilectl/pkg/errors"
	"github.com/profilekit/profilectl/pkg/k8s/client"
)

// logTailLines bounds the log sample pulled during verification.
const logTailLines = int64(20)

// verify confirms the deployed workload is actually up: app pods reach
// Running with Ready=true, and the namespace carries the generated
// NetworkPolicy objects.
func (d *Deployer) verify(ctx context.Context, namespace, appName string) (*VerifyReport, error) {
	if d.clientset == nil {
		clientset, _, err := client.Build(d.config.Kubeconfig)
		if err != nil {
			return nil, err
		}
		d.clientset = clientset
	}

	selector := fmt.Sprintf("app=%s", appName)
	report := &VerifyReport{}

	err := wait.PollUntilContextTimeout(ctx,
		defaults.PodReadyPollInterval, defaults.PodReadyTimeout, true,
		func(ctx context.Context) (bool, error) {
			pods, err := d.clientset.CoreV1().Pods(namespace).List(ctx,
				metav1.ListOptions{LabelSelector: selector})
			if err != nil {
				return false, err
			}
			if len(pods.Items) == 0 {
				return false, nil
			}

			ready := 0
			for _, pod := range pods.Items {
				if pod.Status.Phase == corev1.PodRunning && podReady(pod) {
					ready++
				}
			}
			if ready < len(pods.Items) {
				return false, nil
			}

			report.ReadyPods = ready
			return true, nil
		})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeTimeout,
			fmt.Sprintf("pods with %s never became ready in %s", selector, namespace), err)
	}

	inspectCtx, cancel := context.WithTimeout(ctx, defaults.VerifyTimeout)
	defer cancel()

	policies, err := d.clientset.NetworkingV1().NetworkPolicies(namespace).List(inspectCtx, metav1.ListOptions{})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal,
			"failed to list network policies", err)
	}
	for _, policy := range policies.Items {
		report.Policies = append(report.Policies, policy.Name)
	}

	report.LogSample = d.sampleLogs(inspectCtx, namespace, selector)

	slog.Debug("deployment verified",
		"namespace", namespace,
		"ready_pods", report.ReadyPods,
		"policies", len(report.Policies),
	)

	return report, nil
}

// sampleLogs tails the first app pod's log. Verification does not fail
// on log errors; the sample is informational.
func (d *Deployer) sampleLogs(ctx context.Context, namespace, selector string) string {
	pods, err := d.clientset.CoreV1().Pods(namespace).List(ctx,
		metav1.ListOptions{LabelSelector: selector})
	if err != nil || len(pods.Items) == 0 {
		return ""
	}

	req := d.clientset.CoreV1().Pods(namespace).GetLogs(pods.Items[0].Name,
		&corev1.PodLogOptions{TailLines: ptr.To(logTailLines)})
	stream, err := req.Stream(ctx)
	if err != nil {
		slog.Debug("log sampling skipped", "error", err)
		return ""
	}
	defer stream.Close()

	content, err := io.ReadAll(stream)
	if err != nil {
		return ""
	}
	return string(content)
}

func podReady(pod corev1.Pod) bool {
	for _, cond := range pod.Status.Conditions {
		if cond.Type == corev1.PodReady {
			return cond.Status == corev1.ConditionTrue
		}
	}
	return false
}
