/*
Copyright © 2025 profilekit authors
SPDX-License-Identifier: Apache-2.0
*/

package client

import (
	"fmt"
	"os"
	"path/filepath"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"

	"github.com/profilekit/profilectl/pkg/errors"
)

// Interface aliases kubernetes.Interface so callers can accept a fake
// clientset in tests.
type Interface = kubernetes.Interface

// Build creates a Kubernetes client from the given kubeconfig path.
//
// An empty path triggers discovery: the KUBECONFIG environment
// variable, then ~/.kube/config, then in-cluster service account
// configuration.
func Build(kubeconfig string) (Interface, *rest.Config, error) {
	config, err := buildRestConfig(kubeconfig)
	if err != nil {
		return nil, nil, err
	}

	clientset, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInternal,
			"failed to create kubernetes client", err)
	}

	return clientset, config, nil
}

func buildRestConfig(kubeconfig string) (*rest.Config, error) {
	if kubeconfig == "" {
		kubeconfig = os.Getenv("KUBECONFIG")
	}
	if kubeconfig == "" {
		candidate := filepath.Join(homedir.HomeDir(), ".kube", "config")
		if _, err := os.Stat(candidate); err == nil {
			kubeconfig = candidate
		}
	}

	// No kubeconfig anywhere means we are (or should be) in-cluster.
	if kubeconfig == "" {
		config, err := rest.InClusterConfig()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeNotFound,
				"no kubeconfig found and not running in-cluster", err)
		}
		return config, nil
	}

	config, err := clientcmd.BuildConfigFromFlags("", kubeconfig)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("failed to load kubeconfig %s", kubeconfig), err)
	}
	return config, nil
}
