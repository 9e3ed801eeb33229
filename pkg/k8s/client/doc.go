/*
Copyright © 2025 profilekit authors
SPDX-License-Identifier: Apache-2.0
*/

// Package client builds Kubernetes API clients from kubeconfig files
// or in-cluster service account credentials. The Interface alias lets
// consumers swap in the client-go fake clientset for tests.
package client
