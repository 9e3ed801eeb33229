/*
Copyright © 2025 profilekit authors
SPDX-License-Identifier: Apache-2.0
*/

// Package deployer runs the end-to-end deployment pipeline for a
// profile: verify tool prerequisites, render artifacts, substitute the
// registry user into values.yaml, ensure a minikube cluster, build and
// push the image, reinstall the Helm release, and verify that pods are
// ready and the network policies landed.
//
// External tools run through toolchain.Runner and the cluster is
// reached through a kubernetes.Interface, so the whole pipeline is
// testable with a fake runner and the client-go fake clientset:
//
//	d := deployer.New(cfg,
//		deployer.WithRunner(fakeRunner),
//		deployer.WithClientset(fake.NewSimpleClientset(pod)),
//	)
//	result, err := d.Deploy(ctx)
//
// The pipeline is not transactional. A failing step aborts the run and
// leaves earlier steps in effect; rerunning is safe because the install
// step tears down the previous release first.
package deployer
