/*
Copyright © 2025 profilekit authors
SPDX-License-Identifier: Apache-2.0
*/

// Package renderer generates deployment artifacts from a profile: a
// Dockerfile for the workload image and a complete Helm chart with
// namespace, deployment, service, and network policy templates.
//
// Rendering is deterministic. A given profile always produces
// byte-identical artifacts, so generated output can be diffed and
// committed. The image repository in values.yaml carries the
// YOUR_DOCKERHUB_USERNAME placeholder until the deployer substitutes
// the real registry user.
//
// Usage:
//
//	r := renderer.New(renderer.WithStrictRules(true))
//	result, err := r.Render(ctx, prof, "./generated")
//	if err != nil {
//		return err
//	}
//	fmt.Println(result.Summary())
//
// Network policies are the one templated-by-Go part of the chart: the
// rule set in the profile determines the document structure, so the
// policy manifest is built from typed structs rather than a static
// Helm template. All other templates are static files that defer to
// values.yaml through Helm's own templating.
package renderer
