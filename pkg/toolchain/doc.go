/*
Copyright © 2025 profilekit authors
SPDX-License-Identifier: Apache-2.0
*/

// Package toolchain shells out to the external tools the deployment
// pipeline depends on: docker, kubectl, helm, and minikube.
//
// All invocations go through the Runner interface so the pipeline can
// be exercised in tests without any of the tools installed. ExecRunner
// is the real implementation; it resolves tools from PATH, bounds each
// invocation with a timeout, and returns structured TOOL_MISSING or
// TOOL_FAILED errors carrying the trailing command output.
package toolchain
