/*
Copyright © 2025 profilekit authors
SPDX-License-Identifier: Apache-2.0
*/

package toolchain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/profilekit/profilectl/pkg/errors"
)

func TestDockerBuild(t *testing.T) {
	runner := newFakeRunner()
	docker := NewDocker(runner)

	err := docker.Build(context.Background(), "alice/webapp:ubuntu-webapp-v1.2.0", "./generated")
	require.NoError(t, err)

	require.Len(t, runner.calls, 1)
	call := runner.calls[0]
	assert.Equal(t, "docker", call.Tool)
	assert.Equal(t, []string{"build", "-t", "alice/webapp:ubuntu-webapp-v1.2.0", "."}, call.Args)
	assert.Equal(t, "./generated", call.Dir)
}

func TestDockerPush_Failure(t *testing.T) {
	runner := newFakeRunner()
	cmd := Command{Tool: "docker", Args: []string{"push", "alice/webapp:v1"}}
	runner.errs[cmd.String()] = errors.New(errors.ErrCodeToolFailed, "denied")

	err := NewDocker(runner).Push(context.Background(), "alice/webapp:v1")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeToolFailed, errors.CodeOf(err))
}

func TestHelmInstall(t *testing.T) {
	runner := newFakeRunner()

	err := NewHelm(runner).Install(context.Background(), "webapp", "./generated/helm", "webapp")
	require.NoError(t, err)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{
		"install", "webapp", "./generated/helm",
		"--namespace", "webapp",
		"--create-namespace",
		"--wait",
	}, runner.calls[0].Args)
}

func TestHelmUninstall_MissingReleaseIgnored(t *testing.T) {
	runner := newFakeRunner()
	cmd := Command{Tool: "helm", Args: []string{"uninstall", "webapp", "--namespace", "webapp"}}
	runner.errs[cmd.String()] = errors.New(errors.ErrCodeToolFailed, "release: not found")

	err := NewHelm(runner).Uninstall(context.Background(), "webapp", "webapp")
	assert.NoError(t, err)
}

func TestKubectlDeleteNamespace(t *testing.T) {
	runner := newFakeRunner()

	err := NewKubectl(runner).DeleteNamespace(context.Background(), "webapp")
	require.NoError(t, err)

	require.Len(t, runner.calls, 1)
	assert.Contains(t, runner.calls[0].Args, "--ignore-not-found")
}

func TestMinikubeIsRunning(t *testing.T) {
	tests := []struct {
		name   string
		output string
		err    error
		want   bool
	}{
		{name: "running", output: "Running\n", want: true},
		{name: "stopped status exits non-zero",
			err:  errors.New(errors.ErrCodeToolFailed, "host is not running"),
			want: false},
		{name: "unexpected output", output: "Stopped\n", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := newFakeRunner()
			cmd := Command{Tool: "minikube", Args: []string{"status", "--format", "{{.Host}}"}}
			runner.outputs[cmd.String()] = tt.output
			if tt.err != nil {
				runner.errs[cmd.String()] = tt.err
			}

			running, err := NewMinikube(runner).IsRunning(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, running)
		})
	}
}

func TestMinikubeStart(t *testing.T) {
	runner := newFakeRunner()

	err := NewMinikube(runner).Start(context.Background())
	require.NoError(t, err)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{"start", "--driver=docker"}, runner.calls[0].Args)
}
