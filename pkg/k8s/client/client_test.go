/*
Copyright © 2025 profilekit authors
SPDX-License-Identifier: Apache-2.0
*/

package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/profilekit/profilectl/pkg/errors"
)

const testKubeconfig = `apiVersion: v1
kind: Config
clusters:
- cluster:
    server: https://127.0.0.1:6443
  name: test
contexts:
- context:
    cluster: test
    user: test
  name: test
current-context: test
users:
- name: test
  user:
    token: test-token
`

func writeKubeconfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, []byte(testKubeconfig), 0600))
	return path
}

func TestBuild_ExplicitPath(t *testing.T) {
	clientset, config, err := Build(writeKubeconfig(t))
	require.NoError(t, err)
	assert.NotNil(t, clientset)
	assert.Equal(t, "https://127.0.0.1:6443", config.Host)
}

func TestBuild_EnvDiscovery(t *testing.T) {
	t.Setenv("KUBECONFIG", writeKubeconfig(t))

	clientset, config, err := Build("")
	require.NoError(t, err)
	assert.NotNil(t, clientset)
	assert.Equal(t, "https://127.0.0.1:6443", config.Host)
}

func TestBuild_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, []byte("not: [valid"), 0600))

	_, _, err := Build(path)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))
}
