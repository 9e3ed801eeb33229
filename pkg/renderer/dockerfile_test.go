/*
Copyright © 2025 profilekit authors
SPDX-License-Identifier: Apache-2.0
*/

package renderer

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/profilekit/profilectl/pkg/profile"
)

func renderDockerfile(t *testing.T, prof *profile.Profile) string {
	t.Helper()

	dir := t.TempDir()
	path, size, err := New().generateDockerfile(context.Background(), prof, dir)
	require.NoError(t, err)
	assert.Positive(t, size)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

func TestGenerateDockerfile(t *testing.T) {
	content := renderDockerfile(t, testProfile())

	assert.True(t, strings.HasPrefix(content, "FROM ubuntu:22.04\n"))
	assert.Contains(t, content, "apt-get install -y curl iputils-ping")
	// Cache cleanup happens in the same RUN layer as the install.
	assert.Equal(t, 1, strings.Count(content, "RUN "))
	assert.Contains(t, content, "rm -rf /var/lib/apt/lists/*")
	assert.Contains(t, content,
		`CMD ["/bin/sh","-c","while true; do sleep 3600; done"]`)
}

func TestGenerateDockerfile_NoPackages(t *testing.T) {
	prof := testProfile()
	prof.Packages = nil

	content := renderDockerfile(t, prof)
	assert.Contains(t, content, "apt-get install -y &&")
}

func TestGenerateDockerfile_CustomCommand(t *testing.T) {
	prof := testProfile()
	prof.Command = []string{"/usr/bin/env", "python3", "-m", "http.server"}

	content := renderDockerfile(t, prof)
	assert.Contains(t, content,
		`CMD ["/usr/bin/env","python3","-m","http.server"]`)
}
