package profile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/profilekit/profilectl/pkg/errors"
)

const sampleProfile = `profile:
  name: worker
  version: "1"
os:
  distro: ubuntu
  version: "22.04"
packages:
  - curl
network:
  default_deny_ingress: true
  default_deny_egress: false
  rules:
    - direction: ingress
      protocol: TCP
      port: 9090
      from:
        namespace: monitoring
`

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad(t *testing.T) {
	prof, err := Load(writeProfile(t, sampleProfile))
	require.NoError(t, err)

	assert.Equal(t, "worker", prof.Meta.Name)
	assert.Equal(t, "1", prof.Meta.Version)
	assert.Equal(t, []string{"curl"}, prof.Packages)
	assert.True(t, prof.Network.DefaultDenyIngress)
	assert.False(t, prof.Network.DefaultDenyEgress)

	require.Len(t, prof.Network.Rules, 1)
	rule := prof.Network.Rules[0]
	assert.Equal(t, DirectionIngress, rule.Direction)
	assert.Equal(t, "TCP", rule.Protocol)
	assert.Equal(t, 9090, rule.Port)
	assert.Equal(t, "monitoring", rule.PeerNamespace())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)

	var se *apperrors.StructuredError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, apperrors.ErrCodeNotFound, se.Code)
}

func TestLoadMalformed(t *testing.T) {
	_, err := Load(writeProfile(t, "profile: [broken"))
	require.Error(t, err)

	var se *apperrors.StructuredError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, apperrors.ErrCodeInvalidRequest, se.Code)
}

func TestLoadDoesNotPreValidate(t *testing.T) {
	// Missing required fields parse fine; they fail on first access.
	prof, err := Load(writeProfile(t, "packages: [curl]\n"))
	require.NoError(t, err)

	_, err = prof.Name()
	assert.Error(t, err)
}
