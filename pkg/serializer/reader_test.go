package serializer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/profilekit/profilectl/pkg/errors"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{path: "out.json", want: FormatJSON},
		{path: "out.yaml", want: FormatYAML},
		{path: "out.YML", want: FormatYAML},
		{path: "out.txt", want: FormatTable},
		{path: "out.bin", want: FormatYAML},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFromPath(tt.path))
		})
	}
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: worker\nport: 80\n"), 0600))

	got, err := FromFile[sample](path)
	require.NoError(t, err)
	assert.Equal(t, "worker", got.Name)
	assert.Equal(t, 80, got.Port)
}

func TestFromFileMissing(t *testing.T) {
	_, err := FromFile[sample](filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	var se *apperrors.StructuredError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, apperrors.ErrCodeNotFound, se.Code)
}

func TestFromFileMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: [unclosed\n"), 0600))

	_, err := FromFile[sample](path)
	require.Error(t, err)

	var se *apperrors.StructuredError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, apperrors.ErrCodeInvalidRequest, se.Code)
}
