package testutil

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/djatlantic/cronset/pkg/filesystem"
	"github.com/djatlantic/cronset/pkg/types"
)

// NewMemoryFS returns a fresh in-memory types.FS plus the underlying
// afero filesystem for direct inspection in assertions.
func NewMemoryFS() (types.FS, afero.Fs) {
	mem := afero.NewMemMapFs()
	return filesystem.NewAferoFS(mem), mem
}

// WriteFile writes content through the in-memory filesystem, failing
// the test on error.
func WriteFile(t *testing.T, fs types.FS, path, content string) {
	t.Helper()
	require.NoError(t, fs.WriteFile(path, []byte(content), 0644))
}

// ReadFile reads a file through the in-memory filesystem, failing the
// test on error.
func ReadFile(t *testing.T, fs types.FS, path string) string {
	t.Helper()
	data, err := fs.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
