// pkg/commands/genconfig/genconfig_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: temp directories, environment overrides
// PURPOSE: Verify config generation, effective rendering and write mode

package genconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/djatlantic/cronset/pkg/commands/genconfig"
	"github.com/djatlantic/cronset/pkg/paths"
)

func TestGenConfigReturnsDefaults(t *testing.T) {
	result, err := genconfig.GenConfig(genconfig.Options{})
	require.NoError(t, err)

	assert.Contains(t, result.ConfigContent, `marker = "#Ansible: "`)
	assert.Contains(t, result.ConfigContent, "[crontab]")
	assert.Empty(t, result.FilesWritten)
}

func TestGenConfigEffective(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "cronset.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("marker = \"#Managed: \"\n"), 0644))

	result, err := genconfig.GenConfig(genconfig.Options{
		Effective:   true,
		ConfigFiles: []string{cfgPath},
	})
	require.NoError(t, err)

	assert.Contains(t, result.ConfigContent, `marker = '#Managed: '`)
	assert.Contains(t, result.ConfigContent, "[crontab]")
}

func TestGenConfigWrite(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(paths.EnvConfigDir, dir)

	result, err := genconfig.GenConfig(genconfig.Options{Write: true})
	require.NoError(t, err)

	target := filepath.Join(dir, "cronset.toml")
	assert.Equal(t, []string{target}, result.FilesWritten)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, result.ConfigContent, string(data))
}

func TestGenConfigWriteSkipsExisting(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(paths.EnvConfigDir, dir)

	target := filepath.Join(dir, "cronset.toml")
	require.NoError(t, os.WriteFile(target, []byte("mine\n"), 0644))

	result, err := genconfig.GenConfig(genconfig.Options{Write: true})
	require.NoError(t, err)

	assert.Empty(t, result.FilesWritten)
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "mine\n", string(data))
}
