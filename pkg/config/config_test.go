// pkg/config/config_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: temp dirs only
// PURPOSE: Verify layered config loading: defaults < file < environment

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "#Ansible: ", cfg.Marker)
	assert.Equal(t, "crontab", cfg.Crontab.Bin)
	assert.Equal(t, "", cfg.Backup.Dir)
}

func TestLoadNoFileUsesDefaults(t *testing.T) {
	cfg, err := Load([]string{filepath.Join(t.TempDir(), "missing.toml")})
	require.NoError(t, err)

	assert.Equal(t, "#Ansible: ", cfg.Marker)
	assert.Equal(t, "crontab", cfg.Crontab.Bin)
}

func TestLoadTOMLFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cronset.toml")
	content := "marker = \"#Managed: \"\n\n[crontab]\nbin = \"/usr/bin/crontab\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load([]string{path})
	require.NoError(t, err)

	assert.Equal(t, "#Managed: ", cfg.Marker)
	assert.Equal(t, "/usr/bin/crontab", cfg.Crontab.Bin)
	// Untouched key keeps its default
	assert.Equal(t, "", cfg.Backup.Dir)
}

func TestLoadYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cronset.yaml")
	content := "crontab:\n  bin: fcrontab\nbackup:\n  dir: /var/backups\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load([]string{path})
	require.NoError(t, err)

	assert.Equal(t, "fcrontab", cfg.Crontab.Bin)
	assert.Equal(t, "/var/backups", cfg.Backup.Dir)
}

func TestLoadFirstExistingFileWins(t *testing.T) {
	dir := t.TempDir()
	tomlPath := filepath.Join(dir, "cronset.toml")
	yamlPath := filepath.Join(dir, "cronset.yaml")
	require.NoError(t, os.WriteFile(tomlPath, []byte("[crontab]\nbin = \"from-toml\"\n"), 0644))
	require.NoError(t, os.WriteFile(yamlPath, []byte("crontab:\n  bin: from-yaml\n"), 0644))

	cfg, err := Load([]string{tomlPath, yamlPath})
	require.NoError(t, err)

	assert.Equal(t, "from-toml", cfg.Crontab.Bin)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cronset.toml")
	require.NoError(t, os.WriteFile(path, []byte("[crontab]\nbin = \"from-file\"\n"), 0644))

	t.Setenv("CRONSET_CRONTAB_BIN", "from-env")

	cfg, err := Load([]string{path})
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Crontab.Bin)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cronset.toml")
	require.NoError(t, os.WriteFile(path, []byte("marker = [unclosed"), 0644))

	_, err := Load([]string{path})
	require.Error(t, err)
}

func TestDefaultContent(t *testing.T) {
	content := DefaultContent()

	assert.Contains(t, content, "marker = \"#Ansible: \"")
	assert.Contains(t, content, "[crontab]")
	assert.Contains(t, content, "[backup]")
}
