// Package paths provides centralized path handling for cronset.
// It implements XDG Base Directory specification compliance for the
// config file, the state (log) directory and backup locations.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for cronset
	EnvConfigDir = "CRONSET_CONFIG_DIR"

	// EnvBackupDir overrides the directory backup files are written to
	EnvBackupDir = "CRONSET_BACKUP_DIR"
)

// AppDirName is the directory name used under the XDG base directories
const AppDirName = "cronset"

// Paths resolves the directories cronset reads and writes outside of
// the cron tables themselves.
type Paths struct {
	configDir string
	stateDir  string
	backupDir string
}

// New creates a Paths instance. backupDir may be empty, in which case
// the EnvBackupDir override and then the system temp dir apply.
func New(backupDir string) *Paths {
	if backupDir == "" {
		backupDir = os.Getenv(EnvBackupDir)
	}
	if backupDir == "" {
		backupDir = os.TempDir()
	}

	configDir := os.Getenv(EnvConfigDir)
	if configDir == "" {
		configDir = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	return &Paths{
		configDir: configDir,
		stateDir:  filepath.Join(xdg.StateHome, AppDirName),
		backupDir: backupDir,
	}
}

// ConfigDir returns the directory holding the cronset config file
func (p *Paths) ConfigDir() string {
	return p.configDir
}

// StateDir returns the directory for state files such as the log
func (p *Paths) StateDir() string {
	return p.stateDir
}

// BackupDir returns the directory backup files are written to
func (p *Paths) BackupDir() string {
	return p.backupDir
}

// ConfigFiles returns candidate config file paths in load order
func (p *Paths) ConfigFiles() []string {
	return []string{
		filepath.Join(p.configDir, "cronset.toml"),
		filepath.Join(p.configDir, "cronset.yaml"),
	}
}

// BackupFile returns a fresh timestamped backup file path. The name
// embeds the entry owner so concurrent backups for different users
// cannot collide.
func (p *Paths) BackupFile(owner string) string {
	if owner == "" {
		owner = "table"
	}
	name := fmt.Sprintf("cronset.%s.%d.bak", owner, time.Now().UnixNano())
	return filepath.Join(p.backupDir, name)
}
