package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ralt/drivermgr/internal/models"
	"github.com/ralt/drivermgr/internal/oracle"
	"github.com/ralt/drivermgr/internal/osinfo"
	"github.com/ralt/drivermgr/internal/repo"
	"gopkg.in/yaml.v3"
)

// DefaultBackupDir holds copies of installed driver packages
const DefaultBackupDir = "/var/lib/drivermgr/backup"

// DefaultConfig returns the configuration used when no file is present
func DefaultConfig() *models.Config {
	return &models.Config{
		Timeout:        repo.DefaultTimeout,
		OSVersionFile:  osinfo.DefaultOSVersionFile,
		VersionCompare: oracle.CompareLexical,
		CacheDir:       defaultCacheDir(),
		BackupDir:      DefaultBackupDir,
		Jobs:           4,
	}
}

// DefaultPath is where LoadConfig looks when given no path
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "drivermgr", "config.yaml")
}

// LoadConfig reads the YAML file at path over the defaults. A missing file
// is not an error.
func LoadConfig(path string) (*models.Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = DefaultPath()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

func defaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "drivermgr")
	}
	return filepath.Join(os.TempDir(), "drivermgr")
}
