package models

import "time"

// Config holds the settings shared by all commands
type Config struct {
	RepositoryURL  string        `yaml:"repository_url"`
	Timeout        time.Duration `yaml:"timeout"`
	OSVersionFile  string        `yaml:"os_version_file"`
	Arch           string        `yaml:"arch"`
	UosType        int           `yaml:"uos_type"`
	EditionType    int           `yaml:"edition_type"`
	VersionCompare string        `yaml:"version_compare"`
	CacheDir       string        `yaml:"cache_dir"`
	BackupDir      string        `yaml:"backup_dir"`
	Keyring        string        `yaml:"keyring"`
	Jobs           int           `yaml:"jobs"`
	RequestRate    float64       `yaml:"request_rate"`
}
