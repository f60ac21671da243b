package cli

import (
	"fmt"

	"github.com/ralt/drivermgr/internal/config"
	"github.com/ralt/drivermgr/internal/models"
	"github.com/ralt/drivermgr/internal/oracle"
	"github.com/ralt/drivermgr/internal/shell"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// globalOptions carries the settings shared by every subcommand
type globalOptions struct {
	configPath string
	flags      models.Config
	cfg        *models.Config

	// run executes external commands; tests replace it
	run shell.Runner
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(&globalOptions{run: shell.Exec})
}

func newRootCmd(opts *globalOptions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "drivermgr",
		Short: "Look up, check and install device drivers",
		Long: `Drivermgr asks a driver repository for the drivers available for a
device, picks the best candidate and compares it with what apt has
installed locally.

Supported device classes:
  - printer
  - scanner, gpu, network, sound, wifi, other (board devices)`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Setup logging
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.InfoLevel)
			}

			cfg, err := config.LoadConfig(opts.configPath)
			if err != nil {
				return &models.DriverError{Type: models.ErrInvalidConfig, Err: err}
			}
			applyFlags(cmd, cfg, &opts.flags)

			if err := validateConfig(cfg); err != nil {
				return err
			}

			logrus.Debugf("Configuration: %+v", *cfg)
			opts.cfg = cfg
			return nil
		},
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.BoolP("verbose", "v", false, "Enable verbose logging")
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to config file (default $HOME/.config/drivermgr/config.yaml)")
	flags.StringVarP(&opts.flags.RepositoryURL, "repo-url", "r", "", "Driver repository search endpoint")
	flags.DurationVar(&opts.flags.Timeout, "timeout", 0, "Lookup request timeout (default 10s)")
	flags.StringVar(&opts.flags.OSVersionFile, "os-version-file", "", "OS version file (default /etc/os-version)")
	flags.StringVar(&opts.flags.Arch, "arch", "", "Override the store architecture")
	flags.IntVar(&opts.flags.UosType, "uos-type", 0, "Override the platform type")
	flags.IntVar(&opts.flags.EditionType, "edition-type", 0, "Override the platform edition")
	flags.StringVar(&opts.flags.VersionCompare, "version-compare", "", "Installed version comparison: lexical or dpkg")
	flags.StringVar(&opts.flags.CacheDir, "cache-dir", "", "Download cache directory")
	flags.StringVar(&opts.flags.BackupDir, "backup-dir", "", "Where installed packages are copied for restore")
	flags.StringVar(&opts.flags.Keyring, "keyring", "", "OpenPGP keyring used to verify downloads")

	// Add subcommands
	rootCmd.AddCommand(newQueryCmd(opts))
	rootCmd.AddCommand(newLookupCmd(opts))
	rootCmd.AddCommand(newScanCmd(opts))
	rootCmd.AddCommand(newPolicyCmd(opts))
	rootCmd.AddCommand(newInstallCmd(opts))
	rootCmd.AddCommand(newBackupsCmd(opts))

	return rootCmd
}

// applyFlags copies explicitly set flags over the file configuration
func applyFlags(cmd *cobra.Command, cfg, flags *models.Config) {
	changed := cmd.Flags().Changed

	if changed("repo-url") {
		cfg.RepositoryURL = flags.RepositoryURL
	}
	if changed("timeout") {
		cfg.Timeout = flags.Timeout
	}
	if changed("os-version-file") {
		cfg.OSVersionFile = flags.OSVersionFile
	}
	if changed("arch") {
		cfg.Arch = flags.Arch
	}
	if changed("uos-type") {
		cfg.UosType = flags.UosType
	}
	if changed("edition-type") {
		cfg.EditionType = flags.EditionType
	}
	if changed("version-compare") {
		cfg.VersionCompare = flags.VersionCompare
	}
	if changed("cache-dir") {
		cfg.CacheDir = flags.CacheDir
	}
	if changed("backup-dir") {
		cfg.BackupDir = flags.BackupDir
	}
	if changed("keyring") {
		cfg.Keyring = flags.Keyring
	}
	if changed("jobs") {
		cfg.Jobs = flags.Jobs
	}
	if changed("request-rate") {
		cfg.RequestRate = flags.RequestRate
	}
}

func validateConfig(cfg *models.Config) error {
	if _, err := oracle.ComparatorFor(cfg.VersionCompare); err != nil {
		return &models.DriverError{Type: models.ErrInvalidConfig, Err: err}
	}

	if cfg.Timeout < 0 {
		return &models.DriverError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("timeout must not be negative"),
		}
	}

	if cfg.RequestRate < 0 {
		return &models.DriverError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("request-rate must not be negative"),
		}
	}

	// Set defaults for unset values
	if cfg.Jobs < 1 {
		cfg.Jobs = 1
	}
	if cfg.VersionCompare == "" {
		cfg.VersionCompare = oracle.CompareLexical
	}

	return nil
}
