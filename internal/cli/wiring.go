package cli

import (
	"fmt"

	"github.com/ralt/drivermgr/internal/driver"
	"github.com/ralt/drivermgr/internal/install"
	"github.com/ralt/drivermgr/internal/models"
	"github.com/ralt/drivermgr/internal/oracle"
	"github.com/ralt/drivermgr/internal/osinfo"
	"github.com/ralt/drivermgr/internal/query"
	"github.com/ralt/drivermgr/internal/repo"
	"github.com/ralt/drivermgr/internal/shell"
	"github.com/ralt/drivermgr/internal/verify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// deviceFlags binds the flags that describe one device
type deviceFlags struct {
	dev   models.Device
	class string
}

func addDeviceFlags(cmd *cobra.Command, f *deviceFlags) {
	cmd.Flags().StringVar(&f.class, "class", "", "Device class (printer, scanner, gpu, network, sound, wifi, other)")
	cmd.Flags().StringVar(&f.dev.Name, "name", "", "Device name used in output")
	cmd.Flags().StringVar(&f.dev.VendorName, "vendor", "", "Vendor name (printers)")
	cmd.Flags().StringVar(&f.dev.ModelName, "model", "", "Model description (printers)")
	cmd.Flags().StringVar(&f.dev.VendorID, "vendor-id", "", "Vendor ID (board devices)")
	cmd.Flags().StringVar(&f.dev.ModelID, "model-id", "", "Model ID (board devices)")
	cmd.Flags().IntVar(&f.dev.ClassP, "class-p", 0, "Parent class code")
	cmd.Flags().IntVar(&f.dev.ClassCode, "class-code", 0, "Class code")
	cmd.Flags().StringVar(&f.dev.DriverName, "driver", "", "Driver currently bound to the device")
	cmd.MarkFlagRequired("class")
}

func (f *deviceFlags) device() (models.Device, error) {
	class, err := models.ParseDriverClass(f.class)
	if err != nil {
		return models.Device{}, &models.DriverError{Type: models.ErrInvalidConfig, Err: err}
	}
	dev := f.dev
	dev.Class = class
	return dev, nil
}

func (o *globalOptions) host() (models.Host, error) {
	host, err := osinfo.DetectHost(o.cfg.OSVersionFile, osinfo.Overrides{
		Arch:        o.cfg.Arch,
		UosType:     o.cfg.UosType,
		EditionType: o.cfg.EditionType,
	})
	if err != nil {
		return models.Host{}, &models.DriverError{Type: models.ErrFileOp, Err: err}
	}
	return host, nil
}

func (o *globalOptions) builder() (*query.Builder, error) {
	if o.cfg.RepositoryURL == "" {
		return nil, &models.DriverError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("repository URL is required (--repo-url or repository_url in config)"),
		}
	}

	host, err := o.host()
	if err != nil {
		return nil, err
	}
	return query.NewBuilder(o.cfg.RepositoryURL, host), nil
}

func (o *globalOptions) oracle() *oracle.AptPolicy {
	// Already validated in PersistentPreRunE
	compare, _ := oracle.ComparatorFor(o.cfg.VersionCompare)
	if !shell.IsCommandExist("apt") {
		logrus.Warn("apt not found, installed versions will be reported as missing")
	}
	return oracle.NewAptPolicy(o.run, compare)
}

func (o *globalOptions) client() *repo.Client {
	return repo.NewClient(repo.NewLimiter(o.cfg.RequestRate))
}

func (o *globalOptions) service() (*driver.Service, *query.Builder, error) {
	b, err := o.builder()
	if err != nil {
		return nil, nil, err
	}
	return driver.NewService(b, o.client(), o.oracle(), o.cfg.Timeout), b, nil
}

func (o *globalOptions) installer(sha256 string, dryRun bool) (*install.Installer, error) {
	var v verify.Verifier
	if o.cfg.Keyring != "" {
		gv, err := verify.NewGPGVerifier(o.cfg.Keyring)
		if err != nil {
			return nil, &models.DriverError{Type: models.ErrInvalidConfig, Err: err}
		}
		logrus.Info("Signature verification enabled")
		v = gv
	}

	return install.NewInstaller(o.client(), v, o.run, install.Options{
		CacheDir:  o.cfg.CacheDir,
		BackupDir: o.cfg.BackupDir,
		SHA256:    sha256,
		DryRun:    dryRun,
	}), nil
}
