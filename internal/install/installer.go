package install

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ralt/drivermgr/internal/debpkg"
	"github.com/ralt/drivermgr/internal/models"
	"github.com/ralt/drivermgr/internal/shell"
	"github.com/ralt/drivermgr/internal/utils"
	"github.com/ralt/drivermgr/internal/verify"
	"github.com/sirupsen/logrus"
)

// Fetcher downloads repository files
type Fetcher interface {
	Get(ctx context.Context, url string, timeout time.Duration) ([]byte, error)
	Download(ctx context.Context, url, path string, timeout time.Duration) (int64, error)
}

// Options controls how packages are fetched and installed
type Options struct {
	CacheDir string
	Timeout  time.Duration
	SHA256   string
	DryRun   bool

	// BackupDir receives a copy of every package file installed; empty disables it
	BackupDir string
}

// Installer installs selected driver packages through apt-get
type Installer struct {
	fetch    Fetcher
	verifier verify.Verifier
	run      shell.Runner
	opts     Options
}

// NewInstaller creates an installer. A nil verifier skips signature checks
// and a nil runner uses shell.Exec.
func NewInstaller(fetch Fetcher, verifier verify.Verifier, run shell.Runner, opts Options) *Installer {
	if run == nil {
		run = shell.Exec
	}
	if opts.CacheDir == "" {
		opts.CacheDir = filepath.Join(os.TempDir(), "drivermgr")
	}
	return &Installer{
		fetch:    fetch,
		verifier: verifier,
		run:      run,
		opts:     opts,
	}
}

// Install installs the package chosen in res. Without a download URL the
// package is installed by name and version from the configured apt sources.
// It returns the path of the installed file, if any.
func (i *Installer) Install(ctx context.Context, res *models.SelectionResult) (string, error) {
	if res == nil || res.Packages == "" {
		return "", &models.DriverError{
			Type: models.ErrInstall,
			Err:  fmt.Errorf("nothing selected to install"),
		}
	}

	url := res.Candidate.DownloadURL
	if url == "" {
		target := res.Packages
		if res.DebVersion != "" {
			target = fmt.Sprintf("%s=%s", res.Packages, res.DebVersion)
		}
		return "", i.aptInstall(ctx, res.Packages, target)
	}

	// Step 1: Fetch into the cache
	path, err := i.download(ctx, res)
	if err != nil {
		return "", &models.DriverError{Type: models.ErrInstall, Device: res.Packages, Err: err}
	}

	// Step 2: Validate the archive against the selection
	pkg, err := i.validate(path, res.Packages, res.DebVersion)
	if err != nil {
		return path, &models.DriverError{Type: models.ErrInstall, Device: res.Packages, Err: err}
	}

	// Step 3: Check the detached signature
	if i.verifier != nil {
		if err := i.verifySignature(ctx, url, path); err != nil {
			return path, &models.DriverError{Type: models.ErrInstall, Device: res.Packages, Err: err}
		}
	}

	logrus.Infof("Installing %s %s (sha256 %s)", pkg.Control.Package, pkg.Control.Version, pkg.SHA256)
	if err := i.aptInstall(ctx, res.Packages, path); err != nil {
		return path, err
	}

	i.backup(path)
	return path, nil
}

// Restore reinstalls a backed-up package, allowing a downgrade
func (i *Installer) Restore(ctx context.Context, path string) (*debpkg.Package, error) {
	pkg, err := i.validate(path, "", "")
	if err != nil {
		return nil, &models.DriverError{Type: models.ErrInstall, Device: filepath.Base(path), Err: err}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &models.DriverError{Type: models.ErrFileOp, Err: err}
	}

	logrus.Infof("Restoring %s %s from %s", pkg.Control.Package, pkg.Control.Version, abs)
	return pkg, i.aptInstall(ctx, pkg.Control.Package, "--allow-downgrades", abs)
}

// backup copies an installed package file into BackupDir. Failures are
// logged only; the install itself already succeeded.
func (i *Installer) backup(path string) {
	if i.opts.BackupDir == "" || i.opts.DryRun {
		return
	}

	dst := filepath.Join(i.opts.BackupDir, filepath.Base(path))
	if err := utils.CopyFile(path, dst); err != nil {
		logrus.Warnf("Failed to back up %s: %v", path, err)
		return
	}
	logrus.Debugf("Backed up %s to %s", path, dst)
}

func (i *Installer) download(ctx context.Context, res *models.SelectionResult) (string, error) {
	name := res.Candidate.Deb
	if name == "" {
		name = fmt.Sprintf("%s_%s_%s.deb", res.Packages, res.DebVersion, res.Candidate.Arch)
	}
	path := filepath.Join(i.opts.CacheDir, filepath.Base(name))

	if utils.CachedFileMatches(path, res.Bytes, i.opts.SHA256) {
		logrus.Infof("Using cached %s", path)
		return path, nil
	}

	logrus.Infof("Downloading %s (%s)", res.Candidate.DownloadURL, res.Size)
	if _, err := i.fetch.Download(ctx, res.Candidate.DownloadURL, path, i.opts.Timeout); err != nil {
		return "", err
	}

	if i.opts.SHA256 != "" {
		if err := utils.VerifyChecksum(path, i.opts.SHA256); err != nil {
			return "", err
		}
	}
	return path, nil
}

func (i *Installer) validate(path, name, version string) (*debpkg.Package, error) {
	ok, err := debpkg.IsDebFile(path)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%s is not a Debian package", path)
	}

	pkg, err := debpkg.ParsePackage(path)
	if err != nil {
		return nil, err
	}

	if name != "" && pkg.Control.Package != name {
		return nil, fmt.Errorf("package name mismatch: file has %s, expected %s", pkg.Control.Package, name)
	}
	if version != "" && pkg.Control.Version != version {
		return nil, fmt.Errorf("package version mismatch: file has %s, expected %s", pkg.Control.Version, version)
	}
	return pkg, nil
}

func (i *Installer) verifySignature(ctx context.Context, url, path string) error {
	sig, err := i.fetch.Get(ctx, url+".asc", i.opts.Timeout)
	if err != nil {
		return fmt.Errorf("failed to fetch signature: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	signer, err := i.verifier.VerifyDetached(data, sig)
	if err != nil {
		return err
	}

	logrus.Infof("Signature by %s verified", signer)
	return nil
}

func (i *Installer) aptInstall(ctx context.Context, name string, args ...string) error {
	cmdArgs := append([]string{"install", "-y"}, args...)

	if i.opts.DryRun {
		logrus.Infof("Dry run: apt-get %v", cmdArgs)
		return nil
	}

	out, err := i.run(ctx, "apt-get", cmdArgs...)
	if err != nil {
		return &models.DriverError{Type: models.ErrInstall, Device: name, Err: err}
	}
	logrus.Debug(out)
	return nil
}
