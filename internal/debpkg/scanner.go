package debpkg

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"
)

// ScanDir walks dir and parses every Debian package found. Files that look
// like packages but fail to parse are logged and skipped.
func ScanDir(ctx context.Context, dir string) ([]*Package, error) {
	var packages []*Package

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if info.IsDir() {
			return nil
		}

		ok, err := IsDebFile(path)
		if err != nil {
			logrus.Warnf("Failed to inspect %s: %v", path, err)
			return nil
		}
		if !ok {
			return nil
		}

		pkg, err := ParsePackage(path)
		if err != nil {
			logrus.Warnf("Failed to parse %s: %v", path, err)
			return nil
		}

		logrus.Debugf("Found package %s %s: %s", pkg.Control.Package, pkg.Control.Version, path)
		packages = append(packages, pkg)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to scan directory: %w", err)
	}

	sort.Slice(packages, func(i, j int) bool {
		return packages[i].Control.Package < packages[j].Control.Package
	})

	logrus.Infof("Found %d packages in %s", len(packages), dir)
	return packages, nil
}
