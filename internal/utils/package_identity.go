package utils

import (
	"fmt"

	"github.com/ralt/drivermgr/internal/models"
)

// PackageIdentity returns a unique identifier for a selected package
func PackageIdentity(res *models.SelectionResult) string {
	return fmt.Sprintf("%s:%s", res.Packages, res.DebVersion)
}

// ActionablePackages returns one selection per package identity for the
// devices whose driver can be installed or updated, in report order
func ActionablePackages(reports []models.DeviceReport) []*models.SelectionResult {
	seen := make(map[string]bool)

	var out []*models.SelectionResult
	for _, r := range reports {
		if !r.Result.Actionable() {
			continue
		}
		id := PackageIdentity(r.Result)
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, r.Result)
	}
	return out
}
