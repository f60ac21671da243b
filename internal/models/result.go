package models

// InstallStatus is the local package manager's view of one package version
type InstallStatus int

const (
	NotFound InstallStatus = iota
	VersionMismatch
	VersionMatch
)

// String returns the string representation of InstallStatus
func (s InstallStatus) String() string {
	switch s {
	case NotFound:
		return "not-found"
	case VersionMismatch:
		return "version-mismatch"
	case VersionMatch:
		return "version-match"
	default:
		return "unknown"
	}
}

// DriverStatus is the user-facing status of a device's driver
type DriverStatus int

const (
	StatusUnknown DriverStatus = iota
	StatusNotInstalled
	StatusCanUpdate
	StatusUpToDate
)

// String returns the string representation of DriverStatus
func (s DriverStatus) String() string {
	switch s {
	case StatusNotInstalled:
		return "not-installed"
	case StatusCanUpdate:
		return "can-update"
	case StatusUpToDate:
		return "up-to-date"
	default:
		return "unknown"
	}
}

// MarshalText lets statuses appear by name in reports
func (s DriverStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// SelectionResult is the outcome of choosing one candidate for a device
type SelectionResult struct {
	Packages      string          `json:"packages"`
	DebVersion    string          `json:"deb_version"`
	Size          string          `json:"size,omitempty"`
	Bytes         int64           `json:"bytes,omitempty"`
	Status        DriverStatus    `json:"status"`
	InstallStatus InstallStatus   `json:"-"`
	Index         int             `json:"index"`
	Candidate     DriverCandidate `json:"candidate"`
}

// Actionable reports whether the selected package should be installed or updated
func (r *SelectionResult) Actionable() bool {
	return r != nil && (r.Status == StatusNotInstalled || r.Status == StatusCanUpdate)
}
