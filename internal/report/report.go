package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ralt/drivermgr/internal/models"
	"github.com/ralt/drivermgr/internal/utils"
	"github.com/sirupsen/logrus"
)

const (
	FormatJSON    = "json"
	FormatControl = "control"
)

// Report is the result of one scan
type Report struct {
	RunID       string                `json:"run_id"`
	GeneratedAt time.Time             `json:"generated_at"`
	Host        models.Host           `json:"host"`
	Devices     []models.DeviceReport `json:"devices"`
}

// New creates a report with a fresh run ID
func New(host models.Host, devices []models.DeviceReport) *Report {
	return &Report{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Host:        host,
		Devices:     devices,
	}
}

// Render encodes the report in the named format
func Render(r *Report, format string) ([]byte, error) {
	switch format {
	case "", FormatJSON:
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatControl:
		return GenerateControl(r), nil
	default:
		return nil, fmt.Errorf("unknown report format %q", format)
	}
}

// Write renders the report and writes it to path, compressing for .gz and
// .zst suffixes
func Write(path string, r *Report, format string) error {
	data, err := Render(r, format)
	if err != nil {
		return err
	}

	data, err = utils.CompressForPath(path, data)
	if err != nil {
		return fmt.Errorf("failed to compress report: %w", err)
	}

	if err := utils.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	logrus.Infof("Report written to %s", path)
	return nil
}

// GenerateControl renders one deb822 stanza per device
func GenerateControl(r *Report) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Run-Id: %s\n", r.RunID)
	fmt.Fprintf(&buf, "Generated: %s\n", r.GeneratedAt.Format(time.RFC1123Z))
	fmt.Fprintf(&buf, "Architecture: %s\n", r.Host.Arch)
	if r.Host.OSBuild != "" {
		fmt.Fprintf(&buf, "OS-Build: %s\n", r.Host.OSBuild)
	}
	if r.Host.VersionKnown() {
		fmt.Fprintf(&buf, "OS-Version: %s.%s\n", r.Host.MajorVersion, r.Host.MinorVersion)
	}
	buf.WriteString("\n")

	for _, d := range r.Devices {
		fmt.Fprintf(&buf, "Device: %s\n", d.Device.Label())
		fmt.Fprintf(&buf, "Class: %s\n", d.Device.Class)
		fmt.Fprintf(&buf, "Outcome: %s\n", d.Outcome)

		if res := d.Result; res != nil {
			fmt.Fprintf(&buf, "Package: %s\n", res.Packages)
			fmt.Fprintf(&buf, "Version: %s\n", res.DebVersion)
			fmt.Fprintf(&buf, "Status: %s\n", res.Status)
			if res.Size != "" {
				fmt.Fprintf(&buf, "Size: %s\n", res.Size)
			}
			if res.Candidate.DownloadURL != "" {
				fmt.Fprintf(&buf, "Download-URL: %s\n", res.Candidate.DownloadURL)
			}
		}

		if d.Device.DriverName != "" {
			fmt.Fprintf(&buf, "Driver: %s\n", d.Device.DriverName)
		}
		if d.Error != "" {
			fmt.Fprintf(&buf, "Error: %s\n", d.Error)
		}

		// Blank line between devices
		buf.WriteString("\n")
	}

	return buf.Bytes()
}
