package models

import (
	"fmt"
	"strings"
)

// DriverClass is the device category a driver is looked up for
type DriverClass int

const (
	ClassUnknown DriverClass = iota
	ClassPrinter
	ClassScanner
	ClassGPU
	ClassNetwork
	ClassSound
	ClassWiFi
	ClassOther
)

var classNames = map[DriverClass]string{
	ClassUnknown: "unknown",
	ClassPrinter: "printer",
	ClassScanner: "scanner",
	ClassGPU:     "gpu",
	ClassNetwork: "network",
	ClassSound:   "sound",
	ClassWiFi:    "wifi",
	ClassOther:   "other",
}

// String returns the lower-case name of the class
func (c DriverClass) String() string {
	if name, ok := classNames[c]; ok {
		return name
	}
	return "unknown"
}

// ParseDriverClass maps a class name to its DriverClass
func ParseDriverClass(s string) (DriverClass, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for c, n := range classNames {
		if n == name {
			return c, nil
		}
	}
	return ClassUnknown, fmt.Errorf("unknown driver class %q", s)
}

// MarshalText lets classes appear by name in YAML and JSON
func (c DriverClass) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText parses a class name
func (c *DriverClass) UnmarshalText(text []byte) error {
	parsed, err := ParseDriverClass(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Device identifies one piece of hardware a driver is looked up for
type Device struct {
	Name       string      `yaml:"name" json:"name"`
	Class      DriverClass `yaml:"class" json:"class"`
	VendorName string      `yaml:"vendor,omitempty" json:"vendor,omitempty"`
	ModelName  string      `yaml:"model,omitempty" json:"model,omitempty"`
	VendorID   string      `yaml:"vendor_id,omitempty" json:"vendor_id,omitempty"`
	ModelID    string      `yaml:"model_id,omitempty" json:"model_id,omitempty"`
	ClassP     int         `yaml:"class_p,omitempty" json:"class_p,omitempty"`
	ClassCode  int         `yaml:"class_code,omitempty" json:"class_code,omitempty"`

	// DriverName is the kernel or userspace driver currently bound, if any
	DriverName string `yaml:"driver,omitempty" json:"driver,omitempty"`
}

// Label returns a name for log lines
func (d Device) Label() string {
	if d.Name != "" {
		return d.Name
	}
	if d.VendorName != "" || d.ModelName != "" {
		return strings.TrimSpace(d.VendorName + " " + d.ModelName)
	}
	return strings.TrimSpace(d.VendorID + ":" + d.ModelID)
}

// Host describes the running system as the driver repository sees it
type Host struct {
	Arch         string `yaml:"arch" json:"arch"`
	OSBuild      string `yaml:"os_build" json:"os_build"`
	MajorVersion string `yaml:"major_version" json:"major_version"`
	MinorVersion string `yaml:"minor_version" json:"minor_version"`
	UosType      int    `yaml:"uos_type" json:"uos_type"`
	EditionType  int    `yaml:"edition_type" json:"edition_type"`
}

// VersionKnown reports whether both OS version components were read
func (h Host) VersionKnown() bool {
	return h.MajorVersion != "" && h.MinorVersion != ""
}
