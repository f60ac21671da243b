package osinfo

import (
	"github.com/ralt/drivermgr/internal/models"
	"github.com/sirupsen/logrus"
)

// Overrides replaces detected values when set
type Overrides struct {
	Arch        string
	UosType     int
	EditionType int
}

// DetectHost assembles the Host description from the os-version file, the
// binary's architecture and any overrides
func DetectHost(versionFile string, o Overrides) (models.Host, error) {
	if versionFile == "" {
		versionFile = DefaultOSVersionFile
	}

	v, err := ReadOSVersion(versionFile)
	if err != nil {
		return models.Host{}, err
	}

	host := models.Host{
		Arch:         HostArch(),
		OSBuild:      v.Build,
		MajorVersion: v.Major,
		MinorVersion: v.Minor,
	}
	host.UosType, host.EditionType = PlatformTypes(v.Build)

	if o.Arch != "" {
		host.Arch = o.Arch
	}
	if o.UosType != 0 {
		host.UosType = o.UosType
	}
	if o.EditionType != 0 {
		host.EditionType = o.EditionType
	}

	logrus.Debugf("Host: %+v", host)
	return host, nil
}
