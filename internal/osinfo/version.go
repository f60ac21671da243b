package osinfo

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// DefaultOSVersionFile is where the system writes its version keys
const DefaultOSVersionFile = "/etc/os-version"

// OSVersion holds the keys of /etc/os-version the driver repository cares about
type OSVersion struct {
	Major string
	Minor string
	Build string
}

// ParseOSVersion reads key=value lines. Lines that do not split into exactly
// two parts on "=" are ignored. The first OsBuild wins outright; a later
// MajorVersion or MinorVersion only fills a value that is still empty.
func ParseOSVersion(r io.Reader) (OSVersion, error) {
	var v OSVersion
	buildFound := false

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		parts := strings.Split(line, "=")
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch key {
		case "OsBuild":
			if !buildFound {
				v.Build = value
				buildFound = true
			}
		case "MajorVersion":
			if v.Major == "" {
				v.Major = value
			}
		case "MinorVersion":
			if v.Minor == "" {
				v.Minor = value
			}
		}
	}

	return v, scanner.Err()
}

// ReadOSVersion parses the file at path. A missing file yields an empty version.
func ReadOSVersion(path string) (OSVersion, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logrus.Warnf("OS version file %s not found", path)
			return OSVersion{}, nil
		}
		return OSVersion{}, fmt.Errorf("failed to open os version file: %w", err)
	}
	defer f.Close()

	v, err := ParseOSVersion(f)
	if err != nil {
		return OSVersion{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return v, nil
}

// SystemTag renders the build string the way the repository expects it in the
// system parameter. Builds of at least four characters with '1' in the second
// position become "<b[1]>-<b[3]>"; anything else is passed through.
func SystemTag(build string) string {
	b := []rune(build)
	if len(b) >= 4 && b[1] == '1' {
		return fmt.Sprintf("%c-%c", b[1], b[3])
	}
	return build
}

// PlatformTypes derives the platform type and edition from the first two
// digits of the build string. Missing or non-digit positions give 0.
func PlatformTypes(build string) (uosType, editionType int) {
	b := []rune(build)
	return digitAt(b, 0), digitAt(b, 1)
}

func digitAt(b []rune, i int) int {
	if i >= len(b) || b[i] < '0' || b[i] > '9' {
		return 0
	}
	return int(b[i] - '0')
}
