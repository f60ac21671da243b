package debpkg

import (
	"bytes"
	"os"
)

var (
	arMagic = []byte("!<arch>\n")

	// Debian packages start with "!<arch>\ndebian"
	debMagic = []byte("!<arch>\ndebian")
)

// IsDebFile reports whether the file at path starts like a Debian package
func IsDebFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	header := make([]byte, len(debMagic))
	n, err := f.Read(header)
	if err != nil && n == 0 {
		// Empty files are simply not packages
		return false, nil
	}

	return bytes.HasPrefix(header[:n], debMagic), nil
}
