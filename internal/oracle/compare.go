package oracle

import (
	"fmt"
	"strings"

	version "github.com/knqyf263/go-deb-version"
	"github.com/sirupsen/logrus"
)

// Comparator orders an installed version against a target version, returning
// a negative number, zero or a positive number like strings.Compare
type Comparator func(installed, target string) int

const (
	CompareLexical = "lexical"
	CompareDpkg    = "dpkg"
)

// Lexical compares byte-wise, so "10.0" sorts before "9.0"
func Lexical(installed, target string) int {
	return strings.Compare(installed, target)
}

// Dpkg compares with Debian version ordering and falls back to Lexical when
// either side does not parse
func Dpkg(installed, target string) int {
	v1, err := version.NewVersion(installed)
	if err != nil {
		logrus.Debugf("Unparseable installed version %q: %v", installed, err)
		return Lexical(installed, target)
	}
	v2, err := version.NewVersion(target)
	if err != nil {
		logrus.Debugf("Unparseable target version %q: %v", target, err)
		return Lexical(installed, target)
	}
	return v1.Compare(v2)
}

// ComparatorFor returns the comparator named by mode. An empty mode is lexical.
func ComparatorFor(mode string) (Comparator, error) {
	switch mode {
	case "", CompareLexical:
		return Lexical, nil
	case CompareDpkg:
		return Dpkg, nil
	default:
		return nil, fmt.Errorf("unknown version comparison %q", mode)
	}
}
