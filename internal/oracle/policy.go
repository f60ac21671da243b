package oracle

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/ralt/drivermgr/internal/models"
	"github.com/ralt/drivermgr/internal/shell"
	"github.com/sirupsen/logrus"
)

var versionToken = regexp.MustCompile(`(\d+\S*)`)

// Oracle reports how a package version relates to what is installed locally
type Oracle interface {
	Probe(ctx context.Context, pkg, version string) (models.InstallStatus, error)
}

// AptPolicy answers from the output of `apt policy <pkg>`. Every probe runs a
// fresh command; nothing is cached.
type AptPolicy struct {
	run     shell.Runner
	compare Comparator
}

// NewAptPolicy creates an oracle. A nil runner uses shell.Exec and a nil
// comparator uses Lexical.
func NewAptPolicy(run shell.Runner, compare Comparator) *AptPolicy {
	if run == nil {
		run = shell.Exec
	}
	if compare == nil {
		compare = Lexical
	}
	return &AptPolicy{run: run, compare: compare}
}

// Probe runs apt policy for pkg and classifies version against it
func (a *AptPolicy) Probe(ctx context.Context, pkg, version string) (models.InstallStatus, error) {
	out, err := a.policy(ctx, pkg)
	if err != nil {
		return models.NotFound, err
	}

	status := ParsePolicy(out, pkg, version, a.compare)
	logrus.Debugf("apt policy %s (want %s): %s", pkg, version, status)
	return status, nil
}

// Installed returns the installed version of pkg, or "" when none is
func (a *AptPolicy) Installed(ctx context.Context, pkg string) (string, error) {
	out, err := a.policy(ctx, pkg)
	if err != nil {
		return "", err
	}

	line, ok := installedLine(out, pkg)
	if !ok {
		return "", nil
	}
	return versionToken.FindString(line), nil
}

func (a *AptPolicy) policy(ctx context.Context, pkg string) (string, error) {
	if pkg == "" {
		return "", fmt.Errorf("empty package name")
	}
	out, err := a.run(ctx, "apt", "policy", pkg)
	if err != nil {
		return "", fmt.Errorf("apt policy %s: %w", pkg, err)
	}
	return out, nil
}

// ParsePolicy classifies version against apt policy output for pkg. The line
// after the package header holds the installed version; a parenthesised value
// there, in ASCII or full-width form, means nothing is installed.
func ParsePolicy(out, pkg, version string, compare Comparator) models.InstallStatus {
	line, ok := installedLine(out, pkg)
	if !ok {
		return models.NotFound
	}

	if strings.Contains(line, version) {
		return models.VersionMatch
	}

	installed := versionToken.FindString(line)
	if compare(installed, version) >= 0 {
		return models.VersionMatch
	}
	return models.VersionMismatch
}

// installedLine returns the line following the package header, or false when
// the output is empty, too short or reports no installed version
func installedLine(out, pkg string) (string, bool) {
	if out == "" {
		return "", false
	}

	lines := strings.Split(out, "\n")

	index := 0
	for i, line := range lines {
		if strings.HasPrefix(line, pkg) {
			index = i
			break
		}
	}

	if len(lines) <= index+2 {
		return "", false
	}

	line := lines[index+1]
	if strings.Contains(line, "（") || strings.Contains(line, "(") {
		return "", false
	}
	return line, true
}
