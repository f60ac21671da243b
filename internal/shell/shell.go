package shell

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
)

// Runner runs a command and returns its standard output
type Runner func(ctx context.Context, name string, args ...string) (string, error)

// Exec runs name with args and returns stdout. Stderr is kept for the error.
func Exec(ctx context.Context, name string, args ...string) (string, error) {
	cmdStr := strings.Join(append([]string{name}, args...), " ")
	logrus.Debugf("Running: %s", cmdStr)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	output := stdout.String()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return output, fmt.Errorf("failed to exec %s: %w: %s", cmdStr, err, msg)
		}
		return output, fmt.Errorf("failed to exec %s: %w", cmdStr, err)
	}

	return output, nil
}

// IsCommandExist reports whether name resolves on PATH
func IsCommandExist(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
