package debpkg

import (
	"bufio"
	"bytes"
	"strings"
)

// Control holds the fields of a binary package's control file
type Control struct {
	Package      string
	Version      string
	Architecture string
	Maintainer   string
	Description  string
	Depends      []string
	Fields       map[string]string
}

// parseControl parses the Debian control file format
func parseControl(data []byte) (*Control, error) {
	ctrl := &Control{
		Fields: make(map[string]string),
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	var currentKey string
	var currentValue strings.Builder

	for scanner.Scan() {
		line := scanner.Text()

		// Handle continuation lines (start with space)
		if len(line) > 0 && (line[0] == ' ' || line[0] == '\t') {
			currentValue.WriteString("\n")
			currentValue.WriteString(strings.TrimSpace(line))
			continue
		}

		// Save previous key-value pair
		if currentKey != "" {
			ctrl.set(currentKey, currentValue.String())
			currentKey = ""
		}

		if strings.Contains(line, ":") {
			parts := strings.SplitN(line, ":", 2)
			currentKey = strings.TrimSpace(parts[0])
			currentValue.Reset()
			currentValue.WriteString(strings.TrimSpace(parts[1]))
		}
	}

	if currentKey != "" {
		ctrl.set(currentKey, currentValue.String())
	}

	return ctrl, scanner.Err()
}

func (c *Control) set(key, value string) {
	switch key {
	case "Package":
		c.Package = value
	case "Version":
		c.Version = value
	case "Architecture":
		c.Architecture = value
	case "Maintainer":
		c.Maintainer = value
	case "Description":
		c.Description = value
	case "Depends":
		for _, dep := range strings.Split(value, ",") {
			if dep = strings.TrimSpace(dep); dep != "" {
				c.Depends = append(c.Depends, dep)
			}
		}
	default:
		c.Fields[key] = value
	}
}
