package inventory

import (
	"fmt"
	"os"

	"github.com/ralt/drivermgr/internal/models"
	"gopkg.in/yaml.v3"
)

// Inventory is a list of devices to look drivers up for
type Inventory struct {
	Devices []models.Device `yaml:"devices"`
}

// Load reads a YAML inventory file
func Load(path string) (*Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading inventory: %w", err)
	}

	var inv Inventory
	if err := yaml.Unmarshal(data, &inv); err != nil {
		return nil, fmt.Errorf("parsing inventory: %w", err)
	}

	for i, dev := range inv.Devices {
		if dev.Class == models.ClassUnknown {
			return nil, fmt.Errorf("device %d (%s): missing class", i, dev.Label())
		}
	}

	return &inv, nil
}
