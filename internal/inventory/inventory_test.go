package inventory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ralt/drivermgr/internal/models"
)

func writeInventory(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "devices.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write inventory: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeInventory(t, `devices:
  - name: office-printer
    class: printer
    vendor: Hewlett-Packard
    model: LaserJet Pro M404
  - name: gpu0
    class: GPU
    vendor_id: 10de
    model_id: 1f82
    class_p: 3
    driver: nouveau
`)

	inv, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := []models.Device{
		{Name: "office-printer", Class: models.ClassPrinter, VendorName: "Hewlett-Packard", ModelName: "LaserJet Pro M404"},
		{Name: "gpu0", Class: models.ClassGPU, VendorID: "10de", ModelID: "1f82", ClassP: 3, DriverName: "nouveau"},
	}
	if diff := cmp.Diff(want, inv.Devices); diff != "" {
		t.Errorf("unexpected devices (-want +got):\n%s", diff)
	}
}

func TestLoadUnknownClass(t *testing.T) {
	path := writeInventory(t, "devices:\n  - name: x\n    class: toaster\n")
	if _, err := Load(path); err == nil {
		t.Error("expected error for unknown class")
	}
}

func TestLoadMissingClass(t *testing.T) {
	path := writeInventory(t, "devices:\n  - name: x\n    vendor_id: 8086\n")
	if _, err := Load(path); err == nil {
		t.Error("expected error for missing class")
	}
}
