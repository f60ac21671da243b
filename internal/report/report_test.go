package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/ralt/drivermgr/internal/models"
	"github.com/ralt/drivermgr/internal/utils"
)

func sampleReport() *Report {
	r := New(models.Host{Arch: "amd64", OSBuild: "11018", MajorVersion: "20", MinorVersion: "1060"}, []models.DeviceReport{
		{
			Device:  models.Device{Name: "gpu0", Class: models.ClassGPU, DriverName: "nouveau"},
			Outcome: models.OutcomeSelected,
			Result: &models.SelectionResult{
				Packages:   "nvidia-driver",
				DebVersion: "470.1",
				Size:       "1.00MB",
				Status:     models.StatusCanUpdate,
			},
		},
		{
			Device:  models.Device{Name: "nic", Class: models.ClassNetwork},
			Outcome: models.OutcomeNetworkError,
			Error:   "[Network] nic: timeout",
		},
	})
	r.GeneratedAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return r
}

func TestNewAssignsRunID(t *testing.T) {
	r := New(models.Host{}, nil)
	if _, err := uuid.Parse(r.RunID); err != nil {
		t.Errorf("run id is not a uuid: %v", err)
	}
}

func TestGenerateControl(t *testing.T) {
	out := string(GenerateControl(sampleReport()))

	stanzas := strings.Split(strings.TrimSpace(out), "\n\n")
	if len(stanzas) != 3 {
		t.Fatalf("expected header and 2 device stanzas, got %d:\n%s", len(stanzas), out)
	}

	for _, want := range []string{"Architecture: amd64", "OS-Version: 20.1060"} {
		if !strings.Contains(stanzas[0], want) {
			t.Errorf("header missing %q", want)
		}
	}
	for _, want := range []string{"Device: gpu0", "Class: gpu", "Package: nvidia-driver", "Status: can-update", "Driver: nouveau"} {
		if !strings.Contains(stanzas[1], want) {
			t.Errorf("gpu stanza missing %q", want)
		}
	}
	if !strings.Contains(stanzas[2], "Outcome: network-error") || strings.Contains(stanzas[2], "Package:") {
		t.Errorf("unexpected nic stanza:\n%s", stanzas[2])
	}
}

func TestWriteCompressed(t *testing.T) {
	dir := t.TempDir()
	r := sampleReport()

	path := filepath.Join(dir, "report.json.zst")
	if err := Write(path, r, FormatJSON); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}
	data, err := utils.ZstdDecompress(raw)
	if err != nil {
		t.Fatalf("report is not zstd: %v", err)
	}

	var got struct {
		RunID   string `json:"run_id"`
		Devices []struct {
			Outcome string `json:"outcome"`
			Result  *struct {
				Packages string `json:"packages"`
				Status   string `json:"status"`
			} `json:"result"`
		} `json:"devices"`
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}

	if got.RunID != r.RunID {
		t.Errorf("run id %s, want %s", got.RunID, r.RunID)
	}
	outcomes := []string{got.Devices[0].Outcome, got.Devices[1].Outcome}
	if diff := cmp.Diff([]string{"selected", "network-error"}, outcomes); diff != "" {
		t.Errorf("unexpected outcomes (-want +got):\n%s", diff)
	}
	if got.Devices[0].Result.Status != "can-update" {
		t.Errorf("status not rendered by name: %s", got.Devices[0].Result.Status)
	}
	if got.Devices[1].Result != nil {
		t.Error("failed device should have no result")
	}
}

func TestWriteGzipControl(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.gz")
	if err := Write(path, sampleReport(), FormatControl); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	raw, _ := os.ReadFile(path)
	data, err := utils.GzipDecompress(raw)
	if err != nil {
		t.Fatalf("report is not gzip: %v", err)
	}
	if !strings.HasPrefix(string(data), "Run-Id: ") {
		t.Errorf("unexpected content: %s", data)
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	if _, err := Render(sampleReport(), "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}
