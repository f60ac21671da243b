package oracle

import (
	"context"
	"errors"
	"testing"

	"github.com/ralt/drivermgr/internal/models"
)

const installedOutput = `nvidia-driver:
  Installed: 470.199.02-1
  Candidate: 470.199.02-1
  Version table:
 *** 470.199.02-1 500
        500 http://deb.example.com/debian stable/non-free amd64 Packages
`

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		version string
		want    models.InstallStatus
	}{
		{"empty output", "", "1.0", models.NotFound},
		{"exact version", installedOutput, "470.199.02-1", models.VersionMatch},
		{"installed newer", installedOutput, "460.1", models.VersionMatch},
		{"installed older", installedOutput, "525.1", models.VersionMismatch},
		{"none installed", "nvidia-driver:\n  Installed: (none)\n  Candidate: 470\n", "470", models.NotFound},
		{"none installed localised", "nvidia-driver:\n  已安装：（无）\n  候选：470\n", "470", models.NotFound},
		{"too short", "nvidia-driver:\n  Installed: 470", "470", models.NotFound},
		{"lexicographic ordering", "nvidia-driver:\n  Installed: 9.0\n  Candidate: 10.0\n", "10.0", models.VersionMatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePolicy(tt.out, "nvidia-driver", tt.version, Lexical)
			if got != tt.want {
				t.Errorf("ParsePolicy = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParsePolicyHeaderNotFirst(t *testing.T) {
	out := "\nWARNING: noise\nhplip:\n  Installed: 3.22.10\n  Candidate: 3.22.10\n"

	if got := ParsePolicy(out, "hplip", "3.23.1", Lexical); got != models.VersionMismatch {
		t.Errorf("expected mismatch, got %s", got)
	}
}

func TestParsePolicyDpkgOrdering(t *testing.T) {
	out := "nvidia-driver:\n  Installed: 9.0\n  Candidate: 10.0\n"

	if got := ParsePolicy(out, "nvidia-driver", "10.0", Dpkg); got != models.VersionMismatch {
		t.Errorf("dpkg ordering should see 9.0 < 10.0, got %s", got)
	}
}

func TestAptPolicyProbe(t *testing.T) {
	var calls [][]string
	run := func(ctx context.Context, name string, args ...string) (string, error) {
		calls = append(calls, append([]string{name}, args...))
		return installedOutput, nil
	}

	o := NewAptPolicy(run, nil)
	status, err := o.Probe(context.Background(), "nvidia-driver", "470.199.02-1")
	if err != nil {
		t.Fatalf("Probe failed: %v", err)
	}
	if status != models.VersionMatch {
		t.Errorf("expected match, got %s", status)
	}

	if len(calls) != 1 || calls[0][0] != "apt" || calls[0][1] != "policy" || calls[0][2] != "nvidia-driver" {
		t.Errorf("unexpected command: %v", calls)
	}
}

func TestAptPolicyProbeRunnerError(t *testing.T) {
	run := func(ctx context.Context, name string, args ...string) (string, error) {
		return "", errors.New("apt missing")
	}

	status, err := NewAptPolicy(run, nil).Probe(context.Background(), "x", "1")
	if err == nil {
		t.Fatal("expected error")
	}
	if status != models.NotFound {
		t.Errorf("expected NotFound on error, got %s", status)
	}
}

func TestAptPolicyInstalled(t *testing.T) {
	o := NewAptPolicy(func(ctx context.Context, name string, args ...string) (string, error) {
		return installedOutput, nil
	}, nil)

	v, err := o.Installed(context.Background(), "nvidia-driver")
	if err != nil {
		t.Fatalf("Installed failed: %v", err)
	}
	if v != "470.199.02-1" {
		t.Errorf("unexpected version %q", v)
	}

	none := NewAptPolicy(func(ctx context.Context, name string, args ...string) (string, error) {
		return "nvidia-driver:\n  Installed: (none)\n  Candidate: 470\n", nil
	}, nil)
	v, err = none.Installed(context.Background(), "nvidia-driver")
	if err != nil || v != "" {
		t.Errorf("expected no installed version, got %q, %v", v, err)
	}
}

func TestComparatorFor(t *testing.T) {
	for _, mode := range []string{"", "lexical", "dpkg"} {
		if _, err := ComparatorFor(mode); err != nil {
			t.Errorf("mode %q: %v", mode, err)
		}
	}
	if _, err := ComparatorFor("semver"); err == nil {
		t.Error("expected error for unknown mode")
	}
}
