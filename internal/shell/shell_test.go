package shell

import (
	"context"
	"strings"
	"testing"
)

func TestExec(t *testing.T) {
	if !IsCommandExist("sh") {
		t.Skip("sh not available")
	}

	out, err := Exec(context.Background(), "sh", "-c", "echo out; echo err >&2")
	if err != nil {
		t.Fatalf("Exec failed: %v", err)
	}
	if out != "out\n" {
		t.Errorf("expected only stdout, got %q", out)
	}
}

func TestExecFailureCarriesStderr(t *testing.T) {
	if !IsCommandExist("sh") {
		t.Skip("sh not available")
	}

	_, err := Exec(context.Background(), "sh", "-c", "echo broken >&2; exit 3")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "broken") {
		t.Errorf("error should include stderr: %v", err)
	}
}

func TestIsCommandExist(t *testing.T) {
	if IsCommandExist("definitely-not-a-real-command-xyz") {
		t.Error("unexpected command found")
	}
}
