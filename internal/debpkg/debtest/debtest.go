// Package debtest builds minimal Debian packages for tests.
package debtest

import (
	"archive/tar"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Compression names the control archive compression
type Compression string

const (
	Gzip Compression = "gz"
	Xz   Compression = "xz"
	Zstd Compression = "zst"
)

// Write creates dir/<name>_<version>_<arch>.deb with a control file built from
// the given fields and returns its path
func Write(t testing.TB, dir, name, version string, c Compression) string {
	t.Helper()

	control := fmt.Sprintf("Package: %s\nVersion: %s\nArchitecture: amd64\nMaintainer: Test <test@example.com>\nDepends: libc6, libx11-6\nDescription: test driver\n second line\n", name, version)
	data, err := Build(control, c)
	if err != nil {
		t.Fatalf("failed to build deb: %v", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s_%s_amd64.deb", name, version))
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write deb: %v", err)
	}
	return path
}

// Build returns the bytes of a .deb whose control archive holds control
func Build(control string, c Compression) ([]byte, error) {
	var tarBuf bytes.Buffer
	tw := tar.NewWriter(&tarBuf)
	if err := tw.WriteHeader(&tar.Header{Name: "./control", Mode: 0644, Size: int64(len(control))}); err != nil {
		return nil, err
	}
	if _, err := tw.Write([]byte(control)); err != nil {
		return nil, err
	}
	if err := tw.Close(); err != nil {
		return nil, err
	}

	compressed, err := compress(tarBuf.Bytes(), c)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString("!<arch>\n")
	writeMember(&buf, "debian-binary", []byte("2.0\n"))
	writeMember(&buf, "control.tar."+string(c), compressed)
	writeMember(&buf, "data.tar.gz", nil)
	return buf.Bytes(), nil
}

func compress(data []byte, c Compression) ([]byte, error) {
	var buf bytes.Buffer
	switch c {
	case Xz:
		w, err := xz.NewWriter(&buf)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(data); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
	case Zstd:
		w, err := zstd.NewWriter(&buf)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(data); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
	default:
		w := gzip.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func writeMember(buf *bytes.Buffer, name string, data []byte) {
	fmt.Fprintf(buf, "%-16s%-12d%-6d%-6d%-8s%-10d`\n", name, 0, 0, 0, "100644", len(data))
	buf.Write(data)
	if len(data)%2 != 0 {
		buf.WriteByte('\n')
	}
}
