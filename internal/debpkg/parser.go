package debpkg

import (
	"archive/tar"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ralt/drivermgr/internal/utils"
	"github.com/ulikunitz/xz"
)

// Package is a .deb file on disk together with its control data
type Package struct {
	Path    string
	Size    int64
	SHA256  string
	Control *Control
}

// ParsePackage reads the control data and checksums of the .deb at path
func ParsePackage(path string) (*Package, error) {
	checksums, err := utils.CalculateChecksums(path)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate checksums: %w", err)
	}

	data, err := extractControl(path)
	if err != nil {
		return nil, fmt.Errorf("failed to extract control: %w", err)
	}

	ctrl, err := parseControl(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse control: %w", err)
	}
	if ctrl.Package == "" || ctrl.Version == "" {
		return nil, fmt.Errorf("control file of %s lacks Package or Version", path)
	}

	return &Package{
		Path:    path,
		Size:    checksums.Size,
		SHA256:  checksums.SHA256,
		Control: ctrl,
	}, nil
}

// extractControl extracts the control file from a .deb package
func extractControl(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// .deb files are ar archives starting with "!<arch>\n"
	header := make([]byte, 8)
	if _, err := io.ReadFull(f, header); err != nil {
		return nil, err
	}
	if !bytes.Equal(header, arMagic) {
		return nil, fmt.Errorf("not an ar archive")
	}

	for {
		// Read ar header (60 bytes)
		arHeader := make([]byte, 60)
		_, err := io.ReadFull(f, arHeader)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read ar header: %w", err)
		}

		// Name is space-padded and may carry a trailing slash
		filename := strings.TrimRight(strings.TrimSpace(string(arHeader[0:16])), "/")

		var size int64
		if _, err := fmt.Sscanf(strings.TrimSpace(string(arHeader[48:58])), "%d", &size); err != nil {
			return nil, fmt.Errorf("bad ar member size for %s: %w", filename, err)
		}

		if strings.HasPrefix(filename, "control.tar") {
			data := make([]byte, size)
			if _, err := io.ReadFull(f, data); err != nil {
				return nil, err
			}
			return extractControlFromTar(data, filename)
		}

		// Skip this member, aligned to 2 bytes
		skip := size + size%2
		if _, err := f.Seek(skip, io.SeekCurrent); err != nil {
			return nil, err
		}
	}

	return nil, fmt.Errorf("control.tar not found in package")
}

// extractControlFromTar extracts the control file from control.tar*
func extractControlFromTar(data []byte, filename string) ([]byte, error) {
	var r io.Reader

	switch {
	case strings.HasSuffix(filename, ".gz"):
		gr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer gr.Close()
		r = gr
	case strings.HasSuffix(filename, ".xz"):
		xr, err := xz.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		r = xr
	case strings.HasSuffix(filename, ".zst"):
		zr, err := zstd.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		r = zr
	default:
		r = bytes.NewReader(data)
	}

	tarReader := tar.NewReader(r)
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if header.Name == "./control" || header.Name == "control" {
			return io.ReadAll(tarReader)
		}
	}

	return nil, fmt.Errorf("control file not found in %s", filename)
}
