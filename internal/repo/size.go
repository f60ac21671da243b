package repo

import "fmt"

const (
	kib = 1024
	mib = 1024 * kib
	gib = 1024 * mib
)

// FormatSize renders a byte count as KB below 1 MiB, MB below 1 GiB and GB
// otherwise, always with two decimals
func FormatSize(bytes int64) string {
	size := float64(bytes)
	switch {
	case bytes < mib:
		return fmt.Sprintf("%.2fKB", size/kib)
	case bytes < gib:
		return fmt.Sprintf("%.2fMB", size/mib)
	default:
		return fmt.Sprintf("%.2fGB", size/gib)
	}
}
