package utils

import (
	"io"
	"os"
	"path/filepath"
)

// CopyFile copies a file from src to dst
func CopyFile(src, dst string) error {
	// Create destination directory if it doesn't exist
	if err := EnsureParentDir(dst); err != nil {
		return err
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return err
	}

	// Sync to disk
	return dstFile.Sync()
}

// WriteFile writes data to a file, creating directories as needed
func WriteFile(path string, data []byte, perm os.FileMode) error {
	if err := EnsureParentDir(path); err != nil {
		return err
	}

	return os.WriteFile(path, data, perm)
}

// EnsureDir ensures a directory exists, creating it if necessary
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// EnsureParentDir ensures the directory holding path exists
func EnsureParentDir(path string) error {
	return EnsureDir(filepath.Dir(path))
}

// CachedFileMatches reports whether path exists with the given size and,
// when sha256 is non-empty, the given SHA-256 digest
func CachedFileMatches(path string, size int64, sha256 string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}

	if size > 0 && info.Size() != size {
		return false
	}

	if sha256 != "" {
		sums, err := CalculateChecksums(path)
		if err != nil {
			return false
		}
		return sums.SHA256 == sha256
	}

	return size > 0
}
