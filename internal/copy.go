package internal

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
)

// fileHash computes SHA256 hash of a file content
func fileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// writeFileAtomic writes data to a temp file next to dest and renames it into place
func writeFileAtomic(dest string, data []byte) error {
	tmp := dest + ".tmp"

	out, err := os.Create(tmp)
	if err != nil {
		return err
	}

	if _, err := out.Write(data); err != nil {
		out.Close()
		os.Remove(tmp)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, dest)
}
