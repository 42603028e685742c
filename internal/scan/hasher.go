package scan

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
)

// DigestHexLen is the length of a rendered digest: SHA-256 as lowercase hex.
const DigestHexLen = sha256.Size * 2

// Digest calculates the SHA-256 hash of data from an io.Reader.
// It returns the hash as a lowercase hexadecimal string.
func Digest(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// DigestFile hashes the file at path and returns the digest as a hex string.
// The file is opened read-only and shared, so concurrent readers of the same
// file are not blocked, and it is closed as soon as the digest is computed.
// Symlinks are rejected, matching the walker's never-follow policy.
func DigestFile(path string) (string, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", ErrExpectedFile
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return "", ErrUnexpectedSymlink
	}
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()
	return Digest(file)
}
