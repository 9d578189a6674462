package iofile

import (
	"crypto/md5"
	"encoding/hex"
	"io"
	"os"
	"strings"
)

// HasSidecar reports whether an md5 sidecar file (<path>.md5) exists
// next to the given file.
func HasSidecar(path string) bool {
	info, err := os.Stat(path + ".md5")
	return err == nil && info.Mode().IsRegular()
}

// VerifyMD5 computes the md5 checksum of the file and compares it
// with the first token of the <path>.md5 sidecar, the format NCBI
// publishes next to its accession2taxid dumps.
func VerifyMD5(path string) error {
	raw, err := os.ReadFile(path + ".md5")
	if err != nil {
		return ChecksumSidecarError(path, err)
	}
	fields := strings.Fields(string(raw))
	if len(fields) == 0 {
		return ChecksumSidecarError(path, io.ErrUnexpectedEOF)
	}
	want := strings.ToLower(fields[0])

	f, err := os.Open(path)
	if err != nil {
		return StatError(path, err)
	}
	defer f.Close()

	h := md5.New()
	if _, err = io.Copy(h, f); err != nil {
		return StatError(path, err)
	}
	got := hex.EncodeToString(h.Sum(nil))

	if got != want {
		return ChecksumMismatchError(path, want, got)
	}
	return nil
}
