package fileutil

import (
	"io"
	"os"
	"strings"
)

// CopyFile streams src to dst using io.Copy with default permissions (0o644).
// An existing dst is overwritten.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

// EnsureDir creates dir and any missing parents. Safe under concurrent
// callers: an already existing directory is success.
func EnsureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// PathIsAbs reports whether p is an absolute path in either POSIX or Windows
// form. Results files are produced on both platforms, so filepath.IsAbs on
// the host OS alone is not enough: "C:\a\b.jpg" must be caught on Linux too.
func PathIsAbs(p string) bool {
	if strings.HasPrefix(p, "/") || strings.HasPrefix(p, `\`) {
		return true
	}
	// Windows drive form, e.g. C:\... or c:/...
	if len(p) > 1 && p[1] == ':' {
		return true
	}
	return false
}
