// Package fileutil holds the filesystem primitives the finalizer needs:
// moving files (with a copy fallback across filesystems) and carrying
// timestamps from one file to another.
package fileutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/djherbis/times"
)

// MoveFile renames src to dst. When the rename fails because the two paths
// are on different filesystems, it copies src (preserving mode and times)
// and removes it.
func MoveFile(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !isCrossDevice(err) {
		return err
	}

	info, statErr := os.Stat(src)
	if statErr != nil {
		return statErr
	}
	if err := CopyFileMode(src, dst, info.Mode().Perm()); err != nil {
		_ = os.Remove(dst)
		return fmt.Errorf("copy across filesystems: %w", err)
	}
	if err := CopyTimes(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}

// MoveInto moves src into dir (created if absent), keeping its basename, and
// returns the new path.
func MoveInto(src, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create directory %q: %w", dir, err)
	}
	dst := filepath.Join(dir, filepath.Base(src))
	if err := MoveFile(src, dst); err != nil {
		return "", fmt.Errorf("move %s: %w", filepath.Base(src), err)
	}
	return dst, nil
}

// CopyFileMode streams src to dst, setting the given file mode on dst.
func CopyFileMode(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

// Times returns the access and modification times of path.
func Times(path string) (atime, mtime time.Time, err error) {
	ts, err := times.Stat(path)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return ts.AccessTime(), ts.ModTime(), nil
}

// CopyTimes applies src's access and modification times to dst.
func CopyTimes(src, dst string) error {
	atime, mtime, err := Times(src)
	if err != nil {
		return fmt.Errorf("read times of %s: %w", filepath.Base(src), err)
	}
	if err := os.Chtimes(dst, atime, mtime); err != nil {
		return fmt.Errorf("set times on %s: %w", filepath.Base(dst), err)
	}
	return nil
}
