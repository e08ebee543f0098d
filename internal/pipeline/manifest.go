package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteManifest writes the ffmpeg concat list for paths, one
// `file '<absolute path>'` line each, in the given order. Paths are made
// absolute and use forward slashes. An existing file at manifest is
// replaced.
func WriteManifest(manifest string, paths []string) error {
	var b strings.Builder
	for _, p := range paths {
		line, err := manifestLine(p)
		if err != nil {
			return err
		}
		b.WriteString(line)
	}
	if err := os.WriteFile(manifest, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

func manifestLine(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	return "file '" + quoteConcatPath(filepath.ToSlash(abs)) + "'\n", nil
}

// quoteConcatPath escapes single quotes for the concat demuxer: close the
// quoted string, emit an escaped quote, reopen.
func quoteConcatPath(p string) string {
	return strings.ReplaceAll(p, "'", `'\''`)
}
