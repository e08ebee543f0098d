package pipeline

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/backmassage/gsjoin/internal/naming"
)

// Group is a set of segment filenames that share a recording key.
type Group struct {
	Key     string
	Members []string // Lexicographically sorted.
}

// Discover lists dir (non-recursively) and returns the files matching the
// segment pattern for ext, sorted by name. Symlinks count when they resolve
// to a regular file. Sub-directories, including the archive directory, are
// never entered.
func Discover(dir, ext string) ([]naming.Segment, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input directory: %w", err)
	}

	m := naming.NewMatcher(ext)
	var segs []naming.Segment
	for _, e := range entries {
		seg, ok := m.Parse(e.Name())
		if !ok || !isRegular(dir, e) {
			continue
		}
		segs = append(segs, seg)
	}
	sort.Slice(segs, func(i, j int) bool { return segs[i].Name < segs[j].Name })
	return segs, nil
}

// isRegular reports whether e is a regular file, following a symlink.
func isRegular(dir string, e fs.DirEntry) bool {
	if e.Type().IsRegular() {
		return true
	}
	if e.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(dir, e.Name()))
	return err == nil && info.Mode().IsRegular()
}

// GroupFiles buckets segments by their recording key. Groups are returned
// in ascending key order and each member list is sorted, so the result
// does not depend on the order of segs.
func GroupFiles(segs []naming.Segment) []Group {
	byKey := make(map[string][]string)
	for _, seg := range segs {
		byKey[seg.Key] = append(byKey[seg.Key], seg.Name)
	}

	groups := make([]Group, 0, len(byKey))
	for key, members := range byKey {
		sort.Strings(members)
		groups = append(groups, Group{Key: key, Members: members})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Key < groups[j].Key })
	return groups
}
