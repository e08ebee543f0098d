package naming

import "path/filepath"

// ManifestPath returns the concat list path for a group: <dir>/<key>_filelist.txt.
func ManifestPath(dir, key string) string {
	return filepath.Join(dir, key+"_filelist.txt")
}

// TempOutputPath returns the in-progress merge path: <dir>/<key>_temp.mov.
// The .mov suffix selects ffmpeg's QuickTime muxer, which is the container
// GoPro uses behind the .360 extension.
func TempOutputPath(dir, key string) string {
	return filepath.Join(dir, key+"_temp.mov")
}

// OutputPath returns the final merged file path: <dir>/<key>.<ext>.
func OutputPath(dir, key, ext string) string {
	return filepath.Join(dir, key+"."+ext)
}

// SortDir returns the per-group directory used in sort-only mode: <dir>/<key>.
func SortDir(dir, key string) string {
	return filepath.Join(dir, key)
}
