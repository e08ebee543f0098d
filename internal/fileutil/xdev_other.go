//go:build !unix

package fileutil

// Rename on non-unix hosts is not retried as a copy.
func isCrossDevice(error) bool { return false }
