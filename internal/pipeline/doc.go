// Package pipeline runs one pass over an input directory: discover segment
// files, group them by recording key, and for each group either merge it
// (manifest, ffmpeg concat, udtacopy, finalize, archive) or, in sort-only
// mode, move it into a per-key directory.
//
// Groups are processed strictly one after another. Files are split across
// discover.go (Scanner and Grouper), manifest.go, finalize.go, lock.go,
// runner.go and stats.go.
package pipeline
