package pipeline

import (
	"errors"
	"fmt"
)

// Stages reported in GroupError.
const (
	StageManifest   = "manifest"
	StageConcat     = "concat"
	StageMetadata   = "metadata"
	StageFinalize   = "finalize"
	StageTimestamps = "timestamps"
	StageArchive    = "archive"
	StageSort       = "sort"
)

// ErrLocked is returned by Run when another gsjoin process holds the input
// directory's lock.
var ErrLocked = errors.New("input directory is locked by another gsjoin run")

// GroupError reports which group failed and at which stage. Err may wrap an
// *ffmpeg.ExitError carrying the tool's exit code and output.
type GroupError struct {
	Key   string
	Stage string
	Err   error
}

func (e *GroupError) Error() string {
	return fmt.Sprintf("group %s: %s: %v", e.Key, e.Stage, e.Err)
}

func (e *GroupError) Unwrap() error { return e.Err }
