package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockFileName is created in the input directory and left in place
// between runs; only the flock on it marks a run in progress.
const LockFileName = ".gsjoin.lock"

// RunLock is an exclusive advisory lock on an input directory.
type RunLock struct {
	path string
	fl   *flock.Flock
}

// AcquireLock takes the input directory's lock without blocking and
// records runID in the lock file. It returns ErrLocked when another
// process holds it.
func AcquireLock(dir, runID string) (*RunLock, error) {
	path := filepath.Join(dir, LockFileName)
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (%s)", ErrLocked, path)
	}
	if err := os.WriteFile(path, []byte(runID+"\n"), 0o644); err != nil {
		_ = fl.Unlock()
		return nil, fmt.Errorf("write lock file: %w", err)
	}
	return &RunLock{path: path, fl: fl}, nil
}

// Path returns the lock file path.
func (l *RunLock) Path() string { return l.path }

// Release unlocks the lock file. The file stays so that every process
// contends on the same inode.
func (l *RunLock) Release() error {
	if err := l.fl.Unlock(); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	return nil
}
