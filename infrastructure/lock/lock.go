package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

// ErrBusy is returned when another run already holds the lock
var ErrBusy = errors.New("another download is already running")

// RunLock serializes runs that share the fixed temporary download file
type RunLock struct {
	fl *flock.Flock
}

// PathFor returns the lock file guarding target. It lives in the system temp
// directory, named after target's absolute path, so it stays out of the
// working directory. The file is left in place after Release.
func PathFor(target string) string {
	abs, err := filepath.Abs(target)
	if err != nil {
		abs = target
	}
	name := uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+abs)).String()
	return filepath.Join(os.TempDir(), "yt2audio-"+name+".lock")
}

// New creates a lock backed by path
func New(path string) *RunLock {
	return &RunLock{fl: flock.New(path)}
}

// Acquire takes the lock without blocking
func (l *RunLock) Acquire() error {
	ok, err := l.fl.TryLock()
	if err != nil {
		return fmt.Errorf("failed to lock %s: %w", l.fl.Path(), err)
	}
	if !ok {
		return ErrBusy
	}
	return nil
}

// Release drops the lock
func (l *RunLock) Release() error {
	return l.fl.Unlock()
}

// Path returns the lock file path
func (l *RunLock) Path() string {
	return l.fl.Path()
}
