package lock

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestRunLock_SecondAcquireIsBusy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tmp_dl.mp4.lock")

	first := New(path)
	if err := first.Acquire(); err != nil {
		t.Fatalf("first Acquire() unexpected error: %v", err)
	}
	defer first.Release()

	second := New(path)
	if err := second.Acquire(); !errors.Is(err, ErrBusy) {
		t.Errorf("second Acquire() error = %v, want ErrBusy", err)
	}
}

func TestRunLock_ReacquireAfterRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tmp_dl.mp4.lock")

	l := New(path)
	if err := l.Acquire(); err != nil {
		t.Fatalf("Acquire() unexpected error: %v", err)
	}
	if err := l.Release(); err != nil {
		t.Fatalf("Release() unexpected error: %v", err)
	}

	other := New(path)
	if err := other.Acquire(); err != nil {
		t.Errorf("Acquire() after release unexpected error: %v", err)
	}
	_ = other.Release()
}

func TestPathFor(t *testing.T) {
	a := PathFor("tmp_dl.mp4")
	if filepath.Dir(a) != filepath.Clean(os.TempDir()) {
		t.Errorf("PathFor() = %q, want a file in %q", a, os.TempDir())
	}
	if a != PathFor("./tmp_dl.mp4") {
		t.Error("PathFor() should be stable for the same file")
	}
	if a == PathFor(filepath.Join(t.TempDir(), "tmp_dl.mp4")) {
		t.Error("PathFor() should differ for different files")
	}
}
