package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gofrs/flock"
)

// withIsolatedTempDir points os.TempDir() into a per-test directory.
// TMPDIR is respected on Unix, TEMP/TMP on Windows; set all three.
func withIsolatedTempDir(t *testing.T) string {
	t.Helper()
	td := t.TempDir()
	t.Setenv("TMPDIR", td)
	t.Setenv("TEMP", td)
	t.Setenv("TMP", td)
	return td
}

func TestAcquireInstanceLock(t *testing.T) {
	td := withIsolatedTempDir(t)

	l, err := AcquireInstanceLock("envloader.lock")
	if err != nil {
		t.Fatalf("first acquire: %v", err)
	}
	t.Cleanup(l.Release)

	if filepath.Dir(l.Path()) != td {
		t.Fatalf("lock file %q not in isolated temp dir %q", l.Path(), td)
	}
	if _, err := os.Stat(l.Path()); err != nil {
		t.Fatalf("lock file should exist after acquire: %v", err)
	}
}

func TestInstanceLockBlocksSecondHolder(t *testing.T) {
	withIsolatedTempDir(t)

	l, err := AcquireInstanceLock("envloader.lock")
	if err != nil {
		t.Fatalf("first acquire: %v", err)
	}
	t.Cleanup(l.Release)

	second := flock.New(l.Path())
	locked, err := second.TryLock()
	if err != nil {
		// some platforms report contention as an error; equally acceptable
		t.Logf("second TryLock error (treated as contention): %v", err)
		locked = false
	}
	if locked {
		t.Fatalf("second holder unexpectedly acquired %q", l.Path())
	}
}

func TestInstanceLockReleaseAllowsRelock(t *testing.T) {
	withIsolatedTempDir(t)

	l, err := AcquireInstanceLock("envloader.lock")
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	path := l.Path()
	l.Release()

	f := flock.New(path)
	locked, err := f.TryLock()
	if err != nil {
		t.Fatalf("relock after release: %v", err)
	}
	if !locked {
		t.Fatalf("expected to acquire lock after release")
	}
	_ = f.Unlock()
	_ = os.Remove(path)
}
