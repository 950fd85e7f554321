package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofrs/flock"
)

func TestWriteAtomicReplacesContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bank.nofs")

	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := WriteAtomic(path, []byte("new"), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "new" {
		t.Fatalf("content mismatch: got %q", got)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected mode 0600, got %o", info.Mode().Perm())
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}
}

func TestWriteAtomicCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out", "bank.nofs")
	if err := WriteAtomic(path, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file: %v", err)
	}
}

func TestWriteLockedReleasesLock(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bank.nofs")
	lockPath := filepath.Join(dir, "locks", "bank.nofs.lock")

	for _, payload := range []string{"first", "second"} {
		if err := WriteLocked(path, lockPath, []byte(payload), 0o644); err != nil {
			t.Fatalf("WriteLocked(%s): %v", payload, err)
		}
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "second" {
		t.Fatalf("content mismatch: got %q", got)
	}
}

func TestWriteLockedRefusesWhenHeld(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bank.nofs")
	lockPath := filepath.Join(dir, ".bank.nofs.lock")

	holder := flock.New(lockPath)
	ok, err := holder.TryLock()
	if err != nil || !ok {
		t.Fatalf("acquire test lock: ok=%v err=%v", ok, err)
	}
	defer holder.Unlock() //nolint:errcheck

	err = WriteLocked(path, lockPath, []byte("blocked"), 0o644)
	if !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Fatalf("target must not be written while locked: %v", statErr)
	}
}
