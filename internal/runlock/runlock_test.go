package runlock_test

import (
	"errors"
	"os"
	"testing"

	"shortwave/internal/runlock"
)

func TestAcquireAndRelease(t *testing.T) {
	dir := t.TempDir()
	lock := runlock.New(dir)

	if err := lock.Acquire(); err != nil {
		t.Fatalf("Acquire returned error: %v", err)
	}
	if _, err := os.Stat(lock.Path()); err != nil {
		t.Fatalf("expected lock file to exist: %v", err)
	}
	if err := lock.Release(); err != nil {
		t.Fatalf("Release returned error: %v", err)
	}
}

func TestSecondAcquireFails(t *testing.T) {
	dir := t.TempDir()
	first := runlock.New(dir)
	second := runlock.New(dir)

	if err := first.Acquire(); err != nil {
		t.Fatalf("first Acquire returned error: %v", err)
	}
	defer first.Release()

	err := second.Acquire()
	if !errors.Is(err, runlock.ErrAlreadyRunning) {
		t.Fatalf("expected ErrAlreadyRunning, got %v", err)
	}
}

func TestReacquireAfterRelease(t *testing.T) {
	dir := t.TempDir()
	lock := runlock.New(dir)

	if err := lock.Acquire(); err != nil {
		t.Fatalf("Acquire returned error: %v", err)
	}
	if err := lock.Release(); err != nil {
		t.Fatalf("Release returned error: %v", err)
	}

	other := runlock.New(dir)
	if err := other.Acquire(); err != nil {
		t.Fatalf("expected reacquire to succeed, got %v", err)
	}
	defer other.Release()
}
