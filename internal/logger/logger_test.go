package logger

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewDisabled(t *testing.T) {
	log, err := New("", "warn")
	if err != nil {
		t.Fatal(err)
	}
	// A nop logger must swallow writes without side effects.
	log.Warn("dropped")
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "streamwall.log")
	log, err := New(path, "info")
	if err != nil {
		t.Fatal(err)
	}
	log.Info("hello")
	log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file missing: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("log file empty")
	}
}

func TestNewBadLevelFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "streamwall.log")
	log, err := New(path, "loud")
	if err != nil {
		t.Fatal(err)
	}
	// Fallback level is warn: info is filtered, warn is written.
	log.Info("filtered")
	log.Warn("kept")
	log.Sync()

	data, _ := os.ReadFile(path)
	if len(data) == 0 {
		t.Fatal("warn entry should be written")
	}
}
