package logging

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFileOverlaysOntoBase(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logging.yml")
	if err := os.WriteFile(path, []byte("level: debug\nmax_backups: 2\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() err = %v", err)
	}

	base := DefaultConfig(ModeCLI)
	got, err := base.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() err = %v", err)
	}
	if got.Level == nil || *got.Level != "debug" {
		t.Fatalf("Level = %v, want debug", got.Level)
	}
	if got.MaxBackups == nil || *got.MaxBackups != 2 {
		t.Fatalf("MaxBackups = %v, want 2", got.MaxBackups)
	}
	if got.Format == nil || *got.Format != *base.Format {
		t.Fatalf("Format = %v, want base default %v preserved", got.Format, base.Format)
	}
}

func TestLoadFileMissingFileErrors(t *testing.T) {
	if _, err := (Config{}).LoadFile(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Fatalf("LoadFile() err = nil, want error for missing file")
	}
}
