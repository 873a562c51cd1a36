package urconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "urconfig.json")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadValidConfig(t *testing.T) {
	path := writeTempConfig(t, `{"max_fragment_len": 100, "type": "bytes"}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MinFragmentLen != 10 {
		t.Fatalf("MinFragmentLen default = %d, want 10", cfg.MinFragmentLen)
	}
	if cfg.MaxFragmentLen != 100 {
		t.Fatalf("MaxFragmentLen = %d, want 100", cfg.MaxFragmentLen)
	}
}

func TestLoadRejectsMissingMaxFragmentLen(t *testing.T) {
	path := writeTempConfig(t, `{"type": "bytes"}`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for missing max_fragment_len")
	}
}

func TestLoadRejectsInvertedBounds(t *testing.T) {
	path := writeTempConfig(t, `{"min_fragment_len": 50, "max_fragment_len": 10, "type": "bytes"}`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for min_fragment_len > max_fragment_len")
	}
}

func TestLoadRejectsMissingType(t *testing.T) {
	path := writeTempConfig(t, `{"max_fragment_len": 100}`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for missing type")
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for a nonexistent config file")
	}
}
