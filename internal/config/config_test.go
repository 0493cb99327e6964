package config

import (
	"path/filepath"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "todopad.json")
	in := Config{DBPath: "/tmp/tasks.db", HooksDir: "/tmp/hooks", Theme: "light", Debug: true}
	if err := Save(path, in); err != nil {
		t.Fatalf("save: %v", err)
	}
	out := Default()
	if err := Load(path, &out); err != nil {
		t.Fatalf("load: %v", err)
	}
	if out != in {
		t.Fatalf("expected %+v, got %+v", in, out)
	}
}

func TestLoadKeepsDefaultsForMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todopad.json")
	if err := Save(path, Config{DBPath: "/tmp/tasks.db"}); err != nil {
		t.Fatal(err)
	}
	out := Default()
	def := Default()
	if err := Load(path, &out); err != nil {
		t.Fatal(err)
	}
	if out.HooksDir != def.HooksDir {
		t.Fatalf("expected default hooks dir kept, got %q", out.HooksDir)
	}
	if out.Theme != def.Theme {
		t.Fatalf("expected default theme kept, got %q", out.Theme)
	}
	if out.DBPath != "/tmp/tasks.db" {
		t.Fatalf("expected db path from file, got %q", out.DBPath)
	}
}

func TestLoadMissingFile(t *testing.T) {
	out := Default()
	if err := Load(filepath.Join(t.TempDir(), "nope.json"), &out); err == nil {
		t.Fatal("expected error for missing file")
	}
}
