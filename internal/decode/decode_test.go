package decode

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type sample struct {
	Name    string `yaml:"name" toml:"name"`
	Workers int    `yaml:"workers" toml:"workers"`
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}

func TestFileYAML(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"sample.yaml", "sample.yml"} {
		var got sample
		if err := File(writeFile(t, name, "name: team\nworkers: 4\n"), &got); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Name != "team" || got.Workers != 4 {
			t.Fatalf("unexpected result: %+v", got)
		}
	}
}

func TestFileTOML(t *testing.T) {
	t.Parallel()

	var got sample
	if err := File(writeFile(t, "sample.toml", "name = \"team\"\nworkers = 3\n"), &got); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "team" || got.Workers != 3 {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestFileEmptyYAML(t *testing.T) {
	t.Parallel()

	got := sample{Name: "kept"}
	if err := File(writeFile(t, "empty.yaml", ""), &got); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "kept" {
		t.Fatalf("empty file must leave the target untouched, got %+v", got)
	}
}

func TestFileRejectsUnknownKeys(t *testing.T) {
	t.Parallel()

	var got sample
	if err := File(writeFile(t, "bad.yaml", "name: x\nshamans: 3\n"), &got); err == nil {
		t.Fatalf("expected error for unknown YAML key")
	}
	if err := File(writeFile(t, "bad.toml", "name = \"x\"\nshamans = 3\n"), &got); err == nil {
		t.Fatalf("expected error for unknown TOML key")
	}
}

func TestFileErrors(t *testing.T) {
	t.Parallel()

	var got sample
	if err := File(writeFile(t, "sample.json", "{}"), &got); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if err := File(filepath.Join(t.TempDir(), "missing.yaml"), &got); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
	if err := File(writeFile(t, "broken.yaml", "name: [unterminated"), &got); err == nil {
		t.Fatalf("expected parse error")
	}
}
