package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kbukum/faber/container"
	"github.com/kbukum/faber/errors"
	"github.com/kbukum/faber/logger"
)

func newContainer(t *testing.T) *container.Container {
	t.Helper()
	c, err := container.New(container.WithLogger(logger.NewNop()))
	if err != nil {
		t.Fatalf("container.New failed: %v", err)
	}
	return c
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadFileFormats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"yaml", "defs.yml", "greeting: hi\nport: 8080\n"},
		{"yaml long ext", "defs.yaml", "greeting: hi\nport: 8080\n"},
		{"json", "defs.json", `{"greeting": "hi", "port": 8080}`},
		{"toml", "defs.toml", "greeting = \"hi\"\nport = 8080\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newContainer(t)
			if err := LoadFile(c, writeFile(t, tc.file, tc.content)); err != nil {
				t.Fatalf("LoadFile failed: %v", err)
			}
			if v, err := c.Prop("greeting"); err != nil || v != "hi" {
				t.Errorf("expected greeting=hi, got %v, %v", v, err)
			}
			if !c.IsProp("port") {
				t.Error("expected port to be registered as a property")
			}
		})
	}
}

func TestLoadFileEnv(t *testing.T) {
	c := newContainer(t)
	path := writeFile(t, ".env", "DATABASE_URL=postgres://localhost\nDEBUG=true\n")
	if err := LoadFile(c, path); err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if v, _ := c.Prop("DATABASE_URL"); v != "postgres://localhost" {
		t.Errorf("expected env pair as property, got %v", v)
	}
}

func TestLoadEnvFileAnyName(t *testing.T) {
	c := newContainer(t)
	path := writeFile(t, "secrets", "# comment\nAPI_TOKEN=\"abc def\"\n")
	if err := LoadEnvFile(c, path); err != nil {
		t.Fatalf("LoadEnvFile failed: %v", err)
	}
	if v, _ := c.Prop("API_TOKEN"); v != "abc def" {
		t.Errorf("expected unquoted value, got %v", v)
	}
	err := LoadEnvFile(c, filepath.Join(t.TempDir(), "missing"))
	if !errors.HasCode(err, errors.ErrCodeFileNotFound) {
		t.Errorf("expected FILE_NOT_FOUND, got %v", err)
	}
}

func TestLoadFileNotFound(t *testing.T) {
	c := newContainer(t)
	err := LoadFile(c, filepath.Join(t.TempDir(), "missing.yml"))
	if !errors.HasCode(err, errors.ErrCodeFileNotFound) {
		t.Errorf("expected FILE_NOT_FOUND, got %v", err)
	}
	if err := LoadFile(c, t.TempDir()); !errors.HasCode(err, errors.ErrCodeFileNotFound) {
		t.Errorf("expected FILE_NOT_FOUND for a directory, got %v", err)
	}
}

func TestLoadFileInvalidFormat(t *testing.T) {
	c := newContainer(t)
	tests := map[string]string{
		"broken.json": `{"greeting": `,
		"defs.xml":    "<greeting>hi</greeting>",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			err := LoadFile(c, writeFile(t, name, content))
			if !errors.HasCode(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("expected INVALID_FORMAT, got %v", err)
			}
		})
	}
	if c.Len() != 0 {
		t.Error("failed loads must not register anything")
	}
}

func TestLoadFilesKeepsFirstValue(t *testing.T) {
	c := newContainer(t)
	first := writeFile(t, "a.yml", "greeting: hi\n")
	second := writeFile(t, "b.yml", "greeting: hello\nother: x\n")
	if err := LoadFiles(c, first, second); err != nil {
		t.Fatalf("LoadFiles failed: %v", err)
	}
	if v, _ := c.Prop("greeting"); v != "hi" {
		t.Errorf("expected first file to win, got %v", v)
	}
	if !c.Has("other") {
		t.Error("expected entries of the second file")
	}
}

func TestLoad(t *testing.T) {
	c := newContainer(t)
	err := Load(c, map[string]any{
		"greeting": "hi",
		"answer":   func() int { return 42 },
	})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if v, _ := c.Get("answer", nil); v != 42 {
		t.Errorf("expected factory to be loaded, got %v", v)
	}
}
