package config_test

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"filesort/internal/config"
)

func TestLoadDefaultConfigWithoutFile(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if want := filepath.Join(tempHome, ".config", "filesort", "config.toml"); resolved != want {
		t.Fatalf("resolved path = %q, want %q", resolved, want)
	}

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Organize.SourceDir != cwd {
		t.Fatalf("source dir = %q, want working directory %q", cfg.Organize.SourceDir, cwd)
	}
	if !reflect.DeepEqual(cfg.Organize.Labels, config.DefaultLabels) {
		t.Fatalf("labels = %v, want %v", cfg.Organize.Labels, config.DefaultLabels)
	}
	if cfg.Organize.Overwrite {
		t.Fatal("expected overwrite disabled by default")
	}
	if cfg.Organize.UnmatchedLabel != "" {
		t.Fatalf("expected no unmatched label by default, got %q", cfg.Organize.UnmatchedLabel)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadFromFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "inbox")
	path := filepath.Join(dir, "filesort.toml")
	content := `
[organize]
source_dir = "` + filepath.ToSlash(source) + `"
labels = [" audio ", "image", ""]
unmatched_label = "misc"
overwrite = true

[mime_types]
"HEIF" = "Image/HEIF"

[logging]
format = "JSON"
level = "Debug"
file = "~/logs/filesort.log"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected existing config at %q, got %q exists=%v", path, resolved, exists)
	}
	if cfg.Organize.SourceDir != source {
		t.Fatalf("source dir = %q, want %q", cfg.Organize.SourceDir, source)
	}
	if want := []string{"audio", "image"}; !reflect.DeepEqual(cfg.Organize.Labels, want) {
		t.Fatalf("labels = %v, want %v", cfg.Organize.Labels, want)
	}
	if cfg.Organize.UnmatchedLabel != "misc" || !cfg.Organize.Overwrite {
		t.Fatalf("unexpected organize section: %+v", cfg.Organize)
	}
	if got := cfg.MimeTypes[".heif"]; got != "image/heif" {
		t.Fatalf("mime_types[.heif] = %q, want image/heif", got)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging section: %+v", cfg.Logging)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(home, "logs", "filesort.log"); cfg.Logging.File != want {
		t.Fatalf("logging.file = %q, want %q", cfg.Logging.File, want)
	}
}

func TestLoadEmptyLabelsFallBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filesort.toml")
	if err := os.WriteFile(path, []byte("[organize]\nlabels = []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !reflect.DeepEqual(cfg.Organize.Labels, config.DefaultLabels) {
		t.Fatalf("labels = %v, want defaults", cfg.Organize.Labels)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "traversal label", content: "[organize]\nlabels = [\"../escape\"]\n", want: "organize.labels"},
		{name: "absolute unmatched", content: "[organize]\nunmatched_label = \"/tmp/x\"\n", want: "organize.unmatched_label"},
		{name: "bad media type", content: "[mime_types]\n\".foo\" = \"nonsense\"\n", want: "mime_types"},
		{name: "bad format", content: "[logging]\nformat = \"xml\"\n", want: "logging.format"},
		{name: "bad level", content: "[logging]\nlevel = \"loud\"\n", want: "logging.level"},
		{name: "unknown key", content: "[organize]\nrecursive = true\n", want: "parse config"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "filesort.toml")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatal(err)
			}
			_, _, _, err := config.Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	if !reflect.DeepEqual(cfg.Organize.Labels, config.DefaultLabels) {
		t.Fatalf("sample labels = %v, want defaults", cfg.Organize.Labels)
	}
}

func TestExpandPathTilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := config.ExpandPath("~/inbox")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	if want := filepath.Join(home, "inbox"); got != want {
		t.Fatalf("ExpandPath = %q, want %q", got, want)
	}
}
