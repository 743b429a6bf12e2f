package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type mockDirChecker struct {
	dirs map[string]bool
}

func (m *mockDirChecker) IsDir(path string) bool {
	return m.dirs[path]
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
directory: /music
display:
  color: false
  table_style: light
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.Directory != "/music" {
		t.Errorf("Directory = %q, want /music", cfg.Directory)
	}
	if cfg.Display.Color {
		t.Error("Display.Color = true, want false")
	}
	if cfg.Display.TableStyle != "light" {
		t.Errorf("Display.TableStyle = %q, want light", cfg.Display.TableStyle)
	}
	if cfg.FFmpeg.FFmpegPath != "ffmpeg" {
		t.Errorf("FFmpeg.FFmpegPath = %q, want default ffmpeg", cfg.FFmpeg.FFmpegPath)
	}
	if cfg.Download.Retries != 3 {
		t.Errorf("Download.Retries = %d, want default 3", cfg.Download.Retries)
	}
}

func TestLoad_InvalidCollectsAllErrors(t *testing.T) {
	path := writeConfig(t, `
display:
  table_style: fancy
download:
  retries: -1
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() expected error, got nil")
	}
	for _, want := range []string{"table_style", "retries"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Load() error = %v, want it to mention %q", err, want)
		}
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := writeConfig(t, "directory: [unterminated")
	if _, err := Load(path); err == nil {
		t.Error("Load() expected parse error, got nil")
	}
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("LoadOrDefault() unexpected error: %v", err)
	}
	if cfg.Directory != "" {
		t.Errorf("Directory = %q, want empty", cfg.Directory)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	cfg := Default()
	cfg.Directory = "~/Music"

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if loaded.Directory != "~/Music" {
		t.Errorf("Directory = %q, want ~/Music", loaded.Directory)
	}
}

func TestConfig_OutputDirectory(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	music := filepath.Join(home, "Music")

	tests := []struct {
		name string
		dir  string
		dirs map[string]bool
		want string
	}{
		{name: "unset", dir: "", want: ""},
		{name: "existing absolute", dir: "/music", dirs: map[string]bool{"/music": true}, want: "/music"},
		{name: "missing directory", dir: "/nope", want: ""},
		{name: "home relative", dir: "~/Music", dirs: map[string]bool{music: true}, want: music},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Directory: tt.dir}
			got := cfg.OutputDirectory(&mockDirChecker{dirs: tt.dirs})
			if got != tt.want {
				t.Errorf("OutputDirectory() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfigManager(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	mgr := NewConfigManager(Default(), path)

	if err := mgr.SetDirectory(" /music/ "); err != nil {
		t.Fatalf("SetDirectory() unexpected error: %v", err)
	}
	if err := mgr.SetTableStyle("BOLD"); err != nil {
		t.Fatalf("SetTableStyle() unexpected error: %v", err)
	}
	if err := mgr.SetTableStyle("sparkly"); err == nil {
		t.Error("SetTableStyle() expected error for unknown style")
	}
	if err := mgr.SetColor(false); err != nil {
		t.Fatalf("SetColor() unexpected error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if loaded.Directory != "/music/" {
		t.Errorf("Directory = %q, want /music/", loaded.Directory)
	}
	if loaded.Display.TableStyle != "bold" {
		t.Errorf("TableStyle = %q, want bold", loaded.Display.TableStyle)
	}
	if loaded.Display.Color {
		t.Error("Color = true, want false")
	}
}
