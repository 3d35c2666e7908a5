package config

import (
	"path/filepath"
	"runtime"
	"testing"
)

func TestDiscoverPathsAllLevels(t *testing.T) {
	layers := DiscoverPaths(DiscoverOptions{
		ProjectPath:      "./skin-studio.yaml",
		SystemConfigPath: "/etc/skin-studio/skin-studio.yaml",
		UserConfigPath:   "/home/user/.config/skin-studio/skin-studio.yaml",
	})

	if len(layers) != 3 {
		t.Fatalf("expected 3 layers, got %d", len(layers))
	}
	if layers[0].Level != LevelSystem {
		t.Errorf("layers[0].Level = %q, want %q", layers[0].Level, LevelSystem)
	}
	if layers[1].Level != LevelUser {
		t.Errorf("layers[1].Level = %q, want %q", layers[1].Level, LevelUser)
	}
	if layers[2].Level != LevelProject {
		t.Errorf("layers[2].Level = %q, want %q", layers[2].Level, LevelProject)
	}
}

func TestDiscoverPathsDeduplication(t *testing.T) {
	samePath, err := filepath.Abs("./skin-studio.yaml")
	if err != nil {
		t.Fatal(err)
	}

	layers := DiscoverPaths(DiscoverOptions{
		ProjectPath:      samePath,
		SystemConfigPath: samePath,
		UserConfigPath:   "/other/path/skin-studio.yaml",
	})

	if len(layers) != 2 {
		t.Fatalf("expected 2 layers (deduped), got %d", len(layers))
	}
}

func TestDiscoverPathsNoInherit(t *testing.T) {
	layers := DiscoverPaths(DiscoverOptions{
		ProjectPath:      "./skin-studio.yaml",
		SystemConfigPath: "/etc/skin-studio/skin-studio.yaml",
		UserConfigPath:   "/home/user/.config/skin-studio/skin-studio.yaml",
		NoInherit:        true,
	})
	if len(layers) != 1 || layers[0].Level != LevelProject {
		t.Fatalf("layers = %+v, want project only", layers)
	}
}

func TestDefaultUserConfigPathHonorsXDG(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME applies on linux only")
	}
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	want := filepath.Join(dir, "skin-studio", DefaultFileName)
	if got := defaultUserConfigPath(); got != want {
		t.Errorf("user path = %q, want %q", got, want)
	}
}

func TestLoadLayered(t *testing.T) {
	userDir := t.TempDir()
	projectDir := t.TempDir()
	userPath := writeConfig(t, userDir, "device: iPhone SE\ntemplate: templates/base.json\n")
	projectPath := writeConfig(t, projectDir, "version: 1\norientation: landscape\n")

	cfg, layers, err := LoadLayered(DiscoverOptions{
		ProjectPath:      projectPath,
		SystemConfigPath: filepath.Join(t.TempDir(), "missing.yaml"),
		UserConfigPath:   userPath,
	})
	if err != nil {
		t.Fatalf("LoadLayered: %v", err)
	}

	if cfg.Device != "iPhone SE" {
		t.Errorf("device = %q, want user layer value", cfg.Device)
	}
	if cfg.Orientation != "landscape" {
		t.Errorf("orientation = %q, want project layer value", cfg.Orientation)
	}
	if want := filepath.Join(userDir, "templates", "base.json"); cfg.Template != want {
		t.Errorf("template = %q, want %q", cfg.Template, want)
	}
	if cfg.Reference.Devices != Defaults().Reference.Devices {
		t.Errorf("devices = %q, want default", cfg.Reference.Devices)
	}

	loaded := 0
	for _, l := range layers {
		if l.Loaded {
			loaded++
		}
	}
	if loaded != 2 {
		t.Errorf("loaded layers = %d, want 2", loaded)
	}
}

func TestLoadLayeredKeepsURLs(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "version: 1\nreference:\n  devices: https://example.com/devices.json\n")

	cfg, _, err := LoadLayered(DiscoverOptions{ProjectPath: path, NoInherit: true})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Reference.Devices != "https://example.com/devices.json" {
		t.Errorf("devices = %q", cfg.Reference.Devices)
	}
}

func TestLoadLayeredMissingProject(t *testing.T) {
	cfg, _, err := LoadLayered(DiscoverOptions{
		ProjectPath: filepath.Join(t.TempDir(), DefaultFileName),
		NoInherit:   true,
	})
	if err != nil {
		t.Fatalf("missing project file should fall back to defaults: %v", err)
	}
	if cfg.Device != "iPhone 15 Pro" {
		t.Errorf("device = %q", cfg.Device)
	}
}

func TestLoadLayeredInvalidLayer(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "orientation: diagonal\n")
	_, _, err := LoadLayered(DiscoverOptions{ProjectPath: path, NoInherit: true})
	if err == nil {
		t.Fatal("expected validation error")
	}

	bad := writeConfig(t, t.TempDir(), "version: [\n")
	_, layers, err := LoadLayered(DiscoverOptions{ProjectPath: bad, NoInherit: true})
	if err == nil {
		t.Fatal("expected parse error")
	}
	if layers[len(layers)-1].Err == nil {
		t.Error("layer error not recorded")
	}
}

func TestEnvNoInherit(t *testing.T) {
	for _, tc := range []struct {
		val  string
		want bool
	}{
		{"1", true},
		{"true", true},
		{"TRUE", true},
		{"0", false},
		{"", false},
	} {
		t.Setenv("SKIN_STUDIO_NO_INHERIT", tc.val)
		if got := EnvNoInherit(); got != tc.want {
			t.Errorf("EnvNoInherit(%q) = %v, want %v", tc.val, got, tc.want)
		}
	}
}
