package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const configDirName = "skin-studio"

// ConfigLevel represents the precedence level of a configuration file.
type ConfigLevel string

const (
	LevelSystem  ConfigLevel = "system"
	LevelUser    ConfigLevel = "user"
	LevelProject ConfigLevel = "project"
)

// ConfigLayerInfo describes a discovered config file and its load status.
type ConfigLayerInfo struct {
	Err    error // non-nil if the file exists but failed to load
	Path   string
	Level  ConfigLevel
	Loaded bool
}

// DiscoverOptions controls how config paths are discovered.
type DiscoverOptions struct {
	// ProjectPath is the project-level config path (required).
	ProjectPath string

	// SystemConfigPath overrides the default system config path.
	// Empty means use the OS default. Set to a nonexistent path to skip.
	SystemConfigPath string

	// UserConfigPath overrides the default user config path.
	// Empty means use the OS default. Set to a nonexistent path to skip.
	UserConfigPath string

	// NoInherit skips the system and user layers.
	NoInherit bool
}

// DiscoverPaths returns the ordered list of config file paths to check,
// from lowest precedence (system) to highest (project).
// Paths are deduplicated by resolved absolute path.
func DiscoverPaths(opts DiscoverOptions) []ConfigLayerInfo {
	var layers []ConfigLayerInfo
	seen := make(map[string]bool)

	addLayer := func(level ConfigLevel, path string) {
		if path == "" {
			return
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		if seen[abs] {
			return
		}
		seen[abs] = true
		layers = append(layers, ConfigLayerInfo{
			Path:  path,
			Level: level,
		})
	}

	if !opts.NoInherit {
		sysPath := opts.SystemConfigPath
		if sysPath == "" {
			sysPath = defaultSystemConfigPath()
		}
		addLayer(LevelSystem, sysPath)

		userPath := opts.UserConfigPath
		if userPath == "" {
			userPath = defaultUserConfigPath()
		}
		addLayer(LevelUser, userPath)
	}

	// Project-level config (always last, highest precedence).
	addLayer(LevelProject, opts.ProjectPath)

	return layers
}

// LoadLayered merges the built-in defaults with every discovered layer that
// exists and validates the result. Missing files are skipped; a file that
// exists but cannot be parsed is fatal. The returned layers report what was
// loaded.
func LoadLayered(opts DiscoverOptions) (*Config, []ConfigLayerInfo, error) {
	layers := DiscoverPaths(opts)
	configs := []*Config{Defaults()}

	for i := range layers {
		cfg, err := parse(layers[i].Path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			layers[i].Err = err
			return nil, layers, err
		}
		rebase(cfg, filepath.Dir(layers[i].Path))
		layers[i].Loaded = true
		configs = append(configs, cfg)
	}

	merged, err := MergeAll(configs)
	if err != nil {
		return nil, layers, err
	}
	if errs := Validate(merged); len(errs) > 0 {
		return nil, layers, &ValidationError{Errors: errs}
	}
	return merged, layers, nil
}

// rebase makes the relative local paths of a layer relative to the
// directory holding it, so a user-level template resolves next to the
// user's config file. URLs are left untouched.
func rebase(cfg *Config, dir string) {
	for _, p := range []*string{
		&cfg.Template,
		&cfg.Storage,
		&cfg.Reference.Devices,
		&cfg.Reference.Consoles,
		&cfg.Reference.Buttons,
		&cfg.Reference.AspectRatios,
	} {
		*p = resolvePath(dir, *p)
	}
}

func resolvePath(dir, location string) string {
	if location == "" || filepath.IsAbs(location) || strings.Contains(location, "://") {
		return location
	}
	if strings.HasPrefix(location, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, location[2:])
		}
		return location
	}
	return filepath.Join(dir, location)
}

// defaultSystemConfigPath returns the platform-standard system config path.
func defaultSystemConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		pd := os.Getenv("ProgramData")
		if pd == "" {
			pd = `C:\ProgramData`
		}
		return filepath.Join(pd, configDirName, DefaultFileName)
	default: // linux, darwin, etc.
		return filepath.Join("/etc", configDirName, DefaultFileName)
	}
}

// defaultUserConfigPath returns the platform-standard user config path.
// os.UserConfigDir honors XDG_CONFIG_HOME.
func defaultUserConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, configDirName, DefaultFileName)
}

// EnvNoInherit returns true if SKIN_STUDIO_NO_INHERIT is set to "1" or "true".
func EnvNoInherit() bool {
	return envBoolTrue("SKIN_STUDIO_NO_INHERIT")
}

// envBoolTrue returns true if the env var is set to "1" or "true" (case-insensitive).
func envBoolTrue(key string) bool {
	v := os.Getenv(key)
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "1" || v == "true"
}
