package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bianoble/skin-studio/internal/geometry"
)

// Load reads and validates a single skin-studio.yaml settings file.
func Load(path string) (*Config, error) {
	cfg, err := parse(path)
	if err != nil {
		return nil, err
	}

	if errs := Validate(cfg); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	return cfg, nil
}

// parse reads a settings file without validating it. Layers are validated
// once, after merging.
func parse(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &cfg, nil
}

// ValidationError holds multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Validate checks a Config for semantic correctness.
// Returns a list of validation error messages (empty if valid).
func Validate(cfg *Config) []string {
	var errs []string

	if cfg.Version != 1 {
		errs = append(errs, fmt.Sprintf("unsupported version %d — only version 1 is supported", cfg.Version))
	}

	if cfg.Orientation != "" {
		if _, err := geometry.ParseOrientation(cfg.Orientation); err != nil {
			errs = append(errs, fmt.Sprintf("orientation: %v", err))
		}
	}

	if cfg.FetchTimeout != "" {
		d, err := time.ParseDuration(cfg.FetchTimeout)
		switch {
		case err != nil:
			errs = append(errs, fmt.Sprintf("fetch_timeout: invalid duration '%s' — use a value like '10s' or '500ms'", cfg.FetchTimeout))
		case d < 0:
			errs = append(errs, fmt.Sprintf("fetch_timeout: must not be negative, got '%s'", cfg.FetchTimeout))
		}
	}

	if cfg.MaxFetchSize < 0 {
		errs = append(errs, fmt.Sprintf("max_fetch_size: must not be negative, got %d", cfg.MaxFetchSize))
	}

	refs := []struct{ key, value string }{
		{"reference.devices", cfg.Reference.Devices},
		{"reference.consoles", cfg.Reference.Consoles},
		{"reference.buttons", cfg.Reference.Buttons},
		{"reference.aspect_ratios", cfg.Reference.AspectRatios},
	}
	for _, r := range refs {
		if strings.TrimSpace(r.value) != r.value {
			errs = append(errs, fmt.Sprintf("%s: location '%s' has leading or trailing whitespace", r.key, r.value))
		}
	}

	if cfg.Server.Addr != "" && !strings.Contains(cfg.Server.Addr, ":") {
		errs = append(errs, fmt.Sprintf("server.addr: '%s' must be host:port or :port", cfg.Server.Addr))
	}

	return errs
}
