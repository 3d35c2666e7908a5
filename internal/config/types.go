package config

import "time"

// DefaultFileName is the project-level settings file.
const DefaultFileName = "skin-studio.yaml"

// Config represents the skin-studio.yaml settings file.
type Config struct {
	Version      int       `yaml:"version"`
	Storage      string    `yaml:"storage,omitempty"`
	Template     string    `yaml:"template,omitempty"`
	Reference    Reference `yaml:"reference,omitempty"`
	Device       string    `yaml:"device,omitempty"`
	Orientation  string    `yaml:"orientation,omitempty"`
	FetchTimeout string    `yaml:"fetch_timeout,omitempty"`
	MaxFetchSize int64     `yaml:"max_fetch_size,omitempty"`
	Server       Server    `yaml:"server,omitempty"`
}

// Reference locates the four reference catalogs. Each entry is a URL or a
// path relative to the settings file.
type Reference struct {
	Devices      string `yaml:"devices,omitempty"`
	Consoles     string `yaml:"consoles,omitempty"`
	Buttons      string `yaml:"buttons,omitempty"`
	AspectRatios string `yaml:"aspect_ratios,omitempty"`
}

// Server configures the HTTP API started by `serve`.
type Server struct {
	Addr  string `yaml:"addr,omitempty"`
	Debug bool   `yaml:"debug,omitempty"`
}

// Defaults returns the built-in settings layer.
func Defaults() *Config {
	return &Config{
		Version:  1,
		Template: "Reference/default_config.json",
		Reference: Reference{
			Devices:      "Reference/iphone-sizes.json",
			Consoles:     "Reference/gameTypeIdentifiers.json",
			Buttons:      "Reference/available_buttons.json",
			AspectRatios: "Reference/aspect_ratios.json",
		},
		Device:       "iPhone 15 Pro",
		Orientation:  "portrait",
		FetchTimeout: "10s",
		Server:       Server{Addr: ":8080"},
	}
}

// Timeout returns the parsed fetch timeout, or zero when unset or invalid.
// Validate reports invalid values.
func (c *Config) Timeout() time.Duration {
	if c.FetchTimeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.FetchTimeout)
	if err != nil {
		return 0
	}
	return d
}
