package config

import "fmt"

// Merge combines two configs where overlay takes precedence over base.
//   - version: must agree if both declare it (non-zero); fatal error on mismatch
//   - scalar fields: a non-zero overlay value replaces the base value
//   - reference: merged per catalog
//   - server.debug: true in either layer enables it
func Merge(base, overlay *Config) (*Config, error) {
	if base == nil {
		return overlay, nil
	}
	if overlay == nil {
		return base, nil
	}

	result := &Config{}

	if err := mergeVersion(base.Version, overlay.Version, &result.Version); err != nil {
		return nil, err
	}

	result.Storage = pick(base.Storage, overlay.Storage)
	result.Template = pick(base.Template, overlay.Template)
	result.Device = pick(base.Device, overlay.Device)
	result.Orientation = pick(base.Orientation, overlay.Orientation)
	result.FetchTimeout = pick(base.FetchTimeout, overlay.FetchTimeout)

	result.MaxFetchSize = base.MaxFetchSize
	if overlay.MaxFetchSize != 0 {
		result.MaxFetchSize = overlay.MaxFetchSize
	}

	result.Reference = Reference{
		Devices:      pick(base.Reference.Devices, overlay.Reference.Devices),
		Consoles:     pick(base.Reference.Consoles, overlay.Reference.Consoles),
		Buttons:      pick(base.Reference.Buttons, overlay.Reference.Buttons),
		AspectRatios: pick(base.Reference.AspectRatios, overlay.Reference.AspectRatios),
	}

	result.Server = Server{
		Addr:  pick(base.Server.Addr, overlay.Server.Addr),
		Debug: base.Server.Debug || overlay.Server.Debug,
	}

	return result, nil
}

// MergeAll merges multiple configs in order (lowest precedence first).
// Returns an error if any version mismatch is found.
func MergeAll(configs []*Config) (*Config, error) {
	if len(configs) == 0 {
		return nil, fmt.Errorf("no configs to merge")
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		var err error
		result, err = Merge(result, configs[i])
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func mergeVersion(base, overlay int, out *int) error {
	switch {
	case base == 0 && overlay == 0:
		*out = 0 // neither declares; validation will catch this
	case base == 0:
		*out = overlay
	case overlay == 0:
		*out = base
	case base == overlay:
		*out = base
	default:
		return fmt.Errorf("config version mismatch: one layer declares version %d, another declares version %d — all config layers must agree on version", base, overlay)
	}
	return nil
}

func pick(base, overlay string) string {
	if overlay != "" {
		return overlay
	}
	return base
}
