package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	initScaffold bool
	initForce    bool
)

// settingsTemplate is the starter skin-studio.yaml written by --scaffold.
const settingsTemplate = `# skin-studio settings
version: 1

# Template the new skin starts from (URL or path relative to this file).
template: Reference/default_config.json

# Reference catalogs. Each one may be a URL or a local path.
reference:
  devices: Reference/iphone-sizes.json
  consoles: Reference/gameTypeIdentifiers.json
  buttons: Reference/available_buttons.json
  aspect_ratios: Reference/aspect_ratios.json

device: iPhone 15 Pro
orientation: portrait   # or landscape

fetch_timeout: 10s
# max_fetch_size: 1048576

# storage: ~/.local/state/skin-studio/currentConfig.json

# server:
#   addr: ":8080"
#   debug: false
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Start a new skin from the template",
	Long: `Starts a new skin from the configured template and loads the reference
catalogs. Any skin in the snapshot is replaced. When the template or a
catalog cannot be loaded, the skin starts empty and a warning is shown.

Use --scaffold to first write a starter skin-studio.yaml (--force to
overwrite an existing one).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if initScaffold {
			if err := writeScaffold(); err != nil {
				return err
			}
		}

		client, err := newClient()
		if err != nil {
			return err
		}
		doc, err := client.Init(cmd.Context())
		if err != nil {
			return err
		}
		reportWarnings(client)

		layout := doc.Portrait()
		info("Started skin %q", doc.Name)
		info("  canvas:   %gx%g", layout.MappingSize.Width, layout.MappingSize.Height)
		info("  controls: %d", len(layout.Items))
		info("  screens:  %d", len(layout.Screens))
		detail("snapshot: %s", client.StatePath())
		return nil
	},
}

func writeScaffold() error {
	outPath, err := filepath.Abs(configPath)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	if !initForce {
		if _, err := os.Stat(outPath); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", outPath)
		}
	}

	if err := os.WriteFile(outPath, []byte(settingsTemplate), 0644); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	info("Created %s", outPath)
	return nil
}

func init() {
	initCmd.Flags().BoolVar(&initScaffold, "scaffold", false, "write a starter skin-studio.yaml first")
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing settings file with --scaffold")
	rootCmd.AddCommand(initCmd)
}
