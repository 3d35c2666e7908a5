package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Build-time variables set via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flags.
var (
	configPath string
	statePath  string
	verbose    bool
	quiet      bool
)

var rootCmd = &cobra.Command{
	Use:   "skin-studio",
	Short: "Author emulator skin configurations",
	Long: `skin-studio builds emulator skin configuration documents. It places
buttons, d-pads, thumbsticks and screen mappings on a device-sized canvas,
keeps the nested document consistent as they change, and exports the result.

Every edit is saved to a local snapshot, so each command continues the skin
started by 'skin-studio init'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("skin-studio %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "skin-studio.yaml", "path to settings file")
	rootCmd.PersistentFlags().StringVar(&statePath, "state", "", "path to the snapshot file (default: settings 'storage' or the XDG state dir)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "detailed output")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "minimal output (errors only)")

	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}
