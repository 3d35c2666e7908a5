package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var buttonsCmd = &cobra.Command{
	Use:   "buttons",
	Short: "List the control types offered for the selected console",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		opts, err := client.ButtonTypes(cmd.Context())
		if err != nil {
			return err
		}
		reportWarnings(client)
		if len(opts) == 0 {
			info("No console selected — use 'skin-studio set --game <identifier>'.")
			if keys := client.Catalog(cmd.Context()).ConsoleKeys(); len(keys) > 0 {
				info("Consoles with buttons: %s", strings.Join(keys, ", "))
			}
			return nil
		}
		fmt.Printf("%-20s %s\n", "TYPE", "LABEL")
		for _, o := range opts {
			fmt.Printf("%-20s %s\n", o.Type, o.Label)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(buttonsCmd)
}
