package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the skin configuration",
	Long: `Prints the skin as indented JSON, or writes it to the file given by -o.
The export leaves out thumbstick image data and editor ids.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		if exportOutput == "" {
			data, err := client.ExportJSON()
			if err != nil {
				return err
			}
			fmt.Print(string(data))
			return nil
		}

		if err := client.WriteExport(exportOutput); err != nil {
			return err
		}
		info("Wrote %s", exportOutput)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}
