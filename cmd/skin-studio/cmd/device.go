package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bianoble/skin-studio/pkg/skinstudio"
)

var deviceLandscape bool

var deviceCmd = &cobra.Command{
	Use:   "device [model]",
	Short: "Select the device the skin is laid out for",
	Long: `Sets the canvas size from the device catalog. Landscape swaps the
device's width and height. Without a model, lists the catalog.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		if len(args) == 0 {
			cat := client.Catalog(cmd.Context())
			reportWarnings(client)
			fmt.Printf("%-24s %s\n", "MODEL", "SIZE")
			for _, d := range cat.Devices {
				fmt.Printf("%-24s %gx%g\n", d.Model, d.LogicalWidth, d.LogicalHeight)
			}
			return nil
		}

		o := skinstudio.Portrait
		if deviceLandscape {
			o = skinstudio.Landscape
		}
		size, err := client.SetDevice(cmd.Context(), args[0], o)
		if err != nil {
			reportWarnings(client)
			return err
		}
		info("Canvas set to %gx%g (%s, %s)", size.Width, size.Height, args[0], o)
		return nil
	},
}

func init() {
	deviceCmd.Flags().BoolVar(&deviceLandscape, "landscape", false, "lay out in landscape")
	rootCmd.AddCommand(deviceCmd)
}
