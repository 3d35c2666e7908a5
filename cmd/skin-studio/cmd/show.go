package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bianoble/skin-studio/internal/skin"
	"github.com/bianoble/skin-studio/pkg/skinstudio"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current skin",
	Long: `Lists the controls and screens of the current skin with their ids and
frames. Use --json to print the full document, including ids and
thumbstick image data that the export leaves out.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		doc, err := client.Current()
		if err != nil {
			return err
		}
		if doc == nil {
			return fmt.Errorf("%w — run 'skin-studio init'", skinstudio.ErrNotInitialized)
		}

		if showJSON {
			data, err := skin.EncodeIndent(doc)
			if err != nil {
				return err
			}
			fmt.Print(string(data))
			return nil
		}

		game := doc.GameType()
		if game == "" {
			game = "(none)"
		}
		layout := doc.Portrait()
		fmt.Printf("name:       %s\n", doc.Name)
		fmt.Printf("identifier: %s\n", doc.Identifier)
		fmt.Printf("game type:  %s\n", game)
		fmt.Printf("debug:      %t\n", doc.Debug)
		fmt.Printf("canvas:     %gx%g\n", layout.MappingSize.Width, layout.MappingSize.Height)

		fmt.Println()
		fmt.Printf("%-36s %-14s %s\n", "CONTROL", "TYPE", "FRAME")
		for _, item := range layout.Items {
			fmt.Printf("%-36s %-14s %s\n", item.ID, item.Type(), formatFrame(item.Frame))
		}

		fmt.Println()
		fmt.Printf("%-5s %-36s %-22s %s\n", "INDEX", "SCREEN", "INPUT", "OUTPUT")
		for i, s := range layout.Screens {
			fmt.Printf("%-5d %-36s %-22s %s\n", i, s.ID, formatFrame(s.InputFrame), formatFrame(s.OutputFrame))
		}
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "print the full document as JSON")
	rootCmd.AddCommand(showCmd)
}
