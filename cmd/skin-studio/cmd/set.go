package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bianoble/skin-studio/pkg/skinstudio"
)

var (
	setName       string
	setIdentifier string
	setDebug      bool
	setGame       string
)

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Change the skin's name, identifier, debug flag or console",
	Long: `Changes top-level skin settings. Only the flags given are changed.
--game takes a game type identifier such as com.rileytestut.delta.game.gba;
an empty value clears the console.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		var s skinstudio.Settings
		if flags.Changed("name") {
			s.Name = &setName
		}
		if flags.Changed("identifier") {
			s.Identifier = &setIdentifier
		}
		if flags.Changed("debug") {
			s.Debug = &setDebug
		}
		if !flags.Changed("game") && s == (skinstudio.Settings{}) {
			return fmt.Errorf("nothing to set — use --name, --identifier, --debug or --game")
		}

		client, err := newClient()
		if err != nil {
			return err
		}

		if s != (skinstudio.Settings{}) {
			if _, err := client.UpdateSettings(s); err != nil {
				return err
			}
		}
		if flags.Changed("game") {
			if _, err := client.SetGameType(setGame); err != nil {
				return err
			}
			if setGame != "" {
				if con, ok := client.Catalog(cmd.Context()).Console(setGame); ok {
					detail("console: %s", con.Console)
				} else {
					info("warning: %s is not in the console catalog", setGame)
				}
			}
		}
		info("Settings updated.")
		return nil
	},
}

func init() {
	setCmd.Flags().StringVar(&setName, "name", "", "skin name")
	setCmd.Flags().StringVar(&setIdentifier, "identifier", "", "skin identifier")
	setCmd.Flags().BoolVar(&setDebug, "debug", false, "debug flag")
	setCmd.Flags().StringVar(&setGame, "game", "", "game type identifier (empty clears)")
	rootCmd.AddCommand(setCmd)
}
