package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bianoble/skin-studio/pkg/skinstudio"
)

var (
	screenInput   string
	screenOutput  string
	screenWidth   float64
	screenRatio   string
	screenConsole bool
)

var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Add, change, move, resize or remove screens",
	Long: `Screens map a region of the emulator output (input frame) onto the
canvas (output frame). They are addressed by index, in export order.`,
}

var screenAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a screen",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, out, err := screenFrames()
		if err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}
		index, item, err := client.AddScreen(in, out)
		if err != nil {
			return err
		}
		info("Added screen %d", index)
		detail("id: %s", item.ID)
		return nil
	},
}

var screenUpdateCmd = &cobra.Command{
	Use:   "update <index>",
	Short: "Replace a screen's frames",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		in, out, err := screenFrames()
		if err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}
		if _, err := client.UpdateScreen(index, in, out); err != nil {
			return err
		}
		info("Updated screen %d", index)
		return nil
	},
}

var screenDeleteCmd = &cobra.Command{
	Use:   "delete <index>",
	Short: "Remove a screen; later screens move down one index",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}
		if err := client.DeleteScreen(index); err != nil {
			return err
		}
		info("Deleted screen %d", index)
		return nil
	},
}

var screenMoveCmd = &cobra.Command{
	Use:   "move <index> <x> <y>",
	Short: "Move a screen's output frame, kept inside the canvas",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		p, err := parsePoint(args[1], args[2])
		if err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}
		item, err := client.MoveScreen(index, p)
		if err != nil {
			return err
		}
		info("Screen %d output at %s", index, formatFrame(item.OutputFrame))
		return nil
	},
}

var screenResizeCmd = &cobra.Command{
	Use:   "resize <index>",
	Short: "Resize a screen's output frame",
	Long: `Resizes the output frame in one of three ways:
  --width W       scale to width W, keeping the current aspect ratio
  --ratio N/D     keep the width, set the height for ratio N:D
  --console       keep the width, use the selected console's aspect ratio`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parseIndex(args[0])
		if err != nil {
			return err
		}

		modes := 0
		for _, set := range []bool{screenWidth != 0, screenRatio != "", screenConsole} {
			if set {
				modes++
			}
		}
		if modes != 1 {
			return fmt.Errorf("exactly one of --width, --ratio or --console is required")
		}

		client, err := newClient()
		if err != nil {
			return err
		}

		var item skinstudio.ScreenItem
		switch {
		case screenWidth != 0:
			item, err = client.ResizeScreenToWidth(index, screenWidth)
		case screenRatio != "":
			item, err = client.ResizeScreenToRatio(index, screenRatio)
		default:
			item, err = client.ResizeScreenToConsole(cmd.Context(), index)
			reportWarnings(client)
		}
		if err != nil {
			return err
		}
		info("Screen %d output at %s", index, formatFrame(item.OutputFrame))
		return nil
	},
}

func screenFrames() (skinstudio.Frame, skinstudio.Frame, error) {
	in, err := parseFrame(screenInput)
	if err != nil {
		return skinstudio.Frame{}, skinstudio.Frame{}, fmt.Errorf("--input: %w", err)
	}
	out, err := parseFrame(screenOutput)
	if err != nil {
		return skinstudio.Frame{}, skinstudio.Frame{}, fmt.Errorf("--output: %w", err)
	}
	return in, out, nil
}

func parseIndex(s string) (int, error) {
	index, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid screen index '%s'", s)
	}
	return index, nil
}

func init() {
	for _, c := range []*cobra.Command{screenAddCmd, screenUpdateCmd} {
		c.Flags().StringVar(&screenInput, "input", "0,0,0,0", "input frame as x,y,width,height")
		c.Flags().StringVar(&screenOutput, "output", "0,0,0,0", "output frame as x,y,width,height")
	}
	screenResizeCmd.Flags().Float64Var(&screenWidth, "width", 0, "scale to this width")
	screenResizeCmd.Flags().StringVar(&screenRatio, "ratio", "", "aspect ratio as num/den")
	screenResizeCmd.Flags().BoolVar(&screenConsole, "console", false, "use the selected console's aspect ratio")

	screenCmd.AddCommand(screenAddCmd, screenUpdateCmd, screenDeleteCmd, screenMoveCmd, screenResizeCmd)
	rootCmd.AddCommand(screenCmd)
}
