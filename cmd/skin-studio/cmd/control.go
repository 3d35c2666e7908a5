package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bianoble/skin-studio/pkg/skinstudio"
)

var (
	controlFrame       string
	controlEdges       string
	controlImage       string
	controlImageWidth  float64
	controlImageHeight float64
	controlImageMax    int
	controlByType      bool
)

var controlCmd = &cobra.Command{
	Use:   "control",
	Short: "Add, change, move or remove controls",
	Long: `Controls are buttons, d-pads and thumbsticks. Each one has a stable id
(see 'skin-studio show'). With --by-type, update, delete and move address
the first control of a type instead.`,
}

var controlAddCmd = &cobra.Command{
	Use:   "add <type>",
	Short: "Add a control",
	Long: `Adds a control of the given type. "dpad" adds a d-pad, "thumbstick" an
analog stick (artwork from --image), anything else a simple button.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, closeImage, err := controlSpec(args[0])
		if err != nil {
			return err
		}
		defer closeImage()

		client, err := newClient()
		if err != nil {
			return err
		}
		item, att, err := client.AddControl(spec)
		if err != nil {
			return err
		}
		if err := att.Wait(cmd.Context()); err != nil {
			errorf("attaching %s: %v", controlImage, err)
		}
		info("Added %s %s", item.Type(), item.ID)
		return nil
	},
}

var controlUpdateCmd = &cobra.Command{
	Use:   "update <id|type> <new-type>",
	Short: "Replace a control in place",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, closeImage, err := controlSpec(args[1])
		if err != nil {
			return err
		}
		defer closeImage()

		client, err := newClient()
		if err != nil {
			return err
		}

		var (
			item skinstudio.ControlItem
			att  *skinstudio.Attachment
		)
		if controlByType {
			item, att, err = client.UpdateControlByType(args[0], spec)
		} else {
			item, att, err = client.UpdateControl(args[0], spec)
		}
		if err != nil {
			return err
		}
		if err := att.Wait(cmd.Context()); err != nil {
			errorf("attaching %s: %v", controlImage, err)
		}
		info("Updated %s %s", item.Type(), item.ID)
		return nil
	},
}

var controlDeleteCmd = &cobra.Command{
	Use:   "delete <id|type>",
	Short: "Remove a control",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		if controlByType {
			err = client.DeleteControlByType(args[0])
		} else {
			err = client.DeleteControl(args[0])
		}
		if err != nil {
			return err
		}
		info("Deleted %s", args[0])
		return nil
	},
}

var controlMoveCmd = &cobra.Command{
	Use:   "move <id|type> <x> <y>",
	Short: "Move a control's outer box to x,y",
	Long: `Moves a control so the top-left of its outer box (frame plus extended
edges) is at x,y. The frame origin becomes x+left, y+top.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := parsePoint(args[1], args[2])
		if err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}

		var item skinstudio.ControlItem
		if controlByType {
			item, err = client.MoveControlByType(args[0], p)
		} else {
			item, err = client.MoveControl(args[0], p)
		}
		if err != nil {
			return err
		}
		info("Moved %s to %s", item.Type(), formatFrame(item.Frame))
		return nil
	},
}

// controlSpec builds a spec from the shared flags. The returned func closes
// the image file, if any.
func controlSpec(typ string) (skinstudio.ControlSpec, func(), error) {
	noop := func() {}
	frame, err := parseFrame(controlFrame)
	if err != nil {
		return skinstudio.ControlSpec{}, noop, err
	}
	edges, err := parseEdges(controlEdges)
	if err != nil {
		return skinstudio.ControlSpec{}, noop, err
	}
	spec := skinstudio.ControlSpec{Type: typ, Frame: frame, Edges: edges}

	if controlImage == "" {
		return spec, noop, nil
	}
	f, err := os.Open(controlImage)
	if err != nil {
		return skinstudio.ControlSpec{}, noop, fmt.Errorf("opening image: %w", err)
	}
	spec.Image = &skinstudio.Image{
		Name:         controlImage,
		Reader:       f,
		Width:        controlImageWidth,
		Height:       controlImageHeight,
		MaxDimension: controlImageMax,
	}
	return spec, func() { f.Close() }, nil
}

func init() {
	for _, c := range []*cobra.Command{controlAddCmd, controlUpdateCmd} {
		c.Flags().StringVar(&controlFrame, "frame", "0,0,0,0", "frame as x,y,width,height")
		c.Flags().StringVar(&controlEdges, "edges", "", "extended edges: one value, or top,bottom,left,right")
		c.Flags().StringVar(&controlImage, "image", "", "thumbstick artwork (PNG, JPEG, GIF, BMP, WebP)")
		c.Flags().Float64Var(&controlImageWidth, "image-width", 0, "thumbstick width (default: image width)")
		c.Flags().Float64Var(&controlImageHeight, "image-height", 0, "thumbstick height (default: image height)")
		c.Flags().IntVar(&controlImageMax, "image-max", 0, "downsize artwork to fit this many pixels")
	}
	for _, c := range []*cobra.Command{controlUpdateCmd, controlDeleteCmd, controlMoveCmd} {
		c.Flags().BoolVar(&controlByType, "by-type", false, "address the first control of the given type")
	}

	controlCmd.AddCommand(controlAddCmd, controlUpdateCmd, controlDeleteCmd, controlMoveCmd)
	rootCmd.AddCommand(controlCmd)
}
