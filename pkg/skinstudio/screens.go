package skinstudio

import (
	"context"

	"github.com/bianoble/skin-studio/internal/geometry"
)

// AddScreen appends a screen mapping and returns its index.
func (c *Client) AddScreen(input, output Frame) (int, ScreenItem, error) {
	return c.screens.Add(input, output)
}

// UpdateScreen replaces the screen at index.
func (c *Client) UpdateScreen(index int, input, output Frame) (ScreenItem, error) {
	return c.screens.Update(index, input, output)
}

// DeleteScreen removes the screen at index.
func (c *Client) DeleteScreen(index int) error {
	return c.screens.Delete(index)
}

// MoveScreen moves the output frame, clamped to the canvas.
func (c *Client) MoveScreen(index int, origin Point) (ScreenItem, error) {
	return c.screens.Move(index, origin, Size{})
}

// ResizeScreenToWidth scales the output frame to width, keeping its ratio.
func (c *Client) ResizeScreenToWidth(index int, width float64) (ScreenItem, error) {
	return c.screens.ResizeToLogicalWidth(index, width)
}

// ResizeScreenToRatio sets the output height from a "num/den" ratio.
func (c *Client) ResizeScreenToRatio(index int, ratio string) (ScreenItem, error) {
	num, den, err := geometry.ParseRatio(ratio)
	if err != nil {
		return ScreenItem{}, err
	}
	return c.screens.ResizeToConsoleAspectRatio(index, num, den)
}

// ResizeScreenToConsole sets the output height from the selected console's
// aspect ratio, loading reference data if needed.
func (c *Client) ResizeScreenToConsole(ctx context.Context, index int) (ScreenItem, error) {
	c.Catalog(ctx)
	return c.screens.ResizeToConsole(index)
}

// Screen returns the screen at index.
func (c *Client) Screen(index int) (ScreenItem, error) {
	return c.screens.Get(index)
}

// Screens returns the screens in export order.
func (c *Client) Screens() ([]ScreenItem, error) {
	return c.screens.List()
}

// ScreenIndex returns the current index of the screen with the given id.
func (c *Client) ScreenIndex(id string) (int, error) {
	return c.screens.IndexOf(id)
}
