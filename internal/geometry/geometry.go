// Package geometry holds the pure coordinate math behind skin layouts:
// frames and their extended hit areas, orientation swaps, aspect-ratio
// derived sizes, centering and clamping.
package geometry

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// HorizontalCorrection is subtracted from horizontally centered offsets.
// Existing skins were authored against this offset, so it stays literal.
const HorizontalCorrection = 2

var (
	// ErrInvalidRatio is returned when a ratio component is zero or not finite.
	ErrInvalidRatio = errors.New("invalid aspect ratio")

	// ErrInvalidDimensions is returned for degenerate widths or heights.
	ErrInvalidDimensions = errors.New("invalid dimensions")
)

// Orientation selects how a device's logical size maps onto the canvas.
type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// ParseOrientation accepts "portrait" or "landscape" (case-insensitive).
// An empty string means portrait.
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(Portrait):
		return Portrait, nil
	case string(Landscape):
		return Landscape, nil
	default:
		return "", fmt.Errorf("unknown orientation '%s' — must be one of: portrait, landscape", s)
	}
}

// Size is a width/height pair.
type Size struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Swap returns the size with width and height exchanged.
func (s Size) Swap() Size {
	return Size{Width: s.Height, Height: s.Width}
}

// Point is a position in canvas coordinates.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Frame is the rendered rectangle of a control or screen.
type Frame struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Origin returns the top-left corner of the frame.
func (f Frame) Origin() Point {
	return Point{X: f.X, Y: f.Y}
}

// Size returns the frame's width and height.
func (f Frame) Size() Size {
	return Size{Width: f.Width, Height: f.Height}
}

// Edges extend a control's hit area beyond its rendered frame.
type Edges struct {
	Top    float64 `json:"top" yaml:"top"`
	Bottom float64 `json:"bottom" yaml:"bottom"`
	Left   float64 `json:"left" yaml:"left"`
	Right  float64 `json:"right" yaml:"right"`
}

// UniformEdges returns edges extending v on every side.
func UniformEdges(v float64) Edges {
	return Edges{Top: v, Bottom: v, Left: v, Right: v}
}

// Rect is an axis-aligned rectangle. It is the outer, hit-testable box of
// a control once its extended edges are applied.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Contains reports whether p lies inside r. The right and bottom borders
// are exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// MappingSize returns the canvas size for a device whose portrait logical
// size is logical. Landscape swaps width and height.
func MappingSize(logical Size, o Orientation) Size {
	if o == Landscape {
		return logical.Swap()
	}
	return logical
}

// OuterRect expands frame by edges.
func OuterRect(frame Frame, edges Edges) Rect {
	return Rect{
		X:      frame.X - edges.Left,
		Y:      frame.Y - edges.Top,
		Width:  frame.Width + edges.Left + edges.Right,
		Height: frame.Height + edges.Top + edges.Bottom,
	}
}

// InnerOffset is the position of the rendered control inside its outer box.
func InnerOffset(edges Edges) Point {
	return Point{X: edges.Left, Y: edges.Top}
}

// FrameFromOuter is the inverse of OuterRect.
func FrameFromOuter(outer Rect, edges Edges) Frame {
	inner := InnerOffset(edges)
	return Frame{
		X:      outer.X + inner.X,
		Y:      outer.Y + inner.Y,
		Width:  outer.Width - edges.Left - edges.Right,
		Height: outer.Height - edges.Top - edges.Bottom,
	}
}

// OriginFromOuter returns the frame origin for a control whose outer box
// has been moved to outer.
func OriginFromOuter(outer Point, edges Edges) Point {
	return Point{X: outer.X + edges.Left, Y: outer.Y + edges.Top}
}

// DeriveHeight returns width scaled by den/num, so that width:height
// equals num:den.
func DeriveHeight(width, num, den float64) (float64, error) {
	if !usableRatioPart(num) || !usableRatioPart(den) {
		return 0, fmt.Errorf("%w: %v/%v", ErrInvalidRatio, num, den)
	}
	return width * (den / num), nil
}

// ScaleToWidth returns the height that keeps current's aspect ratio at the
// given width.
func ScaleToWidth(current Size, width float64) (float64, error) {
	if current.Width == 0 || current.Height == 0 {
		return 0, fmt.Errorf("%w: %vx%v", ErrInvalidDimensions, current.Width, current.Height)
	}
	return width * current.Height / current.Width, nil
}

// ParseRatio parses a ratio written as "num/den", e.g. "4/3".
func ParseRatio(s string) (num, den float64, err error) {
	parts := strings.SplitN(strings.TrimSpace(s), "/", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: '%s' — expected 'numerator/denominator'", ErrInvalidRatio, s)
	}
	num, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: '%s': %v", ErrInvalidRatio, s, err)
	}
	den, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: '%s': %v", ErrInvalidRatio, s, err)
	}
	if !usableRatioPart(num) || !usableRatioPart(den) {
		return 0, 0, fmt.Errorf("%w: '%s'", ErrInvalidRatio, s)
	}
	return num, den, nil
}

func usableRatioPart(v float64) bool {
	return v != 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}

// CenterWithin returns the offset that centers an element of size element
// inside container. Halves round toward positive infinity.
func CenterWithin(container, element float64) float64 {
	return math.Floor((container-element)/2 + 0.5)
}

// CenterHorizontally is CenterWithin with the horizontal correction applied.
func CenterHorizontally(container, element float64) float64 {
	return CenterWithin(container, element) - HorizontalCorrection
}

// Clamp limits v to [lo, hi]. When hi < lo the lower bound wins, so an
// element larger than its container is pinned to the origin.
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

// ClampOrigin keeps a box of size element at origin inside container.
func ClampOrigin(origin Point, element, container Size) Point {
	return Point{
		X: Clamp(origin.X, 0, container.Width-element.Width),
		Y: Clamp(origin.Y, 0, container.Height-element.Height),
	}
}
