package skin

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/bianoble/skin-studio/internal/geometry"
)

var (
	// ErrMissingType is returned when a control is created without a type.
	ErrMissingType = errors.New("control type is required")

	// ErrNotFound is returned when no control or screen matches a lookup.
	ErrNotFound = errors.New("not found")
)

// DPadDirections are the fixed inputs of a d-pad.
var DPadDirections = Directions{Up: "up", Down: "down", Left: "left", Right: "right"}

// ThumbstickDirections are the fixed inputs of an analog stick.
var ThumbstickDirections = Directions{
	Up:    "analogStickUp",
	Down:  "analogStickDown",
	Left:  "analogStickLeft",
	Right: "analogStickRight",
}

// NewControl builds the variant matching typ. The thumbstick image, if any,
// is attached separately.
func NewControl(typ string, frame geometry.Frame, edges geometry.Edges) (ControlItem, error) {
	if typ == "" {
		return ControlItem{}, ErrMissingType
	}
	item := ControlItem{Frame: frame, ExtendedEdges: edges}
	switch typ {
	case TypeDPad:
		d := DPadDirections
		item.Inputs = Inputs{Directions: &d}
	case TypeThumbstick:
		d := ThumbstickDirections
		item.Inputs = Inputs{Directions: &d}
		item.Thumbstick = &Thumbstick{}
	default:
		item.Inputs = Inputs{Buttons: []string{typ}}
	}
	return item, nil
}

// Kind reports which variant c is.
func (c ControlItem) Kind() Kind {
	switch {
	case c.Thumbstick != nil:
		return KindThumbstick
	case c.Inputs.Directions != nil:
		return KindDPad
	default:
		return KindButton
	}
}

// Type returns the tag c was created from: "dpad", "thumbstick", or the
// button name of a simple button.
func (c ControlItem) Type() string {
	switch c.Kind() {
	case KindThumbstick:
		return TypeThumbstick
	case KindDPad:
		return TypeDPad
	}
	if len(c.Inputs.Buttons) == 0 {
		return ""
	}
	return c.Inputs.Buttons[0]
}

// MatchesType reports whether c's inputs correspond to the type tag typ.
func (c ControlItem) MatchesType(typ string) bool {
	if typ == "" {
		return false
	}
	return c.Type() == typ
}

// OuterRect is the hit-testable box of c.
func (c ControlItem) OuterRect() geometry.Rect {
	return geometry.OuterRect(c.Frame, c.ExtendedEdges)
}

// Clone returns a deep copy of c.
func (c ControlItem) Clone() ControlItem {
	out := c
	if c.Thumbstick != nil {
		t := *c.Thumbstick
		out.Thumbstick = &t
	}
	out.Inputs = c.Inputs.Clone()
	return out
}

// Clone returns a deep copy of in.
func (in Inputs) Clone() Inputs {
	var out Inputs
	if in.Buttons != nil {
		out.Buttons = append([]string(nil), in.Buttons...)
	}
	if in.Directions != nil {
		d := *in.Directions
		out.Directions = &d
	}
	return out
}

// MarshalJSON writes directional inputs as an object and buttons as an array.
func (in Inputs) MarshalJSON() ([]byte, error) {
	if in.Directions != nil {
		return json.Marshal(in.Directions)
	}
	buttons := in.Buttons
	if buttons == nil {
		buttons = []string{}
	}
	return json.Marshal(buttons)
}

// UnmarshalJSON accepts either shape written by MarshalJSON.
func (in *Inputs) UnmarshalJSON(data []byte) error {
	r := gjson.ParseBytes(data)
	switch {
	case r.IsArray():
		var buttons []string
		if err := json.Unmarshal(data, &buttons); err != nil {
			return fmt.Errorf("parsing button inputs: %w", err)
		}
		*in = Inputs{Buttons: buttons}
	case r.IsObject():
		var d Directions
		if err := json.Unmarshal(data, &d); err != nil {
			return fmt.Errorf("parsing directional inputs: %w", err)
		}
		*in = Inputs{Directions: &d}
	case r.Type == gjson.Null:
		*in = Inputs{}
	default:
		return fmt.Errorf("inputs must be an array or an object, got %s", r.Type)
	}
	return nil
}

// UnmarshalJSON reads a control item. Items written by earlier releases of
// the editor were flat ({type, x, y, width, height, extendedEdges}); those
// are converted to the canonical shape.
func (c *ControlItem) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("invalid control item JSON")
	}
	r := gjson.ParseBytes(data)
	if !r.IsObject() {
		return fmt.Errorf("control item must be an object, got %s", r.Type)
	}

	if !r.Get("frame").Exists() && r.Get("type").Exists() {
		return c.fromLegacy(r)
	}

	type plain ControlItem
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*c = ControlItem(p)
	return nil
}

func (c *ControlItem) fromLegacy(r gjson.Result) error {
	frame := geometry.Frame{
		X:      r.Get("x").Float(),
		Y:      r.Get("y").Float(),
		Width:  r.Get("width").Float(),
		Height: r.Get("height").Float(),
	}
	edges := geometry.Edges{
		Top:    r.Get("extendedEdges.top").Float(),
		Bottom: r.Get("extendedEdges.bottom").Float(),
		Left:   r.Get("extendedEdges.left").Float(),
		Right:  r.Get("extendedEdges.right").Float(),
	}
	item, err := NewControl(r.Get("type").String(), frame, edges)
	if err != nil {
		return fmt.Errorf("legacy control item: %w", err)
	}
	item.ID = r.Get("id").String()
	*c = item
	return nil
}
