// Package skin defines the skin configuration document: its canonical
// nested layout, the control and screen entries, and the operations that
// keep the exported form stable for downstream readers.
//
// Field order matters. The exported document is read positionally by at
// least one consumer, so every struct below declares its fields in the
// order they must appear on the wire, and encoding/json preserves
// declaration order.
package skin

import (
	"encoding/json"

	"github.com/bianoble/skin-studio/internal/geometry"
)

// Document is the persisted unit: one skin and its single populated layout.
type Document struct {
	Name               string          `json:"name"`
	Identifier         string          `json:"identifier"`
	GameTypeIdentifier *string         `json:"gameTypeIdentifier"`
	Debug              bool            `json:"debug"`
	Representations    Representations `json:"representations"`
}

// Representations groups layouts by device family.
type Representations struct {
	IPhone DeviceRepresentation `json:"iphone"`
}

// DeviceRepresentation groups layouts by display style.
type DeviceRepresentation struct {
	EdgeToEdge OrientationSet `json:"edgeToEdge"`
}

// OrientationSet holds one layout per orientation. Only portrait is edited.
type OrientationSet struct {
	Portrait Layout `json:"portrait"`
}

// Layout is the canvas a skin is authored against.
//
// Assets, ExtendedEdges and MenuInsets are carried through untouched.
type Layout struct {
	Assets        json.RawMessage `json:"assets,omitempty"`
	Items         []ControlItem   `json:"items"`
	MappingSize   geometry.Size   `json:"mappingSize"`
	Screens       []ScreenItem    `json:"screens"`
	ExtendedEdges json.RawMessage `json:"extendedEdges,omitempty"`
	MenuInsets    json.RawMessage `json:"menuInsets,omitempty"`
}

// ControlItem is a button, d-pad or thumbstick placed on the canvas.
// The variant is determined by which of Thumbstick and Inputs.Directions
// are set; see Kind.
type ControlItem struct {
	ID            string         `json:"id,omitempty"`
	Thumbstick    *Thumbstick    `json:"thumbstick,omitempty"`
	Inputs        Inputs         `json:"inputs"`
	Frame         geometry.Frame `json:"frame"`
	ExtendedEdges geometry.Edges `json:"extendedEdges"`
}

// Thumbstick carries the stick image. Data is an inline data URI and only
// lives in the editing session; exports drop it.
type Thumbstick struct {
	Name   string  `json:"name"`
	Data   string  `json:"data,omitempty"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Inputs is either a list of button names (encoded as a JSON array) or a
// set of directional inputs (encoded as an object).
type Inputs struct {
	Buttons    []string
	Directions *Directions
}

// Directions names the input fired for each direction of a d-pad or stick.
type Directions struct {
	Up    string `json:"up"`
	Down  string `json:"down"`
	Left  string `json:"left"`
	Right string `json:"right"`
}

// ScreenItem maps a rectangle of the console's video output onto the canvas.
type ScreenItem struct {
	ID          string         `json:"id,omitempty"`
	InputFrame  geometry.Frame `json:"inputFrame"`
	OutputFrame geometry.Frame `json:"outputFrame"`
}

// Kind identifies a ControlItem variant.
type Kind string

const (
	KindButton     Kind = "button"
	KindDPad       Kind = "dpad"
	KindThumbstick Kind = "thumbstick"
)

// Control type tags with a dedicated shape. Every other tag is a simple button.
const (
	TypeDPad       = "dpad"
	TypeThumbstick = "thumbstick"
)

// Portrait returns the editable layout.
func (d *Document) Portrait() *Layout {
	return &d.Representations.IPhone.EdgeToEdge.Portrait
}

// GameType returns the selected game type identifier, or "" when unset.
func (d *Document) GameType() string {
	if d.GameTypeIdentifier == nil {
		return ""
	}
	return *d.GameTypeIdentifier
}
