package skin

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/tidwall/pretty"
)

var emptyObject = json.RawMessage(`{}`)

// Default returns the embedded document used when no template can be loaded:
// empty metadata and an empty portrait layout.
func Default() *Document {
	return &Document{
		Representations: Representations{
			IPhone: DeviceRepresentation{
				EdgeToEdge: OrientationSet{
					Portrait: Layout{
						Assets:        cloneRaw(emptyObject),
						Items:         []ControlItem{},
						Screens:       []ScreenItem{},
						ExtendedEdges: cloneRaw(emptyObject),
						MenuInsets:    cloneRaw(emptyObject),
					},
				},
			},
		},
	}
}

// NewID returns a fresh opaque identifier for a control or screen.
func NewID() string {
	return uuid.NewString()
}

// AssignIDs gives every control and screen without an id a new one.
// It reports whether anything changed.
func AssignIDs(d *Document) bool {
	changed := false
	layout := d.Portrait()
	for i := range layout.Items {
		if layout.Items[i].ID == "" {
			layout.Items[i].ID = NewID()
			changed = true
		}
	}
	for i := range layout.Screens {
		if layout.Screens[i].ID == "" {
			layout.Screens[i].ID = NewID()
			changed = true
		}
	}
	return changed
}

// Normalize replaces nil collections with empty ones so the document always
// encodes "items": [] and "screens": [] rather than null.
func Normalize(d *Document) {
	layout := d.Portrait()
	if layout.Items == nil {
		layout.Items = []ControlItem{}
	}
	if layout.Screens == nil {
		layout.Screens = []ScreenItem{}
	}
}

// Clone returns a deep copy of d.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := *d
	if d.GameTypeIdentifier != nil {
		g := *d.GameTypeIdentifier
		out.GameTypeIdentifier = &g
	}
	src := d.Portrait()
	dst := out.Portrait()
	dst.Assets = cloneRaw(src.Assets)
	dst.ExtendedEdges = cloneRaw(src.ExtendedEdges)
	dst.MenuInsets = cloneRaw(src.MenuInsets)
	if src.Items != nil {
		dst.Items = make([]ControlItem, len(src.Items))
		for i, item := range src.Items {
			dst.Items[i] = item.Clone()
		}
	}
	if src.Screens != nil {
		dst.Screens = append([]ScreenItem(nil), src.Screens...)
	}
	return &out
}

// ExportView returns a deep copy of d without thumbstick image payloads or
// editor ids. The original document is not modified.
func ExportView(d *Document) *Document {
	out := d.Clone()
	if out == nil {
		return nil
	}
	Normalize(out)
	layout := out.Portrait()
	for i := range layout.Items {
		layout.Items[i].ID = ""
		if ts := layout.Items[i].Thumbstick; ts != nil {
			ts.Data = ""
		}
	}
	for i := range layout.Screens {
		layout.Screens[i].ID = ""
	}
	return out
}

// Decode parses a document. Legacy flat control items are migrated.
func Decode(data []byte) (*Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parsing skin document: %w", err)
	}
	Normalize(&d)
	return &d, nil
}

// Encode writes d as compact JSON with fields in declared order.
func Encode(d *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("encoding skin document: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// EncodeIndent writes d as JSON indented by two spaces.
func EncodeIndent(d *Document) ([]byte, error) {
	data, err := Encode(d)
	if err != nil {
		return nil, err
	}
	return pretty.PrettyOptions(data, &pretty.Options{Width: 80, Indent: "  "}), nil
}

func cloneRaw(r json.RawMessage) json.RawMessage {
	if r == nil {
		return nil
	}
	return append(json.RawMessage(nil), r...)
}
