// Package controls manages the button, d-pad and thumbstick entries of the
// portrait layout. Entries are addressed by their stable id; the *ByType
// methods keep the older lookup by type tag for callers that predate ids.
package controls

import (
	"context"
	"fmt"

	"github.com/bianoble/skin-studio/internal/geometry"
	"github.com/bianoble/skin-studio/internal/logging"
	"github.com/bianoble/skin-studio/internal/session"
	"github.com/bianoble/skin-studio/internal/skin"
)

// Spec describes a control to create or replace.
type Spec struct {
	Type  string
	Frame geometry.Frame
	Edges geometry.Edges

	// Image is the thumbstick artwork. Ignored for other types.
	Image *Image
}

// Registry performs control CRUD against a session.
type Registry struct {
	session *session.Session
	log     *logging.Logger
}

// New creates a registry operating on s.
func New(s *session.Session) *Registry {
	return &Registry{session: s, log: s.Log()}
}

// Attachment tracks the asynchronous image attach that follows a thumbstick
// insert. A nil *Attachment is already complete.
type Attachment struct {
	done chan struct{}
	err  error
}

// Done is closed once the image has been attached or has failed.
func (a *Attachment) Done() <-chan struct{} {
	if a == nil {
		c := make(chan struct{})
		close(c)
		return c
	}
	return a.done
}

// Wait blocks until the attach finishes or ctx is done.
func (a *Attachment) Wait(ctx context.Context) error {
	if a == nil {
		return nil
	}
	select {
	case <-a.done:
		return a.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// locator picks the index of the item to act on, or -1.
type locator func(items []skin.ControlItem) int

func byID(id string) locator {
	return func(items []skin.ControlItem) int {
		for i, item := range items {
			if item.ID == id {
				return i
			}
		}
		return -1
	}
}

// byType matches the first item whose inputs correspond to typ. When two
// controls share a type only the first is reachable this way.
func byType(typ string) locator {
	return func(items []skin.ControlItem) int {
		for i, item := range items {
			if item.MatchesType(typ) {
				return i
			}
		}
		return -1
	}
}

// Add appends a new control, last in render order. A thumbstick with an
// Image is inserted without image data first; the image is attached by a
// second mutation tracked by the returned Attachment.
func (r *Registry) Add(spec Spec) (skin.ControlItem, *Attachment, error) {
	item, err := skin.NewControl(spec.Type, spec.Frame, spec.Edges)
	if err != nil {
		return skin.ControlItem{}, nil, err
	}
	item.ID = skin.NewID()
	if item.Kind() == skin.KindThumbstick && spec.Image != nil {
		item.Thumbstick.Name = spec.Image.Name
		item.Thumbstick.Width = spec.Image.Width
		item.Thumbstick.Height = spec.Image.Height
	}

	_, err = r.session.Update(func(doc *skin.Document) (skin.Patch, error) {
		layout := doc.Portrait()
		layout.Items = append(layout.Items, item)
		return skin.RepresentationsPatch(doc.Representations), nil
	})
	if err != nil {
		return skin.ControlItem{}, nil, err
	}
	r.log.Dbg("added control %s (%s)", item.Type(), item.ID)

	return item.Clone(), r.attachAsync(item, spec.Image), nil
}

// Update replaces the shape, frame and edges of the control with the given
// id, keeping its id and position. A thumbstick keeps its current artwork
// until a new Image has been attached; if that attach fails the old
// artwork stays.
func (r *Registry) Update(id string, spec Spec) (skin.ControlItem, *Attachment, error) {
	return r.update(byID(id), id, spec)
}

// UpdateByType is Update for the first control matching prevType.
func (r *Registry) UpdateByType(prevType string, spec Spec) (skin.ControlItem, *Attachment, error) {
	return r.update(byType(prevType), "type "+prevType, spec)
}

func (r *Registry) update(locate locator, ref string, spec Spec) (skin.ControlItem, *Attachment, error) {
	replacement, err := skin.NewControl(spec.Type, spec.Frame, spec.Edges)
	if err != nil {
		return skin.ControlItem{}, nil, err
	}

	var updated skin.ControlItem
	_, err = r.session.Update(func(doc *skin.Document) (skin.Patch, error) {
		layout := doc.Portrait()
		idx := locate(layout.Items)
		if idx < 0 {
			return skin.Patch{}, fmt.Errorf("control %s: %w", ref, skin.ErrNotFound)
		}
		prev := layout.Items[idx]
		replacement.ID = prev.ID
		// New artwork replaces the old only once it has decoded.
		if replacement.Kind() == skin.KindThumbstick && prev.Thumbstick != nil {
			ts := *prev.Thumbstick
			replacement.Thumbstick = &ts
		}
		layout.Items[idx] = replacement
		updated = replacement
		return skin.RepresentationsPatch(doc.Representations), nil
	})
	if err != nil {
		return skin.ControlItem{}, nil, err
	}
	return updated.Clone(), r.attachAsync(updated, spec.Image), nil
}

// Delete removes the control with the given id.
func (r *Registry) Delete(id string) error {
	return r.delete(byID(id), id)
}

// DeleteByType removes the first control matching typ.
func (r *Registry) DeleteByType(typ string) error {
	return r.delete(byType(typ), "type "+typ)
}

func (r *Registry) delete(locate locator, ref string) error {
	_, err := r.session.Update(func(doc *skin.Document) (skin.Patch, error) {
		layout := doc.Portrait()
		idx := locate(layout.Items)
		if idx < 0 {
			return skin.Patch{}, fmt.Errorf("control %s: %w", ref, skin.ErrNotFound)
		}
		layout.Items = append(layout.Items[:idx], layout.Items[idx+1:]...)
		return skin.RepresentationsPatch(doc.Representations), nil
	})
	return err
}

// Move places the control's outer box at outer. The frame origin becomes
// outer plus the leading edges; size and edges are unchanged.
func (r *Registry) Move(id string, outer geometry.Point) (skin.ControlItem, error) {
	return r.move(byID(id), id, outer)
}

// MoveByType is Move for the first control matching typ.
func (r *Registry) MoveByType(typ string, outer geometry.Point) (skin.ControlItem, error) {
	return r.move(byType(typ), "type "+typ, outer)
}

func (r *Registry) move(locate locator, ref string, outer geometry.Point) (skin.ControlItem, error) {
	var moved skin.ControlItem
	_, err := r.session.Update(func(doc *skin.Document) (skin.Patch, error) {
		layout := doc.Portrait()
		idx := locate(layout.Items)
		if idx < 0 {
			return skin.Patch{}, fmt.Errorf("control %s: %w", ref, skin.ErrNotFound)
		}
		item := &layout.Items[idx]
		origin := geometry.OriginFromOuter(outer, item.ExtendedEdges)
		item.Frame.X = origin.X
		item.Frame.Y = origin.Y
		moved = *item
		return skin.RepresentationsPatch(doc.Representations), nil
	})
	if err != nil {
		return skin.ControlItem{}, err
	}
	return moved.Clone(), nil
}

// Get returns the control with the given id.
func (r *Registry) Get(id string) (skin.ControlItem, error) {
	items, err := r.List()
	if err != nil {
		return skin.ControlItem{}, err
	}
	if idx := byID(id)(items); idx >= 0 {
		return items[idx], nil
	}
	return skin.ControlItem{}, fmt.Errorf("control %s: %w", id, skin.ErrNotFound)
}

// List returns the controls in render order.
func (r *Registry) List() ([]skin.ControlItem, error) {
	doc, err := r.session.Current()
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, session.ErrNotInitialized
	}
	return doc.Portrait().Items, nil
}

// OuterBox returns the hit-testable box of the control with the given id.
func (r *Registry) OuterBox(id string) (geometry.Rect, error) {
	item, err := r.Get(id)
	if err != nil {
		return geometry.Rect{}, err
	}
	return item.OuterRect(), nil
}

// HitTest returns the topmost control whose outer box contains p. Later
// items render above earlier ones.
func (r *Registry) HitTest(p geometry.Point) (skin.ControlItem, error) {
	items, err := r.List()
	if err != nil {
		return skin.ControlItem{}, err
	}
	for i := len(items) - 1; i >= 0; i-- {
		if items[i].OuterRect().Contains(p) {
			return items[i], nil
		}
	}
	return skin.ControlItem{}, fmt.Errorf("control at %v,%v: %w", p.X, p.Y, skin.ErrNotFound)
}

// attachAsync decodes img in the background and stores it on the control
// with item's id. Returns nil when there is nothing to attach.
func (r *Registry) attachAsync(item skin.ControlItem, img *Image) *Attachment {
	if img == nil || item.Kind() != skin.KindThumbstick {
		return nil
	}
	a := &Attachment{done: make(chan struct{})}
	go func() {
		defer close(a.done)
		a.err = r.attach(item.ID, img)
		if a.err != nil {
			r.log.Err("attaching thumbstick image: %v", a.err)
		}
	}()
	return a
}

func (r *Registry) attach(id string, img *Image) error {
	decoded, err := img.decode()
	if err != nil {
		return err
	}
	_, err = r.session.Update(func(doc *skin.Document) (skin.Patch, error) {
		layout := doc.Portrait()
		idx := byID(id)(layout.Items)
		if idx < 0 {
			return skin.Patch{}, fmt.Errorf("control %s: %w", id, skin.ErrNotFound)
		}
		item := &layout.Items[idx]
		if item.Kind() != skin.KindThumbstick {
			return skin.Patch{}, fmt.Errorf("control %s is no longer a thumbstick", id)
		}
		item.Thumbstick.Name = img.Name
		item.Thumbstick.Data = decoded.dataURI
		item.Thumbstick.Width = decoded.width
		item.Thumbstick.Height = decoded.height
		return skin.RepresentationsPatch(doc.Representations), nil
	})
	return err
}
