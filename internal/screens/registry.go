// Package screens manages the screen mappings of the portrait layout. A
// screen's index is its position in the exported list; ids are stable and
// the index for an id is derived on every read.
package screens

import (
	"fmt"

	"github.com/bianoble/skin-studio/internal/geometry"
	"github.com/bianoble/skin-studio/internal/reference"
	"github.com/bianoble/skin-studio/internal/session"
	"github.com/bianoble/skin-studio/internal/skin"
)

// RatioSource looks up a console's screen aspect ratio by console key.
type RatioSource interface {
	AspectRatio(consoleKey string) (num, den float64, err error)
}

// Registry performs screen CRUD against a session.
type Registry struct {
	session *session.Session
	ratios  RatioSource
}

// New creates a registry operating on s. ratios may be nil, in which case
// ResizeToConsole always fails with reference.ErrRatioNotFound.
func New(s *session.Session, ratios RatioSource) *Registry {
	return &Registry{session: s, ratios: ratios}
}

// Add appends a screen and returns its index (the list length before the
// append) along with the stored entry.
func (r *Registry) Add(input, output geometry.Frame) (int, skin.ScreenItem, error) {
	item := skin.ScreenItem{ID: skin.NewID(), InputFrame: input, OutputFrame: output}
	index := -1
	_, err := r.session.Update(func(doc *skin.Document) (skin.Patch, error) {
		layout := doc.Portrait()
		index = len(layout.Screens)
		return skin.ScreensPatch(append(layout.Screens, item)), nil
	})
	if err != nil {
		return -1, skin.ScreenItem{}, err
	}
	return index, item, nil
}

// Update replaces the screen at index wholesale, keeping its id.
func (r *Registry) Update(index int, input, output geometry.Frame) (skin.ScreenItem, error) {
	return r.mutate(index, func(s *skin.ScreenItem, _ *skin.Document) error {
		s.InputFrame = input
		s.OutputFrame = output
		return nil
	})
}

// Delete removes the screen at index. Later screens shift down by one.
func (r *Registry) Delete(index int) error {
	_, err := r.session.Update(func(doc *skin.Document) (skin.Patch, error) {
		layout := doc.Portrait()
		if err := checkIndex(index, layout.Screens); err != nil {
			return skin.Patch{}, err
		}
		return skin.ScreensPatch(append(layout.Screens[:index], layout.Screens[index+1:]...)), nil
	})
	return err
}

// Move sets the output origin, clamped so the output box stays inside
// container. A zero container means the document's mapping size. When
// that is zero too (no device applied yet) the origin is used unclamped.
func (r *Registry) Move(index int, origin geometry.Point, container geometry.Size) (skin.ScreenItem, error) {
	return r.mutate(index, func(s *skin.ScreenItem, doc *skin.Document) error {
		bounds := container
		if bounds == (geometry.Size{}) {
			bounds = doc.Portrait().MappingSize
		}
		p := origin
		if bounds != (geometry.Size{}) {
			p = geometry.ClampOrigin(origin, s.OutputFrame.Size(), bounds)
		}
		s.OutputFrame.X = p.X
		s.OutputFrame.Y = p.Y
		return nil
	})
}

// ResizeToLogicalWidth stretches the output to width, keeping its current
// aspect ratio.
func (r *Registry) ResizeToLogicalWidth(index int, width float64) (skin.ScreenItem, error) {
	return r.mutate(index, func(s *skin.ScreenItem, _ *skin.Document) error {
		h, err := geometry.ScaleToWidth(s.OutputFrame.Size(), width)
		if err != nil {
			return fmt.Errorf("screen %d: %w", index, err)
		}
		s.OutputFrame.Width = width
		s.OutputFrame.Height = h
		return nil
	})
}

// ResizeToConsoleAspectRatio keeps the output width and sets the height so
// that width:height is num:den.
func (r *Registry) ResizeToConsoleAspectRatio(index int, num, den float64) (skin.ScreenItem, error) {
	return r.mutate(index, func(s *skin.ScreenItem, _ *skin.Document) error {
		h, err := geometry.DeriveHeight(s.OutputFrame.Width, num, den)
		if err != nil {
			return fmt.Errorf("screen %d: %w", index, err)
		}
		s.OutputFrame.Height = h
		return nil
	})
}

// ResizeToConsole is ResizeToConsoleAspectRatio using the aspect ratio of
// the document's selected console.
func (r *Registry) ResizeToConsole(index int) (skin.ScreenItem, error) {
	return r.mutate(index, func(s *skin.ScreenItem, doc *skin.Document) error {
		key := reference.ConsoleKey(doc.GameType())
		if r.ratios == nil {
			return fmt.Errorf("%w for console '%s'", reference.ErrRatioNotFound, key)
		}
		num, den, err := r.ratios.AspectRatio(key)
		if err != nil {
			return err
		}
		h, err := geometry.DeriveHeight(s.OutputFrame.Width, num, den)
		if err != nil {
			return fmt.Errorf("screen %d: %w", index, err)
		}
		s.OutputFrame.Height = h
		return nil
	})
}

// List returns the screens in export order.
func (r *Registry) List() ([]skin.ScreenItem, error) {
	doc, err := r.session.Current()
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, session.ErrNotInitialized
	}
	return doc.Portrait().Screens, nil
}

// Get returns the screen at index.
func (r *Registry) Get(index int) (skin.ScreenItem, error) {
	list, err := r.List()
	if err != nil {
		return skin.ScreenItem{}, err
	}
	if err := checkIndex(index, list); err != nil {
		return skin.ScreenItem{}, err
	}
	return list[index], nil
}

// IndexOf returns the current index of the screen with the given id.
func (r *Registry) IndexOf(id string) (int, error) {
	list, err := r.List()
	if err != nil {
		return -1, err
	}
	for i, s := range list {
		if s.ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("screen %s: %w", id, skin.ErrNotFound)
}

func (r *Registry) mutate(index int, fn func(s *skin.ScreenItem, doc *skin.Document) error) (skin.ScreenItem, error) {
	var out skin.ScreenItem
	_, err := r.session.Update(func(doc *skin.Document) (skin.Patch, error) {
		layout := doc.Portrait()
		if err := checkIndex(index, layout.Screens); err != nil {
			return skin.Patch{}, err
		}
		screen := &layout.Screens[index]
		if err := fn(screen, doc); err != nil {
			return skin.Patch{}, err
		}
		out = *screen
		return skin.ScreensPatch(layout.Screens), nil
	})
	if err != nil {
		return skin.ScreenItem{}, err
	}
	return out, nil
}

func checkIndex(index int, list []skin.ScreenItem) error {
	if index < 0 || index >= len(list) {
		return fmt.Errorf("screen %d (of %d): %w", index, len(list), skin.ErrNotFound)
	}
	return nil
}
