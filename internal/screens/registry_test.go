package screens

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/bianoble/skin-studio/internal/geometry"
	"github.com/bianoble/skin-studio/internal/reference"
	"github.com/bianoble/skin-studio/internal/session"
	"github.com/bianoble/skin-studio/internal/skin"
	"github.com/bianoble/skin-studio/internal/store"
)

func newRegistry(t *testing.T, ratios RatioSource) (*Registry, *session.Session) {
	t.Helper()
	s := session.New(session.Options{Store: &store.MemoryStore{}})
	if _, err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return New(s, ratios), s
}

var (
	gbaInput  = geometry.Frame{Width: 240, Height: 160}
	topOutput = geometry.Frame{X: 0, Y: 50, Width: 200, Height: 100}
)

func TestAddReturnsPreAppendIndex(t *testing.T) {
	r, _ := newRegistry(t, nil)
	for want := 0; want < 3; want++ {
		idx, item, err := r.Add(gbaInput, topOutput)
		if err != nil {
			t.Fatalf("Add: %v", err)
		}
		if idx != want {
			t.Errorf("index = %d, want %d", idx, want)
		}
		if got, _ := r.IndexOf(item.ID); got != idx {
			t.Errorf("IndexOf = %d, want %d", got, idx)
		}
	}
}

func TestAddUpdateExport(t *testing.T) {
	r, s := newRegistry(t, nil)
	_, _, _ = r.Add(gbaInput, topOutput)
	idx, _, err := r.Add(gbaInput, topOutput)
	if err != nil {
		t.Fatal(err)
	}

	newOut := geometry.Frame{X: 10, Y: 400, Width: 373, Height: 249}
	if _, err := r.Update(idx, gbaInput, newOut); err != nil {
		t.Fatalf("Update: %v", err)
	}

	view, err := s.ExportView()
	if err != nil {
		t.Fatal(err)
	}
	screens := view.Portrait().Screens
	if len(screens) != 2 {
		t.Fatalf("screens = %d, want 2", len(screens))
	}
	if screens[idx].OutputFrame != newOut {
		t.Errorf("output = %+v, want %+v", screens[idx].OutputFrame, newOut)
	}
	if screens[0].OutputFrame != topOutput {
		t.Error("other screen modified")
	}
}

func TestUpdateOutOfBounds(t *testing.T) {
	r, s := newRegistry(t, nil)
	_, _, _ = r.Add(gbaInput, topOutput)
	before, _ := s.ExportJSON()

	for _, idx := range []int{-1, 1, 5} {
		if _, err := r.Update(idx, gbaInput, topOutput); !errors.Is(err, skin.ErrNotFound) {
			t.Errorf("Update(%d) error = %v, want ErrNotFound", idx, err)
		}
	}
	after, _ := s.ExportJSON()
	if !bytes.Equal(before, after) {
		t.Error("failed update changed the document")
	}
}

func TestDeleteShiftsIndexes(t *testing.T) {
	r, _ := newRegistry(t, nil)
	_, first, _ := r.Add(gbaInput, topOutput)
	_, second, _ := r.Add(gbaInput, topOutput)

	if err := r.Delete(0); err != nil {
		t.Fatal(err)
	}
	if idx, _ := r.IndexOf(second.ID); idx != 0 {
		t.Errorf("second screen index = %d, want 0", idx)
	}
	if _, err := r.IndexOf(first.ID); !errors.Is(err, skin.ErrNotFound) {
		t.Errorf("deleted screen still found: %v", err)
	}
	if err := r.Delete(3); !errors.Is(err, skin.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestMoveClamped(t *testing.T) {
	r, _ := newRegistry(t, nil)
	idx, _, _ := r.Add(gbaInput, topOutput)
	container := geometry.Size{Width: 393, Height: 852}

	got, err := r.Move(idx, geometry.Point{X: 300, Y: -40}, container)
	if err != nil {
		t.Fatal(err)
	}
	if got.OutputFrame.X != 193 || got.OutputFrame.Y != 0 {
		t.Errorf("origin = %v,%v, want 193,0", got.OutputFrame.X, got.OutputFrame.Y)
	}
	if got.OutputFrame.Width != 200 || got.OutputFrame.Height != 100 {
		t.Error("move changed the size")
	}
	if got.InputFrame != gbaInput {
		t.Error("move changed the input frame")
	}

	got, _ = r.Move(idx, geometry.Point{X: 20, Y: 900}, container)
	if got.OutputFrame.Y != 752 {
		t.Errorf("y = %v, want 752", got.OutputFrame.Y)
	}
}

func TestMoveUsesMappingSize(t *testing.T) {
	r, s := newRegistry(t, nil)
	reps := skin.Default().Representations
	reps.IPhone.EdgeToEdge.Portrait.MappingSize = geometry.Size{Width: 393, Height: 852}
	if _, err := s.Merge(skin.RepresentationsPatch(reps)); err != nil {
		t.Fatal(err)
	}
	idx, _, _ := r.Add(gbaInput, topOutput)

	got, err := r.Move(idx, geometry.Point{X: 1000, Y: 1000}, geometry.Size{})
	if err != nil {
		t.Fatal(err)
	}
	if got.OutputFrame.X != 193 || got.OutputFrame.Y != 752 {
		t.Errorf("origin = %v,%v", got.OutputFrame.X, got.OutputFrame.Y)
	}
}

func TestMoveWithoutBoundsUnclamped(t *testing.T) {
	r, s := newRegistry(t, nil)
	idx, _, _ := r.Add(gbaInput, geometry.Frame{Width: 100, Height: 50})

	got, err := r.Move(idx, geometry.Point{X: 40, Y: 60}, geometry.Size{})
	if err != nil {
		t.Fatal(err)
	}
	if got.OutputFrame != (geometry.Frame{X: 40, Y: 60, Width: 100, Height: 50}) {
		t.Errorf("output = %+v, want 40,60 100x50", got.OutputFrame)
	}
	doc, _ := s.Current()
	if ms := doc.Portrait().MappingSize; ms != (geometry.Size{}) {
		t.Fatalf("mapping size = %+v, test expects none applied", ms)
	}
}

func TestResizeToLogicalWidth(t *testing.T) {
	r, _ := newRegistry(t, nil)
	idx, _, _ := r.Add(gbaInput, topOutput)

	got, err := r.ResizeToLogicalWidth(idx, 393)
	if err != nil {
		t.Fatal(err)
	}
	if got.OutputFrame.Width != 393 || got.OutputFrame.Height != 196.5 {
		t.Errorf("size = %vx%v, want 393x196.5", got.OutputFrame.Width, got.OutputFrame.Height)
	}
}

func TestResizeToLogicalWidthDegenerate(t *testing.T) {
	r, _ := newRegistry(t, nil)
	idx, _, _ := r.Add(gbaInput, geometry.Frame{Width: 0, Height: 100})
	if _, err := r.ResizeToLogicalWidth(idx, 393); !errors.Is(err, geometry.ErrInvalidDimensions) {
		t.Errorf("error = %v, want ErrInvalidDimensions", err)
	}
	got, _ := r.Get(idx)
	if got.OutputFrame.Width != 0 {
		t.Error("failed resize changed the screen")
	}
}

func TestResizeToConsoleAspectRatio(t *testing.T) {
	r, _ := newRegistry(t, nil)
	idx, _, _ := r.Add(gbaInput, topOutput)

	num, den, err := geometry.ParseRatio("4/3")
	if err != nil {
		t.Fatal(err)
	}
	got, err := r.ResizeToConsoleAspectRatio(idx, num, den)
	if err != nil {
		t.Fatal(err)
	}
	if got.OutputFrame.Width != 200 || got.OutputFrame.Height != 150 {
		t.Errorf("size = %vx%v, want 200x150", got.OutputFrame.Width, got.OutputFrame.Height)
	}

	if _, err := r.ResizeToConsoleAspectRatio(idx, 0, 3); !errors.Is(err, geometry.ErrInvalidRatio) {
		t.Errorf("error = %v, want ErrInvalidRatio", err)
	}
}

func TestResizeToConsole(t *testing.T) {
	cat := &reference.Catalog{AspectRatios: map[string]string{"gba": "3/2"}}
	r, s := newRegistry(t, cat)
	idx, _, _ := r.Add(gbaInput, topOutput)

	if _, err := r.ResizeToConsole(idx); !errors.Is(err, reference.ErrRatioNotFound) {
		t.Errorf("no console selected: error = %v, want ErrRatioNotFound", err)
	}

	if _, err := s.Merge(skin.Patch{GameTypeIdentifier: skin.String("com.rileytestut.delta.game.nes")}); err != nil {
		t.Fatal(err)
	}
	if _, err := r.ResizeToConsole(idx); !errors.Is(err, reference.ErrRatioNotFound) {
		t.Errorf("nes: error = %v, want ErrRatioNotFound", err)
	}

	if _, err := s.Merge(skin.Patch{GameTypeIdentifier: skin.String("com.rileytestut.delta.game.gba")}); err != nil {
		t.Fatal(err)
	}
	got, err := r.ResizeToConsole(idx)
	if err != nil {
		t.Fatal(err)
	}
	if h := got.OutputFrame.Height; h < 133.33 || h > 133.34 {
		t.Errorf("height = %v, want 200*2/3", h)
	}
}

func TestResizeToConsoleWithoutCatalog(t *testing.T) {
	r, _ := newRegistry(t, nil)
	idx, _, _ := r.Add(gbaInput, topOutput)
	if _, err := r.ResizeToConsole(idx); !errors.Is(err, reference.ErrRatioNotFound) {
		t.Errorf("error = %v, want ErrRatioNotFound", err)
	}
}
