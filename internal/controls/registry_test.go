package controls

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/bianoble/skin-studio/internal/geometry"
	"github.com/bianoble/skin-studio/internal/session"
	"github.com/bianoble/skin-studio/internal/skin"
	"github.com/bianoble/skin-studio/internal/store"
)

func newRegistry(t *testing.T) (*Registry, *session.Session, *store.MemoryStore) {
	t.Helper()
	st := &store.MemoryStore{}
	s := session.New(session.Options{Store: st})
	if _, err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return New(s), s, st
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func waitAttached(t *testing.T, a *Attachment) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.Wait(ctx); err != nil {
		t.Fatalf("attachment: %v", err)
	}
}

func items(t *testing.T, s *session.Session) []skin.ControlItem {
	t.Helper()
	doc, err := s.Current()
	if err != nil {
		t.Fatal(err)
	}
	return doc.Portrait().Items
}

func TestAddSimpleButton(t *testing.T) {
	r, s, _ := newRegistry(t)

	item, att, err := r.Add(Spec{
		Type:  "a",
		Frame: geometry.Frame{X: 100, Y: 100, Width: 50, Height: 50},
		Edges: geometry.UniformEdges(5),
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if att != nil {
		t.Error("simple button should not start an attachment")
	}
	if item.ID == "" {
		t.Error("expected an id")
	}

	box, err := r.OuterBox(item.ID)
	if err != nil {
		t.Fatalf("OuterBox: %v", err)
	}
	if box != (geometry.Rect{X: 95, Y: 95, Width: 60, Height: 60}) {
		t.Errorf("outer box = %+v", box)
	}

	got := items(t, s)
	if len(got) != 1 || got[0].Type() != "a" {
		t.Errorf("items = %+v", got)
	}
}

func TestAddAppendsInRenderOrder(t *testing.T) {
	r, s, _ := newRegistry(t)
	for _, typ := range []string{"a", "b", skin.TypeDPad} {
		if _, _, err := r.Add(Spec{Type: typ}); err != nil {
			t.Fatal(err)
		}
	}
	got := items(t, s)
	if got[0].Type() != "a" || got[1].Type() != "b" || got[2].Kind() != skin.KindDPad {
		t.Errorf("order = %s, %s, %s", got[0].Type(), got[1].Type(), got[2].Type())
	}
}

func TestAddMissingType(t *testing.T) {
	r, s, st := newRegistry(t)
	saves := st.Saves()

	if _, _, err := r.Add(Spec{}); !errors.Is(err, skin.ErrMissingType) {
		t.Fatalf("error = %v, want ErrMissingType", err)
	}
	if st.Saves() != saves || len(items(t, s)) != 0 {
		t.Error("failed add mutated the document")
	}
}

func TestAddThumbstickAttachesImageLater(t *testing.T) {
	r, s, _ := newRegistry(t)

	item, att, err := r.Add(Spec{
		Type:  skin.TypeThumbstick,
		Frame: geometry.Frame{X: 20, Y: 600, Width: 100, Height: 100},
		Image: &Image{Name: "stick.png", Reader: bytes.NewReader(pngBytes(t, 64, 32))},
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if att == nil {
		t.Fatal("expected an attachment")
	}
	if item.Thumbstick.Data != "" {
		t.Error("image data should not be present on the initial insert")
	}
	waitAttached(t, att)

	got := items(t, s)[0]
	if !strings.HasPrefix(got.Thumbstick.Data, "data:image/png;base64,") {
		t.Errorf("data = %.40q", got.Thumbstick.Data)
	}
	if got.Thumbstick.Width != 64 || got.Thumbstick.Height != 32 || got.Thumbstick.Name != "stick.png" {
		t.Errorf("thumbstick = %s %vx%v", got.Thumbstick.Name, got.Thumbstick.Width, got.Thumbstick.Height)
	}

	view, err := s.ExportView()
	if err != nil {
		t.Fatal(err)
	}
	if view.Portrait().Items[0].Thumbstick.Data != "" {
		t.Error("export view contains thumbstick data")
	}
}

func TestAddThumbstickExplicitSizeAndFit(t *testing.T) {
	r, s, _ := newRegistry(t)
	_, att, err := r.Add(Spec{
		Type: skin.TypeThumbstick,
		Image: &Image{
			Name:         "big.png",
			Reader:       bytes.NewReader(pngBytes(t, 400, 200)),
			Height:       90,
			MaxDimension: 100,
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	waitAttached(t, att)

	ts := items(t, s)[0].Thumbstick
	if ts.Width != 100 || ts.Height != 90 {
		t.Errorf("size = %vx%v, want 100x90", ts.Width, ts.Height)
	}
}

func TestAddThumbstickUndecodableImage(t *testing.T) {
	r, s, _ := newRegistry(t)
	_, att, err := r.Add(Spec{
		Type:  skin.TypeThumbstick,
		Image: &Image{Name: "bad.png", Reader: strings.NewReader("not an image")},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := att.Wait(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
	// The frame-only insert stays.
	if got := items(t, s); len(got) != 1 || got[0].Thumbstick.Data != "" {
		t.Errorf("items = %+v", got)
	}
}

func TestAttachAfterDelete(t *testing.T) {
	r, _, _ := newRegistry(t)
	item, _, err := r.Add(Spec{Type: skin.TypeThumbstick})
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Delete(item.ID); err != nil {
		t.Fatal(err)
	}
	err = r.attach(item.ID, &Image{Name: "x.png", Reader: bytes.NewReader(pngBytes(t, 4, 4))})
	if !errors.Is(err, skin.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestUpdateByIDKeepsPosition(t *testing.T) {
	r, s, _ := newRegistry(t)
	first, _, _ := r.Add(Spec{Type: "menu", Frame: geometry.Frame{X: 1}})
	second, _, _ := r.Add(Spec{Type: "menu", Frame: geometry.Frame{X: 2}})
	_, _, _ = r.Add(Spec{Type: "b"})

	updated, _, err := r.Update(second.ID, Spec{
		Type:  skin.TypeDPad,
		Frame: geometry.Frame{X: 50, Y: 60, Width: 120, Height: 120},
		Edges: geometry.UniformEdges(10),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.ID != second.ID || updated.Kind() != skin.KindDPad {
		t.Errorf("updated = %+v", updated)
	}

	got := items(t, s)
	if len(got) != 3 {
		t.Fatalf("items = %d", len(got))
	}
	if got[0].ID != first.ID || got[0].Frame.X != 1 {
		t.Error("first menu button was modified")
	}
	if got[1].ID != second.ID || got[1].Frame.X != 50 || got[1].ExtendedEdges.Top != 10 {
		t.Errorf("second entry = %+v", got[1])
	}
}

func TestUpdateThumbstickKeepsArtwork(t *testing.T) {
	r, s, _ := newRegistry(t)
	item, att, _ := r.Add(Spec{
		Type:  skin.TypeThumbstick,
		Image: &Image{Name: "s.png", Reader: bytes.NewReader(pngBytes(t, 8, 8))},
	})
	waitAttached(t, att)

	if _, _, err := r.Update(item.ID, Spec{Type: skin.TypeThumbstick, Frame: geometry.Frame{X: 9}}); err != nil {
		t.Fatal(err)
	}
	got := items(t, s)[0]
	if got.Frame.X != 9 || got.Thumbstick.Data == "" || got.Thumbstick.Name != "s.png" {
		t.Errorf("thumbstick after update = %+v", got.Thumbstick)
	}
}

func TestUpdateThumbstickBadImageKeepsArtwork(t *testing.T) {
	r, s, _ := newRegistry(t)
	item, att, _ := r.Add(Spec{
		Type:  skin.TypeThumbstick,
		Image: &Image{Name: "s.png", Reader: bytes.NewReader(pngBytes(t, 8, 8))},
	})
	waitAttached(t, att)
	before := items(t, s)[0].Thumbstick

	_, att, err := r.Update(item.ID, Spec{
		Type:  skin.TypeThumbstick,
		Frame: geometry.Frame{X: 4},
		Image: &Image{Name: "bad.png", Reader: strings.NewReader("nope")},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := att.Wait(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}

	got := items(t, s)[0]
	if got.Frame.X != 4 {
		t.Errorf("frame x = %v, want 4", got.Frame.X)
	}
	if *got.Thumbstick != *before {
		t.Errorf("thumbstick = %+v, want unchanged %+v", got.Thumbstick, before)
	}
}

func TestUpdateThumbstickReplacesArtwork(t *testing.T) {
	r, s, _ := newRegistry(t)
	item, att, _ := r.Add(Spec{
		Type:  skin.TypeThumbstick,
		Image: &Image{Name: "s.png", Reader: bytes.NewReader(pngBytes(t, 8, 8))},
	})
	waitAttached(t, att)

	_, att, err := r.Update(item.ID, Spec{
		Type:  skin.TypeThumbstick,
		Image: &Image{Name: "t.png", Reader: bytes.NewReader(pngBytes(t, 16, 12))},
	})
	if err != nil {
		t.Fatal(err)
	}
	waitAttached(t, att)

	ts := items(t, s)[0].Thumbstick
	if ts.Name != "t.png" || ts.Width != 16 || ts.Height != 12 || ts.Data == "" {
		t.Errorf("thumbstick = %s %vx%v", ts.Name, ts.Width, ts.Height)
	}
}

func TestUpdateByTypeFirstMatch(t *testing.T) {
	r, s, _ := newRegistry(t)
	_, _, _ = r.Add(Spec{Type: "menu", Frame: geometry.Frame{X: 1}})
	_, _, _ = r.Add(Spec{Type: "menu", Frame: geometry.Frame{X: 2}})

	if _, _, err := r.UpdateByType("menu", Spec{Type: "quickSave", Frame: geometry.Frame{X: 3}}); err != nil {
		t.Fatal(err)
	}
	got := items(t, s)
	if got[0].Type() != "quickSave" || got[1].Type() != "menu" {
		t.Errorf("types = %s, %s", got[0].Type(), got[1].Type())
	}
}

func TestUpdateNotFound(t *testing.T) {
	r, _, _ := newRegistry(t)
	if _, _, err := r.Update("missing", Spec{Type: "a"}); !errors.Is(err, skin.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
	if _, _, err := r.UpdateByType("a", Spec{Type: ""}); !errors.Is(err, skin.ErrMissingType) {
		t.Errorf("error = %v, want ErrMissingType", err)
	}
}

func TestDeleteNotFoundLeavesState(t *testing.T) {
	r, s, st := newRegistry(t)
	_, _, _ = r.Add(Spec{Type: "a"})
	before, _ := s.ExportJSON()
	saves := st.Saves()

	if err := r.Delete("nope"); !errors.Is(err, skin.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
	if err := r.DeleteByType("b"); !errors.Is(err, skin.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}

	after, _ := s.ExportJSON()
	if !bytes.Equal(before, after) || st.Saves() != saves {
		t.Error("state changed after failed delete")
	}
}

func TestDelete(t *testing.T) {
	r, s, _ := newRegistry(t)
	a, _, _ := r.Add(Spec{Type: "a"})
	_, _, _ = r.Add(Spec{Type: "b"})

	if err := r.Delete(a.ID); err != nil {
		t.Fatal(err)
	}
	if err := r.DeleteByType("b"); err != nil {
		t.Fatal(err)
	}
	if got := items(t, s); len(got) != 0 {
		t.Errorf("items = %+v", got)
	}
}

func TestMove(t *testing.T) {
	r, _, _ := newRegistry(t)
	item, _, _ := r.Add(Spec{
		Type:  "a",
		Frame: geometry.Frame{X: 100, Y: 100, Width: 50, Height: 40},
		Edges: geometry.Edges{Top: 4, Bottom: 1, Left: 6, Right: 2},
	})

	moved, err := r.Move(item.ID, geometry.Point{X: 10, Y: 20})
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if moved.Frame != (geometry.Frame{X: 16, Y: 24, Width: 50, Height: 40}) {
		t.Errorf("frame = %+v", moved.Frame)
	}
	if moved.ExtendedEdges != item.ExtendedEdges {
		t.Error("edges changed on move")
	}
	box, _ := r.OuterBox(item.ID)
	if box.X != 10 || box.Y != 20 {
		t.Errorf("outer box origin = %v,%v", box.X, box.Y)
	}

	if _, err := r.MoveByType("a", geometry.Point{}); err != nil {
		t.Errorf("MoveByType: %v", err)
	}
	if _, err := r.Move("nope", geometry.Point{}); !errors.Is(err, skin.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestHitTestTopmost(t *testing.T) {
	r, _, _ := newRegistry(t)
	_, _, _ = r.Add(Spec{Type: "a", Frame: geometry.Frame{X: 0, Y: 0, Width: 100, Height: 100}})
	top, _, _ := r.Add(Spec{Type: "b", Frame: geometry.Frame{X: 50, Y: 50, Width: 10, Height: 10}, Edges: geometry.UniformEdges(5)})

	hit, err := r.HitTest(geometry.Point{X: 47, Y: 47})
	if err != nil {
		t.Fatal(err)
	}
	if hit.ID != top.ID {
		t.Errorf("hit %s, want topmost %s", hit.Type(), top.Type())
	}
	if _, err := r.HitTest(geometry.Point{X: 500, Y: 500}); !errors.Is(err, skin.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestListNotInitialized(t *testing.T) {
	r := New(session.New(session.Options{Store: &store.MemoryStore{}}))
	if _, err := r.List(); !errors.Is(err, session.ErrNotInitialized) {
		t.Errorf("error = %v, want ErrNotInitialized", err)
	}
}
