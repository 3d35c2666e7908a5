package skin

import (
	"bytes"
	"testing"

	"github.com/bianoble/skin-studio/internal/geometry"
)

func TestMergeScalarFields(t *testing.T) {
	base := Default()
	merged := Merge(base, Patch{Name: String("My Skin"), Debug: Bool(true)})

	if merged.Name != "My Skin" || !merged.Debug {
		t.Errorf("merged = %+v", merged)
	}
	if merged.Identifier != "" {
		t.Errorf("identifier changed to %q", merged.Identifier)
	}
	if base.Name != "" {
		t.Error("Merge modified base")
	}
}

func TestMergeGameTypeClears(t *testing.T) {
	d := Merge(Default(), Patch{GameTypeIdentifier: String("com.rileytestut.delta.game.snes")})
	if d.GameType() != "com.rileytestut.delta.game.snes" {
		t.Fatalf("game type = %q", d.GameType())
	}
	d = Merge(d, Patch{GameTypeIdentifier: String("")})
	if d.GameTypeIdentifier != nil {
		t.Errorf("expected null game type, got %q", *d.GameTypeIdentifier)
	}
}

func TestMergeScreensRelocated(t *testing.T) {
	screens := []ScreenItem{
		{InputFrame: geometry.Frame{Width: 240, Height: 160}, OutputFrame: geometry.Frame{Width: 393, Height: 262}},
	}
	merged := Merge(Default(), ScreensPatch(screens))

	got := merged.Portrait().Screens
	if len(got) != 1 || got[0] != screens[0] {
		t.Errorf("portrait screens = %+v, want %+v", got, screens)
	}

	data := mustEncode(t, merged)
	if bytes.Count(data, []byte(`"screens"`)) != 1 {
		t.Errorf("expected exactly one screens key: %s", data)
	}
	keyOrder(t, data, "representations", "mappingSize", "screens", "extendedEdges")

	// The caller's slice is not aliased.
	screens[0].OutputFrame.Width = 1
	if merged.Portrait().Screens[0].OutputFrame.Width != 393 {
		t.Error("merged screens alias the patch slice")
	}
}

func TestMergeScreensAfterRepresentations(t *testing.T) {
	reps := Default().Representations
	reps.IPhone.EdgeToEdge.Portrait.MappingSize = geometry.Size{Width: 393, Height: 852}
	reps.IPhone.EdgeToEdge.Portrait.Screens = []ScreenItem{{}, {}}

	patch := RepresentationsPatch(reps)
	patch.Screens = &[]ScreenItem{{OutputFrame: geometry.Frame{Width: 5}}}

	merged := Merge(Default(), patch)
	if merged.Portrait().MappingSize.Width != 393 {
		t.Error("representations not applied")
	}
	if len(merged.Portrait().Screens) != 1 {
		t.Errorf("screens = %d, want 1 (screens patch wins)", len(merged.Portrait().Screens))
	}
}

func TestMergeNilBase(t *testing.T) {
	merged := Merge(nil, Patch{Identifier: String("id")})
	if merged.Identifier != "id" || merged.Portrait().Items == nil {
		t.Errorf("merged = %+v", merged)
	}
}

func TestPatchIsEmpty(t *testing.T) {
	if !(Patch{}).IsEmpty() {
		t.Error("zero patch should be empty")
	}
	if (Patch{Debug: Bool(false)}).IsEmpty() {
		t.Error("patch with debug set is not empty")
	}
}

func TestValidate(t *testing.T) {
	d := Default()
	if errs := Validate(d); len(errs) != 0 {
		t.Fatalf("default document invalid: %v", errs)
	}

	bad, _ := NewControl("a", geometry.Frame{Width: -1}, geometry.Edges{Left: -2})
	bad.ID = "dup"
	d.Portrait().Items = append(d.Portrait().Items, bad)
	d.Portrait().Screens = append(d.Portrait().Screens, ScreenItem{ID: "dup"})

	errs := Validate(d)
	if len(errs) != 3 {
		t.Errorf("expected 3 errors, got %d: %v", len(errs), errs)
	}
}
