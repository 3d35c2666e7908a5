package skin

// Patch is a partial document. Set fields replace the corresponding
// top-level fields of the document they are applied to.
//
// Screens is not a top-level field of a skin: a patch carrying it replaces
// the portrait layout's screens, which sit between mappingSize and
// extendedEdges.
type Patch struct {
	Name               *string          `json:"name,omitempty"`
	Identifier         *string          `json:"identifier,omitempty"`
	GameTypeIdentifier *string          `json:"gameTypeIdentifier,omitempty"`
	Debug              *bool            `json:"debug,omitempty"`
	Representations    *Representations `json:"representations,omitempty"`
	Screens            *[]ScreenItem    `json:"screens,omitempty"`
}

// IsEmpty reports whether p sets nothing.
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Identifier == nil && p.GameTypeIdentifier == nil &&
		p.Debug == nil && p.Representations == nil && p.Screens == nil
}

// Merge returns base with the fields set in patch applied. base is not
// modified.
//   - name, identifier, debug: replaced when set
//   - gameTypeIdentifier: replaced when set; an empty string clears it to null
//   - representations: replaced wholesale when set
//   - screens: replaces representations.iphone.edgeToEdge.portrait.screens,
//     applied after representations
func Merge(base *Document, patch Patch) *Document {
	var result *Document
	if base == nil {
		result = Default()
	} else {
		result = base.Clone()
	}

	if patch.Name != nil {
		result.Name = *patch.Name
	}
	if patch.Identifier != nil {
		result.Identifier = *patch.Identifier
	}
	if patch.GameTypeIdentifier != nil {
		if *patch.GameTypeIdentifier == "" {
			result.GameTypeIdentifier = nil
		} else {
			g := *patch.GameTypeIdentifier
			result.GameTypeIdentifier = &g
		}
	}
	if patch.Debug != nil {
		result.Debug = *patch.Debug
	}
	if patch.Representations != nil {
		reps := (&Document{Representations: *patch.Representations}).Clone().Representations
		result.Representations = reps
	}
	if patch.Screens != nil {
		screens := append([]ScreenItem{}, (*patch.Screens)...)
		result.Portrait().Screens = screens
	}

	Normalize(result)
	return result
}

// String returns a pointer to s, for building patches.
func String(s string) *string { return &s }

// Bool returns a pointer to b, for building patches.
func Bool(b bool) *bool { return &b }

// ScreensPatch builds a patch replacing the portrait screens.
func ScreensPatch(screens []ScreenItem) Patch {
	return Patch{Screens: &screens}
}

// RepresentationsPatch builds a patch replacing the representations tree.
func RepresentationsPatch(reps Representations) Patch {
	return Patch{Representations: &reps}
}
