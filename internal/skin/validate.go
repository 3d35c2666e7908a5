package skin

import "fmt"

// Validate checks a document for degenerate geometry and unusable entries.
// Returns a list of validation error messages (empty if valid).
func Validate(d *Document) []string {
	var errs []string
	layout := d.Portrait()

	if layout.MappingSize.Width < 0 || layout.MappingSize.Height < 0 {
		errs = append(errs, fmt.Sprintf("mappingSize: negative size %vx%v", layout.MappingSize.Width, layout.MappingSize.Height))
	}

	ids := make(map[string]bool)
	for i, item := range layout.Items {
		prefix := fmt.Sprintf("item[%d]", i)
		if t := item.Type(); t != "" {
			prefix = fmt.Sprintf("item[%d] '%s'", i, t)
		} else {
			errs = append(errs, fmt.Sprintf("%s: no inputs", prefix))
		}
		if item.Frame.Width < 0 || item.Frame.Height < 0 {
			errs = append(errs, fmt.Sprintf("%s: negative frame size %vx%v", prefix, item.Frame.Width, item.Frame.Height))
		}
		e := item.ExtendedEdges
		if e.Top < 0 || e.Bottom < 0 || e.Left < 0 || e.Right < 0 {
			errs = append(errs, fmt.Sprintf("%s: extended edges must not be negative", prefix))
		}
		if item.ID != "" {
			if ids[item.ID] {
				errs = append(errs, fmt.Sprintf("%s: duplicate id '%s'", prefix, item.ID))
			}
			ids[item.ID] = true
		}
	}

	for i, s := range layout.Screens {
		prefix := fmt.Sprintf("screen[%d]", i)
		if s.OutputFrame.Width < 0 || s.OutputFrame.Height < 0 {
			errs = append(errs, fmt.Sprintf("%s: negative output size %vx%v", prefix, s.OutputFrame.Width, s.OutputFrame.Height))
		}
		if s.InputFrame.Width < 0 || s.InputFrame.Height < 0 {
			errs = append(errs, fmt.Sprintf("%s: negative input size %vx%v", prefix, s.InputFrame.Width, s.InputFrame.Height))
		}
		if s.ID != "" {
			if ids[s.ID] {
				errs = append(errs, fmt.Sprintf("%s: duplicate id '%s'", prefix, s.ID))
			}
			ids[s.ID] = true
		}
	}

	return errs
}
