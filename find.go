package effect

// Find returns the innermost visible handler of the given kind, or nil.
//
// Visibility is decided by walking the shadow stack from Top through
// parent links. An UnderKind frame hides every handler up to and
// including the next handler of its target kind. A MaskKind frame for the
// searched kind raises the masking level, hiding one more matching
// handler than would otherwise be hidden.
func Find(kind *Kind) *Handler {
	h := Top()
	maskLevel := 0
	for h != nil {
		switch {
		case h.kind == kind:
			if maskLevel == 0 {
				return h
			}
			maskLevel--
		case h.kind == UnderKind:
			// Skip to the matching handler of this under frame; the
			// parent step below then hides that handler as well.
			u := h.under
			for h = h.parent; h != nil && h.kind != u; {
				h = h.parent
			}
			if h == nil {
				return nil
			}
		case h.kind == MaskKind:
			if h.mask == kind && h.from <= maskLevel {
				maskLevel++
			}
		}
		h = h.parent
	}
	return nil
}
