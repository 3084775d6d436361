package effect

// A Kind identifies a family of handlers. Two handlers belong to the same
// family iff they share the same *Kind; identity is pointer equality and
// there is no ordering. The name is only used for diagnostics.
type Kind struct {
	name string
}

// NewKind creates a fresh handler kind. Each call returns a distinct
// identity, regardless of the name.
func NewKind(name string) *Kind {
	return &Kind{name: name}
}

func (k *Kind) String() string {
	return k.name
}

// Built-in kinds, reserved by the runtime. The walker treats frames of
// these kinds structurally; searching for them is not supported.
var (
	// FinallyKind tags frames installed by Finally.
	FinallyKind = NewKind("effect.finally")
	// UnderKind tags frames installed by Under.
	UnderKind = NewKind("effect.under")
	// MaskKind tags frames installed by Mask.
	MaskKind = NewKind("effect.mask")
)
