package effect

import "testing"

func TestFindNoHandler(t *testing.T) {
	if h := Find(NewKind("missing")); h != nil {
		t.Errorf("found a handler on an empty shadow stack: %v", h)
	}
}

func TestFindInnermost(t *testing.T) {
	k := NewKind("k")
	Linear(k, "outer", func(_, _ any) any {
		return Linear(k, "inner", func(_, _ any) any {
			h := Find(k)
			if h == nil || h.Data() != "inner" {
				t.Errorf("wrong handler: got=%v want=inner", h)
			}
			return nil
		}, nil)
	}, nil)
}

func TestFindDistinctKinds(t *testing.T) {
	a := NewKind("same-name")
	b := NewKind("same-name")
	Linear(a, "a", func(_, _ any) any {
		if h := Find(b); h != nil {
			t.Errorf("kinds must compare by identity, not name: found %v", h.Data())
		}
		if h := Find(a); h == nil || h.Data() != "a" {
			t.Error("handler of kind a not found")
		}
		return nil
	}, nil)
}

func TestUnderHidesInnermost(t *testing.T) {
	k := NewKind("k")
	Linear(k, "outer", func(_, _ any) any {
		return Linear(k, "inner", func(_, _ any) any {
			got := Under(k, func(_ any) any {
				return Find(k)
			}, nil)
			if h := got.(*Handler); h == nil || h.Data() != "outer" {
				t.Errorf("under must skip the innermost handler: got=%v", h)
			}
			return nil
		}, nil)
	}, nil)
}

func TestUnderNoOuterHandler(t *testing.T) {
	k := NewKind("k")
	Linear(k, "only", func(_, _ any) any {
		got := Under(k, func(_ any) any {
			if h := Find(k); h != nil {
				t.Errorf("no handler outside the under target, got=%v", h.Data())
			}
			return nil
		}, nil)
		_ = got
		return nil
	}, nil)
}

func TestMaskHidesInnermost(t *testing.T) {
	k := NewKind("k")
	Linear(k, "outer", func(_, _ any) any {
		return Linear(k, "inner", func(_, _ any) any {
			return Mask(k, 0, func(_ any) any {
				if h := Find(k); h == nil || h.Data() != "outer" {
					t.Errorf("mask must hide the innermost handler: got=%v", h)
				}
				return nil
			}, nil)
		}, nil)
	}, nil)
}

func TestMaskFromAboveLevel(t *testing.T) {
	k := NewKind("k")
	Linear(k, "inner", func(_, _ any) any {
		return Mask(k, 1, func(_ any) any {
			if h := Find(k); h == nil || h.Data() != "inner" {
				t.Error("a mask starting above the current level must not hide")
			}
			return nil
		}, nil)
	}, nil)
}

func TestMaskOtherKind(t *testing.T) {
	k := NewKind("k")
	other := NewKind("other")
	Linear(k, "inner", func(_, _ any) any {
		return Mask(other, 0, func(_ any) any {
			if h := Find(k); h == nil || h.Data() != "inner" {
				t.Error("masking another kind must not hide this one")
			}
			return nil
		}, nil)
	}, nil)
}

func TestShadowStackAcyclic(t *testing.T) {
	k := NewKind("k")
	Linear(k, 1, func(_, _ any) any {
		return Linear(k, 2, func(_, _ any) any {
			return Mask(k, 0, func(_ any) any {
				n := 0
				for h := Top(); h != nil; h = h.parent {
					if n++; n > 1000 {
						t.Fatal("shadow stack chain does not terminate")
					}
				}
				if n != 3 {
					t.Errorf("unexpected chain length: got=%d want=3", n)
				}
				return nil
			}, nil)
		}, nil)
	}, nil)
}
