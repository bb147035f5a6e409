package sfftkrw

import (
	"bytes"
	"math"
	"slices"
)

// Equal compares two entities by value. Own ids compare equal when both
// are present or both absent; absent fields compare as their default and
// absent lists as empty lists.
func Equal(a, b Entity) bool {
	if isNilItem(a) || isNilItem(b) {
		return isNilItem(a) && isNilItem(b)
	}
	if a.EntityName() != b.EntityName() {
		return false
	}
	if la, ok := a.(listEntity); ok {
		lb, ok := b.(listEntity)
		if !ok || la.Len() != lb.Len() {
			return false
		}
		ea, eb := la.entities(), lb.entities()
		for i := range ea {
			if !Equal(ea[i], eb[i]) {
				return false
			}
		}
		return true
	}
	fa, fb := a.fields(), b.fields()
	if len(fa) != len(fb) {
		return false
	}
	for i := range fa {
		va, oka := fa[i].get()
		vb, okb := fb[i].get()
		if fa[i].Identity {
			if oka != okb {
				return false
			}
			continue
		}
		if !oka {
			va = effective(fa[i])
		}
		if !okb {
			vb = effective(fb[i])
		}
		if !sameValue(va, vb) {
			return false
		}
	}
	return true
}

func effective(f boundField) any {
	if f.empty != nil {
		return f.empty()
	}
	return f.Default
}

func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case Entity:
		y, ok := b.(Entity)
		return ok && Equal(x, y)
	case []byte:
		y, ok := b.([]byte)
		return ok && bytes.Equal(x, y)
	case []string:
		y, ok := b.([]string)
		return ok && slices.Equal(x, y)
	case []uint32:
		y, ok := b.([]uint32)
		return ok && slices.Equal(x, y)
	case float64:
		y, ok := b.(float64)
		return ok && (x == y || (math.IsNaN(x) && math.IsNaN(y)))
	}
	return a == b
}
