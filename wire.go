package sfftkrw

import (
	"fmt"
	"strconv"
	"strings"
)

// wireCtx carries what every encoding needs while walking the field tables.
type wireCtx struct {
	schema          *Schema
	excludeGeometry bool
}

// skip reports whether f is left out of the output of entity.
func (c *wireCtx) skip(entity string, f boundField) bool {
	if !c.schema.Supports(entity, f.Name) {
		return true
	}
	return c.excludeGeometry && geometryFields[fieldKey(entity, f.Name)]
}

// value returns f's value for writing: the stored value, or the default of
// an absent scalar.
func (c *wireCtx) value(f boundField) (any, bool) {
	if v, ok := f.get(); ok {
		return v, true
	}
	if f.Default != nil && !f.Identity {
		return f.Default, true
	}
	return nil, false
}

// formatScalar renders a scalar field value as text.
func (c *wireCtx) formatScalar(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case uint32:
		return strconv.FormatUint(uint64(x), 10), nil
	case int32:
		return strconv.FormatInt(int64(x), 10), nil
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), nil
	case PrimaryDescriptor:
		return c.schema.DescriptorName(x), nil
	case enum:
		return x.String(), nil
	}
	return "", newError(ErrType, "cannot render %T as text", v)
}

// parseScalar is the inverse of formatScalar for f's kind.
func (c *wireCtx) parseScalar(f boundField, text string) (any, error) {
	if f.Kind == KindString {
		return text, nil
	}
	t := strings.TrimSpace(text)
	switch f.Kind {
	case KindUint:
		n, err := strconv.ParseUint(t, 10, 32)
		if err != nil {
			return nil, fieldError(f, err)
		}
		return uint32(n), nil
	case KindInt:
		n, err := strconv.ParseInt(t, 10, 32)
		if err != nil {
			return nil, fieldError(f, err)
		}
		return int32(n), nil
	case KindFloat:
		x, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return nil, fieldError(f, err)
		}
		return x, nil
	case KindEnum:
		if f.parse == nil {
			return nil, newError(ErrType, "field %s has no parser", f.Name)
		}
		v, err := f.parse(t)
		if err != nil {
			return nil, fieldError(f, err)
		}
		return v, nil
	}
	return nil, newError(ErrType, "field %s of kind %s is not a scalar", f.Name, f.Kind)
}

func fieldError(f boundField, err error) error {
	return &Error{Kind: ErrValue, Path: f.Name, Message: fmt.Sprintf("bad %s value", f.Kind), Cause: err}
}

func isScalar(k FieldKind) bool {
	switch k {
	case KindString, KindUint, KindInt, KindFloat, KindEnum:
		return true
	}
	return false
}

// newChild returns an empty entity for an entity or list field.
func newChild(f boundField) (Entity, error) {
	return newEntity(f.Entity)
}
