package sfftkrw

import (
	"fmt"
	"reflect"
)

// FieldKind classifies a field's value.
type FieldKind int

const (
	KindString FieldKind = iota + 1
	KindUint
	KindInt
	KindFloat
	KindEnum
	KindBytes
	KindStrings
	KindUints
	KindEntity
	KindList
)

func (k FieldKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindUint:
		return "uint"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindEnum:
		return "enum"
	case KindBytes:
		return "bytes"
	case KindStrings:
		return "strings"
	case KindUints:
		return "uints"
	case KindEntity:
		return "entity"
	case KindList:
		return "list"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// FieldSpec describes one field of an entity.
type FieldSpec struct {
	Name      string
	Kind      FieldKind
	Entity    string // entity name for KindEntity and KindList
	Required  bool
	Default   any
	MinLength int
	Help      string

	// Compressed marks byte fields that text encodings zlib-compress
	// before base64.
	Compressed bool

	// Identity marks an entity's own id. Equality only compares its
	// presence.
	Identity bool
}

// FieldValue is a field together with its current value. Value is nil
// when the field is absent.
type FieldValue struct {
	FieldSpec
	Value   any
	Present bool
}

// Entity is implemented by every type in the segmentation model.
type Entity interface {
	// EntityName is the model name used in validation chains, e.g.
	// "Segment".
	EntityName() string
	fields() []boundField
}

type boundField struct {
	FieldSpec
	get   func() (any, bool)
	set   func(any) error
	clear func()
	empty func() any
	parse func(string) (any, error)
}

type fieldDef[E any] struct {
	FieldSpec
	get   func(E) (any, bool)
	set   func(E, any) error
	clear func(E)
	empty func() any
	parse func(string) (any, error)
}

type fieldOpt func(*FieldSpec)

func required() fieldOpt { return func(s *FieldSpec) { s.Required = true } }
func withDefault(v any) fieldOpt { return func(s *FieldSpec) { s.Default = v } }
func minLength(n int) fieldOpt { return func(s *FieldSpec) { s.MinLength = n } }
func help(text string) fieldOpt { return func(s *FieldSpec) { s.Help = text } }
func identity() fieldOpt { return func(s *FieldSpec) { s.Identity = true } }
func compressed() fieldOpt { return func(s *FieldSpec) { s.Compressed = true } }

func spec(name string, kind FieldKind, entity string, opts []fieldOpt) FieldSpec {
	s := FieldSpec{Name: name, Kind: kind, Entity: entity}
	for _, o := range opts {
		o(&s)
	}
	return s
}

func bind[E any](e E, defs []fieldDef[E]) []boundField {
	out := make([]boundField, len(defs))
	for i, d := range defs {
		out[i] = boundField{
			FieldSpec: d.FieldSpec,
			get:       func() (any, bool) { return d.get(e) },
			set:       func(v any) error { return d.set(e, v) },
			clear:     func() { d.clear(e) },
			empty:     d.empty,
			parse:     d.parse,
		}
	}
	return out
}

func typeError(field string, want string, got any) error {
	return &Error{Kind: ErrType, Path: field, Message: fmt.Sprintf("want %s, got %T", want, got)}
}

func optDef[E any, T any](name string, kind FieldKind, ptr func(E) *Opt[T], opts ...fieldOpt) fieldDef[E] {
	return fieldDef[E]{
		FieldSpec: spec(name, kind, "", opts),
		get: func(e E) (any, bool) {
			o := ptr(e)
			if !o.ok {
				return nil, false
			}
			return o.v, true
		},
		set: func(e E, v any) error {
			t, ok := v.(T)
			if !ok {
				return typeError(name, reflect.TypeFor[T]().String(), v)
			}
			*ptr(e) = Some(t)
			return nil
		},
		clear: func(e E) { *ptr(e) = Opt[T]{} },
	}
}

// valDef covers fields whose zero value means absent (strings, enums,
// byte buffers).
func valDef[E any, T any](name string, kind FieldKind, ptr func(E) *T, isZero func(T) bool, opts ...fieldOpt) fieldDef[E] {
	return fieldDef[E]{
		FieldSpec: spec(name, kind, "", opts),
		get: func(e E) (any, bool) {
			v := *ptr(e)
			if isZero(v) {
				return nil, false
			}
			return v, true
		},
		set: func(e E, v any) error {
			t, ok := v.(T)
			if !ok {
				return typeError(name, reflect.TypeFor[T]().String(), v)
			}
			*ptr(e) = t
			return nil
		},
		clear: func(e E) {
			var zero T
			*ptr(e) = zero
		},
	}
}

func strDef[E any](name string, ptr func(E) *string, opts ...fieldOpt) fieldDef[E] {
	return valDef(name, KindString, ptr, func(s string) bool { return s == "" }, opts...)
}

func bytesDef[E any](name string, ptr func(E) *[]byte, opts ...fieldOpt) fieldDef[E] {
	return valDef(name, KindBytes, ptr, func(b []byte) bool { return b == nil }, opts...)
}

func stringsDef[E any](name string, ptr func(E) *[]string, opts ...fieldOpt) fieldDef[E] {
	return valDef(name, KindStrings, ptr, func(s []string) bool { return s == nil }, opts...)
}

type enum interface {
	Valid() bool
	String() string
}

func enumDef[E any, T enum](name string, ptr func(E) *T, parse func(string) (T, error), opts ...fieldOpt) fieldDef[E] {
	d := valDef(name, KindEnum, ptr, func(v T) bool { return !v.Valid() }, opts...)
	d.parse = func(s string) (any, error) { return parse(s) }
	return d
}

// entDef covers a nested entity held by pointer.
func entDef[E any, C any](name, entity string, ptr func(E) **C, opts ...fieldOpt) fieldDef[E] {
	return fieldDef[E]{
		FieldSpec: spec(name, KindEntity, entity, opts),
		get: func(e E) (any, bool) {
			p := *ptr(e)
			if p == nil {
				return nil, false
			}
			return p, true
		},
		set: func(e E, v any) error {
			c, ok := v.(*C)
			if !ok || c == nil {
				return typeError(name, entity, v)
			}
			*ptr(e) = c
			return nil
		},
		clear: func(e E) { *ptr(e) = nil },
	}
}

// listDef is entDef for list entities; an absent list reads as a fresh
// empty one.
func listDef[E any, C any](name, entity string, ptr func(E) **C, empty func() *C, opts ...fieldOpt) fieldDef[E] {
	d := entDef(name, entity, ptr, opts...)
	d.Kind = KindList
	d.empty = func() any { return empty() }
	return d
}

// idDef is the usual "id" field of an indexed entity.
func idDef[E any](ptr func(E) *Opt[uint32], opts ...fieldOpt) fieldDef[E] {
	return optDef("id", KindUint, ptr, append([]fieldOpt{identity()}, opts...)...)
}

func lookupField(e Entity, name string) (boundField, error) {
	for _, f := range e.fields() {
		if f.Name == name {
			return f, nil
		}
	}
	return boundField{}, &Error{Kind: ErrKey, Path: name, Message: fmt.Sprintf("%s has no field %q", e.EntityName(), name)}
}

// Fields lists e's fields in declaration order with their raw values.
func Fields(e Entity) []FieldValue {
	bf := e.fields()
	out := make([]FieldValue, len(bf))
	for i, f := range bf {
		v, ok := f.get()
		out[i] = FieldValue{FieldSpec: f.FieldSpec, Value: v, Present: ok}
	}
	return out
}

// Get reads a field by name. Absent fields yield their default; absent
// lists yield an empty list; otherwise nil.
func Get(e Entity, name string) (any, error) {
	f, err := lookupField(e, name)
	if err != nil {
		return nil, err
	}
	if v, ok := f.get(); ok {
		return v, nil
	}
	if f.empty != nil {
		return f.empty(), nil
	}
	return f.Default, nil
}

// Set assigns a field by name. The value must match the field's Go type,
// otherwise ErrType.
func Set(e Entity, name string, v any) error {
	f, err := lookupField(e, name)
	if err != nil {
		return err
	}
	return f.set(v)
}

// Clear removes a field's value.
func Clear(e Entity, name string) error {
	f, err := lookupField(e, name)
	if err != nil {
		return err
	}
	f.clear()
	return nil
}

// Spec returns the descriptor of a named field.
func Spec(e Entity, name string) (FieldSpec, error) {
	f, err := lookupField(e, name)
	if err != nil {
		return FieldSpec{}, err
	}
	return f.FieldSpec, nil
}
