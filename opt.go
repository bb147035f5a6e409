package sfftkrw

import "fmt"

// Opt is an optional scalar. The zero value is absent.
type Opt[T any] struct {
	v  T
	ok bool
}

// Some returns a present value.
func Some[T any](v T) Opt[T] { return Opt[T]{v: v, ok: true} }

// None returns an absent value.
func None[T any]() Opt[T] { return Opt[T]{} }

// Get returns the value and whether it is present.
func (o Opt[T]) Get() (T, bool) { return o.v, o.ok }

// Valid reports whether a value is present.
func (o Opt[T]) Valid() bool { return o.ok }

// Or returns the value, or def when absent.
func (o Opt[T]) Or(def T) T {
	if o.ok {
		return o.v
	}
	return def
}

// Value returns the value or the zero value.
func (o Opt[T]) Value() T { return o.v }

func (o Opt[T]) String() string {
	if !o.ok {
		return "None"
	}
	return fmt.Sprint(o.v)
}

// ptr returns nil when absent, a pointer to a copy otherwise.
func (o Opt[T]) ptr() *T {
	if !o.ok {
		return nil
	}
	v := o.v
	return &v
}

func optFrom[T any](p *T) Opt[T] {
	if p == nil {
		return Opt[T]{}
	}
	return Some(*p)
}

// sameOpt compares two optionals of a comparable type.
func sameOpt[T comparable](a, b Opt[T]) bool {
	if a.ok != b.ok {
		return false
	}
	return !a.ok || a.v == b.v
}

// samePresence compares ids: equal iff both present or both absent.
func samePresence[T any](a, b Opt[T]) bool { return a.ok == b.ok }
