package sfftkrw

import (
	"fmt"
	"iter"
	"reflect"
	"slices"
)

// Identified is an entity that may carry a numeric id.
type Identified interface {
	Entity
	Identity() Opt[uint32]
}

// List is an ordered sequence of entities with a secondary index from id to
// item. The slice is the source of truth; the index covers every item whose
// id is present and is rebuilt by Reindex after bulk changes to ids.
//
// The zero value is an empty list ready to use.
type List[T Identified] struct {
	items []T
	index map[uint32]T
}

func (l *List[T]) itemName() string {
	return reflect.TypeFor[T]().String()
}

func isNilItem(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return rv.IsNil()
	}
	return false
}

func (l *List[T]) check(v T) error {
	if isNilItem(v) {
		return &Error{Kind: ErrType, Message: fmt.Sprintf("cannot add nil to a list of %s", l.itemName())}
	}
	return nil
}

func (l *List[T]) duplicate(id uint32) error {
	return &Error{Kind: ErrDuplicateID, Message: fmt.Sprintf("id %d already present in list of %s", id, l.itemName())}
}

func (l *List[T]) indexAdd(v T) error {
	id, ok := v.Identity().Get()
	if !ok {
		return nil
	}
	if l.index == nil {
		l.index = make(map[uint32]T)
	}
	if _, dup := l.index[id]; dup {
		return l.duplicate(id)
	}
	l.index[id] = v
	return nil
}

func (l *List[T]) indexDrop(v T) {
	id, ok := v.Identity().Get()
	if !ok || l.index == nil {
		return
	}
	if cur, ok := l.index[id]; ok && any(cur) == any(v) {
		delete(l.index, id)
	}
}

func (l *List[T]) bounds(i int) error {
	if i < 0 || i >= len(l.items) {
		return &Error{Kind: ErrValue, Message: fmt.Sprintf("index %d out of range [0,%d)", i, len(l.items))}
	}
	return nil
}

// Len returns the number of items.
func (l *List[T]) Len() int { return len(l.items) }

// At returns the i-th item. It panics when i is out of range.
func (l *List[T]) At(i int) T { return l.items[i] }

// Set replaces the i-th item.
func (l *List[T]) Set(i int, v T) error {
	if err := l.check(v); err != nil {
		return err
	}
	if err := l.bounds(i); err != nil {
		return err
	}
	old := l.items[i]
	l.indexDrop(old)
	if err := l.indexAdd(v); err != nil {
		// restore
		_ = l.indexAdd(old)
		return err
	}
	l.items[i] = v
	return nil
}

// Delete removes the i-th item.
func (l *List[T]) Delete(i int) error {
	_, err := l.PopAt(i)
	return err
}

// Append adds v at the end. Items with an id that is already indexed are
// rejected with ErrDuplicateID; items without an id are not indexed.
func (l *List[T]) Append(v T) error {
	if err := l.check(v); err != nil {
		return err
	}
	if err := l.indexAdd(v); err != nil {
		return err
	}
	l.items = append(l.items, v)
	return nil
}

// Insert places v before position i. i is clamped to [0, Len()].
func (l *List[T]) Insert(i int, v T) error {
	if err := l.check(v); err != nil {
		return err
	}
	if err := l.indexAdd(v); err != nil {
		return err
	}
	i = max(0, min(i, len(l.items)))
	l.items = slices.Insert(l.items, i, v)
	return nil
}

// Pop removes and returns the last item.
func (l *List[T]) Pop() (T, error) { return l.PopAt(len(l.items) - 1) }

// PopAt removes and returns the i-th item.
func (l *List[T]) PopAt(i int) (T, error) {
	if err := l.bounds(i); err != nil {
		var zero T
		return zero, err
	}
	v := l.items[i]
	l.items = slices.Delete(l.items, i, i+1)
	l.indexDrop(v)
	return v, nil
}

// Remove deletes the first item that is v, or failing that equals v.
func (l *List[T]) Remove(v T) error {
	i := slices.IndexFunc(l.items, func(x T) bool { return any(x) == any(v) })
	if i < 0 {
		i = slices.IndexFunc(l.items, func(x T) bool { return Equal(x, v) })
	}
	if i < 0 {
		return &Error{Kind: ErrValue, Message: fmt.Sprintf("item not in list of %s", l.itemName())}
	}
	return l.Delete(i)
}

// Extend appends every item of other. Nothing is added when any id would
// collide.
func (l *List[T]) Extend(other *List[T]) error {
	if other == nil {
		return nil
	}
	seen := make(map[uint32]bool)
	for _, v := range other.items {
		if err := l.check(v); err != nil {
			return err
		}
		id, ok := v.Identity().Get()
		if !ok {
			continue
		}
		if _, dup := l.index[id]; dup || seen[id] {
			return l.duplicate(id)
		}
		seen[id] = true
	}
	for _, v := range other.items {
		if err := l.Append(v); err != nil {
			return err
		}
	}
	return nil
}

// Reverse reverses the order in place.
func (l *List[T]) Reverse() { slices.Reverse(l.items) }

// Clear removes every item.
func (l *List[T]) Clear() {
	l.items = nil
	l.index = nil
}

func (l *List[T]) clone() List[T] {
	c := List[T]{items: slices.Clone(l.items)}
	if l.index != nil {
		c.index = make(map[uint32]T, len(l.index))
		for k, v := range l.index {
			c.index[k] = v
		}
	}
	return c
}

// All iterates over index and item in order.
func (l *List[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, v := range l.items {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Items returns a copy of the backing slice.
func (l *List[T]) Items() []T { return slices.Clone(l.items) }

// GetByID returns the item indexed under id, or ErrKey.
func (l *List[T]) GetByID(id uint32) (T, error) {
	v, ok := l.index[id]
	if !ok {
		var zero T
		return zero, &Error{Kind: ErrKey, Message: fmt.Sprintf("no %s with id %d", l.itemName(), id)}
	}
	return v, nil
}

// Contains reports whether id is indexed.
func (l *List[T]) Contains(id uint32) bool {
	_, ok := l.index[id]
	return ok
}

// IDs returns the indexed ids in list order.
func (l *List[T]) IDs() []uint32 {
	var out []uint32
	for _, v := range l.items {
		if id, ok := v.Identity().Get(); ok {
			if cur, ok := l.index[id]; ok && any(cur) == any(v) {
				out = append(out, id)
			}
		}
	}
	return out
}

// Reindex rebuilds the id index from the items. It fails with
// ErrDuplicateID when two items share an id; the index then covers the
// first of them.
func (l *List[T]) Reindex() error {
	l.index = nil
	var first error
	for _, v := range l.items {
		if err := l.indexAdd(v); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Equal compares lengths and then items pairwise.
func (l *List[T]) Equal(other *List[T]) bool {
	if l == nil || other == nil {
		return l.lenOrZero() == 0 && other.lenOrZero() == 0
	}
	if len(l.items) != len(other.items) {
		return false
	}
	for i := range l.items {
		if !Equal(l.items[i], other.items[i]) {
			return false
		}
	}
	return true
}

func (l *List[T]) lenOrZero() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

func (l *List[T]) entities() []Entity {
	out := make([]Entity, len(l.items))
	for i, v := range l.items {
		out[i] = v
	}
	return out
}

func (l *List[T]) fields() []boundField { return nil }

func (l *List[T]) appendEntity(e Entity) error {
	v, ok := e.(T)
	if !ok {
		return &Error{Kind: ErrType, Message: fmt.Sprintf("cannot add %T to a list of %s", e, l.itemName())}
	}
	return l.Append(v)
}

// listEntity is implemented by every named list type.
type listEntity interface {
	Entity
	Len() int
	entities() []Entity
	appendEntity(Entity) error
}

// minLengther is implemented by list types that declare a minimum length.
type minLengther interface {
	MinLength() int
}
