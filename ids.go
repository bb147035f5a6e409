package sfftkrw

import (
	"fmt"
	"sync"
)

// IDKind names an id counter. Kinds that share a counter map to the same
// IDKind (all shape primitives use IDShape).
type IDKind string

const (
	IDSegment           IDKind = "segment"
	IDLattice           IDKind = "lattice"
	IDMesh              IDKind = "mesh"
	IDTransform         IDKind = "transform"
	IDSoftware          IDKind = "software"
	IDExternalReference IDKind = "external_reference"
	IDVertex            IDKind = "vertex"
	IDPolygon           IDKind = "polygon"
	IDShape             IDKind = "shape"
)

// IDKinds lists every counter.
func IDKinds() []IDKind {
	return []IDKind{IDSegment, IDLattice, IDMesh, IDTransform, IDSoftware, IDExternalReference, IDVertex, IDPolygon, IDShape}
}

// startAt gives the first id handed out for each kind. Segment ids start at
// 1 because 0 is the "no parent" sentinel.
var startAt = map[IDKind]uint32{IDSegment: 1}

// IDAllocator hands out monotonically increasing ids. It is safe for
// concurrent use.
type IDAllocator struct {
	mu          sync.Mutex
	startAt     uint32
	incrementBy uint32
	next        uint32
}

// NewIDAllocator returns an allocator starting at start and advancing by
// step. A zero step is treated as 1.
func NewIDAllocator(start, step uint32) *IDAllocator {
	if step == 0 {
		step = 1
	}
	return &IDAllocator{startAt: start, incrementBy: step, next: start}
}

// Next returns the current id and advances the counter.
func (a *IDAllocator) Next() uint32 {
	a.mu.Lock()
	defer a.mu.Unlock()
	id := a.next
	a.next += a.incrementBy
	return id
}

// Peek returns the id Next would return.
func (a *IDAllocator) Peek() uint32 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.next
}

// Update moves the counter so the next id is next.
func (a *IDAllocator) Update(next uint32) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.next = next
}

// Reset rewinds the counter to its start value.
func (a *IDAllocator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.next = a.startAt
}

// StartAt returns the first id of the sequence.
func (a *IDAllocator) StartAt() uint32 { return a.startAt }

// IncrementBy returns the step between ids.
func (a *IDAllocator) IncrementBy() uint32 { return a.incrementBy }

// Allocators holds one IDAllocator per IDKind.
type Allocators struct {
	mu   sync.Mutex
	byID map[IDKind]*IDAllocator
}

// NewAllocators returns a fresh set with every counter at its start value.
func NewAllocators() *Allocators {
	a := &Allocators{byID: make(map[IDKind]*IDAllocator)}
	for _, k := range IDKinds() {
		a.byID[k] = NewIDAllocator(startAt[k], 1)
	}
	return a
}

// For returns the allocator for k.
func (a *Allocators) For(k IDKind) *IDAllocator {
	a.mu.Lock()
	defer a.mu.Unlock()
	al, ok := a.byID[k]
	if !ok {
		panic(fmt.Sprintf("sfftkrw: unknown id kind %q", k))
	}
	return al
}

// Next is shorthand for a.For(k).Next().
func (a *Allocators) Next(k IDKind) uint32 { return a.For(k).Next() }

// Reset rewinds k's counter.
func (a *Allocators) Reset(k IDKind) { a.For(k).Reset() }

// ResetAll rewinds every counter.
func (a *Allocators) ResetAll() {
	for _, k := range IDKinds() {
		a.For(k).Reset()
	}
}
