// Package hff implements a small hierarchical store of named groups,
// datasets and attributes, laid out the way an HDF5 file is, and persists it
// as a checksummed CBOR document.
//
// Groups keep their children and attributes in creation order so that a
// tree written and read back enumerates identically.
package hff

import (
	"fmt"
	"slices"
	"strings"
)

// DType is the element type of a dataset.
type DType uint8

const (
	String DType = iota + 1
	Bytes
	Float64
	Int64
	Uint64
)

func (d DType) String() string {
	switch d {
	case String:
		return "string"
	case Bytes:
		return "bytes"
	case Float64:
		return "float64"
	case Int64:
		return "int64"
	case Uint64:
		return "uint64"
	}
	return fmt.Sprintf("dtype(%d)", uint8(d))
}

// Attrs is an ordered attribute set. Values are string, int64, uint64,
// float64 or bool.
type Attrs struct {
	names  []string
	values map[string]any
}

// Set stores v under name, keeping the original position on overwrite.
func (a *Attrs) Set(name string, v any) {
	switch x := v.(type) {
	case int:
		v = int64(x)
	case int32:
		v = int64(x)
	case uint32:
		v = uint64(x)
	case uint:
		v = uint64(x)
	case float32:
		v = float64(x)
	case string, int64, uint64, float64, bool:
	default:
		panic(fmt.Sprintf("hff: unsupported attribute type %T for %q", v, name))
	}
	if a.values == nil {
		a.values = map[string]any{}
	}
	if _, ok := a.values[name]; !ok {
		a.names = append(a.names, name)
	}
	a.values[name] = v
}

// Get returns the raw attribute value.
func (a *Attrs) Get(name string) (any, bool) {
	v, ok := a.values[name]
	return v, ok
}

// Has reports whether name is set.
func (a *Attrs) Has(name string) bool {
	_, ok := a.values[name]
	return ok
}

// Names returns attribute names in creation order.
func (a *Attrs) Names() []string { return slices.Clone(a.names) }

// Len returns the number of attributes.
func (a *Attrs) Len() int { return len(a.names) }

// Text returns a string attribute.
func (a *Attrs) Text(name string) (string, bool) {
	v, ok := a.values[name].(string)
	return v, ok
}

// Float returns a numeric attribute as float64.
func (a *Attrs) Float(name string) (float64, bool) {
	switch v := a.values[name].(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	}
	return 0, false
}

// Int returns an integer attribute as int64.
func (a *Attrs) Int(name string) (int64, bool) {
	switch v := a.values[name].(type) {
	case int64:
		return v, true
	case uint64:
		return int64(v), true
	case float64:
		if v == float64(int64(v)) {
			return int64(v), true
		}
	}
	return 0, false
}

// Uint returns a non-negative integer attribute as uint64.
func (a *Attrs) Uint(name string) (uint64, bool) {
	switch v := a.values[name].(type) {
	case uint64:
		return v, true
	case int64:
		if v >= 0 {
			return uint64(v), true
		}
	case float64:
		if v >= 0 && v == float64(uint64(v)) {
			return uint64(v), true
		}
	}
	return 0, false
}

// Bool returns a boolean attribute.
func (a *Attrs) Bool(name string) (bool, bool) {
	v, ok := a.values[name].(bool)
	return v, ok
}

// Node is a Group or a Dataset.
type Node interface {
	Name() string
	Attrs() *Attrs
}

// Group is a named container of groups and datasets.
type Group struct {
	name     string
	attrs    Attrs
	children []Node
	index    map[string]int
}

// NewRoot returns an empty root group named "/".
func NewRoot() *Group { return &Group{name: "/"} }

func (g *Group) Name() string  { return g.name }
func (g *Group) Attrs() *Attrs { return &g.attrs }

// Len returns the number of children.
func (g *Group) Len() int { return len(g.children) }

// Children returns the children in creation order.
func (g *Group) Children() []Node { return slices.Clone(g.children) }

// Keys returns the children's names in creation order.
func (g *Group) Keys() []string {
	out := make([]string, len(g.children))
	for i, c := range g.children {
		out[i] = c.Name()
	}
	return out
}

// Get returns the child named name. Slash-separated paths descend through
// groups.
func (g *Group) Get(path string) (Node, bool) {
	cur := Node(g)
	for _, part := range strings.Split(strings.Trim(path, "/"), "/") {
		if part == "" {
			continue
		}
		grp, ok := cur.(*Group)
		if !ok {
			return nil, false
		}
		i, ok := grp.index[part]
		if !ok {
			return nil, false
		}
		cur = grp.children[i]
	}
	return cur, true
}

// Group returns the child group named name.
func (g *Group) Group(name string) (*Group, bool) {
	n, ok := g.Get(name)
	if !ok {
		return nil, false
	}
	grp, ok := n.(*Group)
	return grp, ok
}

// Dataset returns the child dataset named name.
func (g *Group) Dataset(name string) (*Dataset, bool) {
	n, ok := g.Get(name)
	if !ok {
		return nil, false
	}
	ds, ok := n.(*Dataset)
	return ds, ok
}

// CreateGroup adds a child group. Names must be unique within g and must
// not contain a slash.
func (g *Group) CreateGroup(name string) (*Group, error) {
	child := &Group{name: name}
	if err := g.add(child); err != nil {
		return nil, err
	}
	return child, nil
}

// RequireGroup returns the existing child group or creates it.
func (g *Group) RequireGroup(name string) (*Group, error) {
	if n, ok := g.Get(name); ok {
		grp, ok := n.(*Group)
		if !ok {
			return nil, fmt.Errorf("hff: %q exists and is not a group", name)
		}
		return grp, nil
	}
	return g.CreateGroup(name)
}

// CreateString adds a variable-length string dataset.
func (g *Group) CreateString(name, s string) (*Dataset, error) {
	return g.createDataset(&Dataset{name: name, dtype: String, text: s})
}

// CreateBytes adds an opaque byte dataset of len(b) bytes.
func (g *Group) CreateBytes(name string, b []byte) (*Dataset, error) {
	return g.createDataset(&Dataset{name: name, dtype: Bytes, shape: []int{len(b)}, raw: slices.Clone(b)})
}

// CreateFloats adds a float64 dataset. Without a shape it is
// one-dimensional.
func (g *Group) CreateFloats(name string, v []float64, shape ...int) (*Dataset, error) {
	shape, err := checkShape(len(v), shape)
	if err != nil {
		return nil, err
	}
	return g.createDataset(&Dataset{name: name, dtype: Float64, shape: shape, floats: slices.Clone(v)})
}

// CreateInts adds an int64 dataset.
func (g *Group) CreateInts(name string, v []int64, shape ...int) (*Dataset, error) {
	shape, err := checkShape(len(v), shape)
	if err != nil {
		return nil, err
	}
	return g.createDataset(&Dataset{name: name, dtype: Int64, shape: shape, ints: slices.Clone(v)})
}

// CreateUints adds a uint64 dataset.
func (g *Group) CreateUints(name string, v []uint64, shape ...int) (*Dataset, error) {
	shape, err := checkShape(len(v), shape)
	if err != nil {
		return nil, err
	}
	return g.createDataset(&Dataset{name: name, dtype: Uint64, shape: shape, uints: slices.Clone(v)})
}

func (g *Group) createDataset(ds *Dataset) (*Dataset, error) {
	if err := g.add(ds); err != nil {
		return nil, err
	}
	return ds, nil
}

func (g *Group) add(n Node) error {
	name := n.Name()
	if name == "" || strings.Contains(name, "/") {
		return fmt.Errorf("hff: invalid name %q", name)
	}
	if g.index == nil {
		g.index = map[string]int{}
	}
	if _, dup := g.index[name]; dup {
		return fmt.Errorf("hff: %q already exists in %q", name, g.name)
	}
	g.index[name] = len(g.children)
	g.children = append(g.children, n)
	return nil
}

// Walk visits g and every descendant depth-first in creation order. path is
// the slash-joined location of each node relative to g.
func (g *Group) Walk(fn func(path string, n Node) error) error {
	return walk("", g, fn)
}

func walk(prefix string, n Node, fn func(string, Node) error) error {
	path := prefix
	if path == "" {
		path = "/"
	}
	if err := fn(path, n); err != nil {
		return err
	}
	grp, ok := n.(*Group)
	if !ok {
		return nil
	}
	for _, c := range grp.children {
		if err := walk(strings.TrimSuffix(prefix, "/")+"/"+c.Name(), c, fn); err != nil {
			return err
		}
	}
	return nil
}

// Dataset is a typed leaf holding a string, bytes or a numeric array.
type Dataset struct {
	name   string
	attrs  Attrs
	dtype  DType
	shape  []int
	text   string
	raw    []byte
	floats []float64
	ints   []int64
	uints  []uint64
}

func (d *Dataset) Name() string  { return d.name }
func (d *Dataset) Attrs() *Attrs { return &d.attrs }

// DType returns the element type.
func (d *Dataset) DType() DType { return d.dtype }

// Shape returns the dimensions; string datasets are scalars with no shape.
func (d *Dataset) Shape() []int { return slices.Clone(d.shape) }

// Text returns a string dataset's value.
func (d *Dataset) Text() (string, bool) { return d.text, d.dtype == String }

// Raw returns a bytes dataset's value.
func (d *Dataset) Raw() ([]byte, bool) { return d.raw, d.dtype == Bytes }

// Floats returns numeric values as float64.
func (d *Dataset) Floats() ([]float64, bool) {
	switch d.dtype {
	case Float64:
		return d.floats, true
	case Int64:
		out := make([]float64, len(d.ints))
		for i, v := range d.ints {
			out[i] = float64(v)
		}
		return out, true
	case Uint64:
		out := make([]float64, len(d.uints))
		for i, v := range d.uints {
			out[i] = float64(v)
		}
		return out, true
	}
	return nil, false
}

// Ints returns integer values as int64.
func (d *Dataset) Ints() ([]int64, bool) {
	switch d.dtype {
	case Int64:
		return d.ints, true
	case Uint64:
		out := make([]int64, len(d.uints))
		for i, v := range d.uints {
			out[i] = int64(v)
		}
		return out, true
	}
	return nil, false
}

// Uints returns integer values as uint64.
func (d *Dataset) Uints() ([]uint64, bool) {
	switch d.dtype {
	case Uint64:
		return d.uints, true
	case Int64:
		out := make([]uint64, len(d.ints))
		for i, v := range d.ints {
			if v < 0 {
				return nil, false
			}
			out[i] = uint64(v)
		}
		return out, true
	}
	return nil, false
}

func checkShape(n int, shape []int) ([]int, error) {
	if len(shape) == 0 {
		return []int{n}, nil
	}
	p := 1
	for _, d := range shape {
		p *= d
	}
	if p != n {
		return nil, fmt.Errorf("hff: %d values do not fit shape %v", n, shape)
	}
	return slices.Clone(shape), nil
}
