package codec

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

var (
	// ErrEncoding reports an unsupported mode or endianness, or a byte
	// buffer whose length does not agree with its declared layout.
	ErrEncoding = errors.New("encoding error")
	// ErrShape reports inconsistent array or matrix dimensions.
	ErrShape = errors.New("shape error")
)

// Number is the set of element types an Array can hold.
type Number interface {
	int8 | uint8 | int16 | uint16 | int32 | uint32 | int64 | uint64 | float32 | float64
}

// Array is a typed, row-major n-dimensional numeric array.
type Array struct {
	mode   Mode
	shape  []int
	values any
}

// FromSlice wraps values in an Array. Without a shape the array is
// one-dimensional; otherwise the product of shape must equal len(values).
// The slice is not copied.
func FromSlice[T Number](values []T, shape ...int) (*Array, error) {
	m := modeOf[T]()
	if len(shape) == 0 {
		shape = []int{len(values)}
	}
	if n, ok := product(shape); !ok || n != len(values) {
		return nil, fmt.Errorf("%w: %d values do not fit shape %v", ErrShape, len(values), shape)
	}
	return &Array{mode: m, shape: slices.Clone(shape), values: values}, nil
}

// MustFromSlice is FromSlice that panics on error. Intended for tests and
// literals.
func MustFromSlice[T Number](values []T, shape ...int) *Array {
	a, err := FromSlice(values, shape...)
	if err != nil {
		panic(err)
	}
	return a
}

// FromRows builds a two-dimensional array from equal-length rows.
func FromRows[T Number](rows [][]T) (*Array, error) {
	if len(rows) == 0 {
		return &Array{mode: modeOf[T](), shape: []int{0, 0}, values: []T{}}, nil
	}
	cols := len(rows[0])
	flat := make([]T, 0, len(rows)*cols)
	for i, r := range rows {
		if len(r) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrShape, i, len(r), cols)
		}
		flat = append(flat, r...)
	}
	return FromSlice(flat, len(rows), cols)
}

// Values returns the backing slice when T matches the array's mode.
func Values[T Number](a *Array) ([]T, bool) {
	if a == nil {
		return nil, false
	}
	v, ok := a.values.([]T)
	return v, ok
}

// Mode returns the element mode.
func (a *Array) Mode() Mode { return a.mode }

// Shape returns a copy of the dimensions.
func (a *Array) Shape() []int { return slices.Clone(a.shape) }

// Len returns the total number of elements.
func (a *Array) Len() int {
	n, _ := product(a.shape)
	return n
}

// Reshape returns an array sharing the same values under a new shape.
func (a *Array) Reshape(shape ...int) (*Array, error) {
	if n, ok := product(shape); !ok || n != a.Len() {
		return nil, fmt.Errorf("%w: cannot reshape %v into %v", ErrShape, a.shape, shape)
	}
	return &Array{mode: a.mode, shape: slices.Clone(shape), values: a.values}, nil
}

// At returns the element at the given multi-index as float64.
func (a *Array) At(idx ...int) (float64, error) {
	if len(idx) != len(a.shape) {
		return 0, fmt.Errorf("%w: index %v has wrong rank for shape %v", ErrShape, idx, a.shape)
	}
	off := 0
	for i, x := range idx {
		if x < 0 || x >= a.shape[i] {
			return 0, fmt.Errorf("%w: index %v out of range for shape %v", ErrShape, idx, a.shape)
		}
		off = off*a.shape[i] + x
	}
	return a.float(off), nil
}

// Float64s returns a flat copy of the values converted to float64.
func (a *Array) Float64s() []float64 {
	out := make([]float64, a.Len())
	for i := range out {
		out[i] = a.float(i)
	}
	return out
}

// Int64s returns a flat copy of the values converted to int64. Floats are
// truncated.
func (a *Array) Int64s() []int64 {
	out := make([]int64, a.Len())
	for i := range out {
		out[i] = a.int(i)
	}
	return out
}

// Rows returns a two-dimensional array as float64 rows.
func (a *Array) Rows() ([][]float64, error) {
	if len(a.shape) != 2 {
		return nil, fmt.Errorf("%w: array of shape %v is not two-dimensional", ErrShape, a.shape)
	}
	flat := a.Float64s()
	out := make([][]float64, a.shape[0])
	for i := range out {
		out[i] = flat[i*a.shape[1] : (i+1)*a.shape[1]]
	}
	return out, nil
}

// Convert returns a copy of a in mode m. Conversion to an integer mode
// fails with ErrEncoding when a value is out of range or not integral.
func (a *Array) Convert(m Mode) (*Array, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: unsupported mode %s", ErrEncoding, m)
	}
	if m == a.mode {
		return a, nil
	}
	out := &Array{mode: m, shape: slices.Clone(a.shape), values: makeValues(m, a.Len())}
	for i := 0; i < a.Len(); i++ {
		if err := a.convertAt(out, i); err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", ErrEncoding, i, err)
		}
	}
	return out, nil
}

func (a *Array) convertAt(out *Array, i int) error {
	m := out.mode
	if m.IsFloat() {
		x := a.float(i)
		if m == Float32 && !math.IsInf(x, 0) && math.Abs(x) > math.MaxFloat32 {
			return fmt.Errorf("%g overflows %s", x, m)
		}
		out.setFloat(i, x)
		return nil
	}
	lo, hi := m.bounds()
	switch {
	case a.mode.IsFloat():
		x := a.float(i)
		if math.IsNaN(x) || math.IsInf(x, 0) || x != math.Trunc(x) {
			return fmt.Errorf("%v is not an integer", x)
		}
		// float64(hi)+1 rounds to 2^63 and 2^64 for the 64-bit modes
		if x < float64(lo) || x >= float64(hi)+1 {
			return fmt.Errorf("%v is out of range for %s", x, m)
		}
		if x >= 0 {
			out.setUint(i, uint64(x))
		} else {
			out.setInt(i, int64(x))
		}
	case a.mode.IsSigned():
		x := a.int(i)
		if x < lo || (x > 0 && uint64(x) > hi) {
			return fmt.Errorf("%d is out of range for %s", x, m)
		}
		out.setInt(i, x)
	default:
		u := a.uint(i)
		if u > hi {
			return fmt.Errorf("%d is out of range for %s", u, m)
		}
		out.setUint(i, u)
	}
	return nil
}

// Equal reports whether both arrays have the same shape and element-wise
// equal values. Modes may differ.
func (a *Array) Equal(b *Array) bool {
	if a == nil || b == nil {
		return a == b
	}
	if !slices.Equal(a.shape, b.shape) {
		return false
	}
	for i := 0; i < a.Len(); i++ {
		if a.mode.IsFloat() || b.mode.IsFloat() {
			x, y := a.float(i), b.float(i)
			if x != y && !(math.IsNaN(x) && math.IsNaN(y)) {
				return false
			}
			continue
		}
		if a.int(i) != b.int(i) || a.uint(i) != b.uint(i) {
			return false
		}
	}
	return true
}

func (a *Array) float(i int) float64 {
	switch v := a.values.(type) {
	case []int8:
		return float64(v[i])
	case []uint8:
		return float64(v[i])
	case []int16:
		return float64(v[i])
	case []uint16:
		return float64(v[i])
	case []int32:
		return float64(v[i])
	case []uint32:
		return float64(v[i])
	case []int64:
		return float64(v[i])
	case []uint64:
		return float64(v[i])
	case []float32:
		return float64(v[i])
	case []float64:
		return v[i]
	}
	return 0
}

func (a *Array) int(i int) int64 {
	switch v := a.values.(type) {
	case []int8:
		return int64(v[i])
	case []uint8:
		return int64(v[i])
	case []int16:
		return int64(v[i])
	case []uint16:
		return int64(v[i])
	case []int32:
		return int64(v[i])
	case []uint32:
		return int64(v[i])
	case []int64:
		return v[i]
	case []uint64:
		return int64(v[i])
	case []float32:
		return int64(v[i])
	case []float64:
		return int64(v[i])
	}
	return 0
}

func (a *Array) uint(i int) uint64 {
	if v, ok := a.values.([]uint64); ok {
		return v[i]
	}
	return uint64(a.int(i))
}

func (a *Array) setFloat(i int, x float64) {
	switch v := a.values.(type) {
	case []float32:
		v[i] = float32(x)
	case []float64:
		v[i] = x
	}
}

func (a *Array) setInt(i int, x int64) {
	switch v := a.values.(type) {
	case []int8:
		v[i] = int8(x)
	case []uint8:
		v[i] = uint8(x)
	case []int16:
		v[i] = int16(x)
	case []uint16:
		v[i] = uint16(x)
	case []int32:
		v[i] = int32(x)
	case []uint32:
		v[i] = uint32(x)
	case []int64:
		v[i] = x
	case []uint64:
		v[i] = uint64(x)
	}
}

func (a *Array) setUint(i int, x uint64) {
	switch v := a.values.(type) {
	case []int8:
		v[i] = int8(x)
	case []uint8:
		v[i] = uint8(x)
	case []int16:
		v[i] = int16(x)
	case []uint16:
		v[i] = uint16(x)
	case []int32:
		v[i] = int32(x)
	case []uint32:
		v[i] = uint32(x)
	case []int64:
		v[i] = int64(x)
	case []uint64:
		v[i] = x
	}
}

func makeValues(m Mode, n int) any {
	switch m {
	case Int8:
		return make([]int8, n)
	case Uint8:
		return make([]uint8, n)
	case Int16:
		return make([]int16, n)
	case Uint16:
		return make([]uint16, n)
	case Int32:
		return make([]int32, n)
	case Uint32:
		return make([]uint32, n)
	case Int64:
		return make([]int64, n)
	case Uint64:
		return make([]uint64, n)
	case Float32:
		return make([]float32, n)
	case Float64:
		return make([]float64, n)
	}
	return nil
}

func modeOf[T Number]() Mode {
	var zero T
	switch any(zero).(type) {
	case int8:
		return Int8
	case uint8:
		return Uint8
	case int16:
		return Int16
	case uint16:
		return Uint16
	case int32:
		return Int32
	case uint32:
		return Uint32
	case int64:
		return Int64
	case uint64:
		return Uint64
	case float32:
		return Float32
	case float64:
		return Float64
	}
	return 0
}

func product(shape []int) (int, bool) {
	n := 1
	for _, d := range shape {
		if d < 0 {
			return 0, false
		}
		n *= d
	}
	return n, true
}
