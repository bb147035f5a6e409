// Package codec packs typed numeric arrays into byte buffers with an explicit
// element mode and byte order, and renders those buffers for text containers.
package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Encode packs a in the given mode and byte order. Values are converted
// when the array's own mode differs from m.
func Encode(a *Array, m Mode, e Endianness) ([]byte, error) {
	if a == nil {
		return nil, fmt.Errorf("%w: nil array", ErrEncoding)
	}
	if !m.Valid() {
		return nil, fmt.Errorf("%w: unsupported mode %s", ErrEncoding, m)
	}
	if !e.Valid() {
		return nil, fmt.Errorf("%w: unsupported endianness %s", ErrEncoding, e)
	}
	conv, err := a.Convert(m)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, 0, conv.Len()*m.Size())
	buf, err = binary.Append(buf, e.ByteOrder(), conv.values)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	return buf, nil
}

// EncodeSlice is Encode for a flat slice.
func EncodeSlice[T Number](values []T, m Mode, e Endianness) ([]byte, error) {
	a, err := FromSlice(values)
	if err != nil {
		return nil, err
	}
	return Encode(a, m, e)
}

// Decode unpacks b into an array of the given shape. Without a shape the
// result is one-dimensional. The byte length must equal the shape product
// times the element size.
func Decode(b []byte, m Mode, e Endianness, shape ...int) (*Array, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: unsupported mode %s", ErrEncoding, m)
	}
	if !e.Valid() {
		return nil, fmt.Errorf("%w: unsupported endianness %s", ErrEncoding, e)
	}
	size := m.Size()
	if len(b)%size != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a multiple of %s element size %d", ErrEncoding, len(b), m, size)
	}
	count := len(b) / size
	if len(shape) == 0 {
		shape = []int{count}
	}
	n, ok := product(shape)
	if !ok || n != count {
		return nil, fmt.Errorf("%w: %d bytes of %s do not fill shape %v", ErrEncoding, len(b), m, shape)
	}
	values := makeValues(m, count)
	if err := binary.Read(bytes.NewReader(b), e.ByteOrder(), values); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	return &Array{mode: m, shape: append([]int(nil), shape...), values: values}, nil
}

// DecodeRows decodes an N by width buffer, inferring N. The element count
// must divide evenly by width.
func DecodeRows(b []byte, m Mode, e Endianness, width int) (*Array, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: unsupported mode %s", ErrEncoding, m)
	}
	if width <= 0 {
		return nil, fmt.Errorf("%w: row width %d", ErrShape, width)
	}
	stride := width * m.Size()
	if len(b)%stride != 0 {
		return nil, fmt.Errorf("%w: %d bytes do not divide into rows of %d %s values", ErrEncoding, len(b), width, m)
	}
	return Decode(b, m, e, len(b)/stride, width)
}
