package codec

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"
)

// Mode names the element type of a packed numeric buffer.
type Mode uint8

const (
	Int8 Mode = iota + 1
	Uint8
	Int16
	Uint16
	Int32
	Uint32
	Int64
	Uint64
	Float32
	Float64
)

var modeNames = [...]string{
	Int8:    "int8",
	Uint8:   "uint8",
	Int16:   "int16",
	Uint16:  "uint16",
	Int32:   "int32",
	Uint32:  "uint32",
	Int64:   "int64",
	Uint64:  "uint64",
	Float32: "float32",
	Float64: "float64",
}

var modeSizes = [...]int{
	Int8: 1, Uint8: 1,
	Int16: 2, Uint16: 2,
	Int32: 4, Uint32: 4,
	Int64: 8, Uint64: 8,
	Float32: 4, Float64: 8,
}

// Modes lists every supported mode in declaration order.
func Modes() []Mode {
	return []Mode{Int8, Uint8, Int16, Uint16, Int32, Uint32, Int64, Uint64, Float32, Float64}
}

// Valid reports whether m is one of the declared modes.
func (m Mode) Valid() bool { return m >= Int8 && m <= Float64 }

// String returns the wire token, e.g. "uint32".
func (m Mode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
	return modeNames[m]
}

// Size returns the number of bytes per element, or 0 for an invalid mode.
func (m Mode) Size() int {
	if !m.Valid() {
		return 0
	}
	return modeSizes[m]
}

// IsFloat reports whether m is a floating point mode.
func (m Mode) IsFloat() bool { return m == Float32 || m == Float64 }

// IsSigned reports whether m holds signed integers.
func (m Mode) IsSigned() bool {
	switch m {
	case Int8, Int16, Int32, Int64:
		return true
	}
	return false
}

// bounds returns the inclusive value range of an integer mode.
func (m Mode) bounds() (lo int64, hi uint64) {
	switch m {
	case Int8:
		return math.MinInt8, math.MaxInt8
	case Uint8:
		return 0, math.MaxUint8
	case Int16:
		return math.MinInt16, math.MaxInt16
	case Uint16:
		return 0, math.MaxUint16
	case Int32:
		return math.MinInt32, math.MaxInt32
	case Uint32:
		return 0, math.MaxUint32
	case Int64:
		return math.MinInt64, math.MaxInt64
	}
	return 0, math.MaxUint64
}

// ParseMode parses a wire token. Short numpy-style forms ("u4", "f8") are
// accepted as well.
func ParseMode(s string) (Mode, error) {
	t := strings.ToLower(strings.TrimSpace(s))
	for m := Int8; m <= Float64; m++ {
		if modeNames[m] == t {
			return m, nil
		}
	}
	switch t {
	case "i1":
		return Int8, nil
	case "u1":
		return Uint8, nil
	case "i2":
		return Int16, nil
	case "u2":
		return Uint16, nil
	case "i4":
		return Int32, nil
	case "u4":
		return Uint32, nil
	case "i8":
		return Int64, nil
	case "u8":
		return Uint64, nil
	case "f4":
		return Float32, nil
	case "f8":
		return Float64, nil
	}
	return 0, fmt.Errorf("%w: unsupported mode %q", ErrEncoding, s)
}

// Endianness is the byte order of a packed buffer.
type Endianness uint8

const (
	Little Endianness = iota + 1
	Big
)

// Valid reports whether e is little or big.
func (e Endianness) Valid() bool { return e == Little || e == Big }

func (e Endianness) String() string {
	switch e {
	case Little:
		return "little"
	case Big:
		return "big"
	}
	return fmt.Sprintf("endianness(%d)", uint8(e))
}

// ByteOrder returns the encoding/binary order for e.
func (e Endianness) ByteOrder() binary.ByteOrder {
	if e == Big {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// ParseEndianness parses "little" or "big" (also "<" and ">").
func ParseEndianness(s string) (Endianness, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "little", "<":
		return Little, nil
	case "big", ">":
		return Big, nil
	}
	return 0, fmt.Errorf("%w: unsupported endianness %q", ErrEncoding, s)
}
