package codec

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/klauspost/compress/zlib"
)

// PackText renders raw bytes for a text container: base64, optionally over
// a zlib stream.
func PackText(raw []byte, compressed bool) (string, error) {
	if compressed {
		var buf bytes.Buffer
		zw := zlib.NewWriter(&buf)
		if _, err := zw.Write(raw); err != nil {
			return "", fmt.Errorf("%w: zlib: %v", ErrEncoding, err)
		}
		if err := zw.Close(); err != nil {
			return "", fmt.Errorf("%w: zlib: %v", ErrEncoding, err)
		}
		raw = buf.Bytes()
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// UnpackText reverses PackText. Whitespace inside the base64 text is
// ignored, so wrapped XML content decodes as well.
func UnpackText(text string, compressed bool) ([]byte, error) {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)
	raw, err := base64.StdEncoding.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("%w: base64: %v", ErrEncoding, err)
	}
	if !compressed {
		return raw, nil
	}
	zr, err := zlib.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: zlib: %v", ErrEncoding, err)
	}
	defer zr.Close()
	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("%w: zlib: %v", ErrEncoding, err)
	}
	return out, nil
}

// ParseFloats splits whitespace-separated decimals.
func ParseFloats(text string) ([]float64, error) {
	fields := strings.Fields(text)
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", ErrShape, i, err)
		}
		out[i] = v
	}
	return out, nil
}

// ParseMatrix parses a row-major whitespace-separated matrix. The element
// count must equal rows*cols.
func ParseMatrix(text string, rows, cols int) ([][]float64, error) {
	flat, err := ParseFloats(text)
	if err != nil {
		return nil, err
	}
	if rows < 0 || cols < 0 || len(flat) != rows*cols {
		return nil, fmt.Errorf("%w: %d values for a %dx%d matrix", ErrShape, len(flat), rows, cols)
	}
	out := make([][]float64, rows)
	for i := range out {
		out[i] = flat[i*cols : (i+1)*cols]
	}
	return out, nil
}

// FormatMatrix writes a matrix as row-major whitespace-separated decimals.
// Rows must all have the same length.
func FormatMatrix(m [][]float64) (string, error) {
	var b strings.Builder
	for i, row := range m {
		if len(row) != len(m[0]) {
			return "", fmt.Errorf("%w: row %d has %d columns, want %d", ErrShape, i, len(row), len(m[0]))
		}
		for j, v := range row {
			if i > 0 || j > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
	}
	return b.String(), nil
}
