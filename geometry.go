package sfftkrw

import (
	"github.com/emdb-empiar/sfftkrw/codec"
)

// Buffer is a packed N x 3 numeric array with its element count.
type Buffer struct {
	Count      Opt[uint32]
	Mode       codec.Mode
	Endianness codec.Endianness
	Data       []byte
}

// bufferWidth is the number of values per row in every mesh buffer.
const bufferWidth = 3

func (b *Buffer) effectiveMode(def codec.Mode) codec.Mode {
	if b.Mode.Valid() {
		return b.Mode
	}
	return def
}

func (b *Buffer) effectiveEndianness() codec.Endianness {
	if b.Endianness.Valid() {
		return b.Endianness
	}
	return codec.Little
}

func (b *Buffer) decode(name string, def codec.Mode) (*codec.Array, error) {
	a, err := codec.DecodeRows(b.Data, b.effectiveMode(def), b.effectiveEndianness(), bufferWidth)
	if err != nil {
		return nil, wrapCodec(err, name)
	}
	if n, ok := b.Count.Get(); ok && int(n) != a.Shape()[0] {
		return nil, &Error{Kind: ErrEncoding, Path: name, Message: "count does not match data length"}
	}
	return a, nil
}

func (b *Buffer) encode(name string, def codec.Mode, a *codec.Array) error {
	shape := a.Shape()
	if len(shape) == 1 && shape[0]%bufferWidth == 0 {
		var err error
		if a, err = a.Reshape(shape[0]/bufferWidth, bufferWidth); err != nil {
			return wrapCodec(err, name)
		}
		shape = a.Shape()
	}
	if len(shape) != 2 || shape[1] != bufferWidth {
		return &Error{Kind: ErrEncoding, Path: name, Message: "array must be N x 3"}
	}
	data, err := codec.Encode(a, b.effectiveMode(def), b.effectiveEndianness())
	if err != nil {
		return wrapCodec(err, name)
	}
	b.Data = data
	b.Count = Some(uint32(shape[0]))
	return nil
}

// setBytes assigns raw data, checking it against count when given.
func (b *Buffer) setBytes(name string, def codec.Mode, data []byte, count Opt[uint32]) error {
	stride := bufferWidth * b.effectiveMode(def).Size()
	if stride == 0 {
		return &Error{Kind: ErrEncoding, Path: name, Message: "unsupported mode"}
	}
	if len(data)%stride != 0 {
		return newError(ErrEncoding, "%s data is %d bytes, not a multiple of %d", name, len(data), stride)
	}
	if n, ok := count.Get(); ok && int(n)*stride != len(data) {
		return newError(ErrEncoding, "%s count %d needs %d bytes, got %d", name, n, int(n)*stride, len(data))
	}
	b.Data = data
	b.Count = Some(uint32(len(data) / stride))
	return nil
}

func (b *Buffer) check(name string, def codec.Mode) error {
	if b.Data == nil {
		return nil
	}
	stride := bufferWidth * b.effectiveMode(def).Size()
	if stride == 0 || len(b.Data)%stride != 0 {
		return newError(ErrEncoding, "%s data of %d bytes is not N x 3 %s", name, len(b.Data), b.effectiveMode(def))
	}
	if n, ok := b.Count.Get(); ok && int(n)*stride != len(b.Data) {
		return newError(ErrEncoding, "%s count %d needs %d bytes, got %d", name, n, int(n)*stride, len(b.Data))
	}
	return nil
}

func bufferFields[E any](count string, def codec.Mode, buf func(E) *Buffer) []fieldDef[E] {
	return []fieldDef[E]{
		optDef(count, KindUint, func(e E) *Opt[uint32] { return &buf(e).Count }, required()),
		enumDef("mode", func(e E) *codec.Mode { return &buf(e).Mode }, codec.ParseMode, required(), withDefault(def)),
		enumDef("endianness", func(e E) *codec.Endianness { return &buf(e).Endianness }, codec.ParseEndianness, required(), withDefault(codec.Little)),
		bytesDef("data", func(e E) *[]byte { return &buf(e).Data }, required()),
	}
}

// Vertices is the float32-by-default vertex buffer of a mesh.
type Vertices struct{ Buffer }

var verticesFields = bufferFields("num_vertices", codec.Float32, func(v *Vertices) *Buffer { return &v.Buffer })

func (v *Vertices) EntityName() string { return "Vertices" }
func (v *Vertices) fields() []boundField { return bind(v, verticesFields) }

// EffectiveMode returns Mode, or float32 when unset.
func (v *Vertices) EffectiveMode() codec.Mode { return v.effectiveMode(codec.Float32) }

// DataArray decodes the buffer as N x 3.
func (v *Vertices) DataArray() (*codec.Array, error) { return v.decode("vertices", codec.Float32) }

// SetDataArray encodes an N x 3 (or flat 3N) array.
func (v *Vertices) SetDataArray(a *codec.Array) error { return v.encode("vertices", codec.Float32, a) }

// SetBytes assigns raw data; count, when present, must agree with it.
func (v *Vertices) SetBytes(data []byte, count Opt[uint32]) error {
	return v.setBytes("vertices", codec.Float32, data, count)
}

func (v *Vertices) check() error { return v.Buffer.check("vertices", codec.Float32) }

// Normals is the float32-by-default normal buffer of a mesh.
type Normals struct{ Buffer }

var normalsFields = bufferFields("num_normals", codec.Float32, func(v *Normals) *Buffer { return &v.Buffer })

func (n *Normals) EntityName() string { return "Normals" }
func (n *Normals) fields() []boundField { return bind(n, normalsFields) }

// EffectiveMode returns Mode, or float32 when unset.
func (n *Normals) EffectiveMode() codec.Mode { return n.effectiveMode(codec.Float32) }

// DataArray decodes the buffer as N x 3.
func (n *Normals) DataArray() (*codec.Array, error) { return n.decode("normals", codec.Float32) }

// SetDataArray encodes an N x 3 (or flat 3N) array.
func (n *Normals) SetDataArray(a *codec.Array) error { return n.encode("normals", codec.Float32, a) }

// SetBytes assigns raw data; count, when present, must agree with it.
func (n *Normals) SetBytes(data []byte, count Opt[uint32]) error {
	return n.setBytes("normals", codec.Float32, data, count)
}

func (n *Normals) check() error { return n.Buffer.check("normals", codec.Float32) }

// Triangles is the uint32-by-default index buffer of a mesh.
type Triangles struct{ Buffer }

var trianglesFields = bufferFields("num_triangles", codec.Uint32, func(v *Triangles) *Buffer { return &v.Buffer })

func (t *Triangles) EntityName() string { return "Triangles" }
func (t *Triangles) fields() []boundField { return bind(t, trianglesFields) }

// EffectiveMode returns Mode, or uint32 when unset.
func (t *Triangles) EffectiveMode() codec.Mode { return t.effectiveMode(codec.Uint32) }

// DataArray decodes the buffer as N x 3.
func (t *Triangles) DataArray() (*codec.Array, error) { return t.decode("triangles", codec.Uint32) }

// SetDataArray encodes an N x 3 (or flat 3N) array.
func (t *Triangles) SetDataArray(a *codec.Array) error { return t.encode("triangles", codec.Uint32, a) }

// SetBytes assigns raw data; count, when present, must agree with it.
func (t *Triangles) SetBytes(data []byte, count Opt[uint32]) error {
	return t.setBytes("triangles", codec.Uint32, data, count)
}

func (t *Triangles) check() error { return t.Buffer.check("triangles", codec.Uint32) }
