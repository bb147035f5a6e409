package hff

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/zeebo/blake3"
)

// Magic prefixes every file written by this package.
const Magic = "\x89HFF\r\n\x1a\n"

// hdf5Magic is the signature of a real HDF5 file.
const hdf5Magic = "\x89HDF\r\n\x1a\n"

const formatTag = "sfftkrw-hff/1"

var (
	// ErrFormat reports a file that is not an HFF document.
	ErrFormat = errors.New("hff: not an hff file")
	// ErrNativeHDF5 reports a native HDF5 file, which this store does not
	// parse.
	ErrNativeHDF5 = errors.New("hff: native HDF5 files are not supported")
	// ErrChecksum reports a payload whose BLAKE3 digest does not match.
	ErrChecksum = errors.New("hff: checksum mismatch")
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("hff: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("hff: CBOR decoder initialization failed: " + err.Error())
	}
}

type envelope struct {
	Format      string `cbor:"1,keyasint"`
	Compression string `cbor:"2,keyasint"`
	Size        uint64 `cbor:"3,keyasint"`
	Checksum    []byte `cbor:"4,keyasint"`
	Payload     []byte `cbor:"5,keyasint"`
}

type wireNode struct {
	Name     string     `cbor:"1,keyasint"`
	Dataset  bool       `cbor:"2,keyasint,omitempty"`
	Attrs    []wireAttr `cbor:"3,keyasint,omitempty"`
	Children []wireNode `cbor:"4,keyasint,omitempty"`
	DType    uint8      `cbor:"5,keyasint,omitempty"`
	Shape    []int      `cbor:"6,keyasint,omitempty"`
	Text     string     `cbor:"7,keyasint,omitempty"`
	Raw      []byte     `cbor:"8,keyasint,omitempty"`
	Floats   []float64  `cbor:"9,keyasint,omitempty"`
	Ints     []int64    `cbor:"10,keyasint,omitempty"`
	Uints    []uint64   `cbor:"11,keyasint,omitempty"`
}

const (
	attrString uint8 = iota + 1
	attrInt
	attrUint
	attrFloat
	attrBool
)

type wireAttr struct {
	Name  string  `cbor:"1,keyasint"`
	Type  uint8   `cbor:"2,keyasint"`
	Text  string  `cbor:"3,keyasint,omitempty"`
	Int   int64   `cbor:"4,keyasint,omitempty"`
	Uint  uint64  `cbor:"5,keyasint,omitempty"`
	Float float64 `cbor:"6,keyasint,omitempty"`
	Bool  bool    `cbor:"7,keyasint,omitempty"`
}

// WriteOptions controls Write.
type WriteOptions struct {
	Compression Compression
}

// Write serialises root to w.
func Write(w io.Writer, root *Group, opts WriteOptions) error {
	b, err := Marshal(root, opts)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// Marshal returns the file bytes for root.
func Marshal(root *Group, opts WriteOptions) ([]byte, error) {
	payload, err := encMode.Marshal(toWire(root))
	if err != nil {
		return nil, fmt.Errorf("hff: encode tree: %w", err)
	}
	sum := blake3.Sum256(payload)
	packed, used, err := compress(payload, opts.Compression)
	if err != nil {
		return nil, err
	}
	env, err := encMode.Marshal(envelope{
		Format:      formatTag,
		Compression: used.String(),
		Size:        uint64(len(payload)),
		Checksum:    sum[:],
		Payload:     packed,
	})
	if err != nil {
		return nil, fmt.Errorf("hff: encode envelope: %w", err)
	}
	return append([]byte(Magic), env...), nil
}

// Read parses a file from r.
func Read(r io.Reader) (*Group, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Unmarshal(b)
}

// Unmarshal parses file bytes.
func Unmarshal(b []byte) (*Group, error) {
	if bytes.HasPrefix(b, []byte(hdf5Magic)) {
		return nil, ErrNativeHDF5
	}
	if !bytes.HasPrefix(b, []byte(Magic)) {
		return nil, ErrFormat
	}
	var env envelope
	if err := decMode.Unmarshal(b[len(Magic):], &env); err != nil {
		return nil, fmt.Errorf("%w: envelope: %v", ErrFormat, err)
	}
	if env.Format != formatTag {
		return nil, fmt.Errorf("%w: unknown format %q", ErrFormat, env.Format)
	}
	c, err := ParseCompression(env.Compression)
	if err != nil {
		return nil, err
	}
	payload, err := decompress(env.Payload, c, int(env.Size))
	if err != nil {
		return nil, err
	}
	sum := blake3.Sum256(payload)
	if !bytes.Equal(sum[:], env.Checksum) {
		return nil, ErrChecksum
	}
	var wn wireNode
	if err := decMode.Unmarshal(payload, &wn); err != nil {
		return nil, fmt.Errorf("%w: tree: %v", ErrFormat, err)
	}
	n, err := fromWire(wn)
	if err != nil {
		return nil, err
	}
	root, ok := n.(*Group)
	if !ok {
		return nil, fmt.Errorf("%w: root is not a group", ErrFormat)
	}
	return root, nil
}

// IsHFF reports whether b starts with the file signature.
func IsHFF(b []byte) bool { return bytes.HasPrefix(b, []byte(Magic)) }

// IsHDF5 reports whether b starts with the native HDF5 signature.
func IsHDF5(b []byte) bool { return bytes.HasPrefix(b, []byte(hdf5Magic)) }

func toWire(n Node) wireNode {
	wn := wireNode{Name: n.Name(), Attrs: attrsToWire(n.Attrs())}
	switch x := n.(type) {
	case *Group:
		for _, c := range x.children {
			wn.Children = append(wn.Children, toWire(c))
		}
	case *Dataset:
		wn.Dataset = true
		wn.DType = uint8(x.dtype)
		wn.Shape = x.shape
		wn.Text = x.text
		wn.Raw = x.raw
		wn.Floats = x.floats
		wn.Ints = x.ints
		wn.Uints = x.uints
	}
	return wn
}

func attrsToWire(a *Attrs) []wireAttr {
	out := make([]wireAttr, 0, a.Len())
	for _, name := range a.names {
		wa := wireAttr{Name: name}
		switch v := a.values[name].(type) {
		case string:
			wa.Type, wa.Text = attrString, v
		case int64:
			wa.Type, wa.Int = attrInt, v
		case uint64:
			wa.Type, wa.Uint = attrUint, v
		case float64:
			wa.Type, wa.Float = attrFloat, v
		case bool:
			wa.Type, wa.Bool = attrBool, v
		}
		out = append(out, wa)
	}
	return out
}

func fromWire(wn wireNode) (Node, error) {
	var n Node
	if wn.Dataset {
		ds := &Dataset{
			name:   wn.Name,
			dtype:  DType(wn.DType),
			shape:  wn.Shape,
			text:   wn.Text,
			raw:    wn.Raw,
			floats: wn.Floats,
			ints:   wn.Ints,
			uints:  wn.Uints,
		}
		switch ds.dtype {
		case String, Bytes, Float64, Int64, Uint64:
		default:
			return nil, fmt.Errorf("%w: dataset %q has unknown dtype %d", ErrFormat, wn.Name, wn.DType)
		}
		if ds.dtype == Bytes && ds.raw == nil {
			ds.raw = []byte{}
		}
		n = ds
	} else {
		g := &Group{name: wn.Name}
		for _, c := range wn.Children {
			child, err := fromWire(c)
			if err != nil {
				return nil, err
			}
			if err := g.add(child); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrFormat, err)
			}
		}
		n = g
	}
	attrs := n.Attrs()
	for _, wa := range wn.Attrs {
		switch wa.Type {
		case attrString:
			attrs.Set(wa.Name, wa.Text)
		case attrInt:
			attrs.Set(wa.Name, wa.Int)
		case attrUint:
			attrs.Set(wa.Name, wa.Uint)
		case attrFloat:
			attrs.Set(wa.Name, wa.Float)
		case attrBool:
			attrs.Set(wa.Name, wa.Bool)
		default:
			return nil, fmt.Errorf("%w: attribute %q has unknown type %d", ErrFormat, wa.Name, wa.Type)
		}
	}
	return n, nil
}
