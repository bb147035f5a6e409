package sfftkrw

import (
	"fmt"

	"github.com/emdb-empiar/sfftkrw/codec"
)

// Lattice is a dense label volume. Data holds the packed voxels in
// (sections, rows, cols) order.
type Lattice struct {
	ID         Opt[uint32]
	Mode       codec.Mode
	Endianness codec.Endianness
	Size       *VolumeStructure
	Start      *VolumeIndex
	Data       []byte
}

var latticeFields = []fieldDef[*Lattice]{
	idDef(func(l *Lattice) *Opt[uint32] { return &l.ID }),
	enumDef("mode", func(l *Lattice) *codec.Mode { return &l.Mode }, codec.ParseMode, required(), withDefault(codec.Uint32)),
	enumDef("endianness", func(l *Lattice) *codec.Endianness { return &l.Endianness }, codec.ParseEndianness, required(), withDefault(codec.Little)),
	entDef("size", "VolumeStructure", func(l *Lattice) **VolumeStructure { return &l.Size }, required()),
	entDef("start", "VolumeIndex", func(l *Lattice) **VolumeIndex { return &l.Start }),
	bytesDef("data", func(l *Lattice) *[]byte { return &l.Data }, required(), compressed()),
}

func (l *Lattice) EntityName() string    { return "Lattice" }
func (l *Lattice) Identity() Opt[uint32] { return l.ID }
func (l *Lattice) fields() []boundField  { return bind(l, latticeFields) }

// EffectiveMode returns Mode, or uint32 when unset.
func (l *Lattice) EffectiveMode() codec.Mode {
	if l.Mode.Valid() {
		return l.Mode
	}
	return codec.Uint32
}

// EffectiveEndianness returns Endianness, or little when unset.
func (l *Lattice) EffectiveEndianness() codec.Endianness {
	if l.Endianness.Valid() {
		return l.Endianness
	}
	return codec.Little
}

// EffectiveStart returns Start, or the origin when unset.
func (l *Lattice) EffectiveStart() *VolumeIndex {
	if l.Start != nil {
		return l.Start
	}
	return NewVolumeIndex(0, 0, 0)
}

// DataArray decodes Data with shape (sections, rows, cols).
func (l *Lattice) DataArray() (*codec.Array, error) {
	if l.Size == nil {
		return nil, newError(ErrShape, "lattice has no size")
	}
	a, err := codec.Decode(l.Data, l.EffectiveMode(), l.EffectiveEndianness(), l.Size.Shape()...)
	return a, wrapCodec(err, "lattice/data")
}

// SetDataArray encodes a into Data using the lattice's mode and byte
// order. a must have shape (sections, rows, cols).
func (l *Lattice) SetDataArray(a *codec.Array) error {
	if err := checkLatticeShape(l.Size, a); err != nil {
		return err
	}
	b, err := codec.Encode(a, l.EffectiveMode(), l.EffectiveEndianness())
	if err != nil {
		return wrapCodec(err, "lattice/data")
	}
	l.Data = b
	return nil
}

// DataText renders Data as base64 over zlib.
func (l *Lattice) DataText() (string, error) {
	s, err := codec.PackText(l.Data, true)
	return s, wrapCodec(err, "lattice/data")
}

// check verifies the byte length agrees with the size and mode.
func (l *Lattice) check() error {
	if l.Size == nil || l.Data == nil {
		return nil
	}
	want := l.Size.VoxelCount() * l.EffectiveMode().Size()
	if len(l.Data) != want {
		return newError(ErrEncoding, "lattice data is %d bytes, size %s of %s needs %d",
			len(l.Data), l.Size, l.EffectiveMode(), want)
	}
	return nil
}

func checkLatticeShape(size *VolumeStructure, a *codec.Array) error {
	if size == nil {
		return newError(ErrShape, "lattice has no size")
	}
	want := size.Shape()
	got := a.Shape()
	if len(got) != 3 || got[0] != want[0] || got[1] != want[1] || got[2] != want[2] {
		return &Error{Kind: ErrShape, Path: "lattice/data", Message: fmt.Sprintf("array shape %v does not match (sections, rows, cols) %v", got, want)}
	}
	return nil
}

// LatticeList holds the lattices of a segmentation.
type LatticeList struct {
	List[*Lattice]
}

func (l *LatticeList) EntityName() string { return "LatticeList" }

// Copy returns a shallow copy.
func (l *LatticeList) Copy() *LatticeList { return &LatticeList{List: l.clone()} }
