package sfftkrw_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	sff "github.com/emdb-empiar/sfftkrw"
	"github.com/emdb-empiar/sfftkrw/codec"
)

func counting(n int) []uint32 {
	out := make([]uint32, n)
	for i := range out {
		out[i] = uint32(i)
	}
	return out
}

// TestLattice_EncodeDecode packs 0..63 as a 4x4x4 uint32 volume in both
// byte orders.
func TestLattice_EncodeDecode(t *testing.T) {
	b := sff.MustBuilder("")
	arr := codec.MustFromSlice(counting(64), 4, 4, 4)

	little, err := b.NewLatticeFromArray(codec.Uint32, codec.Little, arr, nil)
	require.NoError(t, err)
	require.Len(t, little.Data, 256)
	require.Equal(t, [3]uint32{4, 4, 4}, little.Size.Value())

	got, err := little.DataArray()
	require.NoError(t, err)
	require.True(t, arr.Equal(got))

	big, err := b.NewLatticeFromArray(codec.Uint32, codec.Big, arr, nil)
	require.NoError(t, err)
	require.Len(t, big.Data, 256)
	for i := 1; i < 64; i++ {
		require.False(t, bytes.Equal(little.Data[i*4:i*4+4], big.Data[i*4:i*4+4]), "group %d", i)
	}
	got, err = big.DataArray()
	require.NoError(t, err)
	require.True(t, arr.Equal(got))

	require.Equal(t, uint32(0), little.ID.Value())
	require.Equal(t, uint32(1), big.ID.Value())
}

func TestLattice_FromBytesChecksLength(t *testing.T) {
	b := sff.MustBuilder("")
	size := sff.NewVolumeStructure(2, 2, 2)
	_, err := b.NewLatticeFromBytes(codec.Uint16, codec.Little, size, nil, make([]byte, 8))
	require.ErrorIs(t, err, sff.ErrEncoding)

	l, err := b.NewLatticeFromBytes(codec.Uint16, codec.Little, size, nil, make([]byte, 16))
	require.NoError(t, err)
	require.Equal(t, uint32(0), l.ID.Value())
}

func TestLattice_FromText(t *testing.T) {
	b := sff.MustBuilder("")
	arr := codec.MustFromSlice([]int16{-3, -2, -1, 0, 1, 2}, 1, 2, 3)
	src, err := b.NewLatticeFromArray(codec.Int16, codec.Big, arr, sff.NewVolumeIndex(-1, 0, 2))
	require.NoError(t, err)
	text, err := src.DataText()
	require.NoError(t, err)

	l, err := b.NewLatticeFromText(codec.Int16, codec.Big, src.Size, src.Start, text)
	require.NoError(t, err)
	require.Equal(t, src.Data, l.Data)
	got, err := l.DataArray()
	require.NoError(t, err)
	require.True(t, arr.Equal(got))

	_, err = b.NewLatticeFromText(codec.Int16, codec.Big, src.Size, nil, "not base64!")
	require.ErrorIs(t, err, sff.ErrEncoding)
}

func TestLattice_ShapeMismatch(t *testing.T) {
	l := &sff.Lattice{Mode: codec.Uint8, Endianness: codec.Little, Size: sff.NewVolumeStructure(2, 2, 2)}
	err := l.SetDataArray(codec.MustFromSlice([]uint8{1, 2, 3, 4}, 1, 2, 2))
	require.ErrorIs(t, err, sff.ErrShape)
}

func TestLattice_Defaults(t *testing.T) {
	l := &sff.Lattice{}
	require.Equal(t, codec.Uint32, l.EffectiveMode())
	require.Equal(t, codec.Little, l.EffectiveEndianness())
	require.Equal(t, [3]int32{0, 0, 0}, l.EffectiveStart().Value())
}

// TestLattice_FromArrayRejectsOverflow keeps labels that do not fit the
// lattice mode out of the packed data.
func TestLattice_FromArrayRejectsOverflow(t *testing.T) {
	b := sff.MustBuilder("")
	arr := codec.MustFromSlice([]int32{300, -1, 256, 7, 0, 1, 2, 3}, 2, 2, 2)
	_, err := b.NewLatticeFromArray(codec.Uint8, codec.Little, arr, nil)
	require.ErrorIs(t, err, sff.ErrEncoding)

	fits := codec.MustFromSlice([]int32{255, 0, 1, 7, 0, 1, 2, 3}, 2, 2, 2)
	l, err := b.NewLatticeFromArray(codec.Uint8, codec.Little, fits, nil)
	require.NoError(t, err)
	require.Equal(t, []byte{255, 0, 1, 7, 0, 1, 2, 3}, l.Data)
}
