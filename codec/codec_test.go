package codec_test

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/emdb-empiar/sfftkrw/codec"
)

// TestEncodeDecode_AllModes round-trips a small array through every mode
// and byte order.
func TestEncodeDecode_AllModes(t *testing.T) {
	src := codec.MustFromSlice([]int64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23}, 2, 3, 4)
	for _, m := range codec.Modes() {
		for _, e := range []codec.Endianness{codec.Little, codec.Big} {
			b, err := codec.Encode(src, m, e)
			require.NoError(t, err, "%s/%s", m, e)
			require.Len(t, b, src.Len()*m.Size())

			got, err := codec.Decode(b, m, e, 2, 3, 4)
			require.NoError(t, err, "%s/%s", m, e)
			require.Equal(t, m, got.Mode())
			require.True(t, src.Equal(got), "%s/%s mismatch", m, e)
		}
	}
}

// TestLatticeLayout packs 0..63 as a 4x4x4 uint32 volume and checks the byte
// layout in both orders.
func TestLatticeLayout(t *testing.T) {
	vals := make([]uint32, 64)
	for i := range vals {
		vals[i] = uint32(i)
	}
	arr := codec.MustFromSlice(vals, 4, 4, 4)

	little, err := codec.Encode(arr, codec.Uint32, codec.Little)
	require.NoError(t, err)
	require.Len(t, little, 256)

	big, err := codec.Encode(arr, codec.Uint32, codec.Big)
	require.NoError(t, err)
	require.Len(t, big, 256)
	for i := 0; i < 64; i++ {
		lg, bg := little[i*4:i*4+4], big[i*4:i*4+4]
		if i == 0 {
			require.Equal(t, lg, bg)
			continue
		}
		require.False(t, bytes.Equal(lg, bg), "group %d equal in both orders", i)
	}

	for _, tc := range []struct {
		b []byte
		e codec.Endianness
	}{{little, codec.Little}, {big, codec.Big}} {
		got, err := codec.Decode(tc.b, codec.Uint32, tc.e, 4, 4, 4)
		require.NoError(t, err)
		out, ok := codec.Values[uint32](got)
		require.True(t, ok)
		require.Equal(t, vals, out)
		v, err := got.At(1, 2, 3)
		require.NoError(t, err)
		require.Equal(t, float64(1*16+2*4+3), v)
	}
}

// TestDecode_Errors covers the length checks.
func TestDecode_Errors(t *testing.T) {
	_, err := codec.Decode(make([]byte, 7), codec.Uint32, codec.Little)
	require.True(t, errors.Is(err, codec.ErrEncoding))

	_, err = codec.Decode(make([]byte, 16), codec.Uint32, codec.Little, 2, 3)
	require.True(t, errors.Is(err, codec.ErrEncoding))

	_, err = codec.Decode(make([]byte, 4), codec.Mode(0), codec.Little)
	require.True(t, errors.Is(err, codec.ErrEncoding))

	_, err = codec.Decode(make([]byte, 4), codec.Uint8, codec.Endianness(9))
	require.True(t, errors.Is(err, codec.ErrEncoding))

	// 4 float32 values cannot form rows of 3.
	_, err = codec.DecodeRows(make([]byte, 16), codec.Float32, codec.Little, 3)
	require.True(t, errors.Is(err, codec.ErrEncoding))

	rows, err := codec.DecodeRows(make([]byte, 24), codec.Float32, codec.Little, 3)
	require.NoError(t, err)
	require.Equal(t, []int{2, 3}, rows.Shape())

	_, err = codec.FromSlice([]float32{1, 2, 3, 4}, 3, 1)
	require.True(t, errors.Is(err, codec.ErrShape))
}

func TestParseModeAndEndianness(t *testing.T) {
	for _, m := range codec.Modes() {
		got, err := codec.ParseMode(m.String())
		require.NoError(t, err)
		require.Equal(t, m, got)
	}
	m, err := codec.ParseMode("f4")
	require.NoError(t, err)
	require.Equal(t, codec.Float32, m)
	_, err = codec.ParseMode("complex64")
	require.ErrorIs(t, err, codec.ErrEncoding)

	e, err := codec.ParseEndianness("big")
	require.NoError(t, err)
	require.Equal(t, codec.Big, e)
	_, err = codec.ParseEndianness("middle")
	require.ErrorIs(t, err, codec.ErrEncoding)
}

func TestPackText(t *testing.T) {
	raw := []byte{0, 1, 2, 3, 4, 5, 6, 7, 255}
	for _, compressed := range []bool{false, true} {
		s, err := codec.PackText(raw, compressed)
		require.NoError(t, err)
		// Wrapped text must still decode.
		wrapped := s[:4] + "\n   " + s[4:]
		got, err := codec.UnpackText(wrapped, compressed)
		require.NoError(t, err)
		require.Equal(t, raw, got)
	}
	_, err := codec.UnpackText("!!!", false)
	require.ErrorIs(t, err, codec.ErrEncoding)
}

func TestParseMatrix(t *testing.T) {
	m, err := codec.ParseMatrix("0 1 2 3 4 5 6 7 8 9 10 11", 3, 4)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{0, 1, 2, 3}, {4, 5, 6, 7}, {8, 9, 10, 11}}, m)

	_, err = codec.ParseMatrix("0 1 2 3 4 5 6 7 8 9 10 11", 3, 3)
	require.ErrorIs(t, err, codec.ErrShape)

	s, err := codec.FormatMatrix(m)
	require.NoError(t, err)
	require.Equal(t, "0 1 2 3 4 5 6 7 8 9 10 11", s)

	_, err = codec.FormatMatrix([][]float64{{1, 2}, {3}})
	require.ErrorIs(t, err, codec.ErrShape)
}

func TestConvert(t *testing.T) {
	a := codec.MustFromSlice([]float64{1, -2, 3})
	b, err := a.Convert(codec.Int16)
	require.NoError(t, err)
	v, ok := codec.Values[int16](b)
	require.True(t, ok)
	require.Equal(t, []int16{1, -2, 3}, v)

	r, err := codec.MustFromSlice([]float64{1, 2, 3, 4, 5, 6}, 2, 3).Rows()
	require.NoError(t, err)
	require.Equal(t, [][]float64{{1, 2, 3}, {4, 5, 6}}, r)
}

// TestEncode_RejectsLossyValues refuses values the target mode cannot hold
// instead of wrapping or truncating them.
func TestEncode_RejectsLossyValues(t *testing.T) {
	_, err := codec.EncodeSlice([]int32{0, 300, 7}, codec.Uint8, codec.Little)
	require.ErrorIs(t, err, codec.ErrEncoding)
	require.Contains(t, err.Error(), "element 1")

	_, err = codec.EncodeSlice([]int32{-1}, codec.Uint8, codec.Little)
	require.ErrorIs(t, err, codec.ErrEncoding)

	_, err = codec.EncodeSlice([]float64{1, 2, -0.7}, codec.Uint32, codec.Little)
	require.ErrorIs(t, err, codec.ErrEncoding)
	require.Contains(t, err.Error(), "not an integer")

	_, err = codec.EncodeSlice([]float64{2.5}, codec.Int32, codec.Little)
	require.ErrorIs(t, err, codec.ErrEncoding)

	_, err = codec.EncodeSlice([]float32{float32(math.NaN())}, codec.Int64, codec.Little)
	require.ErrorIs(t, err, codec.ErrEncoding)

	_, err = codec.EncodeSlice([]uint64{math.MaxUint64}, codec.Int64, codec.Big)
	require.ErrorIs(t, err, codec.ErrEncoding)

	_, err = codec.EncodeSlice([]float64{math.MaxFloat64}, codec.Float32, codec.Little)
	require.ErrorIs(t, err, codec.ErrEncoding)
}

func TestEncode_ConvertsAtRangeEdges(t *testing.T) {
	cases := []struct {
		src  *codec.Array
		mode codec.Mode
	}{
		{codec.MustFromSlice([]int64{-128, 127}), codec.Int8},
		{codec.MustFromSlice([]int32{0, 255}), codec.Uint8},
		{codec.MustFromSlice([]float64{-32768, 32767}), codec.Int16},
		{codec.MustFromSlice([]float64{0, 4294967295}), codec.Uint32},
		{codec.MustFromSlice([]uint64{0, math.MaxInt64}), codec.Int64},
		{codec.MustFromSlice([]uint8{0, 255}), codec.Uint64},
		{codec.MustFromSlice([]int16{-3, 4}), codec.Float32},
	}
	for _, c := range cases {
		b, err := codec.Encode(c.src, c.mode, codec.Little)
		require.NoError(t, err, c.mode)
		got, err := codec.Decode(b, c.mode, codec.Little)
		require.NoError(t, err, c.mode)
		require.True(t, c.src.Equal(got), "%s: %v", c.mode, got.Float64s())
	}
}
