package sfftkrw_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	sff "github.com/emdb-empiar/sfftkrw"
)

func TestFields_Order(t *testing.T) {
	c := &sff.Colour{Red: sff.Some(0.5)}
	fs := sff.Fields(c)
	names := make([]string, len(fs))
	for i, f := range fs {
		names[i] = f.Name
	}
	require.Equal(t, []string{"red", "green", "blue", "alpha"}, names)
	require.True(t, fs[0].Present)
	require.Equal(t, 0.5, fs[0].Value)
	require.False(t, fs[1].Present)
	require.Nil(t, fs[1].Value)
	require.Equal(t, sff.KindFloat, fs[3].Kind)
}

// TestGet_Defaults reads absent fields as their declared default.
func TestGet_Defaults(t *testing.T) {
	v, err := sff.Get(&sff.Colour{}, "alpha")
	require.NoError(t, err)
	require.Equal(t, 1.0, v)

	v, err = sff.Get(&sff.BiologicalAnnotation{}, "number_of_instances")
	require.NoError(t, err)
	require.Equal(t, uint32(1), v)

	v, err = sff.Get(&sff.Segment{}, "parent_id")
	require.NoError(t, err)
	require.Equal(t, uint32(0), v)

	v, err = sff.Get(&sff.BiologicalAnnotation{}, "external_references")
	require.NoError(t, err)
	refs, ok := v.(*sff.ExternalReferenceList)
	require.True(t, ok, "got %T", v)
	require.Equal(t, 0, refs.Len())

	v, err = sff.Get(&sff.Segment{}, "colour")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSet_Clear(t *testing.T) {
	ann := &sff.BiologicalAnnotation{}
	require.NoError(t, sff.Set(ann, "name", "mitochondrion"))
	require.NoError(t, sff.Set(ann, "number_of_instances", uint32(4)))
	require.Equal(t, "mitochondrion", ann.Name)
	require.Equal(t, uint32(4), ann.NumberOfInstances.Value())

	require.NoError(t, sff.Clear(ann, "number_of_instances"))
	require.False(t, ann.NumberOfInstances.Valid())

	seg := &sff.Segment{}
	colour, err := sff.NewColour(0, 1, 0, 1)
	require.NoError(t, err)
	require.NoError(t, sff.Set(seg, "colour", colour))
	require.Same(t, colour, seg.Colour)
	require.NoError(t, sff.Clear(seg, "colour"))
	require.Nil(t, seg.Colour)
}

func TestSet_Errors(t *testing.T) {
	ann := &sff.BiologicalAnnotation{}
	require.ErrorIs(t, sff.Set(ann, "number_of_instances", 4), sff.ErrType)
	require.ErrorIs(t, sff.Set(ann, "name", 3.0), sff.ErrType)
	require.ErrorIs(t, sff.Set(&sff.Segment{}, "colour", (*sff.Colour)(nil)), sff.ErrType)

	err := sff.Set(ann, "nmae", "x")
	require.ErrorIs(t, err, sff.ErrKey)
	require.Contains(t, err.Error(), `"nmae"`)

	_, err = sff.Get(ann, "missing")
	require.ErrorIs(t, err, sff.ErrKey)
	require.ErrorIs(t, sff.Clear(ann, "missing"), sff.ErrKey)
}

func TestSpec(t *testing.T) {
	s, err := sff.Spec(&sff.Segment{}, "id")
	require.NoError(t, err)
	require.True(t, s.Required)
	require.True(t, s.Identity)
	require.NotEmpty(t, s.Help)

	s, err = sff.Spec(&sff.Segmentation{}, "segments")
	require.NoError(t, err)
	require.Equal(t, sff.KindList, s.Kind)
	require.Equal(t, "SegmentList", s.Entity)
	require.Equal(t, 1, s.MinLength)

	s, err = sff.Spec(&sff.Lattice{}, "data")
	require.NoError(t, err)
	require.True(t, s.Compressed)
}
