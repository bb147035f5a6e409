package sfftkrw_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	sff "github.com/emdb-empiar/sfftkrw"
)

// TestMergeAnnotation takes annotation from another document but keeps the
// geometry.
func TestMergeAnnotation(t *testing.T) {
	dst := volumeDoc(t)
	src := richDoc(t)
	src.Name = "annotated"

	require.NoError(t, dst.MergeAnnotation(src))
	require.Equal(t, "annotated", dst.Name)
	require.Equal(t, src.Details, dst.Details)
	require.Equal(t, 2, dst.SoftwareList.Len())
	require.Equal(t, 1, dst.GlobalReferences().Len())
	require.Equal(t, "nucleus", dst.Segments.At(0).Annotation().Name)
	require.Equal(t, 1, dst.Segments.Len())
	require.Nil(t, dst.BoundingBox)
	require.NoError(t, sff.Validate(dst))

	require.ErrorIs(t, dst.MergeAnnotation(nil), sff.ErrType)
}

func TestMergeAnnotation_MissingSegment(t *testing.T) {
	dst := richDoc(t)
	src := volumeDoc(t)
	require.ErrorIs(t, dst.MergeAnnotation(src), sff.ErrKey)
}

func TestCopyAnnotation(t *testing.T) {
	seg := richDoc(t)

	require.NoError(t, seg.CopyAnnotation(1, 2))
	child, err := seg.Segments.GetByID(2)
	require.NoError(t, err)
	refs := child.Annotation().References()
	require.Equal(t, 1, refs.Len())
	require.Equal(t, "GO:0005634", refs.At(0).Accession)

	// the copy is independent of the source
	refs.At(0).Accession = "GO:0000001"
	first, err := seg.Segments.GetByID(1)
	require.NoError(t, err)
	require.Equal(t, "GO:0005634", first.Annotation().References().At(0).Accession)

	// copying the same ids again collides
	require.ErrorIs(t, seg.CopyAnnotation(1, 2), sff.ErrDuplicateID)
	require.Equal(t, 1, refs.Len())

	// the global reference also has id 0
	require.ErrorIs(t, seg.CopyAnnotation(sff.GlobalAnnotation, 1), sff.ErrDuplicateID)

	require.NoError(t, seg.CopyAnnotation(1, 1))
	require.Equal(t, 1, first.Annotation().References().Len())

	_, err = seg.Segments.GetByID(9)
	require.ErrorIs(t, err, sff.ErrKey)
	require.ErrorIs(t, seg.CopyAnnotation(9, 1), sff.ErrKey)
	require.ErrorIs(t, seg.CopyAnnotation(1, -5), sff.ErrKey)
}

func TestCopyAnnotation_ToGlobal(t *testing.T) {
	seg := volumeDoc(t)
	first := seg.Segments.At(0)
	require.NoError(t, first.Annotation().References().Append(&sff.ExternalReference{
		ID: sff.Some(uint32(4)), Resource: "pdb", Accession: "1abc",
	}))
	require.NoError(t, seg.CopyAnnotation(1, sff.GlobalAnnotation))
	require.Equal(t, []uint32{4}, seg.GlobalReferences().IDs())
}

func TestClearAnnotation(t *testing.T) {
	seg := richDoc(t)
	require.NoError(t, seg.ClearAnnotation(1))
	first, err := seg.Segments.GetByID(1)
	require.NoError(t, err)
	require.Equal(t, 0, first.Annotation().References().Len())
	require.Equal(t, "nucleus", first.Annotation().Name)

	require.NoError(t, seg.ClearAnnotation(sff.GlobalAnnotation))
	require.Equal(t, 0, seg.GlobalReferences().Len())

	require.ErrorIs(t, seg.ClearAnnotation(42), sff.ErrKey)
}
