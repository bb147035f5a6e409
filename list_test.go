package sfftkrw_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	sff "github.com/emdb-empiar/sfftkrw"
)

// TestSegmentList_IDs appends two built segments and then a hand-made one
// reusing id 1.
func TestSegmentList_IDs(t *testing.T) {
	b := sff.MustBuilder("")
	l := b.NewSegmentList()
	s1, s2 := b.NewSegment(), b.NewSegment()
	require.NoError(t, l.Append(s1))
	require.NoError(t, l.Append(s2))
	require.Equal(t, uint32(1), s1.ID.Value())
	require.Equal(t, uint32(2), s2.ID.Value())
	require.Equal(t, []uint32{1, 2}, l.IDs())

	err := l.Append(&sff.Segment{ID: sff.Some(uint32(1))})
	require.True(t, errors.Is(err, sff.ErrDuplicateID), "got %v", err)
	require.Equal(t, 2, l.Len())

	got, err := l.GetByID(2)
	require.NoError(t, err)
	require.Same(t, s2, got)
}

// TestSegmentList_NewListRewinds restarts numbering for every new list.
func TestSegmentList_NewListRewinds(t *testing.T) {
	b := sff.MustBuilder("")
	_ = b.NewSegmentList()
	b.NewSegment()
	b.NewSegment()
	_ = b.NewSegmentList()
	require.Equal(t, uint32(1), b.NewSegment().ID.Value())
}

// TestList_IndexConsistency mutates a list in every supported way and
// checks the id index still matches the items.
func TestList_IndexConsistency(t *testing.T) {
	b := sff.MustBuilder("")
	l := b.NewSegmentList()
	segs := make([]*sff.Segment, 5)
	for i := range segs {
		segs[i] = b.NewSegment()
		require.NoError(t, l.Append(segs[i]))
	}
	require.NoError(t, l.Insert(0, &sff.Segment{ID: sff.Some(uint32(10))}))
	_, err := l.PopAt(2)
	require.NoError(t, err)
	require.NoError(t, l.Set(0, &sff.Segment{ID: sff.Some(uint32(11))}))
	require.NoError(t, l.Remove(segs[4]))
	require.NoError(t, l.Append(&sff.Segment{}))

	consistent := func() {
		t.Helper()
		for _, s := range l.All() {
			if id, ok := s.ID.Get(); ok {
				got, err := l.GetByID(id)
				require.NoError(t, err)
				require.Same(t, s, got)
			}
		}
		for _, id := range l.IDs() {
			got, err := l.GetByID(id)
			require.NoError(t, err)
			require.Contains(t, l.Items(), got)
		}
	}
	consistent()
	require.Equal(t, []uint32{11, 1, 3, 4}, l.IDs())

	_, err = l.GetByID(10)
	require.ErrorIs(t, err, sff.ErrKey)

	// renumber in place, then rebuild
	l.At(1).ID = sff.Some(uint32(7))
	require.NoError(t, l.Reindex())
	consistent()
	require.True(t, l.Contains(7))
	require.False(t, l.Contains(1))
}

func TestList_SetRejectsDuplicate(t *testing.T) {
	b := sff.MustBuilder("")
	l := b.NewSegmentList()
	require.NoError(t, l.Append(b.NewSegment()))
	require.NoError(t, l.Append(b.NewSegment()))

	err := l.Set(0, &sff.Segment{ID: sff.Some(uint32(2))})
	require.ErrorIs(t, err, sff.ErrDuplicateID)
	require.Equal(t, uint32(1), l.At(0).ID.Value())
	require.True(t, l.Contains(1))
}

// TestList_ExtendIsAllOrNothing adds nothing when one id collides.
func TestList_ExtendIsAllOrNothing(t *testing.T) {
	b := sff.MustBuilder("")
	l := b.NewExternalReferenceList()
	require.NoError(t, l.Append(b.NewExternalReference("go", "", "GO:1")))

	other := &sff.ExternalReferenceList{}
	require.NoError(t, other.Append(&sff.ExternalReference{ID: sff.Some(uint32(5)), Resource: "a", Accession: "1"}))
	require.NoError(t, other.Append(&sff.ExternalReference{ID: sff.Some(uint32(0)), Resource: "b", Accession: "2"}))

	require.ErrorIs(t, l.Extend(&other.List), sff.ErrDuplicateID)
	require.Equal(t, 1, l.Len())
}

func TestList_RejectsNil(t *testing.T) {
	l := &sff.SegmentList{}
	require.ErrorIs(t, l.Append(nil), sff.ErrType)
	require.ErrorIs(t, l.Delete(0), sff.ErrValue)
}

// TestList_EqualComparesLength treats a prefix as different.
func TestList_EqualComparesLength(t *testing.T) {
	b := sff.MustBuilder("")
	short, long := &sff.SegmentList{}, &sff.SegmentList{}
	s := b.NewSegment()
	require.NoError(t, short.Append(s))
	require.NoError(t, long.Append(s))
	require.NoError(t, long.Append(b.NewSegment()))

	require.False(t, short.Equal(&long.List))
	require.False(t, sff.Equal(short, long))
	require.True(t, sff.Equal(short, short.Copy()))
}

func TestShapePrimitiveList_Counts(t *testing.T) {
	seg := shapeDoc(t)
	shapes := seg.Segments.At(0).Shapes()
	require.Equal(t, 1, shapes.NumCones())
	require.Equal(t, 1, shapes.NumCuboids())
	require.Equal(t, 1, shapes.NumCylinders())
	require.Equal(t, 1, shapes.NumEllipsoids())
	require.Equal(t, []uint32{0, 1, 2, 3}, shapes.IDs())

	kinds := []sff.ShapeKind{}
	for _, sh := range shapes.All() {
		kinds = append(kinds, sh.Kind())
	}
	require.Equal(t, sff.ShapeKinds(), kinds)
}
