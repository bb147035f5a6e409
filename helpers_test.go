package sfftkrw_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	sff "github.com/emdb-empiar/sfftkrw"
	"github.com/emdb-empiar/sfftkrw/codec"
)

// volumeDoc is a one-segment three_d_volume segmentation over a 2x2x2 uint8
// lattice holding 0..7.
func volumeDoc(t *testing.T) *sff.Segmentation {
	t.Helper()
	b := sff.MustBuilder("")
	seg := b.NewSegmentation("t", sff.DescriptorThreeDVolume)

	tf, err := b.NewTransformationMatrix(3, 4, "1 0 0 0 0 1 0 0 0 0 1 0")
	require.NoError(t, err)
	seg.Transforms = b.NewTransformList()
	require.NoError(t, seg.Transforms.Append(tf))

	arr := codec.MustFromSlice([]uint8{0, 1, 2, 3, 4, 5, 6, 7}, 2, 2, 2)
	lat, err := b.NewLatticeFromArray(codec.Uint8, codec.Little, arr, nil)
	require.NoError(t, err)
	seg.Lattices = b.NewLatticeList()
	require.NoError(t, seg.Lattices.Append(lat))

	s := b.NewSegment()
	s.Colour, err = sff.NewColour(1, 0, 0, 1)
	require.NoError(t, err)
	s.ThreeDVolume = b.NewThreeDVolume(0, 3)
	seg.Segments = b.NewSegmentList()
	require.NoError(t, seg.Segments.Append(s))
	return seg
}

// richDoc extends volumeDoc with annotation, software, references, a
// bounding box and a child segment.
func richDoc(t *testing.T) *sff.Segmentation {
	t.Helper()
	b := sff.MustBuilder("")
	seg := volumeDoc(t)
	seg.Details = "  leading and trailing space  "
	seg.BoundingBox = &sff.BoundingBox{XMax: sff.Some(10.5), YMax: sff.Some(20.0), ZMin: sff.Some(-1.0), ZMax: sff.Some(30.0)}

	seg.SoftwareList = b.NewSoftwareList()
	require.NoError(t, seg.SoftwareList.Append(b.NewSoftware("segger", "2.1", "threshold 0.5")))
	require.NoError(t, seg.SoftwareList.Append(b.NewSoftware("chimera", "", "")))

	seg.GlobalExternalReferences = b.NewGlobalExternalReferenceList()
	require.NoError(t, seg.GlobalExternalReferences.Append(b.NewExternalReference("ncbitaxon", "http://purl.obolibrary.org/obo/NCBITaxon_9606", "NCBITaxon_9606")))

	first := seg.Segments.At(0)
	first.BiologicalAnnotation = &sff.BiologicalAnnotation{
		Name:              "nucleus",
		Description:       "the nucleus",
		NumberOfInstances: sff.Some(uint32(2)),
	}
	refs := b.NewExternalReferenceList()
	require.NoError(t, refs.Append(b.NewExternalReference("go", "", "GO:0005634")))
	first.BiologicalAnnotation.ExternalReferences = refs

	child := &sff.Segment{ID: sff.Some(uint32(2)), ParentID: sff.Some(uint32(1)), ThreeDVolume: sff.NewThreeDVolume(0, 5)}
	child.Colour = &sff.Colour{Red: sff.Some(0.0), Green: sff.Some(0.5), Blue: sff.Some(0.25)}
	require.NoError(t, seg.Segments.Append(child))
	return seg
}

// meshDoc is a mesh_list segmentation whose single segment carries one
// buffer-encoded triangle.
func meshDoc(t *testing.T) *sff.Segmentation {
	t.Helper()
	b := sff.MustBuilder("")
	seg := b.NewSegmentation("meshes", sff.DescriptorMeshList)
	tf, err := b.NewTransformFromArray([][]float64{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}})
	require.NoError(t, err)
	seg.Transforms = b.NewTransformList()
	require.NoError(t, seg.Transforms.Append(tf))

	verts, err := b.NewVertices(codec.MustFromSlice([]float32{0, 0, 0, 1, 0, 0, 0, 1, 0}, 3, 3))
	require.NoError(t, err)
	norms, err := b.NewNormals(codec.MustFromSlice([]float32{0, 0, 1, 0, 0, 1, 0, 0, 1}, 3, 3))
	require.NoError(t, err)
	tris, err := b.NewTriangles(codec.MustFromSlice([]uint32{0, 1, 2}, 1, 3))
	require.NoError(t, err)

	s := b.NewSegment()
	s.MeshList = b.NewMeshList()
	require.NoError(t, s.MeshList.Append(b.NewMesh(verts, norms, tris)))
	seg.Segments = b.NewSegmentList()
	require.NoError(t, seg.Segments.Append(s))
	return seg
}

// shapeDoc holds one segment with one of each shape primitive.
func shapeDoc(t *testing.T) *sff.Segmentation {
	t.Helper()
	b := sff.MustBuilder("")
	seg := b.NewSegmentation("shapes", sff.DescriptorShapePrimitiveList)
	tf, err := b.NewTransformationMatrix(3, 4, "2 0 0 5 0 2 0 5 0 0 2 5")
	require.NoError(t, err)
	seg.Transforms = b.NewTransformList()
	require.NoError(t, seg.Transforms.Append(tf))

	s := b.NewSegment()
	s.ShapePrimitiveList = b.NewShapePrimitiveList()
	cone := b.NewCone(4, 1.5, 0)
	cone.Attribute = sff.Some(0.75)
	require.NoError(t, s.ShapePrimitiveList.Append(cone))
	require.NoError(t, s.ShapePrimitiveList.Append(b.NewCuboid(1, 2, 3, 0)))
	require.NoError(t, s.ShapePrimitiveList.Append(b.NewCylinder(6, 2.5, 0)))
	require.NoError(t, s.ShapePrimitiveList.Append(b.NewEllipsoid(3, 2, 1, 0)))
	seg.Segments = b.NewSegmentList()
	require.NoError(t, seg.Segments.Append(s))
	return seg
}

// legacyDoc is a 0.7 segmentation using the features only that version has:
// a single software record, explicit meshes and complexes.
func legacyDoc(t *testing.T) *sff.Segmentation {
	t.Helper()
	b := sff.MustBuilder(sff.Version070dev0)
	seg := b.NewSegmentation("legacy", sff.DescriptorMeshList)
	seg.Software = b.NewSoftware("amira", "6.0", "manual")
	tf, err := b.NewTransformationMatrix(3, 4, "1 0 0 0 0 1 0 0 0 0 1 0")
	require.NoError(t, err)
	seg.Transforms = b.NewTransformList()
	require.NoError(t, seg.Transforms.Append(tf))

	vl := b.NewVertexList()
	for _, p := range [][3]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}} {
		require.NoError(t, vl.Append(b.NewVertex(p[0], p[1], p[2])))
	}
	pl := b.NewPolygonList()
	require.NoError(t, pl.Append(b.NewPolygon(0, 1, 2)))

	s := b.NewSegment()
	s.ComplexesAndMacromolecules = &sff.ComplexesAndMacromolecules{
		Complexes:      []string{"ribosome"},
		Macromolecules: []string{"P12345", "Q67890"},
	}
	s.BiologicalAnnotation = &sff.BiologicalAnnotation{Name: "membrane"}
	refs := b.NewExternalReferenceList()
	require.NoError(t, refs.Append(b.NewExternalReference("uniprot", "http://www.uniprot.org/uniprot/P12345", "P12345")))
	s.BiologicalAnnotation.ExternalReferences = refs
	s.MeshList = b.NewMeshList()
	require.NoError(t, s.MeshList.Append(b.NewExplicitMesh(vl, pl)))
	seg.Segments = b.NewSegmentList()
	require.NoError(t, seg.Segments.Append(s))
	return seg
}

// roundTrip encodes s in f and decodes it again.
func roundTrip(t *testing.T, s *sff.Segmentation, f sff.Format) *sff.Segmentation {
	t.Helper()
	b, err := sff.Encode(s, f, nil)
	require.NoError(t, err, "encode %s", f)
	got, err := sff.Decode(b, f)
	require.NoError(t, err, "decode %s", f)
	return got
}
