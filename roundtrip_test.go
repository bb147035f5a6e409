package sfftkrw_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	sff "github.com/emdb-empiar/sfftkrw"
	"github.com/emdb-empiar/sfftkrw/codec"
)

var formats = []sff.Format{sff.FormatXML, sff.FormatHFF, sff.FormatJSON}

// TestRoundTrip_XMLHFFJSONXML passes the minimal volume document through
// files in every format in turn.
func TestRoundTrip_XMLHFFJSONXML(t *testing.T) {
	orig := volumeDoc(t)
	dir := t.TempDir()

	cur := orig
	for _, name := range []string{"a.sff", "b.hff", "c.json", "d.sff"} {
		path := filepath.Join(dir, name)
		require.NoError(t, sff.Export(path, cur, nil))
		next, err := sff.ReadFile(path)
		require.NoError(t, err, name)
		require.Equal(t, sff.Version080dev1, next.Version)
		cur = next
	}
	require.True(t, sff.Equal(orig, cur))

	lat := cur.Lattices.At(0)
	require.Equal(t, codec.Uint8, lat.Mode)
	arr, err := lat.DataArray()
	require.NoError(t, err)
	require.True(t, codec.MustFromSlice([]uint8{0, 1, 2, 3, 4, 5, 6, 7}, 2, 2, 2).Equal(arr))

	seg := cur.Segments.At(0)
	require.Equal(t, [4]float64{1, 0, 0, 1}, seg.Colour.Value())
	require.Equal(t, uint32(0), seg.ThreeDVolume.LatticeID.Value())
	require.Equal(t, 3.0, seg.ThreeDVolume.Value.Value())
}

// TestRoundTrip_AllPairs rewrites every document through every ordered pair
// of formats.
func TestRoundTrip_AllPairs(t *testing.T) {
	docs := map[string]func(*testing.T) *sff.Segmentation{
		"volume": volumeDoc,
		"rich":   richDoc,
		"mesh":   meshDoc,
		"shape":  shapeDoc,
		"legacy": legacyDoc,
	}
	for name, doc := range docs {
		for _, f1 := range formats {
			for _, f2 := range formats {
				t.Run(name+"/"+f1.String()+"-"+f2.String(), func(t *testing.T) {
					orig := doc(t)
					mid := roundTrip(t, orig, f1)
					got := roundTrip(t, mid, f2)
					require.True(t, sff.Equal(orig, got))
					require.Equal(t, orig.Version, got.Version)
				})
			}
		}
	}
}

func TestRoundTrip_RichDetails(t *testing.T) {
	for _, f := range formats {
		t.Run(f.String(), func(t *testing.T) {
			got := roundTrip(t, richDoc(t), f)
			require.Equal(t, "  leading and trailing space  ", got.Details)

			box := got.BoundingBox.Values()
			require.Equal(t, 0.0, box[0].Value())
			require.Equal(t, 10.5, box[1].Value())
			require.Equal(t, -1.0, box[4].Value())

			child, err := got.Segments.GetByID(2)
			require.NoError(t, err)
			require.Equal(t, uint32(1), child.Parent())
			require.Equal(t, 1.0, child.Colour.Value()[3])

			first, err := got.Segments.GetByID(1)
			require.NoError(t, err)
			ann := first.Annotation()
			require.Equal(t, "nucleus", ann.Name)
			require.Equal(t, uint32(2), ann.NumberOfInstances.Value())
			ref := ann.References().At(0)
			require.Equal(t, "go", ref.Resource)
			require.Equal(t, "GO:0005634", ref.Accession)

			require.Equal(t, 2, got.SoftwareList.Len())
			require.Equal(t, "threshold 0.5", got.SoftwareList.At(0).ProcessingDetails)
			require.Equal(t, 1, got.GlobalReferences().Len())
		})
	}
}

func TestRoundTrip_MeshBuffers(t *testing.T) {
	for _, f := range formats {
		t.Run(f.String(), func(t *testing.T) {
			got := roundTrip(t, meshDoc(t), f)
			m := got.Segments.At(0).Meshes().At(0)
			v, err := m.Vertices.DataArray()
			require.NoError(t, err)
			require.Equal(t, []int{3, 3}, v.Shape())
			require.Equal(t, []float64{0, 0, 0, 1, 0, 0, 0, 1, 0}, v.Float64s())
			tri, err := m.Triangles.DataArray()
			require.NoError(t, err)
			require.Equal(t, []int64{0, 1, 2}, tri.Int64s())
			require.Equal(t, uint32(3), m.Normals.Count.Value())
		})
	}
}

func TestRoundTrip_ShapeKinds(t *testing.T) {
	for _, f := range formats {
		t.Run(f.String(), func(t *testing.T) {
			got := roundTrip(t, shapeDoc(t), f)
			shapes := got.Segments.At(0).Shapes()
			require.Equal(t, 4, shapes.Len())
			cone, ok := shapes.At(0).(*sff.Cone)
			require.True(t, ok, "got %T", shapes.At(0))
			require.Equal(t, 1.5, cone.BottomRadius.Value())
			require.Equal(t, 0.75, cone.Attribute.Value())
			ell, ok := shapes.At(3).(*sff.Ellipsoid)
			require.True(t, ok)
			require.Equal(t, 2.0, ell.Y.Value())

			m, err := got.Transforms.At(0).DataArray()
			require.NoError(t, err)
			require.Equal(t, []float64{2, 0, 0, 5}, m[0])
		})
	}
}

// TestRoundTrip_Legacy keeps the 0.7 dialect and its features.
func TestRoundTrip_Legacy(t *testing.T) {
	for _, f := range formats {
		t.Run(f.String(), func(t *testing.T) {
			b, err := sff.Encode(legacyDoc(t), f, nil)
			require.NoError(t, err)
			v, err := sff.DetectVersion(b, f)
			require.NoError(t, err)
			require.Equal(t, sff.Version070dev0, v)

			got, err := sff.Decode(b, f)
			require.NoError(t, err)
			require.Equal(t, sff.Version070dev0, got.Version)
			require.Equal(t, sff.DescriptorMeshList, got.PrimaryDescriptor)
			require.Equal(t, "amira", got.Software.Name)
			require.Nil(t, got.SoftwareList)

			seg := got.Segments.At(0)
			require.Equal(t, []string{"P12345", "Q67890"}, seg.ComplexesAndMacromolecules.Macromolecules)
			m := seg.Meshes().At(0)
			require.Equal(t, 3, m.VertexList.Len())
			require.Equal(t, []uint32{0, 1, 2}, m.PolygonList.At(0).Vertices)
			vx, err := m.VertexList.GetByID(1)
			require.NoError(t, err)
			require.Equal(t, [3]float64{1, 0, 0}, vx.Point())
			require.Equal(t, "http://www.uniprot.org/uniprot/P12345", seg.Annotation().References().At(0).URL)
		})
	}
}

// TestRoundTrip_ExcludeGeometry drops lattices, meshes and shapes but keeps
// the annotation.
func TestRoundTrip_ExcludeGeometry(t *testing.T) {
	for _, f := range formats {
		t.Run(f.String(), func(t *testing.T) {
			opts := sff.DefaultOptions()
			opts.ExcludeGeometry = true

			b, err := sff.Encode(richDoc(t), f, &opts)
			require.NoError(t, err)
			got, err := sff.Decode(b, f)
			require.NoError(t, err)
			require.Nil(t, got.Lattices)
			require.Equal(t, 2, got.Segments.Len())
			require.Equal(t, "nucleus", got.Segments.At(0).Annotation().Name)
			require.NotNil(t, got.Segments.At(0).ThreeDVolume)

			b, err = sff.Encode(meshDoc(t), f, &opts)
			require.NoError(t, err)
			got, err = sff.Decode(b, f)
			require.NoError(t, err)
			require.Nil(t, got.Segments.At(0).MeshList)
		})
	}
}
