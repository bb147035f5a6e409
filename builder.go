package sfftkrw

import (
	"github.com/emdb-empiar/sfftkrw/codec"
)

// Builder constructs new entities for one schema version, drawing ids from
// its own counters. Entities decoded by the readers never pass through a
// Builder, so they keep whatever ids the file carried.
//
// Creating a list through the Builder rewinds the counter of the list's
// item kind, so the items appended next are numbered from the start.
type Builder struct {
	version string
	ids     *Allocators
}

// NewBuilder returns a builder for version, or DefaultVersion when version
// is empty.
func NewBuilder(version string) (*Builder, error) {
	if version == "" {
		version = DefaultVersion
	}
	s, err := LookupSchema(version)
	if err != nil {
		return nil, err
	}
	return &Builder{version: s.Version, ids: NewAllocators()}, nil
}

// MustBuilder is NewBuilder that panics on an unknown version.
func MustBuilder(version string) *Builder {
	b, err := NewBuilder(version)
	if err != nil {
		panic(err)
	}
	return b
}

// Version returns the schema version entities are built for.
func (b *Builder) Version() string { return b.version }

// IDs exposes the builder's counters.
func (b *Builder) IDs() *Allocators { return b.ids }

func (b *Builder) next(k IDKind) Opt[uint32] { return Some(b.ids.Next(k)) }

// NewSegmentation returns an empty root document tagged with the builder's
// version.
func (b *Builder) NewSegmentation(name string, pd PrimaryDescriptor) *Segmentation {
	return &Segmentation{Name: name, Version: b.version, PrimaryDescriptor: pd}
}

// NewSegmentList returns an empty list and rewinds segment ids to 1.
func (b *Builder) NewSegmentList() *SegmentList {
	b.ids.Reset(IDSegment)
	return &SegmentList{}
}

// NewSegment returns a segment with the next segment id and no parent.
func (b *Builder) NewSegment() *Segment {
	return &Segment{ID: b.next(IDSegment), ParentID: Some(uint32(0))}
}

// NewChildSegment returns a segment whose parent is parent. The parent is
// not checked until validation.
func (b *Builder) NewChildSegment(parent uint32) *Segment {
	s := b.NewSegment()
	s.ParentID = Some(parent)
	return s
}

// NewLatticeList returns an empty list and rewinds lattice ids.
func (b *Builder) NewLatticeList() *LatticeList {
	b.ids.Reset(IDLattice)
	return &LatticeList{}
}

// NewLatticeFromBytes wraps raw packed voxels. len(data) must equal
// size.VoxelCount() * mode.Size().
func (b *Builder) NewLatticeFromBytes(mode codec.Mode, e codec.Endianness, size *VolumeStructure, start *VolumeIndex, data []byte) (*Lattice, error) {
	l := &Lattice{Mode: mode, Endianness: e, Size: size, Start: start, Data: data}
	if size == nil {
		return nil, newError(ErrShape, "lattice needs a size")
	}
	if err := l.check(); err != nil {
		return nil, err
	}
	l.ID = b.next(IDLattice)
	return l, nil
}

// NewLatticeFromArray encodes a (sections, rows, cols) array. The size is
// taken from the array shape.
func (b *Builder) NewLatticeFromArray(mode codec.Mode, e codec.Endianness, a *codec.Array, start *VolumeIndex) (*Lattice, error) {
	shape := a.Shape()
	if len(shape) != 3 {
		return nil, newError(ErrShape, "lattice array must be 3-D, got shape %v", shape)
	}
	l := &Lattice{
		Mode:       mode,
		Endianness: e,
		Size:       NewVolumeStructure(uint32(shape[2]), uint32(shape[1]), uint32(shape[0])),
		Start:      start,
	}
	if err := l.SetDataArray(a); err != nil {
		return nil, err
	}
	l.ID = b.next(IDLattice)
	return l, nil
}

// NewLatticeFromText decodes base64 over zlib, the form lattices take in
// XML and JSON.
func (b *Builder) NewLatticeFromText(mode codec.Mode, e codec.Endianness, size *VolumeStructure, start *VolumeIndex, text string) (*Lattice, error) {
	data, err := codec.UnpackText(text, true)
	if err != nil {
		return nil, wrapCodec(err, "lattice/data")
	}
	return b.NewLatticeFromBytes(mode, e, size, start, data)
}

// NewThreeDVolume references value in lattice latticeID.
func (b *Builder) NewThreeDVolume(latticeID uint32, value float64) *ThreeDVolume {
	return NewThreeDVolume(latticeID, value)
}

// NewMeshList returns an empty list and rewinds mesh ids.
func (b *Builder) NewMeshList() *MeshList {
	b.ids.Reset(IDMesh)
	return &MeshList{}
}

// NewMesh returns a buffer-encoded mesh with the next mesh id. normals may
// be nil.
func (b *Builder) NewMesh(v *Vertices, n *Normals, t *Triangles) *Mesh {
	return &Mesh{ID: b.next(IDMesh), Vertices: v, Normals: n, Triangles: t}
}

// NewExplicitMesh returns a mesh described by vertex and polygon lists.
func (b *Builder) NewExplicitMesh(vl *VertexList, pl *PolygonList) *Mesh {
	return &Mesh{ID: b.next(IDMesh), VertexList: vl, PolygonList: pl}
}

// NewVertices encodes an N x 3 array as float32 little-endian.
func (b *Builder) NewVertices(a *codec.Array) (*Vertices, error) {
	v := &Vertices{}
	v.Mode, v.Endianness = codec.Float32, codec.Little
	if err := v.SetDataArray(a); err != nil {
		return nil, err
	}
	return v, nil
}

// NewVerticesFromBytes wraps packed data; count, when present, must agree
// with len(data).
func (b *Builder) NewVerticesFromBytes(mode codec.Mode, e codec.Endianness, data []byte, count Opt[uint32]) (*Vertices, error) {
	v := &Vertices{}
	v.Mode, v.Endianness = mode, e
	if err := v.SetBytes(data, count); err != nil {
		return nil, err
	}
	return v, nil
}

// NewVerticesFromText decodes uncompressed base64.
func (b *Builder) NewVerticesFromText(mode codec.Mode, e codec.Endianness, text string, count Opt[uint32]) (*Vertices, error) {
	data, err := codec.UnpackText(text, false)
	if err != nil {
		return nil, wrapCodec(err, "vertices/data")
	}
	return b.NewVerticesFromBytes(mode, e, data, count)
}

// NewNormals encodes an N x 3 array as float32 little-endian.
func (b *Builder) NewNormals(a *codec.Array) (*Normals, error) {
	n := &Normals{}
	n.Mode, n.Endianness = codec.Float32, codec.Little
	if err := n.SetDataArray(a); err != nil {
		return nil, err
	}
	return n, nil
}

// NewNormalsFromBytes wraps packed data; count, when present, must agree
// with len(data).
func (b *Builder) NewNormalsFromBytes(mode codec.Mode, e codec.Endianness, data []byte, count Opt[uint32]) (*Normals, error) {
	n := &Normals{}
	n.Mode, n.Endianness = mode, e
	if err := n.SetBytes(data, count); err != nil {
		return nil, err
	}
	return n, nil
}

// NewNormalsFromText decodes uncompressed base64.
func (b *Builder) NewNormalsFromText(mode codec.Mode, e codec.Endianness, text string, count Opt[uint32]) (*Normals, error) {
	data, err := codec.UnpackText(text, false)
	if err != nil {
		return nil, wrapCodec(err, "normals/data")
	}
	return b.NewNormalsFromBytes(mode, e, data, count)
}

// NewTriangles encodes an N x 3 array as uint32 little-endian.
func (b *Builder) NewTriangles(a *codec.Array) (*Triangles, error) {
	t := &Triangles{}
	t.Mode, t.Endianness = codec.Uint32, codec.Little
	if err := t.SetDataArray(a); err != nil {
		return nil, err
	}
	return t, nil
}

// NewTrianglesFromBytes wraps packed data; count, when present, must agree
// with len(data).
func (b *Builder) NewTrianglesFromBytes(mode codec.Mode, e codec.Endianness, data []byte, count Opt[uint32]) (*Triangles, error) {
	t := &Triangles{}
	t.Mode, t.Endianness = mode, e
	if err := t.SetBytes(data, count); err != nil {
		return nil, err
	}
	return t, nil
}

// NewTrianglesFromText decodes uncompressed base64.
func (b *Builder) NewTrianglesFromText(mode codec.Mode, e codec.Endianness, text string, count Opt[uint32]) (*Triangles, error) {
	data, err := codec.UnpackText(text, false)
	if err != nil {
		return nil, wrapCodec(err, "triangles/data")
	}
	return b.NewTrianglesFromBytes(mode, e, data, count)
}

// NewVertexList returns an empty list and rewinds vertex ids.
func (b *Builder) NewVertexList() *VertexList {
	b.ids.Reset(IDVertex)
	return &VertexList{}
}

// NewVertex returns a surface vertex with the next vertex id.
func (b *Builder) NewVertex(x, y, z float64) *Vertex {
	return &Vertex{ID: b.next(IDVertex), X: Some(x), Y: Some(y), Z: Some(z)}
}

// NewPolygonList returns an empty list and rewinds polygon ids.
func (b *Builder) NewPolygonList() *PolygonList {
	b.ids.Reset(IDPolygon)
	return &PolygonList{}
}

// NewPolygon returns a polygon over the given vertex ids.
func (b *Builder) NewPolygon(vertices ...uint32) *Polygon {
	return &Polygon{ID: b.next(IDPolygon), Vertices: vertices}
}

// NewShapePrimitiveList returns an empty list and rewinds the shared shape
// counter.
func (b *Builder) NewShapePrimitiveList() *ShapePrimitiveList {
	b.ids.Reset(IDShape)
	return &ShapePrimitiveList{}
}

func (b *Builder) shapeBase(transformID uint32) ShapeBase {
	return ShapeBase{ID: b.next(IDShape), TransformID: Some(transformID)}
}

// NewCone returns a cone placed by transform transformID.
func (b *Builder) NewCone(height, bottomRadius float64, transformID uint32) *Cone {
	return &Cone{ShapeBase: b.shapeBase(transformID), Height: Some(height), BottomRadius: Some(bottomRadius)}
}

// NewCuboid returns a cuboid placed by transform transformID.
func (b *Builder) NewCuboid(x, y, z float64, transformID uint32) *Cuboid {
	return &Cuboid{ShapeBase: b.shapeBase(transformID), X: Some(x), Y: Some(y), Z: Some(z)}
}

// NewCylinder returns a cylinder placed by transform transformID.
func (b *Builder) NewCylinder(height, diameter float64, transformID uint32) *Cylinder {
	return &Cylinder{ShapeBase: b.shapeBase(transformID), Height: Some(height), Diameter: Some(diameter)}
}

// NewEllipsoid returns an ellipsoid placed by transform transformID.
func (b *Builder) NewEllipsoid(x, y, z float64, transformID uint32) *Ellipsoid {
	return &Ellipsoid{ShapeBase: b.shapeBase(transformID), X: Some(x), Y: Some(y), Z: Some(z)}
}

// NewTransformList returns an empty list and rewinds transform ids.
func (b *Builder) NewTransformList() *TransformList {
	b.ids.Reset(IDTransform)
	return &TransformList{}
}

// NewTransformationMatrix parses data as a rows x cols matrix. A count
// mismatch fails with ErrShape and consumes no id.
func (b *Builder) NewTransformationMatrix(rows, cols uint32, data string) (*TransformationMatrix, error) {
	t := &TransformationMatrix{Rows: Some(rows), Cols: Some(cols), Data: data}
	if _, err := t.DataArray(); err != nil {
		return nil, err
	}
	t.ID = b.next(IDTransform)
	return t, nil
}

// NewTransformFromArray infers rows and cols from m, which must be
// rectangular.
func (b *Builder) NewTransformFromArray(m [][]float64) (*TransformationMatrix, error) {
	t := &TransformationMatrix{}
	if err := t.SetDataArray(m); err != nil {
		return nil, err
	}
	t.ID = b.next(IDTransform)
	return t, nil
}

// NewSoftwareList returns an empty list and rewinds software ids.
func (b *Builder) NewSoftwareList() *SoftwareList {
	b.ids.Reset(IDSoftware)
	return &SoftwareList{}
}

// NewSoftware returns a software record with the next software id. Schema
// 0.7 carries a single record without an id, so the id is left unset
// there.
func (b *Builder) NewSoftware(name, version, details string) *Software {
	s := &Software{Name: name, Version: version, ProcessingDetails: details}
	if b.version != Version070dev0 {
		s.ID = b.next(IDSoftware)
	}
	return s
}

// NewExternalReferenceList returns an empty list and rewinds external
// reference ids.
func (b *Builder) NewExternalReferenceList() *ExternalReferenceList {
	b.ids.Reset(IDExternalReference)
	return &ExternalReferenceList{}
}

// NewGlobalExternalReferenceList returns an empty list and rewinds external
// reference ids.
func (b *Builder) NewGlobalExternalReferenceList() *GlobalExternalReferenceList {
	b.ids.Reset(IDExternalReference)
	return &GlobalExternalReferenceList{}
}

// NewExternalReference returns a reference with the next id.
func (b *Builder) NewExternalReference(resource, url, accession string) *ExternalReference {
	return &ExternalReference{ID: b.next(IDExternalReference), Resource: resource, URL: url, Accession: accession}
}
