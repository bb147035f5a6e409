package sfftkrw

// Mesh is a triangulated surface. Schema 0.8 stores it as packed vertex,
// normal and triangle buffers; schema 0.7 as explicit vertex and polygon
// lists.
type Mesh struct {
	ID          Opt[uint32]
	Vertices    *Vertices
	Normals     *Normals
	Triangles   *Triangles
	TransformID Opt[uint32]
	VertexList  *VertexList
	PolygonList *PolygonList
}

var meshFields = []fieldDef[*Mesh]{
	idDef(func(m *Mesh) *Opt[uint32] { return &m.ID }),
	entDef("vertices", "Vertices", func(m *Mesh) **Vertices { return &m.Vertices }),
	entDef("normals", "Normals", func(m *Mesh) **Normals { return &m.Normals }),
	entDef("triangles", "Triangles", func(m *Mesh) **Triangles { return &m.Triangles }),
	optDef("transform_id", KindUint, func(m *Mesh) *Opt[uint32] { return &m.TransformID }),
	listDef("vertex_list", "VertexList", func(m *Mesh) **VertexList { return &m.VertexList },
		func() *VertexList { return &VertexList{} }, minLength(3)),
	listDef("polygon_list", "PolygonList", func(m *Mesh) **PolygonList { return &m.PolygonList },
		func() *PolygonList { return &PolygonList{} }, minLength(1)),
}

func (m *Mesh) EntityName() string    { return "Mesh" }
func (m *Mesh) Identity() Opt[uint32] { return m.ID }
func (m *Mesh) fields() []boundField  { return bind(m, meshFields) }

// Encoded reports whether the mesh uses packed buffers.
func (m *Mesh) Encoded() bool {
	return m.Vertices != nil || m.Normals != nil || m.Triangles != nil
}

// Explicit reports whether the mesh uses vertex and polygon lists.
func (m *Mesh) Explicit() bool {
	return m.VertexList != nil || m.PolygonList != nil
}

// MeshList holds the meshes of a segment.
type MeshList struct {
	List[*Mesh]
}

func (l *MeshList) EntityName() string { return "MeshList" }

// Copy returns a shallow copy.
func (l *MeshList) Copy() *MeshList { return &MeshList{List: l.clone()} }

// Vertex is one point of a schema 0.7 mesh. On the wire its id is vID.
type Vertex struct {
	ID          Opt[uint32]
	Designation string
	X           Opt[float64]
	Y           Opt[float64]
	Z           Opt[float64]
}

var vertexFields = []fieldDef[*Vertex]{
	idDef(func(v *Vertex) *Opt[uint32] { return &v.ID }, required()),
	strDef("designation", func(v *Vertex) *string { return &v.Designation }, withDefault("surface")),
	optDef("x", KindFloat, func(v *Vertex) *Opt[float64] { return &v.X }, required()),
	optDef("y", KindFloat, func(v *Vertex) *Opt[float64] { return &v.Y }, required()),
	optDef("z", KindFloat, func(v *Vertex) *Opt[float64] { return &v.Z }, required()),
}

func (v *Vertex) EntityName() string    { return "Vertex" }
func (v *Vertex) Identity() Opt[uint32] { return v.ID }
func (v *Vertex) fields() []boundField  { return bind(v, vertexFields) }

// Point returns (x, y, z).
func (v *Vertex) Point() [3]float64 { return [3]float64{v.X.Value(), v.Y.Value(), v.Z.Value()} }

// VertexList holds the vertices of a schema 0.7 mesh.
type VertexList struct {
	List[*Vertex]
}

func (l *VertexList) EntityName() string { return "VertexList" }

// MinLength is the fewest vertices that describe a surface.
func (l *VertexList) MinLength() int { return 3 }

// Copy returns a shallow copy.
func (l *VertexList) Copy() *VertexList { return &VertexList{List: l.clone()} }

// Polygon is a face of a schema 0.7 mesh listing vertex ids. On the wire
// its id is PID.
type Polygon struct {
	ID       Opt[uint32]
	Vertices []uint32
}

var polygonFields = []fieldDef[*Polygon]{
	idDef(func(p *Polygon) *Opt[uint32] { return &p.ID }, required()),
	valDef("vertices", KindUints, func(p *Polygon) *[]uint32 { return &p.Vertices },
		func(v []uint32) bool { return v == nil }, required()),
}

func (p *Polygon) EntityName() string    { return "Polygon" }
func (p *Polygon) Identity() Opt[uint32] { return p.ID }
func (p *Polygon) fields() []boundField  { return bind(p, polygonFields) }

// PolygonList holds the faces of a schema 0.7 mesh.
type PolygonList struct {
	List[*Polygon]
}

func (l *PolygonList) EntityName() string { return "PolygonList" }

// MinLength is the fewest polygons in a mesh.
func (l *PolygonList) MinLength() int { return 1 }

// Copy returns a shallow copy.
func (l *PolygonList) Copy() *PolygonList { return &PolygonList{List: l.clone()} }
