package sfftkrw

// Segment is one labelled region. It carries at most one payload, chosen to
// match the segmentation's primary descriptor.
type Segment struct {
	ID                         Opt[uint32]
	ParentID                   Opt[uint32]
	BiologicalAnnotation       *BiologicalAnnotation
	ComplexesAndMacromolecules *ComplexesAndMacromolecules
	Colour                     *Colour
	ThreeDVolume               *ThreeDVolume
	MeshList                   *MeshList
	ShapePrimitiveList         *ShapePrimitiveList
}

var segmentFields = []fieldDef[*Segment]{
	idDef(func(s *Segment) *Opt[uint32] { return &s.ID }, required(),
		help("segment ids begin at 1; 0 denotes the segmentation itself")),
	optDef("parent_id", KindUint, func(s *Segment) *Opt[uint32] { return &s.ParentID }, withDefault(uint32(0)),
		help("id of the containing segment; 0 for top-level segments")),
	entDef("biological_annotation", "BiologicalAnnotation",
		func(s *Segment) **BiologicalAnnotation { return &s.BiologicalAnnotation }),
	entDef("complexes_and_macromolecules", "ComplexesAndMacromolecules",
		func(s *Segment) **ComplexesAndMacromolecules { return &s.ComplexesAndMacromolecules }),
	entDef("colour", "Colour", func(s *Segment) **Colour { return &s.Colour }),
	entDef("three_d_volume", "ThreeDVolume", func(s *Segment) **ThreeDVolume { return &s.ThreeDVolume }),
	listDef("mesh_list", "MeshList", func(s *Segment) **MeshList { return &s.MeshList },
		func() *MeshList { return &MeshList{} }),
	listDef("shape_primitive_list", "ShapePrimitiveList",
		func(s *Segment) **ShapePrimitiveList { return &s.ShapePrimitiveList },
		func() *ShapePrimitiveList { return &ShapePrimitiveList{} }),
}

func (s *Segment) EntityName() string    { return "Segment" }
func (s *Segment) Identity() Opt[uint32] { return s.ID }
func (s *Segment) fields() []boundField  { return bind(s, segmentFields) }

// Parent returns the parent id, 0 when unset.
func (s *Segment) Parent() uint32 { return s.ParentID.Or(0) }

// Meshes returns the mesh list, creating it when absent.
func (s *Segment) Meshes() *MeshList {
	if s.MeshList == nil {
		s.MeshList = &MeshList{}
	}
	return s.MeshList
}

// Shapes returns the shape list, creating it when absent.
func (s *Segment) Shapes() *ShapePrimitiveList {
	if s.ShapePrimitiveList == nil {
		s.ShapePrimitiveList = &ShapePrimitiveList{}
	}
	return s.ShapePrimitiveList
}

// Annotation returns the biological annotation, creating it when absent.
func (s *Segment) Annotation() *BiologicalAnnotation {
	if s.BiologicalAnnotation == nil {
		s.BiologicalAnnotation = &BiologicalAnnotation{}
	}
	return s.BiologicalAnnotation
}

// payloads lists the descriptors whose payload s carries. Empty mesh and
// shape lists count as absent.
func (s *Segment) payloads() []PrimaryDescriptor {
	var out []PrimaryDescriptor
	if s.ThreeDVolume != nil {
		out = append(out, DescriptorThreeDVolume)
	}
	if s.MeshList != nil && s.MeshList.Len() > 0 {
		out = append(out, DescriptorMeshList)
	}
	if s.ShapePrimitiveList != nil && s.ShapePrimitiveList.Len() > 0 {
		out = append(out, DescriptorShapePrimitiveList)
	}
	return out
}

// SegmentList holds the segments of a segmentation.
type SegmentList struct {
	List[*Segment]
}

func (l *SegmentList) EntityName() string { return "SegmentList" }

// MinLength is the fewest segments a segmentation must carry.
func (l *SegmentList) MinLength() int { return 1 }

// Copy returns a shallow copy.
func (l *SegmentList) Copy() *SegmentList { return &SegmentList{List: l.clone()} }
