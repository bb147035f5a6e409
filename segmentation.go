package sfftkrw

import (
	"fmt"
	"strings"
)

// PrimaryDescriptor names the representation every segment of a document
// uses.
type PrimaryDescriptor uint8

const (
	DescriptorThreeDVolume PrimaryDescriptor = iota + 1
	DescriptorMeshList
	DescriptorShapePrimitiveList
)

var descriptorNames = map[PrimaryDescriptor]string{
	DescriptorThreeDVolume:       "three_d_volume",
	DescriptorMeshList:           "mesh_list",
	DescriptorShapePrimitiveList: "shape_primitive_list",
}

// PrimaryDescriptors lists every descriptor.
func PrimaryDescriptors() []PrimaryDescriptor {
	return []PrimaryDescriptor{DescriptorThreeDVolume, DescriptorMeshList, DescriptorShapePrimitiveList}
}

func (p PrimaryDescriptor) Valid() bool {
	return p >= DescriptorThreeDVolume && p <= DescriptorShapePrimitiveList
}

// String returns the snake_case spelling.
func (p PrimaryDescriptor) String() string {
	if s, ok := descriptorNames[p]; ok {
		return s
	}
	return fmt.Sprintf("primary_descriptor(%d)", uint8(p))
}

// ParsePrimaryDescriptor accepts both the snake_case ("three_d_volume") and
// the camelCase ("threeDVolume") spellings.
func ParsePrimaryDescriptor(s string) (PrimaryDescriptor, error) {
	t := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", ""))
	for _, p := range PrimaryDescriptors() {
		if strings.ReplaceAll(descriptorNames[p], "_", "") == t {
			return p, nil
		}
	}
	return 0, newError(ErrValue, "unknown primary descriptor %q", s)
}

// Segmentation is the root document.
type Segmentation struct {
	Name                     string
	Version                  string
	Software                 *Software
	SoftwareList             *SoftwareList
	PrimaryDescriptor        PrimaryDescriptor
	Transforms               *TransformList
	BoundingBox              *BoundingBox
	GlobalExternalReferences *GlobalExternalReferenceList
	Segments                 *SegmentList
	Lattices                 *LatticeList
	Details                  string
}

var segmentationFields = []fieldDef[*Segmentation]{
	strDef("name", func(s *Segmentation) *string { return &s.Name }, required(), help("the name of this segmentation")),
	strDef("version", func(s *Segmentation) *string { return &s.Version }, required(), help("EMDB-SFF schema version")),
	entDef("software", "Software", func(s *Segmentation) **Software { return &s.Software }),
	listDef("software_list", "SoftwareList", func(s *Segmentation) **SoftwareList { return &s.SoftwareList },
		func() *SoftwareList { return &SoftwareList{} }),
	enumDef("primary_descriptor", func(s *Segmentation) *PrimaryDescriptor { return &s.PrimaryDescriptor },
		ParsePrimaryDescriptor, required()),
	listDef("transforms", "TransformList", func(s *Segmentation) **TransformList { return &s.Transforms },
		func() *TransformList { return &TransformList{} }, required(), minLength(1)),
	entDef("bounding_box", "BoundingBox", func(s *Segmentation) **BoundingBox { return &s.BoundingBox }),
	listDef("global_external_references", "GlobalExternalReferenceList",
		func(s *Segmentation) **GlobalExternalReferenceList { return &s.GlobalExternalReferences },
		func() *GlobalExternalReferenceList { return &GlobalExternalReferenceList{} }),
	listDef("segments", "SegmentList", func(s *Segmentation) **SegmentList { return &s.Segments },
		func() *SegmentList { return &SegmentList{} }, required(), minLength(1)),
	listDef("lattices", "LatticeList", func(s *Segmentation) **LatticeList { return &s.Lattices },
		func() *LatticeList { return &LatticeList{} }),
	strDef("details", func(s *Segmentation) *string { return &s.Details }, help("free text")),
}

func (s *Segmentation) EntityName() string { return "Segmentation" }
func (s *Segmentation) fields() []boundField { return bind(s, segmentationFields) }

// SegmentsList returns the segment list, creating it when absent.
func (s *Segmentation) SegmentsList() *SegmentList {
	if s.Segments == nil {
		s.Segments = &SegmentList{}
	}
	return s.Segments
}

// TransformsList returns the transform list, creating it when absent.
func (s *Segmentation) TransformsList() *TransformList {
	if s.Transforms == nil {
		s.Transforms = &TransformList{}
	}
	return s.Transforms
}

// LatticesList returns the lattice list, creating it when absent.
func (s *Segmentation) LatticesList() *LatticeList {
	if s.Lattices == nil {
		s.Lattices = &LatticeList{}
	}
	return s.Lattices
}

// GlobalReferences returns the global external references, creating the
// list when absent.
func (s *Segmentation) GlobalReferences() *GlobalExternalReferenceList {
	if s.GlobalExternalReferences == nil {
		s.GlobalExternalReferences = &GlobalExternalReferenceList{}
	}
	return s.GlobalExternalReferences
}

// Schema returns the registered schema for s.Version.
func (s *Segmentation) Schema() (*Schema, error) { return LookupSchema(s.Version) }
