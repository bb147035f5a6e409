package sfftkrw

import (
	"slices"
	"strings"
)

// Version strings of the supported schemas.
const (
	Version080dev1 = "0.8.0.dev1"
	Version070dev0 = "0.7.0.dev0"

	// DefaultVersion is used by NewBuilder when no version is given.
	DefaultVersion = Version080dev1
)

// Features are the optional parts of the model a schema version carries.
type Features struct {
	SoftwareList   bool // Segmentation.software_list
	SingleSoftware bool // Segmentation.software
	EncodedMeshes  bool // vertices, normals and triangles buffers
	ExplicitMeshes bool // vertex_list and polygon_list
	Complexes      bool // Segment.complexes_and_macromolecules
}

// Schema is one registered schema version: the wire dialect shared by the
// three encodings and the features the version supports.
type Schema struct {
	Version  string
	Features Features

	root        string
	names       map[string]string // "Entity.field" or "field" -> wire name
	items       map[string]string // list entity -> XML item element
	xmlAttrs    map[string]bool   // "Entity.field" or "field"
	unsupported map[string]bool   // "Entity.field"
	descriptors map[PrimaryDescriptor]string
	released    int // ordering key, newest first
}

var schemas = map[string]*Schema{}

func registerSchema(s *Schema) {
	if _, dup := schemas[s.Version]; dup {
		panic("sfftkrw: schema " + s.Version + " registered twice")
	}
	schemas[s.Version] = s
}

// normalizeVersion strips a leading "v".
func normalizeVersion(v string) string {
	v = strings.TrimSpace(v)
	if strings.HasPrefix(v, "v") || strings.HasPrefix(v, "V") {
		v = v[1:]
	}
	return v
}

// LookupSchema returns the schema registered for version. A leading "v" is
// ignored.
func LookupSchema(version string) (*Schema, error) {
	s, ok := schemas[normalizeVersion(version)]
	if !ok {
		return nil, newError(ErrUnsupportedVersion, "unknown schema version %q", version)
	}
	return s, nil
}

// SupportedVersions lists the registered versions, newest first.
func SupportedVersions() []string {
	all := make([]*Schema, 0, len(schemas))
	for _, s := range schemas {
		all = append(all, s)
	}
	slices.SortFunc(all, func(a, b *Schema) int { return b.released - a.released })
	out := make([]string, len(all))
	for i, s := range all {
		out[i] = s.Version
	}
	return out
}

// IsSupported reports whether version is registered.
func IsSupported(version string) bool {
	_, ok := schemas[normalizeVersion(version)]
	return ok
}

func fieldKey(entity, field string) string { return entity + "." + field }

// Supports reports whether the version carries entity's field.
func (s *Schema) Supports(entity, field string) bool {
	return !s.unsupported[fieldKey(entity, field)]
}

// WireName returns the name entity's field has on the wire.
func (s *Schema) WireName(entity, field string) string {
	if n, ok := s.names[fieldKey(entity, field)]; ok {
		return n
	}
	if n, ok := s.names[field]; ok {
		return n
	}
	return field
}

// fieldForWire is the inverse of WireName over fs.
func (s *Schema) fieldForWire(entity string, fs []boundField, wire string) (boundField, bool) {
	for _, f := range fs {
		if s.WireName(entity, f.Name) == wire {
			return f, true
		}
	}
	return boundField{}, false
}

// ItemName returns the XML element name of an item of a list entity.
// Shape primitives are tagged by their kind.
func (s *Schema) ItemName(list string, item Entity) string {
	if sh, ok := item.(Shape); ok {
		return string(sh.Kind())
	}
	return s.items[list]
}

// RootName is the XML document element.
func (s *Schema) RootName() string { return s.root }

// DescriptorName returns the version's spelling of p.
func (s *Schema) DescriptorName(p PrimaryDescriptor) string {
	if n, ok := s.descriptors[p]; ok {
		return n
	}
	return p.String()
}

func (s *Schema) xmlAttr(entity, field string) bool {
	return s.xmlAttrs[fieldKey(entity, field)] || s.xmlAttrs[field]
}

// newItem builds an empty item for a list entity from its wire tag.
func (s *Schema) newItem(list, tag string) (Entity, error) {
	if list == "ShapePrimitiveList" {
		k, err := ParseShapeKind(tag)
		if err != nil {
			return nil, err
		}
		return NewShape(k)
	}
	if want, ok := s.items[list]; ok && tag != "" && tag != want {
		return nil, newError(ErrValue, "%s cannot hold %q", list, tag)
	}
	return newEntity(itemEntity[list])
}

var itemEntity = map[string]string{
	"ExternalReferenceList":       "ExternalReference",
	"GlobalExternalReferenceList": "ExternalReference",
	"SoftwareList":                "Software",
	"TransformList":               "TransformationMatrix",
	"SegmentList":                 "Segment",
	"LatticeList":                 "Lattice",
	"MeshList":                    "Mesh",
	"VertexList":                  "Vertex",
	"PolygonList":                 "Polygon",
}

// newEntity returns an empty entity by model name. Nothing is allocated
// from an id counter.
func newEntity(name string) (Entity, error) {
	switch name {
	case "Colour":
		return &Colour{}, nil
	case "ExternalReference":
		return &ExternalReference{}, nil
	case "ExternalReferenceList":
		return &ExternalReferenceList{}, nil
	case "GlobalExternalReferenceList":
		return &GlobalExternalReferenceList{}, nil
	case "BiologicalAnnotation":
		return &BiologicalAnnotation{}, nil
	case "ComplexesAndMacromolecules":
		return &ComplexesAndMacromolecules{}, nil
	case "VolumeStructure":
		return &VolumeStructure{}, nil
	case "VolumeIndex":
		return &VolumeIndex{}, nil
	case "Lattice":
		return &Lattice{}, nil
	case "LatticeList":
		return &LatticeList{}, nil
	case "ThreeDVolume":
		return &ThreeDVolume{}, nil
	case "Vertices":
		return &Vertices{}, nil
	case "Normals":
		return &Normals{}, nil
	case "Triangles":
		return &Triangles{}, nil
	case "Mesh":
		return &Mesh{}, nil
	case "MeshList":
		return &MeshList{}, nil
	case "Vertex":
		return &Vertex{}, nil
	case "VertexList":
		return &VertexList{}, nil
	case "Polygon":
		return &Polygon{}, nil
	case "PolygonList":
		return &PolygonList{}, nil
	case "ShapePrimitiveList":
		return &ShapePrimitiveList{}, nil
	case "BoundingBox":
		return &BoundingBox{}, nil
	case "TransformationMatrix":
		return &TransformationMatrix{}, nil
	case "TransformList":
		return &TransformList{}, nil
	case "Software":
		return &Software{}, nil
	case "SoftwareList":
		return &SoftwareList{}, nil
	case "Segment":
		return &Segment{}, nil
	case "SegmentList":
		return &SegmentList{}, nil
	case "Segmentation":
		return &Segmentation{}, nil
	}
	return nil, newError(ErrKey, "unknown entity %q", name)
}
