package sfftkrw

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ValidateOptions tunes Validate.
type ValidateOptions struct {
	// ExcludeGeometry skips the requirements on lattices, meshes and shapes,
	// matching what an export with the same option writes.
	ExcludeGeometry bool
}

// Validate runs the structural checks that precede every write. It returns
// nil or an Issues value matching ErrValidation.
func Validate(s *Segmentation) error { return ValidateWith(s, ValidateOptions{}) }

// ValidateWith is Validate with options.
func ValidateWith(s *Segmentation, opts ValidateOptions) error {
	if s == nil {
		return Issues{{Path: "/", Code: CodeRequired, Kind: ErrValidation, Message: "segmentation is nil"}}
	}
	v := &validator{opts: opts}
	if schema, err := LookupSchema(s.Version); err == nil {
		v.schema = schema
	} else if s.Version != "" {
		v.add(Issue{Path: "/version", Chain: []string{"Segmentation"}, Code: CodeUnsupportedVersion,
			Kind: ErrUnsupportedVersion, Message: fmt.Sprintf("unknown schema version %q", s.Version)})
	}
	v.entity(s, "", []string{s.EntityName()})
	v.segmentation(s)
	if len(v.issues) == 0 {
		return nil
	}
	return v.issues
}

type validator struct {
	schema *Schema
	opts   ValidateOptions
	issues Issues
}

func (v *validator) add(it Issue) {
	if it.Kind == "" {
		it.Kind = ErrValidation
	}
	v.issues = AppendIssues(v.issues, it)
}

func (v *validator) fail(path string, chain []string, code string, format string, args ...any) {
	v.add(Issue{Path: path, Chain: chain, Code: code, Message: fmt.Sprintf(format, args...)})
}

// geometryFields lists the fields an ExcludeGeometry export omits.
var geometryFields = map[string]bool{
	"Segmentation.lattices":        true,
	"Segment.mesh_list":            true,
	"Segment.shape_primitive_list": true,
}

type checker interface{ check() error }

func pointer(path, name string) string {
	name = strings.ReplaceAll(strings.ReplaceAll(name, "~", "~0"), "/", "~1")
	return path + "/" + name
}

func withChain(chain []string, name string) []string {
	out := make([]string, len(chain)+1)
	copy(out, chain)
	out[len(chain)] = name
	return out
}

func (v *validator) entity(e Entity, path string, chain []string) {
	if l, ok := e.(listEntity); ok {
		v.list(l, path, chain)
		return
	}
	name := e.EntityName()
	for _, f := range e.fields() {
		fpath := pointer(path, f.Name)
		key := fieldKey(name, f.Name)
		val, ok := f.get()
		if v.opts.ExcludeGeometry && geometryFields[key] {
			continue
		}
		if v.schema != nil && !v.schema.Supports(name, f.Name) {
			if ok && !emptyList(val) {
				v.add(Issue{Path: fpath, Chain: withChain(chain, f.Name), Code: CodeUnsupportedVersion,
					Kind: ErrUnsupportedVersion, Message: fmt.Sprintf("%s.%s is not part of schema %s", name, f.Name, v.schema.Version)})
			}
			continue
		}
		if !ok {
			if f.Required && f.Default == nil {
				v.fail(fpath, withChain(chain, f.Name), CodeRequired, "%s.%s is required", name, f.Name)
			}
			continue
		}
		switch f.Kind {
		case KindEntity, KindList:
			child, _ := val.(Entity)
			if child == nil {
				continue
			}
			if l, isList := child.(listEntity); isList {
				need := f.MinLength
				if ml, ok := child.(minLengther); ok {
					need = max(need, ml.MinLength())
				}
				if l.Len() < need {
					v.fail(fpath, withChain(chain, child.EntityName()), CodeTooShort,
						"%s needs at least %d items, has %d", child.EntityName(), need, l.Len())
				}
			}
			v.entity(child, fpath, withChain(chain, child.EntityName()))
		case KindEnum:
			if en, ok := val.(enum); ok && !en.Valid() {
				v.fail(fpath, withChain(chain, f.Name), CodeInvalidValue, "invalid %s", f.Name)
			}
		}
	}
	if c, ok := e.(checker); ok {
		if err := c.check(); err != nil {
			v.codecIssue(err, path, chain)
		}
	}
	switch x := e.(type) {
	case *Mesh:
		v.mesh(x, path, chain)
	case *Colour:
		v.colour(x, path, chain)
	}
}

func emptyList(val any) bool {
	l, ok := val.(listEntity)
	return ok && l.Len() == 0
}

func (v *validator) codecIssue(err error, path string, chain []string) {
	it := Issue{Path: path, Chain: chain, Message: err.Error(), Cause: err}
	switch {
	case errors.Is(err, ErrShape):
		it.Code, it.Kind = CodeShape, ErrShape
	case errors.Is(err, ErrEncoding):
		it.Code, it.Kind = CodeEncoding, ErrEncoding
	default:
		it.Code = CodeInvalidValue
	}
	v.add(it)
}

func (v *validator) list(l listEntity, path string, chain []string) {
	seen := map[uint32]int{}
	for i, item := range l.entities() {
		ipath := pointer(path, strconv.Itoa(i))
		ichain := withChain(chain, item.EntityName())
		if isNilItem(item) {
			v.fail(ipath, ichain, CodeRequired, "nil item")
			continue
		}
		if idd, ok := item.(Identified); ok {
			if id, ok := idd.Identity().Get(); ok {
				if j, dup := seen[id]; dup {
					v.add(Issue{Path: ipath, Chain: ichain, Code: CodeDuplicateID, Kind: ErrDuplicateID,
						Message: fmt.Sprintf("id %d already used by item %d", id, j)})
				} else {
					seen[id] = i
				}
			}
		}
		v.entity(item, ipath, ichain)
	}
}

func (v *validator) colour(c *Colour, path string, chain []string) {
	for i, x := range c.Value() {
		if x < 0 || x > 1 {
			name := colourFields[i].Name
			v.fail(pointer(path, name), withChain(chain, name), CodeInvalidValue, "%s channel %v outside [0, 1]", name, x)
		}
	}
}

func (v *validator) mesh(m *Mesh, path string, chain []string) {
	encoded := v.schema == nil || v.schema.Features.EncodedMeshes
	explicit := v.schema == nil || v.schema.Features.ExplicitMeshes
	switch {
	case encoded && m.Encoded():
		if m.Vertices == nil {
			v.fail(pointer(path, "vertices"), withChain(chain, "vertices"), CodeRequired, "mesh needs vertices")
		}
		if m.Triangles == nil {
			v.fail(pointer(path, "triangles"), withChain(chain, "triangles"), CodeRequired, "mesh needs triangles")
		}
		if m.Vertices != nil && m.Normals != nil {
			nv, okv := m.Vertices.Count.Get()
			nn, okn := m.Normals.Count.Get()
			if okv && okn && nv != nn {
				v.fail(pointer(path, "normals"), withChain(chain, "Normals"), CodeInconsistentCount,
					"num_normals %d does not match num_vertices %d", nn, nv)
			}
		}
	case explicit && m.Explicit():
		if m.VertexList == nil {
			v.fail(pointer(path, "vertex_list"), withChain(chain, "vertex_list"), CodeRequired, "mesh needs a vertex list")
		}
		if m.PolygonList == nil {
			v.fail(pointer(path, "polygon_list"), withChain(chain, "polygon_list"), CodeRequired, "mesh needs a polygon list")
		}
		if m.VertexList != nil && m.PolygonList != nil {
			for i, p := range m.PolygonList.All() {
				for _, vid := range p.Vertices {
					if !m.VertexList.Contains(vid) {
						v.fail(pointer(pointer(path, "polygon_list"), strconv.Itoa(i)), withChain(chain, "Polygon"),
							CodeDanglingReference, "polygon refers to missing vertex %d", vid)
					}
				}
			}
		}
	case !m.Encoded() && !m.Explicit():
		name := "vertices"
		if !encoded {
			name = "vertex_list"
		}
		v.fail(pointer(path, name), withChain(chain, name), CodeRequired, "mesh has no geometry")
	}
}

// segmentation checks the cross-references and the primary descriptor.
func (v *validator) segmentation(s *Segmentation) {
	root := []string{s.EntityName()}
	segs := s.Segments
	if segs == nil {
		return
	}
	transforms := s.Transforms
	hasTransform := func(id uint32) bool { return transforms != nil && transforms.Contains(id) }
	pd := s.PrimaryDescriptor
	anyVolume := false

	for i, seg := range segs.All() {
		if seg == nil {
			continue
		}
		path := pointer("/segments", strconv.Itoa(i))
		chain := withChain(withChain(root, "SegmentList"), "Segment")
		if id, ok := seg.ID.Get(); ok && id == 0 {
			v.fail(pointer(path, "id"), chain, CodeReservedID, "segment id 0 is reserved for the segmentation")
		}
		if p := seg.Parent(); p != 0 {
			switch {
			case seg.ID.Valid() && p == seg.ID.Value():
				v.fail(pointer(path, "parent_id"), chain, CodeInvalidValue, "segment %d is its own parent", p)
			case !segs.Contains(p):
				v.fail(pointer(path, "parent_id"), chain, CodeDanglingReference, "parent segment %d does not exist", p)
			}
		}

		if pd.Valid() {
			for _, got := range seg.payloads() {
				if got == pd {
					continue
				}
				if v.opts.ExcludeGeometry && got != DescriptorThreeDVolume {
					continue
				}
				v.add(Issue{Path: pointer(path, got.String()), Chain: chain, Code: CodePrimaryDescriptorMismatch,
					Kind:    ErrPrimaryDescriptorMismatch,
					Message: fmt.Sprintf("segment carries %s but the primary descriptor is %s", got, pd)})
			}
			if !v.opts.ExcludeGeometry {
				switch {
				case pd == DescriptorMeshList && (seg.MeshList == nil || seg.MeshList.Len() == 0):
					v.add(Issue{Path: pointer(path, "mesh_list"), Chain: chain, Code: CodePrimaryDescriptorMismatch,
						Kind: ErrPrimaryDescriptorMismatch, Message: "segment has no meshes"})
				case pd == DescriptorShapePrimitiveList && (seg.ShapePrimitiveList == nil || seg.ShapePrimitiveList.Len() == 0):
					v.add(Issue{Path: pointer(path, "shape_primitive_list"), Chain: chain, Code: CodePrimaryDescriptorMismatch,
						Kind: ErrPrimaryDescriptorMismatch, Message: "segment has no shape primitives"})
				}
			}
		}

		if vol := seg.ThreeDVolume; vol != nil {
			anyVolume = true
			vpath := pointer(path, "three_d_volume")
			if id, ok := vol.LatticeID.Get(); ok && !v.opts.ExcludeGeometry && (s.Lattices == nil || !s.Lattices.Contains(id)) {
				v.fail(pointer(vpath, "lattice_id"), withChain(chain, "ThreeDVolume"), CodeDanglingReference,
					"lattice %d does not exist", id)
			}
			if id, ok := vol.TransformID.Get(); ok && !hasTransform(id) {
				v.fail(pointer(vpath, "transform_id"), withChain(chain, "ThreeDVolume"), CodeDanglingReference,
					"transform %d does not exist", id)
			}
		}
		if seg.MeshList != nil && !v.opts.ExcludeGeometry {
			for j, m := range seg.MeshList.All() {
				if id, ok := m.TransformID.Get(); ok && !hasTransform(id) {
					v.fail(pointer(pointer(pointer(path, "mesh_list"), strconv.Itoa(j)), "transform_id"),
						withChain(chain, "Mesh"), CodeDanglingReference, "transform %d does not exist", id)
				}
			}
		}
		if seg.ShapePrimitiveList != nil && !v.opts.ExcludeGeometry {
			for j, sh := range seg.ShapePrimitiveList.All() {
				if id, ok := sh.Base().TransformID.Get(); ok && !hasTransform(id) {
					v.fail(pointer(pointer(pointer(path, "shape_primitive_list"), strconv.Itoa(j)), "transform_id"),
						withChain(chain, sh.EntityName()), CodeDanglingReference, "transform %d does not exist", id)
				}
			}
		}
	}

	if pd == DescriptorThreeDVolume && anyVolume && !v.opts.ExcludeGeometry && (s.Lattices == nil || s.Lattices.Len() == 0) {
		v.add(Issue{Path: "/lattices", Chain: root, Code: CodePrimaryDescriptorMismatch, Kind: ErrPrimaryDescriptorMismatch,
			Message: "segments carry 3D volumes but the segmentation has no lattices"})
	}
}
