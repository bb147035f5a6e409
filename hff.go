package sfftkrw

import (
	"math"
	"strconv"

	"github.com/google/uuid"

	"github.com/emdb-empiar/sfftkrw/hff"
)

// hffItemKind is the group attribute naming a shape primitive's variant.
const hffItemKind = "shape"

// vectorEntities are stored as one fixed-length numeric dataset instead of
// a group.
var vectorEntities = map[string]bool{
	"Colour":          true,
	"BoundingBox":     true,
	"VolumeStructure": true,
	"VolumeIndex":     true,
}

func encodeHFF(s *Segmentation, c *wireCtx) (*hff.Group, error) {
	root := hff.NewRoot()
	root.Attrs().Set("version", c.schema.Version)
	if err := c.hffEntity(root, s); err != nil {
		return nil, err
	}
	return root, nil
}

func (c *wireCtx) hffEntity(g *hff.Group, e Entity) error {
	name := e.EntityName()
	for _, f := range e.fields() {
		if c.skip(name, f) {
			continue
		}
		if name == "Segmentation" && f.Name == "version" {
			continue
		}
		v, ok := c.value(f)
		if !ok {
			continue
		}
		wire := c.schema.WireName(name, f.Name)
		var err error
		switch f.Kind {
		case KindString:
			_, err = g.CreateString(wire, v.(string))
		case KindUint, KindInt, KindFloat:
			g.Attrs().Set(wire, v)
		case KindEnum:
			var text string
			if text, err = c.formatScalar(v); err == nil {
				g.Attrs().Set(wire, text)
			}
		case KindBytes:
			_, err = g.CreateBytes(wire, v.([]byte))
		case KindStrings:
			var sub *hff.Group
			if sub, err = g.CreateGroup(wire); err == nil {
				for i, s := range v.([]string) {
					if _, err = sub.CreateString(strconv.Itoa(i), s); err != nil {
						break
					}
				}
			}
		case KindUints:
			us := v.([]uint32)
			out := make([]uint64, len(us))
			for i, u := range us {
				out[i] = uint64(u)
			}
			_, err = g.CreateUints(wire, out)
		case KindEntity:
			child := v.(Entity)
			if vectorEntities[child.EntityName()] {
				err = c.hffVector(g, wire, child)
				break
			}
			var sub *hff.Group
			if sub, err = g.CreateGroup(wire); err == nil {
				err = c.hffEntity(sub, child)
			}
		case KindList:
			err = c.hffList(g, wire, v.(listEntity))
		}
		if err != nil {
			return &Error{Kind: ErrEncoding, Path: wire, Message: "cannot store field", Cause: err}
		}
	}
	return nil
}

// hffList stores each item as a group keyed by its id, or by a random UUID
// when it has none.
func (c *wireCtx) hffList(g *hff.Group, wire string, l listEntity) error {
	sub, err := g.CreateGroup(wire)
	if err != nil {
		return err
	}
	for _, item := range l.entities() {
		key := uuid.NewString()
		if idd, ok := item.(Identified); ok {
			if id, ok := idd.Identity().Get(); ok {
				key = strconv.FormatUint(uint64(id), 10)
			}
		}
		ig, err := sub.CreateGroup(key)
		if err != nil {
			return err
		}
		if sh, ok := item.(Shape); ok {
			ig.Attrs().Set(hffItemKind, string(sh.Kind()))
		}
		if err := c.hffEntity(ig, item); err != nil {
			return err
		}
	}
	return nil
}

// hffVector writes an entity whose fields share one numeric kind. Absent
// float components are stored as NaN; absent integers fall back to their
// default.
func (c *wireCtx) hffVector(g *hff.Group, wire string, e Entity) error {
	fs := e.fields()
	switch fs[0].Kind {
	case KindFloat:
		out := make([]float64, len(fs))
		for i, f := range fs {
			out[i] = math.NaN()
			if v, ok := c.value(f); ok {
				out[i] = v.(float64)
			}
		}
		_, err := g.CreateFloats(wire, out)
		return err
	case KindUint:
		out := make([]uint64, len(fs))
		for i, f := range fs {
			if v, ok := c.value(f); ok {
				out[i] = uint64(v.(uint32))
			}
		}
		_, err := g.CreateUints(wire, out)
		return err
	case KindInt:
		out := make([]int64, len(fs))
		for i, f := range fs {
			if v, ok := c.value(f); ok {
				out[i] = int64(v.(int32))
			}
		}
		_, err := g.CreateInts(wire, out)
		return err
	}
	return newError(ErrType, "%s cannot be stored as a vector", e.EntityName())
}

func decodeHFF(root *hff.Group, c *wireCtx) (*Segmentation, error) {
	s := &Segmentation{}
	if err := c.hffFill(root, s); err != nil {
		return nil, err
	}
	if v, ok := root.Attrs().Text("version"); ok {
		s.Version = v
	}
	return s, nil
}

// hffFill reads g into e. Unknown children and attributes are ignored.
func (c *wireCtx) hffFill(g *hff.Group, e Entity) error {
	name := e.EntityName()
	for _, f := range e.fields() {
		if !c.schema.Supports(name, f.Name) {
			continue
		}
		wire := c.schema.WireName(name, f.Name)
		v, ok, err := c.hffField(g, wire, f)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if err := f.set(v); err != nil {
			return err
		}
	}
	return nil
}

func (c *wireCtx) hffField(g *hff.Group, wire string, f boundField) (any, bool, error) {
	attrs := g.Attrs()
	switch f.Kind {
	case KindString:
		ds, ok := g.Dataset(wire)
		if !ok {
			return nil, false, nil
		}
		text, ok := ds.Text()
		return text, ok && text != "", nil
	case KindUint:
		n, ok := attrs.Uint(wire)
		if !ok {
			return nil, false, nil
		}
		if n > math.MaxUint32 {
			return nil, false, newError(ErrValue, "%s value %d overflows uint32", wire, n)
		}
		return uint32(n), true, nil
	case KindInt:
		n, ok := attrs.Int(wire)
		if !ok {
			return nil, false, nil
		}
		if n < math.MinInt32 || n > math.MaxInt32 {
			return nil, false, newError(ErrValue, "%s value %d overflows int32", wire, n)
		}
		return int32(n), true, nil
	case KindFloat:
		x, ok := attrs.Float(wire)
		return x, ok, nil
	case KindEnum:
		text, ok := attrs.Text(wire)
		if !ok {
			return nil, false, nil
		}
		v, err := c.parseScalar(f, text)
		return v, err == nil, err
	case KindBytes:
		ds, ok := g.Dataset(wire)
		if !ok {
			return nil, false, nil
		}
		b, ok := ds.Raw()
		return b, ok, nil
	case KindStrings:
		sub, ok := g.Group(wire)
		if !ok {
			return nil, false, nil
		}
		out := []string{}
		for _, n := range sub.Children() {
			if ds, ok := n.(*hff.Dataset); ok {
				if text, ok := ds.Text(); ok {
					out = append(out, text)
				}
			}
		}
		return out, true, nil
	case KindUints:
		ds, ok := g.Dataset(wire)
		if !ok {
			return nil, false, nil
		}
		us, ok := ds.Uints()
		if !ok {
			return nil, false, nil
		}
		out := make([]uint32, len(us))
		for i, u := range us {
			out[i] = uint32(u)
		}
		return out, true, nil
	case KindEntity:
		sub, err := newChild(f)
		if err != nil {
			return nil, false, err
		}
		if vectorEntities[f.Entity] {
			ds, ok := g.Dataset(wire)
			if !ok {
				return nil, false, nil
			}
			return sub, true, c.hffVectorFill(ds, sub)
		}
		grp, ok := g.Group(wire)
		if !ok {
			return nil, false, nil
		}
		return sub, true, c.hffFill(grp, sub)
	case KindList:
		grp, ok := g.Group(wire)
		if !ok {
			return nil, false, nil
		}
		ent, err := newChild(f)
		if err != nil {
			return nil, false, err
		}
		l := ent.(listEntity)
		for _, n := range grp.Children() {
			ig, ok := n.(*hff.Group)
			if !ok {
				continue
			}
			tag, _ := ig.Attrs().Text(hffItemKind)
			item, err := c.schema.newItem(f.Entity, tag)
			if err != nil {
				continue
			}
			if err := c.hffFill(ig, item); err != nil {
				return nil, false, err
			}
			if err := l.appendEntity(item); err != nil {
				return nil, false, err
			}
		}
		return ent, true, nil
	}
	return nil, false, nil
}

func (c *wireCtx) hffVectorFill(ds *hff.Dataset, e Entity) error {
	fs := e.fields()
	switch fs[0].Kind {
	case KindFloat:
		xs, ok := ds.Floats()
		if !ok {
			return newError(ErrType, "%s dataset %s is not float", e.EntityName(), ds.Name())
		}
		for i, f := range fs {
			if i < len(xs) && !math.IsNaN(xs[i]) {
				if err := f.set(xs[i]); err != nil {
					return err
				}
			}
		}
	case KindUint:
		us, ok := ds.Uints()
		if !ok {
			return newError(ErrType, "%s dataset %s is not unsigned", e.EntityName(), ds.Name())
		}
		for i, f := range fs {
			if i < len(us) {
				if err := f.set(uint32(us[i])); err != nil {
					return err
				}
			}
		}
	case KindInt:
		is, ok := ds.Ints()
		if !ok {
			return newError(ErrType, "%s dataset %s is not integer", e.EntityName(), ds.Name())
		}
		for i, f := range fs {
			if i < len(is) {
				if err := f.set(int32(is[i])); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// hffVersion reads the root version attribute.
func hffVersion(root *hff.Group) (string, bool) {
	v, ok := root.Attrs().Text("version")
	return v, ok && v != ""
}
