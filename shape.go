package sfftkrw

// ShapeKind tags a shape primitive variant. The values double as wire tag
// names.
type ShapeKind string

const (
	ShapeCone      ShapeKind = "cone"
	ShapeCuboid    ShapeKind = "cuboid"
	ShapeCylinder  ShapeKind = "cylinder"
	ShapeEllipsoid ShapeKind = "ellipsoid"
)

// ShapeKinds lists every variant.
func ShapeKinds() []ShapeKind {
	return []ShapeKind{ShapeCone, ShapeCuboid, ShapeCylinder, ShapeEllipsoid}
}

// ParseShapeKind parses a wire tag name.
func ParseShapeKind(s string) (ShapeKind, error) {
	for _, k := range ShapeKinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", newError(ErrValue, "unknown shape %q", s)
}

// NewShape returns an empty shape of kind k with no id.
func NewShape(k ShapeKind) (Shape, error) {
	switch k {
	case ShapeCone:
		return &Cone{}, nil
	case ShapeCuboid:
		return &Cuboid{}, nil
	case ShapeCylinder:
		return &Cylinder{}, nil
	case ShapeEllipsoid:
		return &Ellipsoid{}, nil
	}
	return nil, newError(ErrValue, "unknown shape %q", k)
}

// Shape is a parametric solid positioned by a transform.
type Shape interface {
	Identified
	Kind() ShapeKind
	Base() *ShapeBase
}

// ShapeBase holds the fields every shape carries.
type ShapeBase struct {
	ID          Opt[uint32]
	TransformID Opt[uint32]
	Attribute   Opt[float64]
}

// Base returns the shared fields.
func (b *ShapeBase) Base() *ShapeBase { return b }

// Identity returns the shape id.
func (b *ShapeBase) Identity() Opt[uint32] { return b.ID }

func shapeBaseFields[E any](base func(E) *ShapeBase) []fieldDef[E] {
	return []fieldDef[E]{
		idDef(func(e E) *Opt[uint32] { return &base(e).ID }),
		optDef("transform_id", KindUint, func(e E) *Opt[uint32] { return &base(e).TransformID }, required(),
			help("id of the transform placing this shape")),
		optDef("attribute", KindFloat, func(e E) *Opt[float64] { return &base(e).Attribute }),
	}
}

func dim[E any](name string, ptr func(E) *Opt[float64]) fieldDef[E] {
	return optDef(name, KindFloat, ptr, required())
}

// Cone has its apex above the centre of its base.
type Cone struct {
	ShapeBase
	Height       Opt[float64]
	BottomRadius Opt[float64]
}

var coneFields = append(shapeBaseFields(func(c *Cone) *ShapeBase { return &c.ShapeBase }),
	dim("height", func(c *Cone) *Opt[float64] { return &c.Height }),
	dim("bottom_radius", func(c *Cone) *Opt[float64] { return &c.BottomRadius }),
)

func (c *Cone) EntityName() string { return "Cone" }
func (c *Cone) Kind() ShapeKind { return ShapeCone }
func (c *Cone) fields() []boundField { return bind(c, coneFields) }

// Cuboid is a box of edge lengths x, y and z.
type Cuboid struct {
	ShapeBase
	X Opt[float64]
	Y Opt[float64]
	Z Opt[float64]
}

var cuboidFields = append(shapeBaseFields(func(c *Cuboid) *ShapeBase { return &c.ShapeBase }),
	dim("x", func(c *Cuboid) *Opt[float64] { return &c.X }),
	dim("y", func(c *Cuboid) *Opt[float64] { return &c.Y }),
	dim("z", func(c *Cuboid) *Opt[float64] { return &c.Z }),
)

func (c *Cuboid) EntityName() string { return "Cuboid" }
func (c *Cuboid) Kind() ShapeKind { return ShapeCuboid }
func (c *Cuboid) fields() []boundField { return bind(c, cuboidFields) }

// Cylinder is a right circular cylinder.
type Cylinder struct {
	ShapeBase
	Height   Opt[float64]
	Diameter Opt[float64]
}

var cylinderFields = append(shapeBaseFields(func(c *Cylinder) *ShapeBase { return &c.ShapeBase }),
	dim("height", func(c *Cylinder) *Opt[float64] { return &c.Height }),
	dim("diameter", func(c *Cylinder) *Opt[float64] { return &c.Diameter }),
)

func (c *Cylinder) EntityName() string { return "Cylinder" }
func (c *Cylinder) Kind() ShapeKind { return ShapeCylinder }
func (c *Cylinder) fields() []boundField { return bind(c, cylinderFields) }

// Ellipsoid has semi-axes x, y and z.
type Ellipsoid struct {
	ShapeBase
	X Opt[float64]
	Y Opt[float64]
	Z Opt[float64]
}

var ellipsoidFields = append(shapeBaseFields(func(e *Ellipsoid) *ShapeBase { return &e.ShapeBase }),
	dim("x", func(e *Ellipsoid) *Opt[float64] { return &e.X }),
	dim("y", func(e *Ellipsoid) *Opt[float64] { return &e.Y }),
	dim("z", func(e *Ellipsoid) *Opt[float64] { return &e.Z }),
)

func (e *Ellipsoid) EntityName() string { return "Ellipsoid" }
func (e *Ellipsoid) Kind() ShapeKind { return ShapeEllipsoid }
func (e *Ellipsoid) fields() []boundField { return bind(e, ellipsoidFields) }

// ShapePrimitiveList is a heterogeneous list of shapes. All variants share
// one id space.
type ShapePrimitiveList struct {
	List[Shape]
}

func (l *ShapePrimitiveList) EntityName() string { return "ShapePrimitiveList" }

// Copy returns a shallow copy.
func (l *ShapePrimitiveList) Copy() *ShapePrimitiveList {
	return &ShapePrimitiveList{List: l.clone()}
}

// Count returns the number of shapes of kind k.
func (l *ShapePrimitiveList) Count(k ShapeKind) int {
	n := 0
	for _, s := range l.items {
		if s.Kind() == k {
			n++
		}
	}
	return n
}

// NumCones returns the number of cones.
func (l *ShapePrimitiveList) NumCones() int { return l.Count(ShapeCone) }

// NumCuboids returns the number of cuboids.
func (l *ShapePrimitiveList) NumCuboids() int { return l.Count(ShapeCuboid) }

// NumCylinders returns the number of cylinders.
func (l *ShapePrimitiveList) NumCylinders() int { return l.Count(ShapeCylinder) }

// NumEllipsoids returns the number of ellipsoids.
func (l *ShapePrimitiveList) NumEllipsoids() int { return l.Count(ShapeEllipsoid) }
