package sfftkrw

// BoundingBox bounds the segmented region in image space. Minimums default
// to 0; maximums are optional.
type BoundingBox struct {
	XMin Opt[float64]
	XMax Opt[float64]
	YMin Opt[float64]
	YMax Opt[float64]
	ZMin Opt[float64]
	ZMax Opt[float64]
}

var boundingBoxFields = []fieldDef[*BoundingBox]{
	optDef("xmin", KindFloat, func(b *BoundingBox) *Opt[float64] { return &b.XMin }, withDefault(0.0)),
	optDef("xmax", KindFloat, func(b *BoundingBox) *Opt[float64] { return &b.XMax }),
	optDef("ymin", KindFloat, func(b *BoundingBox) *Opt[float64] { return &b.YMin }, withDefault(0.0)),
	optDef("ymax", KindFloat, func(b *BoundingBox) *Opt[float64] { return &b.YMax }),
	optDef("zmin", KindFloat, func(b *BoundingBox) *Opt[float64] { return &b.ZMin }, withDefault(0.0)),
	optDef("zmax", KindFloat, func(b *BoundingBox) *Opt[float64] { return &b.ZMax }),
}

func (b *BoundingBox) EntityName() string { return "BoundingBox" }
func (b *BoundingBox) fields() []boundField { return bind(b, boundingBoxFields) }

// Values returns the six bounds in field order. Absent maximums are
// reported as not ok.
func (b *BoundingBox) Values() [6]Opt[float64] {
	return [6]Opt[float64]{
		Some(b.XMin.Or(0)), b.XMax,
		Some(b.YMin.Or(0)), b.YMax,
		Some(b.ZMin.Or(0)), b.ZMax,
	}
}
