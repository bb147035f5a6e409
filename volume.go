package sfftkrw

import "fmt"

// VolumeStructure is the size of a lattice in voxels.
type VolumeStructure struct {
	Cols     Opt[uint32]
	Rows     Opt[uint32]
	Sections Opt[uint32]
}

var volumeStructureFields = []fieldDef[*VolumeStructure]{
	optDef("cols", KindUint, func(v *VolumeStructure) *Opt[uint32] { return &v.Cols }, required()),
	optDef("rows", KindUint, func(v *VolumeStructure) *Opt[uint32] { return &v.Rows }, required()),
	optDef("sections", KindUint, func(v *VolumeStructure) *Opt[uint32] { return &v.Sections }, required()),
}

// NewVolumeStructure returns a size of cols x rows x sections.
func NewVolumeStructure(cols, rows, sections uint32) *VolumeStructure {
	return &VolumeStructure{Cols: Some(cols), Rows: Some(rows), Sections: Some(sections)}
}

func (v *VolumeStructure) EntityName() string { return "VolumeStructure" }
func (v *VolumeStructure) fields() []boundField {
	return bind(v, volumeStructureFields)
}

// VoxelCount is cols*rows*sections.
func (v *VolumeStructure) VoxelCount() int {
	return int(v.Cols.Value()) * int(v.Rows.Value()) * int(v.Sections.Value())
}

// Shape returns the array shape (sections, rows, cols).
func (v *VolumeStructure) Shape() []int {
	return []int{int(v.Sections.Value()), int(v.Rows.Value()), int(v.Cols.Value())}
}

// Value returns (cols, rows, sections).
func (v *VolumeStructure) Value() [3]uint32 {
	return [3]uint32{v.Cols.Value(), v.Rows.Value(), v.Sections.Value()}
}

func (v *VolumeStructure) String() string {
	return fmt.Sprintf("(cols=%d, rows=%d, sections=%d)", v.Cols.Value(), v.Rows.Value(), v.Sections.Value())
}

// VolumeIndex is the voxel origin of a lattice. Components may be
// negative.
type VolumeIndex struct {
	Cols     Opt[int32]
	Rows     Opt[int32]
	Sections Opt[int32]
}

var volumeIndexFields = []fieldDef[*VolumeIndex]{
	optDef("cols", KindInt, func(v *VolumeIndex) *Opt[int32] { return &v.Cols }, required(), withDefault(int32(0))),
	optDef("rows", KindInt, func(v *VolumeIndex) *Opt[int32] { return &v.Rows }, required(), withDefault(int32(0))),
	optDef("sections", KindInt, func(v *VolumeIndex) *Opt[int32] { return &v.Sections }, required(), withDefault(int32(0))),
}

// NewVolumeIndex returns an origin.
func NewVolumeIndex(cols, rows, sections int32) *VolumeIndex {
	return &VolumeIndex{Cols: Some(cols), Rows: Some(rows), Sections: Some(sections)}
}

func (v *VolumeIndex) EntityName() string { return "VolumeIndex" }
func (v *VolumeIndex) fields() []boundField {
	return bind(v, volumeIndexFields)
}

// Value returns (cols, rows, sections).
func (v *VolumeIndex) Value() [3]int32 {
	return [3]int32{v.Cols.Value(), v.Rows.Value(), v.Sections.Value()}
}

// ThreeDVolume selects the voxels of a lattice that carry a segment's
// label.
type ThreeDVolume struct {
	LatticeID   Opt[uint32]
	Value       Opt[float64]
	TransformID Opt[uint32]
}

var threeDVolumeFields = []fieldDef[*ThreeDVolume]{
	optDef("lattice_id", KindUint, func(v *ThreeDVolume) *Opt[uint32] { return &v.LatticeID }, required(),
		help("id of the lattice holding this segment's voxels")),
	optDef("value", KindFloat, func(v *ThreeDVolume) *Opt[float64] { return &v.Value }, required(),
		help("voxel label selecting this segment")),
	optDef("transform_id", KindUint, func(v *ThreeDVolume) *Opt[uint32] { return &v.TransformID }),
}

// NewThreeDVolume references value in lattice latticeID.
func NewThreeDVolume(latticeID uint32, value float64) *ThreeDVolume {
	return &ThreeDVolume{LatticeID: Some(latticeID), Value: Some(value)}
}

func (v *ThreeDVolume) EntityName() string { return "ThreeDVolume" }
func (v *ThreeDVolume) fields() []boundField {
	return bind(v, threeDVolumeFields)
}
