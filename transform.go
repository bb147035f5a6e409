package sfftkrw

import (
	"github.com/emdb-empiar/sfftkrw/codec"
)

// TransformationMatrix is a dense row-major matrix, usually 3x4, stored as
// whitespace-separated decimals.
type TransformationMatrix struct {
	ID   Opt[uint32]
	Rows Opt[uint32]
	Cols Opt[uint32]
	Data string
}

var transformFields = []fieldDef[*TransformationMatrix]{
	idDef(func(t *TransformationMatrix) *Opt[uint32] { return &t.ID }),
	optDef("rows", KindUint, func(t *TransformationMatrix) *Opt[uint32] { return &t.Rows }, required()),
	optDef("cols", KindUint, func(t *TransformationMatrix) *Opt[uint32] { return &t.Cols }, required()),
	strDef("data", func(t *TransformationMatrix) *string { return &t.Data }, required()),
}

func (t *TransformationMatrix) EntityName() string    { return "TransformationMatrix" }
func (t *TransformationMatrix) Identity() Opt[uint32] { return t.ID }
func (t *TransformationMatrix) fields() []boundField  { return bind(t, transformFields) }

// DataArray parses Data as a Rows x Cols matrix.
func (t *TransformationMatrix) DataArray() ([][]float64, error) {
	m, err := codec.ParseMatrix(t.Data, int(t.Rows.Value()), int(t.Cols.Value()))
	return m, wrapCodec(err, "transformation_matrix/data")
}

// SetDataArray replaces the matrix, inferring rows and cols.
func (t *TransformationMatrix) SetDataArray(m [][]float64) error {
	s, err := codec.FormatMatrix(m)
	if err != nil {
		return wrapCodec(err, "transformation_matrix/data")
	}
	cols := 0
	if len(m) > 0 {
		cols = len(m[0])
	}
	t.Rows, t.Cols, t.Data = Some(uint32(len(m))), Some(uint32(cols)), s
	return nil
}

// check verifies the element count equals rows*cols.
func (t *TransformationMatrix) check() error {
	if t.Data == "" || !t.Rows.Valid() || !t.Cols.Valid() {
		return nil
	}
	_, err := t.DataArray()
	return err
}

// TransformList holds the transforms of a segmentation.
type TransformList struct {
	List[*TransformationMatrix]
}

func (l *TransformList) EntityName() string { return "TransformList" }

// MinLength is the fewest transforms a segmentation must carry.
func (l *TransformList) MinLength() int { return 1 }

// Copy returns a shallow copy.
func (l *TransformList) Copy() *TransformList { return &TransformList{List: l.clone()} }
