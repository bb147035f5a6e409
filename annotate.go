package sfftkrw

// GlobalAnnotation addresses the segmentation's global external reference
// list in CopyAnnotation and ClearAnnotation.
const GlobalAnnotation int64 = -1

// MergeAnnotation copies the descriptive parts of other into s: the name,
// software, global references and details, and for every segment of s the
// annotation of the segment in other with the same id. Geometry is left
// untouched.
func (s *Segmentation) MergeAnnotation(other *Segmentation) error {
	if other == nil {
		return newError(ErrType, "cannot merge annotation from a nil segmentation")
	}
	s.Name = other.Name
	s.Software = other.Software
	s.SoftwareList = other.SoftwareList
	s.GlobalExternalReferences = other.GlobalExternalReferences
	s.Details = other.Details
	if s.Segments == nil {
		return nil
	}
	for _, seg := range s.Segments.All() {
		id, ok := seg.ID.Get()
		if !ok {
			continue
		}
		if other.Segments == nil {
			return newError(ErrKey, "no segment with id %d to merge from", id)
		}
		o, err := other.Segments.GetByID(id)
		if err != nil {
			return err
		}
		seg.BiologicalAnnotation = o.BiologicalAnnotation
		seg.ComplexesAndMacromolecules = o.ComplexesAndMacromolecules
	}
	return nil
}

func (s *Segmentation) references(id int64) (*List[*ExternalReference], error) {
	if id == GlobalAnnotation {
		return &s.GlobalReferences().List, nil
	}
	if id < 0 || id > int64(^uint32(0)) {
		return nil, newError(ErrKey, "invalid segment id %d", id)
	}
	if s.Segments == nil {
		return nil, newError(ErrKey, "no segment with id %d", id)
	}
	seg, err := s.Segments.GetByID(uint32(id))
	if err != nil {
		return nil, err
	}
	return &seg.Annotation().References().List, nil
}

// CopyAnnotation appends copies of the external references of segment from
// to those of segment to. Either id may be GlobalAnnotation. A copied id that
// already exists in the target fails with ErrDuplicateID and copies nothing.
func (s *Segmentation) CopyAnnotation(from, to int64) error {
	src, err := s.references(from)
	if err != nil {
		return err
	}
	dst, err := s.references(to)
	if err != nil {
		return err
	}
	if src == dst {
		return nil
	}
	copies := &List[*ExternalReference]{}
	for _, r := range src.All() {
		c := *r
		if err := copies.Append(&c); err != nil {
			return err
		}
	}
	return dst.Extend(copies)
}

// ClearAnnotation removes every external reference of segment id, or of the
// global list for GlobalAnnotation.
func (s *Segmentation) ClearAnnotation(id int64) error {
	refs, err := s.references(id)
	if err != nil {
		return err
	}
	refs.Clear()
	return nil
}
