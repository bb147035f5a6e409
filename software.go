package sfftkrw

// Software records a program that produced or processed the segmentation.
type Software struct {
	ID                Opt[uint32]
	Name              string
	Version           string
	ProcessingDetails string
}

var softwareFields = []fieldDef[*Software]{
	idDef(func(s *Software) *Opt[uint32] { return &s.ID }),
	strDef("name", func(s *Software) *string { return &s.Name }, required()),
	strDef("version", func(s *Software) *string { return &s.Version }),
	strDef("processing_details", func(s *Software) *string { return &s.ProcessingDetails }),
}

func (s *Software) EntityName() string    { return "Software" }
func (s *Software) Identity() Opt[uint32] { return s.ID }
func (s *Software) fields() []boundField  { return bind(s, softwareFields) }

// SoftwareList is the schema 0.8 list of programs.
type SoftwareList struct {
	List[*Software]
}

func (l *SoftwareList) EntityName() string { return "SoftwareList" }

// Copy returns a shallow copy.
func (l *SoftwareList) Copy() *SoftwareList { return &SoftwareList{List: l.clone()} }
