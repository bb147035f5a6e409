package sfftkrw

// ExternalReference points at a term in an external resource (an ontology,
// a database accession). Schema 0.7 names the triple type, otherType and
// value; the model always uses resource, url and accession.
type ExternalReference struct {
	ID          Opt[uint32]
	Resource    string
	URL         string
	Accession   string
	Label       string
	Description string
}

var externalReferenceFields = []fieldDef[*ExternalReference]{
	idDef(func(e *ExternalReference) *Opt[uint32] { return &e.ID }),
	strDef("resource", func(e *ExternalReference) *string { return &e.Resource }, required(), help("the resource name, e.g. an ontology code")),
	strDef("url", func(e *ExternalReference) *string { return &e.URL }, help("a URL for the term")),
	strDef("accession", func(e *ExternalReference) *string { return &e.Accession }, required(), help("the accession within the resource")),
	strDef("label", func(e *ExternalReference) *string { return &e.Label }),
	strDef("description", func(e *ExternalReference) *string { return &e.Description }),
}

func (e *ExternalReference) EntityName() string    { return "ExternalReference" }
func (e *ExternalReference) Identity() Opt[uint32] { return e.ID }
func (e *ExternalReference) fields() []boundField  { return bind(e, externalReferenceFields) }

// ExternalReferenceList holds the references of a biological annotation.
type ExternalReferenceList struct {
	List[*ExternalReference]
}

func (l *ExternalReferenceList) EntityName() string { return "ExternalReferenceList" }

// Copy returns a shallow copy.
func (l *ExternalReferenceList) Copy() *ExternalReferenceList {
	return &ExternalReferenceList{List: l.clone()}
}

// GlobalExternalReferenceList holds references that apply to the whole
// segmentation.
type GlobalExternalReferenceList struct {
	List[*ExternalReference]
}

func (l *GlobalExternalReferenceList) EntityName() string { return "GlobalExternalReferenceList" }

// Copy returns a shallow copy.
func (l *GlobalExternalReferenceList) Copy() *GlobalExternalReferenceList {
	return &GlobalExternalReferenceList{List: l.clone()}
}
