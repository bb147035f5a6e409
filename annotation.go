package sfftkrw

// BiologicalAnnotation describes what a segment depicts.
type BiologicalAnnotation struct {
	Name               string
	Description        string
	NumberOfInstances  Opt[uint32]
	ExternalReferences *ExternalReferenceList
}

var biologicalAnnotationFields = []fieldDef[*BiologicalAnnotation]{
	strDef("name", func(b *BiologicalAnnotation) *string { return &b.Name }),
	strDef("description", func(b *BiologicalAnnotation) *string { return &b.Description }),
	optDef("number_of_instances", KindUint, func(b *BiologicalAnnotation) *Opt[uint32] { return &b.NumberOfInstances },
		withDefault(uint32(1))),
	listDef("external_references", "ExternalReferenceList",
		func(b *BiologicalAnnotation) **ExternalReferenceList { return &b.ExternalReferences },
		func() *ExternalReferenceList { return &ExternalReferenceList{} }),
}

func (b *BiologicalAnnotation) EntityName() string { return "BiologicalAnnotation" }
func (b *BiologicalAnnotation) fields() []boundField {
	return bind(b, biologicalAnnotationFields)
}

// References returns the external references, creating the list when
// absent.
func (b *BiologicalAnnotation) References() *ExternalReferenceList {
	if b.ExternalReferences == nil {
		b.ExternalReferences = &ExternalReferenceList{}
	}
	return b.ExternalReferences
}

// ComplexesAndMacromolecules lists the complexes and macromolecules a
// segment contains. Schema 0.7 only.
type ComplexesAndMacromolecules struct {
	Complexes      []string
	Macromolecules []string
}

var complexesFields = []fieldDef[*ComplexesAndMacromolecules]{
	stringsDef("complexes", func(c *ComplexesAndMacromolecules) *[]string { return &c.Complexes }),
	stringsDef("macromolecules", func(c *ComplexesAndMacromolecules) *[]string { return &c.Macromolecules }),
}

func (c *ComplexesAndMacromolecules) EntityName() string { return "ComplexesAndMacromolecules" }
func (c *ComplexesAndMacromolecules) fields() []boundField {
	return bind(c, complexesFields)
}
