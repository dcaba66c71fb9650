package omrs_dto

type Patient struct {
	UUID        string              `json:"uuid,omitempty"`
	Person      Person              `json:"person"`
	Identifiers []PatientIdentifier `json:"identifiers"`
}

type PatientIdentifier struct {
	UUID           string         `json:"uuid,omitempty"`
	Identifier     string         `json:"identifier"`
	IdentifierType IdentifierType `json:"identifierType"`
	Preferred      bool           `json:"preferred,omitempty"`
	Location       string         `json:"location,omitempty"`
}

type IdentifierType struct {
	UUID        string `json:"uuid,omitempty"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

type PatientListResult struct {
	Results []Patient `json:"results"`
}

type IdentifierTypeListResult struct {
	Results []IdentifierType `json:"results"`
}

// HasIdentifier reports whether the patient already carries the given
// (identifier type name, value) pair.
func (p *Patient) HasIdentifier(typeName, value string) bool {
	for _, pi := range p.Identifiers {
		if pi.IdentifierType.Name == typeName && pi.Identifier == value {
			return true
		}
	}
	return false
}
