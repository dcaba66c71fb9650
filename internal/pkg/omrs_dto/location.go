package omrs_dto

type Location struct {
	UUID       string              `json:"uuid,omitempty"`
	Name       string              `json:"name,omitempty"`
	Attributes []LocationAttribute `json:"attributes,omitempty"`
}

type LocationAttribute struct {
	UUID          string `json:"uuid,omitempty"`
	AttributeType string `json:"attributeType"`
	Value         string `json:"value"`
}

type LocationListResult struct {
	Results []Location `json:"results"`
}

// Attribute returns the value of the attribute with the given type uuid.
func (l *Location) Attribute(attributeType string) (string, bool) {
	for _, a := range l.Attributes {
		if a.AttributeType == attributeType {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttribute updates an existing attribute of the given type in place, or
// appends a new one.
func (l *Location) SetAttribute(attributeType, value string) {
	for i := range l.Attributes {
		if l.Attributes[i].AttributeType == attributeType {
			l.Attributes[i].Value = value
			return
		}
	}
	l.Attributes = append(l.Attributes, LocationAttribute{AttributeType: attributeType, Value: value})
}
