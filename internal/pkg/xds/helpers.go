package xds

// Slot and classification lookups are first-match-wins in declaration order.

func slotValue(slots []Slot, name string) (string, bool) {
	for _, s := range slots {
		if s.Name == name {
			if len(s.Values) == 0 {
				return "", false
			}
			return s.Values[0], true
		}
	}
	return "", false
}

func slotValues(slots []Slot, name string) []string {
	for _, s := range slots {
		if s.Name == name {
			return s.Values
		}
	}
	return nil
}

func (e *ExtrinsicObject) SlotValue(name string) (string, bool) {
	return slotValue(e.Slots, name)
}

func (e *ExtrinsicObject) SlotValues(name string) []string {
	return slotValues(e.Slots, name)
}

// AddOrOverwriteSlot replaces the values of an existing slot, or appends a new
// one when the entry does not carry it yet.
func (e *ExtrinsicObject) AddOrOverwriteSlot(name string, values ...string) {
	for i := range e.Slots {
		if e.Slots[i].Name == name {
			e.Slots[i].Values = values
			return
		}
	}
	e.Slots = append(e.Slots, Slot{Name: name, Values: values})
}

func (e *ExtrinsicObject) ExternalIdentifierValue(scheme string) string {
	for _, ei := range e.ExternalIdentifiers {
		if ei.IdentificationScheme == scheme {
			return ei.Value
		}
	}
	return ""
}

// Classification returns the first classification under the given scheme, or
// nil when the entry carries none.
func (e *ExtrinsicObject) Classification(scheme string) *Classification {
	for i := range e.Classifications {
		if e.Classifications[i].ClassificationScheme == scheme {
			return &e.Classifications[i]
		}
	}
	return nil
}

func (e *ExtrinsicObject) ClassificationsByScheme(scheme string) []Classification {
	var out []Classification
	for _, c := range e.Classifications {
		if c.ClassificationScheme == scheme {
			out = append(out, c)
		}
	}
	return out
}

func (c *Classification) SlotValue(name string) (string, bool) {
	return slotValue(c.Slots, name)
}

func (c *Classification) SlotValues(name string) []string {
	return slotValues(c.Slots, name)
}

func (r *SubmitObjectsRequest) RegistryPackage(objectType string) *RegistryPackage {
	for i := range r.RegistryPackages {
		if r.RegistryPackages[i].ObjectType == objectType {
			return &r.RegistryPackages[i]
		}
	}
	return nil
}

func (p *RegistryPackage) ExternalIdentifierValue(scheme string) string {
	for _, ei := range p.ExternalIdentifiers {
		if ei.IdentificationScheme == scheme {
			return ei.Value
		}
	}
	return ""
}
