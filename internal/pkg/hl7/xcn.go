package hl7

import "strings"

// PersonTuple is the XCN encoded (identifier, family name, given name, ...)
// tuple found in authorPerson slots.
type PersonTuple struct {
	Identifier string
	FamilyName string
	GivenName  string
}

// ParseXCN decomposes an XCN encoded person. All components are optional;
// trailing components beyond the given name are ignored.
func ParseXCN(xcn string) PersonTuple {
	components := strings.Split(xcn, componentSeparator)

	tuple := PersonTuple{Identifier: components[0]}
	if len(components) > 1 {
		tuple.FamilyName = components[1]
	}
	if len(components) > 2 {
		tuple.GivenName = components[2]
	}
	return tuple
}
