package hl7

import (
	"fmt"
	"strings"
)

const (
	componentSeparator    = "^"
	subComponentSeparator = "&"

	escapedAmpersand = "&amp;"
)

// Identifier is the (value, assigning authority domain) pair carried by a
// CX encoded identifier such as "12345^^^&1.2.3&ISO".
type Identifier struct {
	Value              string
	AssigningAuthority string
}

// CXParseError reports a CX string that cannot be decomposed into an
// identifier with a non empty value and assigning authority domain.
type CXParseError struct {
	Reason string
}

func (e *CXParseError) Error() string {
	return fmt.Sprintf("cannot parse CX identifier: %s", e.Reason)
}

// ParseCX decomposes a CX encoded identifier. The value and the assigning
// authority domain must both be present; no default domain is substituted.
func ParseCX(cx string) (Identifier, error) {
	cx = strings.ReplaceAll(cx, escapedAmpersand, subComponentSeparator)

	components := strings.Split(cx, componentSeparator)
	if len(components) < 4 {
		return Identifier{}, &CXParseError{Reason: "expected at least 4 components, got " + fmt.Sprint(len(components))}
	}

	value := components[0]
	if value == "" {
		return Identifier{}, &CXParseError{Reason: "empty identifier"}
	}

	authority := strings.Split(components[3], subComponentSeparator)
	if len(authority) < 2 || authority[1] == "" {
		return Identifier{}, &CXParseError{Reason: "assigning authority id not specified"}
	}

	return Identifier{Value: value, AssigningAuthority: authority[1]}, nil
}
