package encounters

import (
	"strings"

	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/contracts"
)

// pidAccountNumberField is the 1-based index of the patient account number
// field in a PID segment.
const pidAccountNumberField = 18

type ormIdentityExtractor struct{}

func NewORMIdentityExtractor() contracts.EmbeddedIdentityExtractor {
	return &ormIdentityExtractor{}
}

// ExtractIdentity reads the check digit component of the patient account
// number from the PID segment of a pipe delimited order message. Messages
// without a PID segment or account number yield a blank identity.
func (e *ormIdentityExtractor) ExtractIdentity(payload []byte) (string, error) {
	message := strings.ReplaceAll(string(payload), "\r\n", "\r")
	message = strings.ReplaceAll(message, "\n", "\r")

	for _, segment := range strings.Split(message, "\r") {
		if !strings.HasPrefix(segment, "PID|") {
			continue
		}
		fields := strings.Split(segment, "|")
		if len(fields) <= pidAccountNumberField {
			return "", nil
		}
		components := strings.Split(fields[pidAccountNumberField], "^")
		if len(components) < 2 {
			return "", nil
		}
		return components[1], nil
	}
	return "", nil
}
