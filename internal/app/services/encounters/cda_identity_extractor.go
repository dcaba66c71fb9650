package encounters

import (
	"encoding/xml"
	"strings"

	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/contracts"
)

// clinicalDocumentID is the subset of a structured clinical document needed
// to read the root element's identifier.
type clinicalDocumentID struct {
	XMLName xml.Name `xml:"ClinicalDocument"`
	ID      struct {
		Root      string `xml:"root,attr"`
		Extension string `xml:"extension,attr"`
	} `xml:"id"`
}

type cdaIdentityExtractor struct{}

func NewCDAIdentityExtractor() contracts.EmbeddedIdentityExtractor {
	return &cdaIdentityExtractor{}
}

// ExtractIdentity reads the id extension of the document's root element. A
// compound "a/b" extension yields the second segment.
func (e *cdaIdentityExtractor) ExtractIdentity(payload []byte) (string, error) {
	var doc clinicalDocumentID
	if err := xml.Unmarshal(payload, &doc); err != nil {
		return "", err
	}

	extension := doc.ID.Extension
	if strings.Contains(extension, "/") {
		segments := strings.Split(extension, "/")
		extension = segments[1]
	}
	return extension, nil
}
