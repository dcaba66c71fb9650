package xds

// Types in this package model the ebRIM subset carried by the XDS.b
// Provide and Register Document Set-b transaction.

type ProvideAndRegisterRequest struct {
	SubmitObjectsRequest SubmitObjectsRequest `json:"submitObjectsRequest" validate:"required"`
	// Documents maps an extrinsic object id to the raw payload bytes.
	Documents map[string][]byte `json:"documents"`
}

type SubmitObjectsRequest struct {
	RegistryPackages []RegistryPackage `json:"registryPackages,omitempty"`
	ExtrinsicObjects []ExtrinsicObject `json:"extrinsicObjects,omitempty"`
}

// RegistryPackage carries submission-set level metadata.
type RegistryPackage struct {
	ID                  string               `json:"id"`
	ObjectType          string               `json:"objectType,omitempty"`
	Slots               []Slot               `json:"slots,omitempty"`
	ExternalIdentifiers []ExternalIdentifier `json:"externalIdentifiers,omitempty"`
}

// ExtrinsicObject is the metadata record describing one document.
type ExtrinsicObject struct {
	ID                  string               `json:"id"`
	ObjectType          string               `json:"objectType,omitempty"`
	MimeType            string               `json:"mimeType,omitempty"`
	ContentVersionName  string               `json:"contentVersionName,omitempty"`
	Slots               []Slot               `json:"slots,omitempty"`
	Classifications     []Classification     `json:"classifications,omitempty"`
	ExternalIdentifiers []ExternalIdentifier `json:"externalIdentifiers,omitempty"`
}

type Classification struct {
	ClassificationScheme string `json:"classificationScheme"`
	NodeRepresentation   string `json:"nodeRepresentation,omitempty"`
	Name                 string `json:"name,omitempty"`
	Slots                []Slot `json:"slots,omitempty"`
}

// Slot is a named, possibly multi valued metadata field.
type Slot struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

type ExternalIdentifier struct {
	IdentificationScheme string `json:"identificationScheme"`
	Value                string `json:"value"`
}

type RegistryResponse struct {
	Status string          `json:"status"`
	Errors []RegistryError `json:"registryErrorList,omitempty"`
}

type RegistryError struct {
	ErrorCode   string `json:"errorCode"`
	CodeContext string `json:"codeContext,omitempty"`
	Severity    string `json:"severity,omitempty"`
	Location    string `json:"location,omitempty"`
}

// CodedValue identifies a type or format code together with its coding scheme.
type CodedValue struct {
	Code         string `json:"code"`
	CodingScheme string `json:"codingScheme,omitempty"`
	DisplayName  string `json:"displayName,omitempty"`
}
