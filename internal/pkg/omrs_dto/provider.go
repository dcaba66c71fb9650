package omrs_dto

type Provider struct {
	UUID       string  `json:"uuid,omitempty"`
	Identifier string  `json:"identifier,omitempty"`
	Display    string  `json:"display,omitempty"`
	Person     *Person `json:"person,omitempty"`
}

type ProviderListResult struct {
	Results []Provider `json:"results"`
}
