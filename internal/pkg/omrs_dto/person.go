package omrs_dto

type Person struct {
	UUID      string          `json:"uuid,omitempty"`
	Gender    string          `json:"gender,omitempty"`
	Birthdate string          `json:"birthdate,omitempty"`
	Names     []PersonName    `json:"names,omitempty"`
	Addresses []PersonAddress `json:"addresses,omitempty"`
}

type PersonName struct {
	GivenName        string `json:"givenName,omitempty"`
	MiddleName       string `json:"middleName,omitempty"`
	FamilyName       string `json:"familyName,omitempty"`
	FamilyNameSuffix string `json:"familyNameSuffix,omitempty"`
	Prefix           string `json:"prefix,omitempty"`
	Degree           string `json:"degree,omitempty"`
}

type PersonAddress struct {
	Address1      string `json:"address1,omitempty"`
	Address2      string `json:"address2,omitempty"`
	CityVillage   string `json:"cityVillage,omitempty"`
	StateProvince string `json:"stateProvince,omitempty"`
	PostalCode    string `json:"postalCode,omitempty"`
	Country       string `json:"country,omitempty"`
}
