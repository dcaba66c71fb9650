package omrs_dto

type EncounterType struct {
	UUID        string `json:"uuid,omitempty"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

type EncounterRole struct {
	UUID        string `json:"uuid,omitempty"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

type Encounter struct {
	UUID              string         `json:"uuid,omitempty"`
	EncounterDatetime string         `json:"encounterDatetime,omitempty"`
	EncounterType     *EncounterType `json:"encounterType,omitempty"`
	Location          *Location      `json:"location,omitempty"`
	Form              *Form          `json:"form,omitempty"`
	Patient           string         `json:"patient,omitempty"`
}

type EncounterTypeListResult struct {
	Results []EncounterType `json:"results"`
}

type EncounterRoleListResult struct {
	Results []EncounterRole `json:"results"`
}
