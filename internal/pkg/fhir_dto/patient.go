package fhir_dto

type Patient struct {
	ResourceType         string       `json:"resourceType,omitempty"`
	ID                   string       `json:"id,omitempty"`
	Active               bool         `json:"active,omitempty"`
	Name                 []HumanName  `json:"name,omitempty"`
	Identifier           []Identifier `json:"identifier,omitempty"`
	ManagingOrganization *Reference   `json:"managingOrganization,omitempty"`
}
