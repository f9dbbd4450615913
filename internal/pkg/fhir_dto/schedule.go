package fhir_dto

type Schedule struct {
	ResourceType string      `json:"resourceType"`
	ID           string      `json:"id,omitempty"`
	Meta         *Meta       `json:"meta,omitempty"`
	Active       bool        `json:"active,omitempty"`
	Actor        []Reference `json:"actor"`
	Comment      string      `json:"comment,omitempty"`
}
