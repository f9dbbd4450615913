package fhir_dto

import "encoding/json"

// TransactionBundle is the request-side bundle submitted to the backend's
// transaction endpoint. Entry order is preserved by the backend; the
// orchestrator relies on that for referential consistency.
type TransactionBundle struct {
	ResourceType string        `json:"resourceType"`
	Type         string        `json:"type"`
	Entry        []BundleEntry `json:"entry"`
}

type BundleEntry struct {
	FullUrl  string         `json:"fullUrl,omitempty"`
	Resource interface{}    `json:"resource,omitempty"`
	Request  *BundleRequest `json:"request,omitempty"`
}

type BundleRequest struct {
	Method string `json:"method"`
	URL    string `json:"url"`
}

// FHIRBundle is the response-side bundle: search results and
// transaction-response outcomes both arrive in this shape.
type FHIRBundle struct {
	ResourceType string            `json:"resourceType"`
	ID           string            `json:"id,omitempty"`
	Type         string            `json:"type,omitempty"`
	Total        int               `json:"total,omitempty"`
	Entry        []FHIRBundleEntry `json:"entry,omitempty"`
}

type FHIRBundleEntry struct {
	FullUrl  string          `json:"fullUrl,omitempty"`
	Resource json.RawMessage `json:"resource,omitempty"`
	Response *BundleResponse `json:"response,omitempty"`
}

type BundleResponse struct {
	Status   string `json:"status"`
	Location string `json:"location,omitempty"`
	Etag     string `json:"etag,omitempty"`
}
