package fhir_dto

import (
	"fmt"
	"strings"
)

// ResourceRef is a parsed "Kind/id" reference string. Keeping the kind and
// id apart prevents a reference of one resource kind from being fed into a
// lookup of another during the booking resolution chain.
type ResourceRef struct {
	Kind string
	ID   string
}

func ParseReference(reference string) (ResourceRef, error) {
	parts := strings.SplitN(reference, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return ResourceRef{}, fmt.Errorf("malformed resource reference: %q", reference)
	}
	return ResourceRef{Kind: parts[0], ID: parts[1]}, nil
}

func NewResourceRef(kind, id string) ResourceRef {
	return ResourceRef{Kind: kind, ID: id}
}

func (r ResourceRef) String() string {
	return fmt.Sprintf("%s/%s", r.Kind, r.ID)
}

func (r ResourceRef) IsKind(kind string) bool {
	return r.Kind == kind
}

// AsReference wraps the ref into the wire-level Reference element.
func (r ResourceRef) AsReference() Reference {
	return Reference{Reference: r.String()}
}
