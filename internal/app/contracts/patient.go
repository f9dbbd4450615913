package contracts

import (
	"context"
	"jadwalin-service/internal/pkg/fhir_dto"
)

type PatientFhirClient interface {
	// FindPatientByIdentifierAndOrganizationID searches for the person's
	// patient identity scoped to one organization. A person may hold one
	// patient record per organization.
	FindPatientByIdentifierAndOrganizationID(ctx context.Context, personIdentifier, organizationID string) ([]fhir_dto.Patient, error)
}
