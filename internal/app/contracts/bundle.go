package contracts

import (
	"context"
	"jadwalin-service/internal/pkg/fhir_dto"
)

type BundleFhirClient interface {
	// PostTransactionBundle submits the entries as one atomic unit: the
	// backend applies all of them or none. The response bundle carries one
	// outcome entry per request entry, in the same order.
	PostTransactionBundle(ctx context.Context, bundle *fhir_dto.TransactionBundle) (*fhir_dto.FHIRBundle, error)
}
