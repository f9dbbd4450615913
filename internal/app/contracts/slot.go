package contracts

import (
	"context"
	"jadwalin-service/internal/pkg/fhir_dto"
)

type SlotFhirClient interface {
	// FindSlotByID returns nil (not an error) when the slot does not exist.
	FindSlotByID(ctx context.Context, slotID string) (*fhir_dto.Slot, error)
}
