package contracts

import (
	"context"
	"jadwalin-service/internal/pkg/dto/requests"
	"jadwalin-service/internal/pkg/dto/responses"
)

type BookingUsecase interface {
	// BookSlot reserves the slot for the caller, superseding any active
	// reservation the caller holds on the same schedule. The whole change is
	// applied as one atomic backend transaction.
	BookSlot(ctx context.Context, sessionData string, request *requests.CreateBookingRequest) (*responses.CreateBooking, error)
}
