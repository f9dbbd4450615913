package requests

type CreateBookingRequest struct {
	SlotID string `json:"slot_id" validate:"required"`

	// Filled from the caller's session, never from the request body.
	PersonIdentifier string `json:"-"`
}
