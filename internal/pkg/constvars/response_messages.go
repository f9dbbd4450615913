package constvars

const (
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"
)

const (
	CreateBookingSuccessMessage = "slot booked successfully"
)
