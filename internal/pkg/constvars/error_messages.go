package constvars

// Client facing messages. These are the only strings a caller ever sees,
// keep them free of backend detail.
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientSlotNotFound                  = "the slot you requested does not exist"
	ErrClientScheduleNotFound              = "the schedule behind this slot does not exist"
	ErrClientPatientNotRegistered          = "you are not registered with this organization yet"
	ErrClientSlotBeingBooked               = "this slot is being booked right now, please try again shortly"
	ErrClientSlotUnavailable               = "this slot is no longer available"
	ErrClientBookingFailed                 = "we could not confirm your booking, nothing was changed"
)

// Developer facing messages, returned outside production and logged.
const (
	ErrDevInvalidInput              = "invalid input"
	ErrDevValidationFailed          = "validation failed"
	ErrDevCannotParseJSON           = "cannot parse JSON into struct or other data types"
	ErrDevCannotMarshalJSON         = "cannot convert struct or other data types to JSON"
	ErrDevCreateHTTPRequest         = "failed to create HTTP request"
	ErrDevSendHTTPRequest           = "failed to send HTTP request"
	ErrDevServerDeadlineExceeded    = "server deadline exceeded"
	ErrDevServerProcess             = "server failed to process the request"
	ErrDevMissingRequestID          = "request_id not found in request context"
	ErrDevMissingSessionData        = "session_data not found in request context"
	ErrDevAuthTokenMissing          = "token missing"
	ErrDevAuthTokenInvalidOrExpired = "invalid or expired token"
	ErrDevAuthSigningMethod         = "unexpected signing method"
	ErrDevAuthInvalidSession        = "session not found or expired"

	ErrDevFhirGetResource         = "failed to get FHIR %s from backend"
	ErrDevFhirSearchResource      = "failed to search FHIR %s on backend"
	ErrDevFhirNoDataResource      = "no data found from FHIR %s"
	ErrDevFhirDecodeResource      = "failed to decode FHIR %s response from backend"
	ErrDevFhirTransactionRejected = "FHIR transaction bundle rejected by backend"

	ErrDevSlotNotFound             = "slot not found by the given id"
	ErrDevScheduleNotFound         = "schedule not found by the slot's schedule reference"
	ErrDevPractitionerRoleNotFound = "no practitioner role bound to the schedule's actor"
	ErrDevUnsupportedScheduleActor = "schedule actor is not a Practitioner reference, cannot derive organization"
	ErrDevOrganizationMissing      = "practitioner role carries no organization reference"
	ErrDevPatientNotRegistered     = "no patient identity for this person within the derived organization"
	ErrDevSlotGateHeld             = "another booking for this slot is already in flight"
	ErrDevSlotNotFree              = "target slot status is not free"
	ErrDevBookingInvariant         = "transaction reported success but no appointment creation entry was returned"

	ErrDevMongoDBFindDocument   = "failed to find document in mongo database"
	ErrDevMongoDBInsertDocument = "failed to insert document into mongo database"

	ErrDevRedisGetData    = "failed to get data from redis"
	ErrDevRedisSetData    = "failed to set data to redis"
	ErrDevRedisDeleteData = "failed to delete data from redis"

	ErrDevRabbitMQPublish = "failed to publish message to rabbitmq queue %s"
)
