package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingSessionDataKey    = "session_data"
	LoggingRequestKey        = "request"
	LoggingResponseKey       = "response"
	LoggingMethodKey         = "method"
	LoggingEndpointKey       = "endpoint"
	LoggingRemoteAddrKey     = "remote_addr"
	LoggingUserAgentKey      = "user_agent"
	LoggingQueryKey          = "query"
	LoggingStatusCodeKey     = "status_code"
	LoggingDurationKey       = "duration"
	LoggingSuccessKey        = "success"
	LoggingSlotIDKey         = "slot_id"
	LoggingScheduleIDKey     = "schedule_id"
	LoggingPatientIDKey      = "patient_id"
	LoggingPractitionerIDKey = "practitioner_id"
	LoggingOrganizationIDKey = "organization_id"
	LoggingAppointmentIDKey  = "appointment_id"
	LoggingBundleEntriesKey  = "bundle_entries"
	LoggingQueueNameKey      = "queue_name"
	LoggingMessageIDKey      = "message_id"
)
