package constvars

const (
	ResourcePatient          = "Patient"
	ResourcePractitioner     = "Practitioner"
	ResourcePractitionerRole = "PractitionerRole"
	ResourceSchedule         = "Schedule"
	ResourceSlot             = "Slot"
	ResourceOrganization     = "Organization"
	ResourceAppointment      = "Appointment"
	ResourceBundle           = "Bundle"
)

const (
	FhirSlotStatusFree = "free"
	FhirSlotStatusBusy = "busy"
)

const (
	FhirAppointmentStatusBooked    = "booked"
	FhirAppointmentStatusCancelled = "cancelled"
)

const (
	FhirParticipantStatusAccepted    = "accepted"
	FhirParticipantStatusDeclined    = "declined"
	FhirParticipantStatusTentative   = "tentative"
	FhirParticipantStatusNeedsAction = "needs-action"
)

const (
	FhirBundleTypeTransaction         = "transaction"
	FhirBundleTypeTransactionResponse = "transaction-response"
)
