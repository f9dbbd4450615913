package bookings

import (
	"context"
	"fmt"
	"jadwalin-service/internal/app/config"
	"jadwalin-service/internal/app/contracts"
	"jadwalin-service/internal/app/models"
	"jadwalin-service/internal/pkg/constvars"
	"jadwalin-service/internal/pkg/dto/requests"
	"jadwalin-service/internal/pkg/dto/responses"
	"jadwalin-service/internal/pkg/exceptions"
	"jadwalin-service/internal/pkg/fhir_dto"
	"jadwalin-service/internal/pkg/utils"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type bookingUsecase struct {
	SlotGate                   contracts.SlotGate
	SlotFhirClient             contracts.SlotFhirClient
	ScheduleFhirClient         contracts.ScheduleFhirClient
	PractitionerRoleFhirClient contracts.PractitionerRoleFhirClient
	PatientFhirClient          contracts.PatientFhirClient
	AppointmentFhirClient      contracts.AppointmentFhirClient
	BundleFhirClient           contracts.BundleFhirClient
	BookingRecordRepository    contracts.BookingRecordRepository
	NotificationPublisher      contracts.BookingNotificationPublisher
	SessionService             contracts.SessionService
	InternalConfig             *config.InternalConfig
	Log                        *zap.Logger
}

var (
	bookingUsecaseInstance contracts.BookingUsecase
	onceNewBookingUsecase  sync.Once
)

func NewBookingUsecase(
	slotGate contracts.SlotGate,
	slotFhirClient contracts.SlotFhirClient,
	scheduleFhirClient contracts.ScheduleFhirClient,
	practitionerRoleFhirClient contracts.PractitionerRoleFhirClient,
	patientFhirClient contracts.PatientFhirClient,
	appointmentFhirClient contracts.AppointmentFhirClient,
	bundleFhirClient contracts.BundleFhirClient,
	bookingRecordRepository contracts.BookingRecordRepository,
	notificationPublisher contracts.BookingNotificationPublisher,
	sessionService contracts.SessionService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.BookingUsecase {
	onceNewBookingUsecase.Do(func() {
		bookingUsecaseInstance = &bookingUsecase{
			SlotGate:                   slotGate,
			SlotFhirClient:             slotFhirClient,
			ScheduleFhirClient:         scheduleFhirClient,
			PractitionerRoleFhirClient: practitionerRoleFhirClient,
			PatientFhirClient:          patientFhirClient,
			AppointmentFhirClient:      appointmentFhirClient,
			BundleFhirClient:           bundleFhirClient,
			BookingRecordRepository:    bookingRecordRepository,
			NotificationPublisher:      notificationPublisher,
			SessionService:             sessionService,
			InternalConfig:             internalConfig,
			Log:                        logger,
		}
	})
	return bookingUsecaseInstance
}

func (uc *bookingUsecase) BookSlot(ctx context.Context, sessionData string, request *requests.CreateBookingRequest) (*responses.CreateBooking, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookings.BookSlot called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSlotIDKey, request.SlotID),
	)

	session, err := uc.SessionService.ParseSessionData(ctx, sessionData)
	if err != nil {
		return nil, err
	}
	if session.PersonIdentifier == "" {
		return nil, exceptions.ErrMissingSessionData(nil)
	}
	request.PersonIdentifier = session.PersonIdentifier

	gateKey := fmt.Sprintf(constvars.SlotGateKeyFormat, request.SlotID)
	if !uc.SlotGate.TryAcquire(gateKey) {
		return nil, exceptions.ErrBookingInProgress(nil)
	}
	// Released on every exit path, success included. The gate only protects
	// the in-flight window of this process; durability lives in the backend
	// transaction.
	defer uc.SlotGate.Release(gateKey)

	slot, err := uc.SlotFhirClient.FindSlotByID(ctx, request.SlotID)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, exceptions.ErrSlotNotFound(nil)
	}
	if slot.Status != fhir_dto.SlotStatusFree {
		uc.Log.Info("bookings.BookSlot slot no longer free",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSlotIDKey, slot.ID),
		)
		return nil, exceptions.ErrSlotUnavailable(nil)
	}

	scheduleRef, err := fhir_dto.ParseReference(slot.Schedule.Reference)
	if err != nil || !scheduleRef.IsKind(constvars.ResourceSchedule) {
		return nil, exceptions.ErrBookingInvariant(fmt.Errorf("slot %s carries non-schedule reference %q", slot.ID, slot.Schedule.Reference))
	}

	schedule, err := uc.ScheduleFhirClient.FindScheduleByID(ctx, scheduleRef.ID)
	if err != nil {
		return nil, err
	}
	if schedule == nil {
		return nil, exceptions.ErrScheduleNotFound(nil)
	}
	if len(schedule.Actor) == 0 {
		return nil, exceptions.ErrUnsupportedScheduleActor(fmt.Errorf("schedule %s has no actor", schedule.ID))
	}

	// Only practitioner-owned schedules are bookable here. Location or
	// device actors would need a different resolution chain.
	actorRef, err := fhir_dto.ParseReference(schedule.Actor[0].Reference)
	if err != nil || !actorRef.IsKind(constvars.ResourcePractitioner) {
		return nil, exceptions.ErrUnsupportedScheduleActor(fmt.Errorf("schedule %s first actor is %q", schedule.ID, schedule.Actor[0].Reference))
	}

	roles, err := uc.PractitionerRoleFhirClient.FindPractitionerRoleByPractitionerID(ctx, actorRef.ID)
	if err != nil {
		return nil, err
	}
	if len(roles) == 0 {
		return nil, exceptions.ErrPractitionerRoleNotFound(nil)
	}
	role := roles[0]

	if role.Organization.Reference == "" {
		return nil, exceptions.ErrOrganizationMissing(fmt.Errorf("practitioner role %s has no organization", role.ID))
	}
	organizationRef, err := fhir_dto.ParseReference(role.Organization.Reference)
	if err != nil || !organizationRef.IsKind(constvars.ResourceOrganization) {
		return nil, exceptions.ErrOrganizationMissing(fmt.Errorf("practitioner role %s organization reference %q", role.ID, role.Organization.Reference))
	}

	patients, err := uc.PatientFhirClient.FindPatientByIdentifierAndOrganizationID(ctx, request.PersonIdentifier, organizationRef.ID)
	if err != nil {
		return nil, err
	}
	if len(patients) == 0 {
		return nil, exceptions.ErrPatientNotRegistered(nil)
	}
	patient := patients[0]

	uc.Log.Info("bookings.BookSlot resolution chain complete",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingScheduleIDKey, schedule.ID),
		zap.String(constvars.LoggingPractitionerIDKey, actorRef.ID),
		zap.String(constvars.LoggingOrganizationIDKey, organizationRef.ID),
		zap.String(constvars.LoggingPatientIDKey, patient.ID),
	)

	supersededAppointment, freedSlot, err := uc.findSupersededAppointment(ctx, patient.ID, schedule.ID)
	if err != nil {
		return nil, err
	}

	bundle := uc.buildBookingBundle(slot, schedule, &patient, actorRef.ID, supersededAppointment, freedSlot)

	responseBundle, err := uc.BundleFhirClient.PostTransactionBundle(ctx, bundle)
	if err != nil {
		return nil, exceptions.ErrBookingFailed(err)
	}

	appointmentID := extractCreatedAppointmentID(responseBundle)
	if appointmentID == "" {
		return nil, exceptions.ErrBookingInvariant(fmt.Errorf("transaction response carries no created appointment"))
	}

	uc.Log.Info("bookings.BookSlot transaction committed",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.Int(constvars.LoggingBundleEntriesKey, len(responseBundle.Entry)),
	)

	result := &responses.CreateBooking{
		AppointmentID:  appointmentID,
		SlotID:         slot.ID,
		ScheduleID:     schedule.ID,
		PatientID:      patient.ID,
		PractitionerID: actorRef.ID,
		Start:          slot.Start,
		End:            slot.End,
	}
	if supersededAppointment != nil {
		result.SupersededAppointmentID = supersededAppointment.ID
	}

	uc.recordBooking(ctx, requestID, result, organizationRef.ID, freedSlot)
	uc.notifyBookingConfirmed(ctx, requestID, result)

	return result, nil
}

// findSupersededAppointment looks for an active reservation the patient
// already holds on the schedule. When one exists its slot is fetched too,
// so the transaction can free it in the same atomic unit.
func (uc *bookingUsecase) findSupersededAppointment(ctx context.Context, patientID, scheduleID string) (*fhir_dto.Appointment, *fhir_dto.Slot, error) {
	appointments, err := uc.AppointmentFhirClient.FindBookedAppointmentsByPatientAndSchedule(ctx, patientID, scheduleID)
	if err != nil {
		return nil, nil, err
	}
	if len(appointments) == 0 {
		return nil, nil, nil
	}

	appointment := appointments[0]
	if len(appointment.Slot) == 0 {
		return nil, nil, exceptions.ErrBookingInvariant(fmt.Errorf("booked appointment %s has no slot reference", appointment.ID))
	}
	oldSlotRef, err := fhir_dto.ParseReference(appointment.Slot[0].Reference)
	if err != nil || !oldSlotRef.IsKind(constvars.ResourceSlot) {
		return nil, nil, exceptions.ErrBookingInvariant(fmt.Errorf("appointment %s slot reference %q", appointment.ID, appointment.Slot[0].Reference))
	}

	oldSlot, err := uc.SlotFhirClient.FindSlotByID(ctx, oldSlotRef.ID)
	if err != nil {
		return nil, nil, err
	}
	if oldSlot == nil {
		return nil, nil, exceptions.ErrBookingInvariant(fmt.Errorf("appointment %s references missing slot %s", appointment.ID, oldSlotRef.ID))
	}

	return &appointment, oldSlot, nil
}

// buildBookingBundle assembles the atomic transaction. Entry order when
// superseding: free the old slot, delete the old appointment, create the
// new appointment, mark the target slot busy. A fresh booking carries only
// the last two entries.
func (uc *bookingUsecase) buildBookingBundle(
	slot *fhir_dto.Slot,
	schedule *fhir_dto.Schedule,
	patient *fhir_dto.Patient,
	practitionerID string,
	supersededAppointment *fhir_dto.Appointment,
	freedSlot *fhir_dto.Slot,
) *fhir_dto.TransactionBundle {
	bundle := &fhir_dto.TransactionBundle{
		ResourceType: constvars.ResourceBundle,
		Type:         constvars.FhirBundleTypeTransaction,
	}

	if supersededAppointment != nil && freedSlot != nil {
		freed := *freedSlot
		freed.Status = fhir_dto.SlotStatusFree
		bundle.Entry = append(bundle.Entry,
			fhir_dto.BundleEntry{
				Resource: &freed,
				Request: &fhir_dto.BundleRequest{
					Method: constvars.MethodPut,
					URL:    fmt.Sprintf("%s/%s", constvars.ResourceSlot, freed.ID),
				},
			},
			fhir_dto.BundleEntry{
				Request: &fhir_dto.BundleRequest{
					Method: constvars.MethodDelete,
					URL:    fmt.Sprintf("%s/%s", constvars.ResourceAppointment, supersededAppointment.ID),
				},
			},
		)
	}

	appointment := &fhir_dto.Appointment{
		ResourceType: constvars.ResourceAppointment,
		Status:       constvars.FhirAppointmentStatusBooked,
		Slot:         []fhir_dto.Reference{fhir_dto.NewResourceRef(constvars.ResourceSlot, slot.ID).AsReference()},
		SupportingInformation: []fhir_dto.Reference{
			fhir_dto.NewResourceRef(constvars.ResourceSchedule, schedule.ID).AsReference(),
		},
		Start: slot.Start,
		End:   slot.End,
		Participant: []fhir_dto.AppointmentParticipant{
			{
				Actor:  fhir_dto.NewResourceRef(constvars.ResourcePatient, patient.ID).AsReference(),
				Status: constvars.FhirParticipantStatusAccepted,
			},
			{
				Actor:  fhir_dto.NewResourceRef(constvars.ResourcePractitioner, practitionerID).AsReference(),
				Status: constvars.FhirParticipantStatusAccepted,
			},
		},
	}

	booked := *slot
	booked.Status = fhir_dto.SlotStatusBusy

	bundle.Entry = append(bundle.Entry,
		fhir_dto.BundleEntry{
			FullUrl:  fmt.Sprintf("urn:uuid:%s", uuid.NewString()),
			Resource: appointment,
			Request: &fhir_dto.BundleRequest{
				Method: constvars.MethodPost,
				URL:    constvars.ResourceAppointment,
			},
		},
		fhir_dto.BundleEntry{
			Resource: &booked,
			Request: &fhir_dto.BundleRequest{
				Method: constvars.MethodPut,
				URL:    fmt.Sprintf("%s/%s", constvars.ResourceSlot, booked.ID),
			},
		},
	)

	return bundle
}

func (uc *bookingUsecase) recordBooking(ctx context.Context, requestID string, result *responses.CreateBooking, organizationID string, freedSlot *fhir_dto.Slot) {
	record := &models.BookingRecord{
		ID:                      utils.GenerateMessageID(),
		AppointmentID:           result.AppointmentID,
		SupersededAppointmentID: result.SupersededAppointmentID,
		SlotID:                  result.SlotID,
		ScheduleID:              result.ScheduleID,
		PatientID:               result.PatientID,
		PractitionerID:          result.PractitionerID,
		OrganizationID:          organizationID,
		Start:                   result.Start,
		End:                     result.End,
		CreatedAt:               time.Now().UTC(),
	}
	if freedSlot != nil {
		record.FreedSlotID = freedSlot.ID
	}

	// The backend transaction already committed. A failed audit write is
	// logged and swallowed so the caller still gets the booking.
	_, err := uc.BookingRecordRepository.CreateBookingRecord(ctx, record)
	if err != nil {
		uc.Log.Error("bookings.BookSlot failed persisting booking record",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, result.AppointmentID),
			zap.Error(err),
		)
	}
}

func (uc *bookingUsecase) notifyBookingConfirmed(ctx context.Context, requestID string, result *responses.CreateBooking) {
	message := &contracts.BookingNotificationMessage{
		ID:             utils.GenerateMessageID(),
		AppointmentID:  result.AppointmentID,
		PatientID:      result.PatientID,
		PractitionerID: result.PractitionerID,
		ScheduleID:     result.ScheduleID,
		Start:          result.Start.Format(time.RFC3339),
		End:            result.End.Format(time.RFC3339),
	}

	err := uc.NotificationPublisher.PublishBookingConfirmed(ctx, message)
	if err != nil {
		uc.Log.Error("bookings.BookSlot failed enqueueing booking notification",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, result.AppointmentID),
			zap.Error(err),
		)
	}
}

// extractCreatedAppointmentID scans the transaction-response entries for the
// appointment creation outcome and pulls the new ID from its location.
func extractCreatedAppointmentID(responseBundle *fhir_dto.FHIRBundle) string {
	for _, entry := range responseBundle.Entry {
		if entry.Response == nil {
			continue
		}
		if !strings.HasPrefix(entry.Response.Status, "201") {
			continue
		}
		if id := appointmentIDFromLocation(entry.Response.Location); id != "" {
			return id
		}
	}
	return ""
}

func appointmentIDFromLocation(location string) string {
	marker := constvars.ResourceAppointment + "/"
	idx := strings.Index(location, marker)
	if idx < 0 {
		return ""
	}
	rest := location[idx+len(marker):]
	if slash := strings.Index(rest, "/"); slash >= 0 {
		rest = rest[:slash]
	}
	return rest
}
