package bookings

import (
	"context"
	"fmt"
	"jadwalin-service/internal/app/config"
	"jadwalin-service/internal/app/contracts"
	"jadwalin-service/internal/app/models"
	"jadwalin-service/internal/app/services/shared/slotgate"
	"jadwalin-service/internal/pkg/constvars"
	"jadwalin-service/internal/pkg/dto/requests"
	"jadwalin-service/internal/pkg/exceptions"
	"jadwalin-service/internal/pkg/fhir_dto"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockSlotFhirClient struct {
	mock.Mock
}

func (m *MockSlotFhirClient) FindSlotByID(ctx context.Context, slotID string) (*fhir_dto.Slot, error) {
	args := m.Called(ctx, slotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fhir_dto.Slot), args.Error(1)
}

type MockScheduleFhirClient struct {
	mock.Mock
}

func (m *MockScheduleFhirClient) FindScheduleByID(ctx context.Context, scheduleID string) (*fhir_dto.Schedule, error) {
	args := m.Called(ctx, scheduleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fhir_dto.Schedule), args.Error(1)
}

type MockPractitionerRoleFhirClient struct {
	mock.Mock
}

func (m *MockPractitionerRoleFhirClient) FindPractitionerRoleByPractitionerID(ctx context.Context, practitionerID string) ([]fhir_dto.PractitionerRole, error) {
	args := m.Called(ctx, practitionerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fhir_dto.PractitionerRole), args.Error(1)
}

type MockPatientFhirClient struct {
	mock.Mock
}

func (m *MockPatientFhirClient) FindPatientByIdentifierAndOrganizationID(ctx context.Context, personIdentifier, organizationID string) ([]fhir_dto.Patient, error) {
	args := m.Called(ctx, personIdentifier, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fhir_dto.Patient), args.Error(1)
}

type MockAppointmentFhirClient struct {
	mock.Mock
}

func (m *MockAppointmentFhirClient) FindBookedAppointmentsByPatientAndSchedule(ctx context.Context, patientID, scheduleID string) ([]fhir_dto.Appointment, error) {
	args := m.Called(ctx, patientID, scheduleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fhir_dto.Appointment), args.Error(1)
}

type MockBundleFhirClient struct {
	mock.Mock
}

func (m *MockBundleFhirClient) PostTransactionBundle(ctx context.Context, bundle *fhir_dto.TransactionBundle) (*fhir_dto.FHIRBundle, error) {
	args := m.Called(ctx, bundle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fhir_dto.FHIRBundle), args.Error(1)
}

type MockBookingRecordRepository struct {
	mock.Mock
}

func (m *MockBookingRecordRepository) CreateBookingRecord(ctx context.Context, record *models.BookingRecord) (*models.BookingRecord, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingRecord), args.Error(1)
}

func (m *MockBookingRecordRepository) FindByAppointmentID(ctx context.Context, appointmentID string) (*models.BookingRecord, error) {
	args := m.Called(ctx, appointmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingRecord), args.Error(1)
}

type MockBookingNotificationPublisher struct {
	mock.Mock
}

func (m *MockBookingNotificationPublisher) PublishBookingConfirmed(ctx context.Context, message *contracts.BookingNotificationMessage) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

type bookingTestFixture struct {
	usecase       *bookingUsecase
	gate          contracts.SlotGate
	slots         *MockSlotFhirClient
	schedules     *MockScheduleFhirClient
	roles         *MockPractitionerRoleFhirClient
	patients      *MockPatientFhirClient
	appointments  *MockAppointmentFhirClient
	bundles       *MockBundleFhirClient
	records       *MockBookingRecordRepository
	notifications *MockBookingNotificationPublisher
}

type stubSessionService struct {
	session *models.Session
}

func (s *stubSessionService) ParseSessionData(ctx context.Context, sessionData string) (*models.Session, error) {
	if s.session != nil {
		return s.session, nil
	}
	session := new(models.Session)
	if err := json.Unmarshal([]byte(sessionData), session); err != nil {
		return nil, exceptions.ErrSessionInvalid(err)
	}
	return session, nil
}

func (s *stubSessionService) GetSessionData(ctx context.Context, sessionID string) (string, error) {
	return "", nil
}

func newBookingTestFixture() *bookingTestFixture {
	f := &bookingTestFixture{
		gate:          slotgate.NewRegistry(zap.NewNop()),
		slots:         new(MockSlotFhirClient),
		schedules:     new(MockScheduleFhirClient),
		roles:         new(MockPractitionerRoleFhirClient),
		patients:      new(MockPatientFhirClient),
		appointments:  new(MockAppointmentFhirClient),
		bundles:       new(MockBundleFhirClient),
		records:       new(MockBookingRecordRepository),
		notifications: new(MockBookingNotificationPublisher),
	}
	f.usecase = &bookingUsecase{
		SlotGate:                   f.gate,
		SlotFhirClient:             f.slots,
		ScheduleFhirClient:         f.schedules,
		PractitionerRoleFhirClient: f.roles,
		PatientFhirClient:          f.patients,
		AppointmentFhirClient:      f.appointments,
		BundleFhirClient:           f.bundles,
		BookingRecordRepository:    f.records,
		NotificationPublisher:      f.notifications,
		SessionService:             &stubSessionService{},
		InternalConfig:             &config.InternalConfig{},
		Log:                        zap.NewNop(),
	}
	return f
}

func testContext() context.Context {
	return context.WithValue(context.Background(), constvars.CONTEXT_REQUEST_ID_KEY, "JDWL_SVC_test")
}

func testSessionData(personIdentifier string) string {
	data, _ := json.Marshal(models.Session{
		SessionID:        "sess-1",
		UserID:           "user-1",
		PersonIdentifier: personIdentifier,
	})
	return string(data)
}

func freeSlot(id, scheduleID string) *fhir_dto.Slot {
	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	return &fhir_dto.Slot{
		ResourceType: constvars.ResourceSlot,
		ID:           id,
		Schedule:     fhir_dto.Reference{Reference: fmt.Sprintf("%s/%s", constvars.ResourceSchedule, scheduleID)},
		Status:       fhir_dto.SlotStatusFree,
		Start:        start,
		End:          start.Add(30 * time.Minute),
	}
}

func practitionerSchedule(id, practitionerID string) *fhir_dto.Schedule {
	return &fhir_dto.Schedule{
		ResourceType: constvars.ResourceSchedule,
		ID:           id,
		Active:       true,
		Actor: []fhir_dto.Reference{
			{Reference: fmt.Sprintf("%s/%s", constvars.ResourcePractitioner, practitionerID)},
		},
	}
}

func transactionResponse(appointmentID string, extraEntries int) *fhir_dto.FHIRBundle {
	entries := make([]fhir_dto.FHIRBundleEntry, 0, extraEntries+2)
	for i := 0; i < extraEntries; i++ {
		entries = append(entries, fhir_dto.FHIRBundleEntry{
			Response: &fhir_dto.BundleResponse{Status: "200 OK"},
		})
	}
	entries = append(entries,
		fhir_dto.FHIRBundleEntry{
			Response: &fhir_dto.BundleResponse{
				Status:   "201 Created",
				Location: fmt.Sprintf("%s/%s/_history/1", constvars.ResourceAppointment, appointmentID),
			},
		},
		fhir_dto.FHIRBundleEntry{
			Response: &fhir_dto.BundleResponse{Status: "200 OK"},
		},
	)
	return &fhir_dto.FHIRBundle{
		ResourceType: constvars.ResourceBundle,
		Type:         constvars.FhirBundleTypeTransactionResponse,
		Entry:        entries,
	}
}

func (f *bookingTestFixture) stubResolutionChain() {
	f.schedules.On("FindScheduleByID", mock.Anything, "sched-1").Return(practitionerSchedule("sched-1", "prac-1"), nil)
	f.roles.On("FindPractitionerRoleByPractitionerID", mock.Anything, "prac-1").Return([]fhir_dto.PractitionerRole{
		{
			ID:           "role-1",
			Practitioner: fhir_dto.Reference{Reference: "Practitioner/prac-1"},
			Organization: fhir_dto.Reference{Reference: "Organization/org-1"},
		},
	}, nil)
	f.patients.On("FindPatientByIdentifierAndOrganizationID", mock.Anything, "PID-123", "org-1").Return([]fhir_dto.Patient{
		{ID: "patient-1"},
	}, nil)
}

func TestBookSlot_FreshBooking(t *testing.T) {
	f := newBookingTestFixture()

	f.slots.On("FindSlotByID", mock.Anything, "slot-1").Return(freeSlot("slot-1", "sched-1"), nil)
	f.stubResolutionChain()
	f.appointments.On("FindBookedAppointmentsByPatientAndSchedule", mock.Anything, "patient-1", "sched-1").Return([]fhir_dto.Appointment{}, nil)

	var submitted *fhir_dto.TransactionBundle
	f.bundles.On("PostTransactionBundle", mock.Anything, mock.AnythingOfType("*fhir_dto.TransactionBundle")).
		Run(func(args mock.Arguments) {
			submitted = args.Get(1).(*fhir_dto.TransactionBundle)
		}).
		Return(transactionResponse("appt-new", 0), nil)
	f.records.On("CreateBookingRecord", mock.Anything, mock.AnythingOfType("*models.BookingRecord")).Return(&models.BookingRecord{}, nil)
	f.notifications.On("PublishBookingConfirmed", mock.Anything, mock.AnythingOfType("*contracts.BookingNotificationMessage")).Return(nil)

	response, err := f.usecase.BookSlot(testContext(), testSessionData("PID-123"), &requests.CreateBookingRequest{SlotID: "slot-1"})

	assert.NoError(t, err)
	assert.Equal(t, "appt-new", response.AppointmentID)
	assert.Equal(t, "slot-1", response.SlotID)
	assert.Equal(t, "sched-1", response.ScheduleID)
	assert.Equal(t, "patient-1", response.PatientID)
	assert.Equal(t, "prac-1", response.PractitionerID)
	assert.Empty(t, response.SupersededAppointmentID)

	assert.Len(t, submitted.Entry, 2)
	assert.Equal(t, constvars.MethodPost, submitted.Entry[0].Request.Method)
	assert.Equal(t, constvars.ResourceAppointment, submitted.Entry[0].Request.URL)
	assert.Equal(t, constvars.MethodPut, submitted.Entry[1].Request.Method)
	assert.Equal(t, "Slot/slot-1", submitted.Entry[1].Request.URL)

	bookedSlot := submitted.Entry[1].Resource.(*fhir_dto.Slot)
	assert.Equal(t, fhir_dto.SlotStatusBusy, bookedSlot.Status)

	appointment := submitted.Entry[0].Resource.(*fhir_dto.Appointment)
	assert.Equal(t, constvars.FhirAppointmentStatusBooked, appointment.Status)
	assert.Equal(t, "Slot/slot-1", appointment.Slot[0].Reference)
	assert.Equal(t, "Schedule/sched-1", appointment.SupportingInformation[0].Reference)
	assert.Len(t, appointment.Participant, 2)

	// Gate must be released after a successful booking.
	assert.True(t, f.gate.TryAcquire(fmt.Sprintf(constvars.SlotGateKeyFormat, "slot-1")))
	f.records.AssertExpectations(t)
	f.notifications.AssertExpectations(t)
}

func TestBookSlot_SupersedesExistingAppointment(t *testing.T) {
	f := newBookingTestFixture()

	f.slots.On("FindSlotByID", mock.Anything, "slot-new").Return(freeSlot("slot-new", "sched-1"), nil)
	f.stubResolutionChain()

	oldSlot := freeSlot("slot-old", "sched-1")
	oldSlot.Status = fhir_dto.SlotStatusBusy
	f.slots.On("FindSlotByID", mock.Anything, "slot-old").Return(oldSlot, nil)

	f.appointments.On("FindBookedAppointmentsByPatientAndSchedule", mock.Anything, "patient-1", "sched-1").Return([]fhir_dto.Appointment{
		{
			ID:     "appt-old",
			Status: constvars.FhirAppointmentStatusBooked,
			Slot:   []fhir_dto.Reference{{Reference: "Slot/slot-old"}},
		},
	}, nil)

	var submitted *fhir_dto.TransactionBundle
	f.bundles.On("PostTransactionBundle", mock.Anything, mock.AnythingOfType("*fhir_dto.TransactionBundle")).
		Run(func(args mock.Arguments) {
			submitted = args.Get(1).(*fhir_dto.TransactionBundle)
		}).
		Return(transactionResponse("appt-new", 2), nil)
	f.records.On("CreateBookingRecord", mock.Anything, mock.AnythingOfType("*models.BookingRecord")).Return(&models.BookingRecord{}, nil)
	f.notifications.On("PublishBookingConfirmed", mock.Anything, mock.AnythingOfType("*contracts.BookingNotificationMessage")).Return(nil)

	response, err := f.usecase.BookSlot(testContext(), testSessionData("PID-123"), &requests.CreateBookingRequest{SlotID: "slot-new"})

	assert.NoError(t, err)
	assert.Equal(t, "appt-new", response.AppointmentID)
	assert.Equal(t, "appt-old", response.SupersededAppointmentID)

	assert.Len(t, submitted.Entry, 4)
	assert.Equal(t, constvars.MethodPut, submitted.Entry[0].Request.Method)
	assert.Equal(t, "Slot/slot-old", submitted.Entry[0].Request.URL)
	assert.Equal(t, constvars.MethodDelete, submitted.Entry[1].Request.Method)
	assert.Equal(t, "Appointment/appt-old", submitted.Entry[1].Request.URL)
	assert.Equal(t, constvars.MethodPost, submitted.Entry[2].Request.Method)
	assert.Equal(t, constvars.MethodPut, submitted.Entry[3].Request.Method)
	assert.Equal(t, "Slot/slot-new", submitted.Entry[3].Request.URL)

	freedSlot := submitted.Entry[0].Resource.(*fhir_dto.Slot)
	assert.Equal(t, fhir_dto.SlotStatusFree, freedSlot.Status)
}

func TestBookSlot_SlotNotFound(t *testing.T) {
	f := newBookingTestFixture()

	f.slots.On("FindSlotByID", mock.Anything, "slot-missing").Return(nil, nil)

	response, err := f.usecase.BookSlot(testContext(), testSessionData("PID-123"), &requests.CreateBookingRequest{SlotID: "slot-missing"})

	assert.Nil(t, response)
	var customErr *exceptions.CustomError
	assert.ErrorAs(t, err, &customErr)
	assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)

	f.bundles.AssertNotCalled(t, "PostTransactionBundle", mock.Anything, mock.Anything)
	assert.True(t, f.gate.TryAcquire(fmt.Sprintf(constvars.SlotGateKeyFormat, "slot-missing")))
}

func TestBookSlot_SlotNoLongerFree(t *testing.T) {
	f := newBookingTestFixture()

	busySlot := freeSlot("slot-1", "sched-1")
	busySlot.Status = fhir_dto.SlotStatusBusy
	f.slots.On("FindSlotByID", mock.Anything, "slot-1").Return(busySlot, nil)

	response, err := f.usecase.BookSlot(testContext(), testSessionData("PID-123"), &requests.CreateBookingRequest{SlotID: "slot-1"})

	assert.Nil(t, response)
	var customErr *exceptions.CustomError
	assert.ErrorAs(t, err, &customErr)
	assert.Equal(t, constvars.StatusConflict, customErr.StatusCode)
	f.bundles.AssertNotCalled(t, "PostTransactionBundle", mock.Anything, mock.Anything)
}

func TestBookSlot_GateAlreadyHeld(t *testing.T) {
	f := newBookingTestFixture()

	gateKey := fmt.Sprintf(constvars.SlotGateKeyFormat, "slot-1")
	assert.True(t, f.gate.TryAcquire(gateKey))

	response, err := f.usecase.BookSlot(testContext(), testSessionData("PID-123"), &requests.CreateBookingRequest{SlotID: "slot-1"})

	assert.Nil(t, response)
	var customErr *exceptions.CustomError
	assert.ErrorAs(t, err, &customErr)
	assert.Equal(t, constvars.StatusConflict, customErr.StatusCode)
	f.slots.AssertNotCalled(t, "FindSlotByID", mock.Anything, mock.Anything)
}

func TestBookSlot_TransactionRejected(t *testing.T) {
	f := newBookingTestFixture()

	f.slots.On("FindSlotByID", mock.Anything, "slot-1").Return(freeSlot("slot-1", "sched-1"), nil)
	f.stubResolutionChain()
	f.appointments.On("FindBookedAppointmentsByPatientAndSchedule", mock.Anything, "patient-1", "sched-1").Return([]fhir_dto.Appointment{}, nil)
	f.bundles.On("PostTransactionBundle", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("409 slot already busy"))

	response, err := f.usecase.BookSlot(testContext(), testSessionData("PID-123"), &requests.CreateBookingRequest{SlotID: "slot-1"})

	assert.Nil(t, response)
	var customErr *exceptions.CustomError
	assert.ErrorAs(t, err, &customErr)
	assert.Equal(t, constvars.StatusBadGateway, customErr.StatusCode)

	f.records.AssertNotCalled(t, "CreateBookingRecord", mock.Anything, mock.Anything)
	assert.True(t, f.gate.TryAcquire(fmt.Sprintf(constvars.SlotGateKeyFormat, "slot-1")))
}

func TestBookSlot_UnsupportedScheduleActor(t *testing.T) {
	f := newBookingTestFixture()

	f.slots.On("FindSlotByID", mock.Anything, "slot-1").Return(freeSlot("slot-1", "sched-1"), nil)
	f.schedules.On("FindScheduleByID", mock.Anything, "sched-1").Return(&fhir_dto.Schedule{
		ID:    "sched-1",
		Actor: []fhir_dto.Reference{{Reference: "Location/loc-1"}},
	}, nil)

	response, err := f.usecase.BookSlot(testContext(), testSessionData("PID-123"), &requests.CreateBookingRequest{SlotID: "slot-1"})

	assert.Nil(t, response)
	var customErr *exceptions.CustomError
	assert.ErrorAs(t, err, &customErr)
	assert.Equal(t, constvars.StatusInternalServerError, customErr.StatusCode)
	f.roles.AssertNotCalled(t, "FindPractitionerRoleByPractitionerID", mock.Anything, mock.Anything)
}

func TestBookSlot_PatientNotRegistered(t *testing.T) {
	f := newBookingTestFixture()

	f.slots.On("FindSlotByID", mock.Anything, "slot-1").Return(freeSlot("slot-1", "sched-1"), nil)
	f.schedules.On("FindScheduleByID", mock.Anything, "sched-1").Return(practitionerSchedule("sched-1", "prac-1"), nil)
	f.roles.On("FindPractitionerRoleByPractitionerID", mock.Anything, "prac-1").Return([]fhir_dto.PractitionerRole{
		{
			ID:           "role-1",
			Organization: fhir_dto.Reference{Reference: "Organization/org-1"},
		},
	}, nil)
	f.patients.On("FindPatientByIdentifierAndOrganizationID", mock.Anything, "PID-123", "org-1").Return([]fhir_dto.Patient{}, nil)

	response, err := f.usecase.BookSlot(testContext(), testSessionData("PID-123"), &requests.CreateBookingRequest{SlotID: "slot-1"})

	assert.Nil(t, response)
	var customErr *exceptions.CustomError
	assert.ErrorAs(t, err, &customErr)
	assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
	f.appointments.AssertNotCalled(t, "FindBookedAppointmentsByPatientAndSchedule", mock.Anything, mock.Anything, mock.Anything)
}

func TestBookSlot_SupersededAppointmentWithoutSlot(t *testing.T) {
	f := newBookingTestFixture()

	f.slots.On("FindSlotByID", mock.Anything, "slot-1").Return(freeSlot("slot-1", "sched-1"), nil)
	f.stubResolutionChain()
	f.appointments.On("FindBookedAppointmentsByPatientAndSchedule", mock.Anything, "patient-1", "sched-1").Return([]fhir_dto.Appointment{
		{ID: "appt-broken", Status: constvars.FhirAppointmentStatusBooked},
	}, nil)

	response, err := f.usecase.BookSlot(testContext(), testSessionData("PID-123"), &requests.CreateBookingRequest{SlotID: "slot-1"})

	assert.Nil(t, response)
	var customErr *exceptions.CustomError
	assert.ErrorAs(t, err, &customErr)
	assert.Equal(t, constvars.StatusInternalServerError, customErr.StatusCode)
	f.bundles.AssertNotCalled(t, "PostTransactionBundle", mock.Anything, mock.Anything)
}

func TestBookSlot_NotificationFailureDoesNotFailBooking(t *testing.T) {
	f := newBookingTestFixture()

	f.slots.On("FindSlotByID", mock.Anything, "slot-1").Return(freeSlot("slot-1", "sched-1"), nil)
	f.stubResolutionChain()
	f.appointments.On("FindBookedAppointmentsByPatientAndSchedule", mock.Anything, "patient-1", "sched-1").Return([]fhir_dto.Appointment{}, nil)
	f.bundles.On("PostTransactionBundle", mock.Anything, mock.Anything).Return(transactionResponse("appt-new", 0), nil)
	f.records.On("CreateBookingRecord", mock.Anything, mock.Anything).Return(&models.BookingRecord{}, nil)
	f.notifications.On("PublishBookingConfirmed", mock.Anything, mock.Anything).Return(fmt.Errorf("broker unavailable"))

	response, err := f.usecase.BookSlot(testContext(), testSessionData("PID-123"), &requests.CreateBookingRequest{SlotID: "slot-1"})

	assert.NoError(t, err)
	assert.Equal(t, "appt-new", response.AppointmentID)
}

func TestExtractCreatedAppointmentID(t *testing.T) {
	t.Run("history suffix", func(t *testing.T) {
		bundle := transactionResponse("appt-42", 1)
		assert.Equal(t, "appt-42", extractCreatedAppointmentID(bundle))
	})

	t.Run("absolute location", func(t *testing.T) {
		bundle := &fhir_dto.FHIRBundle{
			Entry: []fhir_dto.FHIRBundleEntry{
				{Response: &fhir_dto.BundleResponse{Status: "201 Created", Location: "http://spark/fhir/Appointment/abc"}},
			},
		}
		assert.Equal(t, "abc", extractCreatedAppointmentID(bundle))
	})

	t.Run("no creation entry", func(t *testing.T) {
		bundle := &fhir_dto.FHIRBundle{
			Entry: []fhir_dto.FHIRBundleEntry{
				{Response: &fhir_dto.BundleResponse{Status: "200 OK"}},
			},
		}
		assert.Equal(t, "", extractCreatedAppointmentID(bundle))
	})
}
