package appointments

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"jadwalin-service/internal/app/contracts"
	"jadwalin-service/internal/pkg/constvars"
	"jadwalin-service/internal/pkg/exceptions"
	"jadwalin-service/internal/pkg/fhir_dto"
	"net/http"
	"net/url"
)

type appointmentFhirClient struct {
	BaseUrl string
}

func NewAppointmentFhirClient(fhirBaseUrl string) contracts.AppointmentFhirClient {
	return &appointmentFhirClient{
		BaseUrl: fmt.Sprintf("%s/%s", fhirBaseUrl, constvars.ResourceAppointment),
	}
}

func (c *appointmentFhirClient) FindBookedAppointmentsByPatientAndSchedule(ctx context.Context, patientID, scheduleID string) ([]fhir_dto.Appointment, error) {
	query := url.Values{}
	query.Set("actor", fmt.Sprintf("%s/%s", constvars.ResourcePatient, patientID))
	query.Set("supporting-info", fmt.Sprintf("%s/%s", constvars.ResourceSchedule, scheduleID))
	query.Set("status", constvars.FhirAppointmentStatusBooked)
	searchUrl := fmt.Sprintf("%s?%s", c.BaseUrl, query.Encode())

	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, searchUrl, nil)
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationFHIRJSON)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusOK {
		bodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, exceptions.ErrSearchFHIRResource(err, constvars.ResourceAppointment)
		}

		var outcome fhir_dto.OperationOutcome
		err = json.Unmarshal(bodyBytes, &outcome)
		if err != nil {
			return nil, exceptions.ErrSearchFHIRResource(err, constvars.ResourceAppointment)
		}

		if len(outcome.Issue) > 0 {
			fhirErrorIssue := fmt.Errorf("%s", outcome.Issue[0].Diagnostics)
			return nil, exceptions.ErrSearchFHIRResource(fhirErrorIssue, constvars.ResourceAppointment)
		}
		return nil, exceptions.ErrSearchFHIRResource(fmt.Errorf("unexpected status %d", resp.StatusCode), constvars.ResourceAppointment)
	}

	searchBundle := new(fhir_dto.FHIRBundle)
	err = json.NewDecoder(resp.Body).Decode(searchBundle)
	if err != nil {
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourceAppointment)
	}

	appointments := make([]fhir_dto.Appointment, 0, len(searchBundle.Entry))
	for _, entry := range searchBundle.Entry {
		var appointment fhir_dto.Appointment
		err = json.Unmarshal(entry.Resource, &appointment)
		if err != nil {
			return nil, exceptions.ErrDecodeResponse(err, constvars.ResourceAppointment)
		}
		// Spark may widen status filters on search; keep only booked ones.
		if appointment.Status != constvars.FhirAppointmentStatusBooked {
			continue
		}
		appointments = append(appointments, appointment)
	}

	return appointments, nil
}
