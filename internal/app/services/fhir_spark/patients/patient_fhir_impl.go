package patients

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

type patientFhirClient struct {
	BaseUrl string
}

func NewPatientFhirClient(fhirBaseUrl string) contracts.PatientFhirClient {
	return &patientFhirClient{
		BaseUrl: fmt.Sprintf("%s/%s", fhirBaseUrl, constvars.ResourcePatient),
	}
}

func (c *patientFhirClient) FindPatientByIdentifierAndOrganizationID(ctx context.Context, personIdentifier, organizationID string) ([]fhir_dto.Patient, error) {
	query := url.Values{}
	query.Set("identifier", personIdentifier)
	query.Set("organization", fmt.Sprintf("%s/%s", constvars.ResourceOrganization, organizationID))
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
			return nil, exceptions.ErrSearchFHIRResource(err, constvars.ResourcePatient)
		}

		var outcome fhir_dto.OperationOutcome
		err = json.Unmarshal(bodyBytes, &outcome)
		if err != nil {
			return nil, exceptions.ErrSearchFHIRResource(err, constvars.ResourcePatient)
		}

		if len(outcome.Issue) > 0 {
			fhirErrorIssue := fmt.Errorf("%s", outcome.Issue[0].Diagnostics)
			return nil, exceptions.ErrSearchFHIRResource(fhirErrorIssue, constvars.ResourcePatient)
		}
		return nil, exceptions.ErrSearchFHIRResource(fmt.Errorf("unexpected status %d", resp.StatusCode), constvars.ResourcePatient)
	}

	searchBundle := new(fhir_dto.FHIRBundle)
	err = json.NewDecoder(resp.Body).Decode(searchBundle)
	if err != nil {
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourcePatient)
	}

	patients := make([]fhir_dto.Patient, 0, len(searchBundle.Entry))
	for _, entry := range searchBundle.Entry {
		var patient fhir_dto.Patient
		err = json.Unmarshal(entry.Resource, &patient)
		if err != nil {
			return nil, exceptions.ErrDecodeResponse(err, constvars.ResourcePatient)
		}
		patients = append(patients, patient)
	}

	return patients, nil
}
