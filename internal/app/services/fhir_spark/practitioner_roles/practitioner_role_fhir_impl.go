package practitioner_roles

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

type practitionerRoleFhirClient struct {
	BaseUrl string
}

func NewPractitionerRoleFhirClient(fhirBaseUrl string) contracts.PractitionerRoleFhirClient {
	return &practitionerRoleFhirClient{
		BaseUrl: fmt.Sprintf("%s/%s", fhirBaseUrl, constvars.ResourcePractitionerRole),
	}
}

func (c *practitionerRoleFhirClient) FindPractitionerRoleByPractitionerID(ctx context.Context, practitionerID string) ([]fhir_dto.PractitionerRole, error) {
	query := url.Values{}
	query.Set("practitioner", fmt.Sprintf("%s/%s", constvars.ResourcePractitioner, practitionerID))
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
			return nil, exceptions.ErrSearchFHIRResource(err, constvars.ResourcePractitionerRole)
		}

		var outcome fhir_dto.OperationOutcome
		err = json.Unmarshal(bodyBytes, &outcome)
		if err != nil {
			return nil, exceptions.ErrSearchFHIRResource(err, constvars.ResourcePractitionerRole)
		}

		if len(outcome.Issue) > 0 {
			fhirErrorIssue := fmt.Errorf("%s", outcome.Issue[0].Diagnostics)
			return nil, exceptions.ErrSearchFHIRResource(fhirErrorIssue, constvars.ResourcePractitionerRole)
		}
		return nil, exceptions.ErrSearchFHIRResource(fmt.Errorf("unexpected status %d", resp.StatusCode), constvars.ResourcePractitionerRole)
	}

	searchBundle := new(fhir_dto.FHIRBundle)
	err = json.NewDecoder(resp.Body).Decode(searchBundle)
	if err != nil {
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourcePractitionerRole)
	}

	roles := make([]fhir_dto.PractitionerRole, 0, len(searchBundle.Entry))
	for _, entry := range searchBundle.Entry {
		var role fhir_dto.PractitionerRole
		err = json.Unmarshal(entry.Resource, &role)
		if err != nil {
			return nil, exceptions.ErrDecodeResponse(err, constvars.ResourcePractitionerRole)
		}
		roles = append(roles, role)
	}

	return roles, nil
}
