package bundles

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"jadwalin-service/internal/app/contracts"
	"jadwalin-service/internal/pkg/constvars"
	"jadwalin-service/internal/pkg/exceptions"
	"jadwalin-service/internal/pkg/fhir_dto"
	"net/http"

	"go.uber.org/zap"
)

type bundleFhirClient struct {
	BaseUrl string
	Log     *zap.Logger
}

func NewBundleFhirClient(fhirBaseUrl string, logger *zap.Logger) contracts.BundleFhirClient {
	return &bundleFhirClient{
		BaseUrl: fhirBaseUrl,
		Log:     logger,
	}
}

func (c *bundleFhirClient) PostTransactionBundle(ctx context.Context, bundle *fhir_dto.TransactionBundle) (*fhir_dto.FHIRBundle, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("bundles.PostTransactionBundle called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingBundleEntriesKey, len(bundle.Entry)),
	)

	body, err := json.Marshal(bundle)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, c.BaseUrl, bytes.NewBuffer(body))
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

	if resp.StatusCode != constvars.StatusOK && resp.StatusCode != constvars.StatusCreated {
		bodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, exceptions.ErrGetFHIRResource(err, constvars.ResourceBundle)
		}

		var outcome fhir_dto.OperationOutcome
		err = json.Unmarshal(bodyBytes, &outcome)
		if err != nil {
			return nil, exceptions.ErrGetFHIRResource(err, constvars.ResourceBundle)
		}

		if len(outcome.Issue) > 0 {
			fhirErrorIssue := fmt.Errorf("%s", outcome.Issue[0].Diagnostics)
			c.Log.Error("bundles.PostTransactionBundle rejected by backend",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(fhirErrorIssue),
			)
			return nil, exceptions.ErrGetFHIRResource(fhirErrorIssue, constvars.ResourceBundle)
		}
		return nil, exceptions.ErrGetFHIRResource(fmt.Errorf("unexpected status %d", resp.StatusCode), constvars.ResourceBundle)
	}

	responseBundle := new(fhir_dto.FHIRBundle)
	err = json.NewDecoder(resp.Body).Decode(responseBundle)
	if err != nil {
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourceBundle)
	}

	c.Log.Info("bundles.PostTransactionBundle succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingBundleEntriesKey, len(responseBundle.Entry)),
	)
	return responseBundle, nil
}
