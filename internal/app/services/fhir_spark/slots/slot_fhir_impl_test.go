package slots

import (
	"context"
	"encoding/json"
	"fmt"
	"jadwalin-service/internal/pkg/fhir_dto"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
)

func TestFindSlotByID(t *testing.T) {
	slotID := gofakeit.UUID()
	scheduleID := gofakeit.UUID()
	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	t.Run("slot exists", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, fmt.Sprintf("/Slot/%s", slotID), r.URL.Path)
			json.NewEncoder(w).Encode(fhir_dto.Slot{
				ResourceType: "Slot",
				ID:           slotID,
				Schedule:     fhir_dto.Reference{Reference: "Schedule/" + scheduleID},
				Status:       fhir_dto.SlotStatusFree,
				Start:        start,
				End:          start.Add(30 * time.Minute),
			})
		}))
		defer server.Close()

		client := NewSlotFhirClient(server.URL)
		slot, err := client.FindSlotByID(context.Background(), slotID)

		assert.NoError(t, err)
		assert.Equal(t, slotID, slot.ID)
		assert.Equal(t, fhir_dto.SlotStatusFree, slot.Status)
		assert.Equal(t, "Schedule/"+scheduleID, slot.Schedule.Reference)
	})

	t.Run("slot missing returns nil without error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(fhir_dto.OperationOutcome{ResourceType: "OperationOutcome"})
		}))
		defer server.Close()

		client := NewSlotFhirClient(server.URL)
		slot, err := client.FindSlotByID(context.Background(), slotID)

		assert.NoError(t, err)
		assert.Nil(t, slot)
	})

	t.Run("deleted slot returns nil without error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusGone)
		}))
		defer server.Close()

		client := NewSlotFhirClient(server.URL)
		slot, err := client.FindSlotByID(context.Background(), slotID)

		assert.NoError(t, err)
		assert.Nil(t, slot)
	})

	t.Run("backend failure surfaces diagnostics", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(fhir_dto.OperationOutcome{
				ResourceType: "OperationOutcome",
				Issue: []fhir_dto.OperationOutcomeIssue{
					{Severity: "error", Code: "exception", Diagnostics: "storage unavailable"},
				},
			})
		}))
		defer server.Close()

		client := NewSlotFhirClient(server.URL)
		slot, err := client.FindSlotByID(context.Background(), slotID)

		assert.Error(t, err)
		assert.Nil(t, slot)
	})
}
