package fhir_dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseReference(t *testing.T) {
	t.Run("valid reference", func(t *testing.T) {
		ref, err := ParseReference("Schedule/sched-1")
		assert.NoError(t, err)
		assert.Equal(t, "Schedule", ref.Kind)
		assert.Equal(t, "sched-1", ref.ID)
		assert.True(t, ref.IsKind("Schedule"))
		assert.False(t, ref.IsKind("Slot"))
	})

	t.Run("id containing slashes keeps remainder", func(t *testing.T) {
		ref, err := ParseReference("Appointment/abc/_history/1")
		assert.NoError(t, err)
		assert.Equal(t, "Appointment", ref.Kind)
		assert.Equal(t, "abc/_history/1", ref.ID)
	})

	t.Run("malformed references", func(t *testing.T) {
		for _, raw := range []string{"", "Schedule", "Schedule/", "/sched-1"} {
			_, err := ParseReference(raw)
			assert.Error(t, err, raw)
		}
	})
}

func TestResourceRefRoundTrip(t *testing.T) {
	ref := NewResourceRef("Patient", "p-1")
	assert.Equal(t, "Patient/p-1", ref.String())
	assert.Equal(t, "Patient/p-1", ref.AsReference().Reference)
}
