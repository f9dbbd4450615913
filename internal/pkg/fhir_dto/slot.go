package fhir_dto

import (
	"fmt"
	"time"
)

// SlotStatus enumerates valid FHIR Slot.status values.
// docs: https://hl7.org/fhir/R4/valueset-slotstatus.html
type SlotStatus string

const (
	SlotStatusBusy           SlotStatus = "busy"
	SlotStatusFree           SlotStatus = "free"
	SlotStatusEnteredInError SlotStatus = "entered-in-error"
)

type Slot struct {
	ResourceType string       `json:"resourceType"`
	ID           string       `json:"id,omitempty"`
	Meta         *Meta        `json:"meta,omitempty"`
	Identifier   []Identifier `json:"identifier,omitempty"`
	Schedule     Reference    `json:"schedule"`
	Status       SlotStatus   `json:"status"`
	Start        time.Time    `json:"start"`
	End          time.Time    `json:"end"`
	Comment      string       `json:"comment,omitempty"`
}

func ParseSlotStatus(s string) (SlotStatus, error) {
	switch SlotStatus(s) {
	case SlotStatusBusy, SlotStatusFree, SlotStatusEnteredInError:
		return SlotStatus(s), nil
	default:
		return "", fmt.Errorf("invalid slot status %q; must be one of: busy, free, entered-in-error", s)
	}
}
