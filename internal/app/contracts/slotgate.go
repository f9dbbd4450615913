package contracts

// SlotGate serializes booking attempts per slot id within this process.
// Acquisition is non-blocking: a second caller for a held key is rejected
// immediately, never queued. The gate gives no cross-instance guarantee;
// the durable no-double-booking guarantee comes from the backend's atomic
// transaction plus the conflict-detection read.
type SlotGate interface {
	TryAcquire(slotID string) bool
	Release(slotID string)
}
