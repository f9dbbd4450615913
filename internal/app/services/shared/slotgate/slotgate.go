package slotgate

import (
	"jadwalin-service/internal/app/contracts"
	"jadwalin-service/internal/pkg/constvars"
	"sync"

	"go.uber.org/zap"
)

// Registry is an in-process, per-key mutual exclusion gate. It rejects a
// second acquisition of a held key instead of queuing it, and it holds no
// TTL: a key stays held until Release is called. It deliberately gives no
// cross-instance exclusion; that part of the double-booking guarantee lives
// in the backend's atomic transaction plus the conflict-detection read.
type Registry struct {
	mu   sync.Mutex
	held map[string]struct{}
	Log  *zap.Logger
}

func NewRegistry(logger *zap.Logger) contracts.SlotGate {
	return &Registry{
		held: make(map[string]struct{}),
		Log:  logger,
	}
}

func (g *Registry) TryAcquire(slotID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.held[slotID]; exists {
		g.Log.Info("slotgate.TryAcquire rejected, key already held",
			zap.String(constvars.LoggingSlotIDKey, slotID),
		)
		return false
	}
	g.held[slotID] = struct{}{}
	return true
}

func (g *Registry) Release(slotID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.held, slotID)
}
