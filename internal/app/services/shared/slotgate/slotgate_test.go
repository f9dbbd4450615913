package slotgate

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRegistry_TryAcquireAndRelease(t *testing.T) {
	gate := NewRegistry(zap.NewNop())

	assert.True(t, gate.TryAcquire("booking:slot:a"))
	assert.False(t, gate.TryAcquire("booking:slot:a"))

	// A different key is independent.
	assert.True(t, gate.TryAcquire("booking:slot:b"))

	gate.Release("booking:slot:a")
	assert.True(t, gate.TryAcquire("booking:slot:a"))
}

func TestRegistry_ReleaseUnheldKeyIsNoop(t *testing.T) {
	gate := NewRegistry(zap.NewNop())

	gate.Release("booking:slot:never-held")
	assert.True(t, gate.TryAcquire("booking:slot:never-held"))
}

func TestRegistry_ConcurrentAcquireAdmitsExactlyOne(t *testing.T) {
	gate := NewRegistry(zap.NewNop())

	const attempts = 64
	var wg sync.WaitGroup
	results := make(chan bool, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- gate.TryAcquire("booking:slot:contended")
		}()
	}
	wg.Wait()
	close(results)

	acquired := 0
	for ok := range results {
		if ok {
			acquired++
		}
	}
	assert.Equal(t, 1, acquired)
}
