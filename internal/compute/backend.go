package compute

import (
	"sync"

	"github.com/san-kum/gravsim/internal/dynamo"
)

// Backend evaluates pairwise gravity for a whole system. Implementations
// zero each acceleration before summing and skip pairs closer than epsilon.
type Backend interface {
	Name() string
	Available() bool
	Accelerate(bodies []dynamo.Body, g, epsilon, softening float64)
	Cleanup()
}

var (
	mu            sync.RWMutex
	activeBackend Backend = NewCPUBackend()
)

// SetBackend replaces the shared backend and releases the previous one.
func SetBackend(b Backend) {
	mu.Lock()
	defer mu.Unlock()
	if activeBackend != nil && activeBackend != b {
		activeBackend.Cleanup()
	}
	activeBackend = b
}

// GetBackend returns the shared backend, or nil when it cannot run here.
func GetBackend() Backend {
	mu.RLock()
	defer mu.RUnlock()
	if activeBackend == nil || !activeBackend.Available() {
		return nil
	}
	return activeBackend
}
