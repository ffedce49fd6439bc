package devices

import (
	"sync"

	"github.com/mobile-next/touchemu/utils"
)

// ForwarderRegistry tracks device forwarders so their sessions can be
// released on shutdown.
type ForwarderRegistry struct {
	mu         sync.RWMutex
	forwarders map[string]*TouchForwarder
}

func NewForwarderRegistry() *ForwarderRegistry {
	return &ForwarderRegistry{
		forwarders: make(map[string]*TouchForwarder),
	}
}

// Register adds a forwarder under the session it serves.
func (r *ForwarderRegistry) Register(sessionID string, f *TouchForwarder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.forwarders[sessionID] = f
}

// Release cleans up and forgets the forwarder of one session.
func (r *ForwarderRegistry) Release(sessionID string) {
	r.mu.Lock()
	f, ok := r.forwarders[sessionID]
	delete(r.forwarders, sessionID)
	r.mu.Unlock()

	if !ok {
		return
	}
	if err := f.Cleanup(); err != nil {
		utils.Verbose("Error cleaning up forwarder for session %s: %v", sessionID, err)
	}
}

func (r *ForwarderRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.forwarders)
}

// CleanupAll gracefully cleans up all registered forwarders
func (r *ForwarderRegistry) CleanupAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.forwarders) == 0 {
		return
	}

	for id, f := range r.forwarders {
		if err := f.Cleanup(); err != nil {
			utils.Verbose("Error cleaning up forwarder for session %s: %v", id, err)
		}
	}

	// clear the registry
	r.forwarders = make(map[string]*TouchForwarder)
}
