package testutil

import (
	"sync"

	"github.com/reglet-dev/nu-plugin-lua/domain/ports"
)

// FakeHost records the calls a command makes back into the host shell.
type FakeHost struct {
	Err        error
	mu         sync.Mutex
	gcDisabled bool
	gcCalls    int
}

var _ ports.Host = (*FakeHost)(nil)

// SetGCDisabled implements ports.Host.
func (h *FakeHost) SetGCDisabled(disabled bool) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.gcCalls++
	if h.Err != nil {
		return h.Err
	}
	h.gcDisabled = disabled
	return nil
}

// GCDisabled reports the last value set through SetGCDisabled.
func (h *FakeHost) GCDisabled() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.gcDisabled
}

// GCCalls reports how many times SetGCDisabled was called.
func (h *FakeHost) GCCalls() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.gcCalls
}
