//go:build !tinygo

package core

import "sync"

// State is a placeholder for interrupt state on regular Go
type State uintptr

// hostMask stands in for the global interrupt mask on regular Go. The
// simulated tick interrupt runs on its own goroutine, so masking has to
// exclude it for real.
var hostMask sync.Mutex

// disableInterrupts takes the host mask. Critical sections must not nest.
func disableInterrupts() State {
	hostMask.Lock()
	return 0
}

// restoreInterrupts releases the host mask
func restoreInterrupts(state State) {
	hostMask.Unlock()
}
