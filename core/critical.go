package core

import "errors"

// ErrNotInCriticalSection is the panic value for a slot access made with a
// token whose critical section has already ended.
var ErrNotInCriticalSection = errors.New("slot accessed outside critical section")

var (
	// csDepth is non-zero while a critical section is open. Only touched
	// with interrupts masked.
	csDepth uint8

	// csEntries counts critical sections entered since boot.
	csEntries uint32
)

// CS is proof that interrupts are masked. Slots only hand out their value
// to a caller holding a live CS.
type CS struct {
	state State
	live  bool
}

// Enter masks interrupts and opens a critical section. The caller must
// defer cs.Exit() right away:
//
//	cs := core.Enter()
//	defer cs.Exit()
//
// Critical sections are never nested in this firmware.
func Enter() CS {
	state := disableInterrupts()
	csDepth++
	csEntries++
	return CS{state: state, live: true}
}

// Exit closes the critical section and restores the interrupt mask that
// was in effect before Enter. Calling Exit twice is a no-op.
func (cs *CS) Exit() {
	if !cs.live {
		return
	}
	cs.live = false
	csDepth--
	restoreInterrupts(cs.state)
}

// check panics if the token is stale. A stale token means a handle could be
// touched while the tick interrupt is able to run.
func (cs *CS) check() {
	if cs == nil || !cs.live || csDepth == 0 {
		panic(ErrNotInCriticalSection)
	}
}

// Free runs fn inside a critical section. The mask is restored on every
// exit path, including a panic in fn.
func Free(fn func(cs *CS)) {
	cs := Enter()
	defer cs.Exit()
	fn(&cs)
}

// CriticalSections returns the number of critical sections entered since
// boot.
func CriticalSections() uint32 {
	state := disableInterrupts()
	n := csEntries
	restoreInterrupts(state)
	return n
}
