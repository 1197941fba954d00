package core

import "errors"

var (
	// ErrHandlerRegistered is returned by a second RegisterTickHandler.
	ErrHandlerRegistered = errors.New("tick handler already registered")

	// ErrUnsupported is returned for operations the firmware deliberately
	// does not offer, such as removing the tick handler.
	ErrUnsupported = errors.New("unsupported")
)

// Handler is an interrupt service routine: no arguments, no results.
type Handler func()

// tickHandler is set once from thread mode before the interrupt line is
// enabled, and only read afterwards.
var tickHandler Handler

// RegisterTickHandler installs the routine run on every RTC tick. It can be
// called once.
func RegisterTickHandler(h Handler) error {
	if h == nil {
		return ErrUnsupported
	}
	if tickHandler != nil {
		return ErrHandlerRegistered
	}
	tickHandler = h
	return nil
}

// UnregisterTickHandler always fails: the handler lives until reset.
func UnregisterTickHandler() error {
	return ErrUnsupported
}

// DispatchTick is called by the platform's RTC interrupt vector.
func DispatchTick() {
	if h := tickHandler; h != nil {
		h()
	}
}
