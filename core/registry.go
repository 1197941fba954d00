package core

import "errors"

// ErrSlotOccupied is returned when a slot that already holds a handle is
// written again. Slots are write-once.
var ErrSlotOccupied = errors.New("registry slot already occupied")

// Slot holds at most one peripheral handle shared between thread mode and
// the tick interrupt. It starts empty, becomes occupied once, and stays
// that way. There is no way to vacate it.
type Slot[T any] struct {
	val  T
	full bool
}

// Put moves v into the slot.
func (s *Slot[T]) Put(cs *CS, v T) error {
	cs.check()
	if s.full {
		return ErrSlotOccupied
	}
	s.val = v
	s.full = true
	return nil
}

// Get returns the handle and whether the slot is occupied. The handle must
// not be used after cs exits.
func (s *Slot[T]) Get(cs *CS) (T, bool) {
	cs.check()
	return s.val, s.full
}

// With runs fn with exclusive access to the slot's current value; ok
// reports presence.
func (s *Slot[T]) With(cs *CS, fn func(v T, ok bool)) {
	cs.check()
	fn(s.val, s.full)
}

// Occupied reports whether the slot holds a handle.
func (s *Slot[T]) Occupied(cs *CS) bool {
	cs.check()
	return s.full
}

// Registry is the process-wide home of every handle the tick interrupt
// touches. Each field is only accessed inside a critical section.
type Registry struct {
	RTC     Slot[TickTimer]
	Bus     Slot[Bus]
	Console Slot[ConsoleTx]

	// Written once by Initialize before the slots are filled.
	sensorAddr uint16
	terminator string

	pins  PinClaims
	stats Stats
	drops dropRing

	// Scratch buffers live here so the interrupt never allocates.
	reg  [1]byte
	raw  [SampleSize]byte
	line [lineMax]byte
}

// Peripherals is the registry used by the firmware targets.
var Peripherals Registry

// Ready reports whether all three slots are occupied.
func (r *Registry) Ready(cs *CS) bool {
	return r.RTC.Occupied(cs) && r.Bus.Occupied(cs) && r.Console.Occupied(cs)
}

// anyOccupied reports whether Initialize has already handed anything over.
func (r *Registry) anyOccupied(cs *CS) bool {
	return r.RTC.Occupied(cs) || r.Bus.Occupied(cs) || r.Console.Occupied(cs)
}

// PinClaimed reports whether Initialize took ownership of pin.
func (r *Registry) PinClaimed(pin Pin) bool {
	cs := Enter()
	defer cs.Exit()
	return r.pins.Claimed(pin)
}

// Stats returns a snapshot of the tick counters.
func (r *Registry) Stats() Stats {
	cs := Enter()
	defer cs.Exit()
	return r.stats
}
