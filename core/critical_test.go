package core

import "testing"

func TestFreeRestoresOnPanic(t *testing.T) {
	func() {
		defer func() { _ = recover() }()
		Free(func(cs *CS) { panic("boom") })
	}()

	if csDepth != 0 {
		t.Fatalf("Critical section left open after panic: depth %d", csDepth)
	}

	// Would deadlock on the host mask if it had not been released
	done := false
	Free(func(cs *CS) { done = true })
	if !done {
		t.Error("Free did not run after a panicking critical section")
	}
}

func TestExitIsIdempotent(t *testing.T) {
	cs := Enter()
	cs.Exit()
	cs.Exit()

	if csDepth != 0 {
		t.Errorf("Expected depth 0 after double Exit, got %d", csDepth)
	}
}

func TestCriticalSectionsCounts(t *testing.T) {
	before := CriticalSections()
	Free(func(cs *CS) {})
	Free(func(cs *CS) {})
	if got := CriticalSections() - before; got != 2 {
		t.Errorf("Expected 2 entries, got %d", got)
	}
}
