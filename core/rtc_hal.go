package core

// Clock is the low-frequency clock source that feeds the RTC.
type Clock interface {
	StartLowFrequency()
	LowFrequencyStarted() bool
	ClearLowFrequencyStarted()
}

// TickTimer is the RTC handle. Only ClearTick is used after startup, from
// inside the tick interrupt.
type TickTimer interface {
	// SetPrescaler fixes the tick period at (prescaler+1)/32768 s.
	SetPrescaler(prescaler uint32)
	// EnableTick enables the tick event and its interrupt-enable bit.
	EnableTick()
	// Start starts the counter.
	Start()
	// ClearTick acknowledges the pending tick event.
	ClearTick()
}

// InterruptLine is the timer's line at the interrupt controller.
type InterruptLine interface {
	Enable()
	ClearPending()
}

// LowFrequencyHz is the RTC input clock.
const LowFrequencyHz = 32768

// TickPeriodMicros converts an RTC prescaler to the tick period in
// microseconds.
func TickPeriodMicros(prescaler uint32) uint32 {
	return uint32((uint64(prescaler) + 1) * 1000000 / LowFrequencyHz)
}
