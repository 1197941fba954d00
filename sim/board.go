// Package sim provides host-side stand-ins for the micro:bit peripherals so
// the firmware's Initialize and tick handler can run unmodified under the
// regular Go toolchain.
package sim

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"magreader/core"
)

// Clock models the 32.768 kHz oscillator. It reports started after
// StartupPolls status reads.
type Clock struct {
	mu           sync.Mutex
	StartupPolls int
	polls        int
	started      bool
	event        bool
}

func (c *Clock) StartLowFrequency() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.started = true
}

func (c *Clock) LowFrequencyStarted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.polls++
	if c.started && c.polls > c.StartupPolls {
		c.event = true
	}
	return c.event
}

func (c *Clock) ClearLowFrequencyStarted() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.event = false
}

// Polls returns how many times the ready flag was read.
func (c *Clock) Polls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.polls
}

// RTC models the tick-generating real-time counter and its NVIC line.
type RTC struct {
	mu        sync.Mutex
	prescaler uint32
	tickEvt   bool // EVTEN tick
	tickInt   bool // INTEN tick
	running   bool
	event     bool // EVENTS_TICK
	lineOn    bool // NVIC enable
	pending   bool // NVIC pending

	acks     int
	refires  int
	isrCalls int
}

func (t *RTC) SetPrescaler(p uint32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.prescaler = p
}

func (t *RTC) EnableTick() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tickEvt = true
	t.tickInt = true
}

func (t *RTC) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.running = true
}

func (t *RTC) ClearTick() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.event = false
	t.acks++
}

// Period is the tick period implied by the configured prescaler.
func (t *RTC) Period() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return time.Duration(core.TickPeriodMicros(t.prescaler)) * time.Microsecond
}

// Running reports whether the counter was started.
func (t *RTC) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// Line returns the RTC's interrupt controller line.
func (t *RTC) Line() *Line { return (*Line)(t) }

// Line is the NVIC view of the RTC interrupt.
type Line RTC

func (l *Line) Enable() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lineOn = true
}

func (l *Line) ClearPending() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pending = false
}

// Fire advances the counter by one tick and, if the interrupt is enabled,
// runs isr the way the NVIC would. It reports whether isr ran.
func (t *RTC) Fire(isr func()) bool {
	t.mu.Lock()
	if !t.running || !t.tickEvt {
		t.mu.Unlock()
		return false
	}
	t.event = true
	if t.tickInt {
		t.pending = true
	}
	run := t.lineOn && t.pending
	if run {
		t.pending = false
		t.isrCalls++
	}
	t.mu.Unlock()

	if !run {
		return false
	}
	isr()

	t.mu.Lock()
	defer t.mu.Unlock()
	// An event left set holds the line high and the handler re-enters at once
	if t.event {
		t.refires++
	}
	return true
}

// RTCStats is what the simulated RTC observed.
type RTCStats struct {
	ISRCalls int // handler invocations
	Acks     int // ClearTick calls
	Refires  int // handler returns with the event still set
}

func (t *RTC) Stats() RTCStats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return RTCStats{ISRCalls: t.isrCalls, Acks: t.acks, Refires: t.refires}
}

// GPIO records pin modes.
type GPIO struct {
	mu    sync.Mutex
	modes map[core.Pin]core.PinMode
}

func (g *GPIO) Configure(pin core.Pin, mode core.PinMode) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.modes == nil {
		g.modes = make(map[core.Pin]core.PinMode)
	}
	g.modes[pin] = mode
	return nil
}

// Mode returns the configured mode of pin.
func (g *GPIO) Mode(pin core.Pin) (core.PinMode, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	m, ok := g.modes[pin]
	return m, ok
}

// BusDriver hands out a bus with the simulated sensor attached.
type BusDriver struct {
	Sensor *MAG3110
}

func (d BusDriver) Configure(scl, sda core.Pin) (core.Bus, error) {
	if d.Sensor == nil {
		return nil, errors.New("sim: no device on bus")
	}
	return d.Sensor, nil
}

// Console writes transmitted bytes to an io.Writer. BlockEvery makes every
// n-th attempt report a full transmit buffer.
type Console struct {
	mu         sync.Mutex
	Out        io.Writer
	BlockEvery int
	attempts   int
	baud       uint32
}

func (c *Console) Configure(tx, rx core.Pin, baud uint32) (core.ConsoleTx, core.ConsoleRx, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Out == nil {
		c.Out = io.Discard
	}
	c.baud = baud
	return consoleTx{c}, consoleRx{}, nil
}

// Baud returns the configured baud rate.
func (c *Console) Baud() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.baud
}

type consoleTx struct{ c *Console }

func (t consoleTx) WriteByte(b byte) error {
	t.c.mu.Lock()
	defer t.c.mu.Unlock()
	t.c.attempts++
	if t.c.BlockEvery > 0 && t.c.attempts%t.c.BlockEvery == 0 {
		return core.ErrWouldBlock
	}
	_, err := t.c.Out.Write([]byte{b})
	return err
}

type consoleRx struct{}

func (consoleRx) Buffered() int           { return 0 }
func (consoleRx) ReadByte() (byte, error) { return 0, io.EOF }

// Board wires the simulated peripherals together.
type Board struct {
	Clock   *Clock
	RTC     *RTC
	GPIO    *GPIO
	Sensor  *MAG3110
	Console *Console
}

// NewBoard returns a board whose console writes to out.
func NewBoard(out io.Writer) *Board {
	return &Board{
		Clock:   &Clock{StartupPolls: 2},
		RTC:     &RTC{},
		GPIO:    &GPIO{},
		Sensor:  NewMAG3110(),
		Console: &Console{Out: out},
	}
}

// Platform returns the driver set Initialize expects.
func (b *Board) Platform() core.Platform {
	return core.Platform{
		Clock:   b.Clock,
		RTC:     b.RTC,
		IRQ:     b.RTC.Line(),
		GPIO:    b.GPIO,
		Bus:     BusDriver{Sensor: b.Sensor},
		Console: b.Console,
	}
}

// Run fires ticks at the RTC's configured period until ctx is done or n
// ticks have reached the handler (n <= 0 means no limit). A nil isr
// dispatches to the registered tick handler.
func (b *Board) Run(ctx context.Context, n int, isr func()) error {
	if !b.RTC.Running() {
		return errors.New("sim: RTC not started")
	}
	if isr == nil {
		isr = core.DispatchTick
	}
	ticker := time.NewTicker(b.RTC.Period())
	defer ticker.Stop()

	fired := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if b.RTC.Fire(isr) {
				fired++
			}
			if n > 0 && fired >= n {
				return nil
			}
		}
	}
}
