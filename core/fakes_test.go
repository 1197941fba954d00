package core

import (
	"bytes"
	"errors"

	"tinygo.org/x/drivers"
)

var errNack = errors.New("nack")

type fakeClock struct {
	startAfter int // polls before the oscillator reports ready
	polls      int
	started    bool
	cleared    bool
}

func (c *fakeClock) StartLowFrequency() { c.started = true }

func (c *fakeClock) LowFrequencyStarted() bool {
	c.polls++
	return c.started && c.polls > c.startAfter
}

func (c *fakeClock) ClearLowFrequencyStarted() { c.cleared = true }

type fakeRTC struct {
	prescaler uint32
	tick      bool
	running   bool
	clears    int
}

func (t *fakeRTC) SetPrescaler(p uint32) { t.prescaler = p }
func (t *fakeRTC) EnableTick()           { t.tick = true }
func (t *fakeRTC) Start()                { t.running = true }
func (t *fakeRTC) ClearTick()            { t.clears++ }

type fakeIRQ struct {
	calls []string
}

func (i *fakeIRQ) Enable()       { i.calls = append(i.calls, "enable") }
func (i *fakeIRQ) ClearPending() { i.calls = append(i.calls, "clear_pending") }

type fakeGPIO struct {
	modes map[Pin]PinMode
}

func (g *fakeGPIO) Configure(pin Pin, mode PinMode) error {
	if g.modes == nil {
		g.modes = make(map[Pin]PinMode)
	}
	g.modes[pin] = mode
	return nil
}

var _ drivers.I2C = (*fakeBus)(nil)

// fakeBus records every transaction and answers reads from data.
type fakeBus struct {
	data      [SampleSize]byte
	readErr   error
	writeErr  error
	writes    [][]byte
	addrs     []uint16
	readCount int
}

func (b *fakeBus) Tx(addr uint16, w, r []byte) error {
	b.addrs = append(b.addrs, addr)
	b.writes = append(b.writes, append([]byte(nil), w...))
	if len(r) == 0 {
		return b.writeErr
	}
	b.readCount++
	if b.readErr != nil {
		return b.readErr
	}
	copy(r, b.data[:])
	return nil
}

type fakeBusDriver struct {
	bus      *fakeBus
	err      error
	scl, sda Pin
}

func (d *fakeBusDriver) Configure(scl, sda Pin) (Bus, error) {
	d.scl, d.sda = scl, sda
	if d.err != nil {
		return nil, d.err
	}
	return d.bus, nil
}

// fakeTx collects console output. blockEvery makes every n-th attempt
// report a full buffer; failOn makes the given byte fail outright.
type fakeTx struct {
	out        bytes.Buffer
	attempts   int
	blockEvery int
	failOn     byte
	failErr    error
}

func (t *fakeTx) WriteByte(c byte) error {
	t.attempts++
	if t.blockEvery > 0 && t.attempts%t.blockEvery == 0 {
		return ErrWouldBlock
	}
	if t.failErr != nil && c == t.failOn {
		return t.failErr
	}
	t.out.WriteByte(c)
	return nil
}

type fakeConsoleDriver struct {
	tx   *fakeTx
	err  error
	baud uint32
}

func (d *fakeConsoleDriver) Configure(tx, rx Pin, baud uint32) (ConsoleTx, ConsoleRx, error) {
	d.baud = baud
	if d.err != nil {
		return nil, nil, d.err
	}
	return d.tx, nil, nil
}

type mockBoard struct {
	clock   *fakeClock
	rtc     *fakeRTC
	irq     *fakeIRQ
	gpio    *fakeGPIO
	bus     *fakeBus
	busDrv  *fakeBusDriver
	tx      *fakeTx
	console *fakeConsoleDriver
}

func newMockBoard() *mockBoard {
	b := &mockBoard{
		clock: &fakeClock{startAfter: 3},
		rtc:   &fakeRTC{},
		irq:   &fakeIRQ{},
		gpio:  &fakeGPIO{},
		bus:   &fakeBus{},
		tx:    &fakeTx{},
	}
	b.busDrv = &fakeBusDriver{bus: b.bus}
	b.console = &fakeConsoleDriver{tx: b.tx}
	return b
}

func (b *mockBoard) platform() Platform {
	return Platform{
		Clock:   b.clock,
		RTC:     b.rtc,
		IRQ:     b.irq,
		GPIO:    b.gpio,
		Bus:     b.busDrv,
		Console: b.console,
	}
}

// populate fills the registry directly, skipping Initialize. A nil handle
// leaves its slot empty.
func populate(r *Registry, rtc TickTimer, bus Bus, tx ConsoleTx) {
	Free(func(cs *CS) {
		r.sensorAddr = 0x0E
		r.reg[0] = 0x01
		r.terminator = DefaultTerminator
		if rtc != nil {
			_ = r.RTC.Put(cs, rtc)
		}
		if bus != nil {
			_ = r.Bus.Put(cs, bus)
		}
		if tx != nil {
			_ = r.Console.Put(cs, tx)
		}
	})
}
