//go:build rp2040

package main

import (
	"device/rp"
	"machine"
	"runtime/volatile"
	"unsafe"

	"github.com/jangala-dev/tinygo-uartx/uartx"

	"magreader/core"
)

// RP2040 Timer peripheral memory map. TinyGo's runtime sleeps on alarm 0,
// the tick uses alarm 3.
const (
	timerBase     = 0x40054000
	timerALARM3   = timerBase + 0x1C
	timerTIMERAWL = timerBase + 0x28
	timerINTR     = timerBase + 0x34
	timerINTE     = timerBase + 0x38

	alarm3Bit = 1 << 3
	irqAlarm3 = 3 // TIMER_IRQ_3
)

// Crystal oscillator status
const (
	xoscBase       = 0x40024000
	xoscSTATUS     = xoscBase + 0x04
	xoscStatusStab = 1 << 31
)

// NVIC clear-pending register for IRQs 0-31
const nvicICPR0 = 0xE000E280

var (
	timerAlarm3 = (*volatile.Register32)(unsafe.Pointer(uintptr(timerALARM3)))
	timerRAWL   = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWL)))
	timerIntr   = (*volatile.Register32)(unsafe.Pointer(uintptr(timerINTR)))
	timerInte   = (*volatile.Register32)(unsafe.Pointer(uintptr(timerINTE)))
	xoscStatus  = (*volatile.Register32)(unsafe.Pointer(uintptr(xoscSTATUS)))

	nvicClearPending = (*volatile.Register32)(unsafe.Pointer(uintptr(nvicICPR0)))
)

// xoscClock reports the crystal oscillator that TinyGo starts during boot.
type xoscClock struct{}

func (xoscClock) StartLowFrequency() {}

func (xoscClock) LowFrequencyStarted() bool { return xoscStatus.HasBits(xoscStatusStab) }

func (xoscClock) ClearLowFrequencyStarted() {}

// alarmTick emulates a periodic RTC tick with timer alarm 3, re-armed on
// every acknowledge. The period matches the nRF RTC prescaler semantics.
type alarmTick struct {
	periodUS uint32
}

func (t *alarmTick) SetPrescaler(p uint32) { t.periodUS = core.TickPeriodMicros(p) }

func (t *alarmTick) EnableTick() { timerInte.SetBits(alarm3Bit) }

func (t *alarmTick) Start() { t.arm() }

func (t *alarmTick) ClearTick() {
	timerIntr.Set(alarm3Bit)
	t.arm()
}

func (t *alarmTick) arm() {
	timerAlarm3.Set(timerRAWL.Get() + t.periodUS)
}

// alarmLine is TIMER_IRQ_3's NVIC line.
type alarmLine struct {
	irq interface{ Enable() }
}

func (l alarmLine) Enable() { l.irq.Enable() }

func (l alarmLine) ClearPending() { nvicClearPending.Set(1 << irqAlarm3) }

// RPGPIODriver implements core.GPIODriver for the RP2040 bank 0 pins.
type RPGPIODriver struct{}

func (RPGPIODriver) Configure(pin core.Pin, mode core.PinMode) error {
	if pin > 29 {
		return core.ErrInvalidPin
	}
	switch mode {
	case core.PinOpenDrain:
		machine.Pin(pin).Configure(machine.PinConfig{Mode: machine.PinI2C})
	case core.PinPushPull:
		machine.Pin(pin).Configure(machine.PinConfig{Mode: machine.PinOutput})
	case core.PinFloatingInput:
		machine.Pin(pin).Configure(machine.PinConfig{Mode: machine.PinInput})
	}
	return nil
}

// RPI2CDriver hands out I2C0 bound to the requested pins.
type RPI2CDriver struct{}

func (RPI2CDriver) Configure(scl, sda core.Pin) (core.Bus, error) {
	i2c := machine.I2C0
	err := i2c.Configure(machine.I2CConfig{
		Frequency: 100 * machine.KHz,
		SCL:       machine.Pin(scl),
		SDA:       machine.Pin(sda),
	})
	if err != nil {
		return nil, err
	}
	return i2c, nil
}

// uartxDriver hands out uartx.UART0. uartx does the pin muxing and baud
// setup; transmit bypasses its ring and polls the hardware FIFO, since
// uartx.Write yields to the scheduler while the FIFO is full.
type uartxDriver struct{}

var _ core.ConsoleRx = (*uartx.UART)(nil)

func (uartxDriver) Configure(tx, rx core.Pin, baud uint32) (core.ConsoleTx, core.ConsoleRx, error) {
	u := uartx.UART0
	err := u.Configure(uartx.UARTConfig{
		BaudRate: baud,
		TX:       machine.Pin(tx),
		RX:       machine.Pin(rx),
	})
	if err != nil {
		return nil, nil, err
	}
	txFIFO := core.FIFOTx{
		Status: &u.Bus.UARTFR,
		Full:   rp.UART0_UARTFR_TXFF,
		Data:   &u.Bus.UARTDR,
	}
	return txFIFO, u, nil
}
