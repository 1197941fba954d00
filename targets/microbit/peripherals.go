//go:build nrf51

package main

import (
	"device/nrf"
	"machine"
	"runtime/volatile"
	"unsafe"

	"magreader/core"
)

// RTC0 tick bit, shared by EVTENSET and INTENSET
const rtcTick = 1 << 0

// NVIC clear-pending register for IRQs 0-31
const nvicICPR0 = 0xE000E280

var nvicClearPending = (*volatile.Register32)(unsafe.Pointer(uintptr(nvicICPR0)))

// PIN_CNF value for an open-drain line: input buffer connected, no pull,
// drive S0D1
const pinCnfOpenDrain = 6 << 8

// lfClock drives the 32.768 kHz low-frequency clock.
type lfClock struct{}

func (lfClock) StartLowFrequency() { nrf.CLOCK.TASKS_LFCLKSTART.Set(1) }

func (lfClock) LowFrequencyStarted() bool { return nrf.CLOCK.EVENTS_LFCLKSTARTED.Get() != 0 }

func (lfClock) ClearLowFrequencyStarted() { nrf.CLOCK.EVENTS_LFCLKSTARTED.Set(0) }

// rtc0 is the RTC0 handle. TinyGo's runtime keeps RTC1 for itself.
type rtc0 struct{}

func (rtc0) SetPrescaler(p uint32) { nrf.RTC0.PRESCALER.Set(p) }

func (rtc0) EnableTick() {
	nrf.RTC0.EVTENSET.Set(rtcTick)
	nrf.RTC0.INTENSET.Set(rtcTick)
}

func (rtc0) Start() { nrf.RTC0.TASKS_START.Set(1) }

func (rtc0) ClearTick() { nrf.RTC0.EVENTS_TICK.Set(0) }

// rtcLine is RTC0's NVIC line.
type rtcLine struct {
	irq interface{ Enable() }
}

func (l rtcLine) Enable() { l.irq.Enable() }

func (l rtcLine) ClearPending() { nvicClearPending.Set(1 << nrf.IRQ_RTC0) }

// nrfGPIO implements core.GPIODriver for the nRF51 P0 port.
type nrfGPIO struct{}

func (nrfGPIO) Configure(pin core.Pin, mode core.PinMode) error {
	if pin > 31 {
		return core.ErrInvalidPin
	}
	switch mode {
	case core.PinOpenDrain:
		nrf.GPIO.PIN_CNF[pin].Set(pinCnfOpenDrain)
	case core.PinPushPull:
		machine.Pin(pin).Configure(machine.PinConfig{Mode: machine.PinOutput})
	case core.PinFloatingInput:
		machine.Pin(pin).Configure(machine.PinConfig{Mode: machine.PinInput})
	}
	return nil
}

// twiDriver hands out TWI1 bound to the requested pins.
type twiDriver struct{}

func (twiDriver) Configure(scl, sda core.Pin) (core.Bus, error) {
	bus := machine.I2C1
	err := bus.Configure(machine.I2CConfig{
		Frequency: 100 * machine.KHz,
		SCL:       machine.Pin(scl),
		SDA:       machine.Pin(sda),
	})
	if err != nil {
		return nil, err
	}
	return bus, nil
}

// uartDriver hands out UART0. *machine.UART already provides WriteByte,
// Buffered and ReadByte.
type uartDriver struct{}

func (uartDriver) Configure(tx, rx core.Pin, baud uint32) (core.ConsoleTx, core.ConsoleRx, error) {
	uart := machine.UART0
	err := uart.Configure(machine.UARTConfig{
		BaudRate: baud,
		TX:       machine.Pin(tx),
		RX:       machine.Pin(rx),
	})
	if err != nil {
		return nil, nil, err
	}
	return uart, uart, nil
}
