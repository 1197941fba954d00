//go:build nrf51

// Firmware for the BBC micro:bit v1: RTC0 ticks eight times a second and
// each tick prints one MAG3110 reading on the USB serial console.
package main

import (
	"device/nrf"
	"runtime/interrupt"

	"magreader/core"
)

func main() {
	core.SetDebugWriter(func(s string) { println(s) })

	if err := core.RegisterTickHandler(core.Peripherals.Tick); err != nil {
		halt("register tick handler: " + err.Error())
	}

	irq := interrupt.New(nrf.IRQ_RTC0, func(interrupt.Interrupt) {
		core.DispatchTick()
	})

	platform := core.Platform{
		Clock:   lfClock{},
		RTC:     rtc0{},
		IRQ:     rtcLine{irq: irq},
		GPIO:    nrfGPIO{},
		Bus:     twiDriver{},
		Console: uartDriver{},
	}
	if err := core.Peripherals.Initialize(platform, core.DefaultConfig()); err != nil {
		halt("initialize: " + err.Error())
	}

	// Everything else happens in the RTC0 interrupt
	select {}
}

// halt reports a startup failure and parks the CPU; there is nothing to
// restart the firmware.
func halt(msg string) {
	println(msg)
	select {}
}
