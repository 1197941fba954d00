//go:build rp2040

// Firmware for a Raspberry Pi Pico with a MAG3110 breakout on I2C0
// (GP4/GP5) and the console on UART0 (GP0/GP1). Timer alarm 3 stands in
// for the nRF RTC tick.
package main

import (
	"runtime/interrupt"

	"magreader/core"
)

func main() {
	core.SetDebugWriter(func(s string) { println(s) })

	if err := core.RegisterTickHandler(core.Peripherals.Tick); err != nil {
		halt("register tick handler: " + err.Error())
	}

	irq := interrupt.New(irqAlarm3, func(interrupt.Interrupt) {
		core.DispatchTick()
	})

	cfg := core.DefaultConfig()
	cfg.SDA, cfg.SCL = 4, 5
	cfg.TX, cfg.RX = 0, 1

	platform := core.Platform{
		Clock:   xoscClock{},
		RTC:     &alarmTick{},
		IRQ:     alarmLine{irq: irq},
		GPIO:    RPGPIODriver{},
		Bus:     RPI2CDriver{},
		Console: uartxDriver{},
	}
	if err := core.Peripherals.Initialize(platform, cfg); err != nil {
		halt("initialize: " + err.Error())
	}

	select {}
}

func halt(msg string) {
	println(msg)
	select {}
}
