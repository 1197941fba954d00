package core

// Platform bundles the peripheral drivers a target hands to Initialize.
type Platform struct {
	Clock   Clock
	RTC     TickTimer
	IRQ     InterruptLine
	GPIO    GPIODriver
	Bus     BusDriver
	Console ConsoleDriver
}

// Initialize brings the board from reset to interrupt-driven sampling:
// clock, RTC, pins, bus, sensor configuration, console, handoff into the
// registry and finally the interrupt line. It runs once, in thread mode,
// before the tick handler can fire.
//
// Sensor configuration writes and the welcome line are best effort. An
// error is only returned when a peripheral cannot be brought up at all,
// the terminator is too long or the registry was already populated. On
// error no slot is filled and the interrupt line stays disabled. Sensor
// write failures swallowed before the error stay counted in Stats.
func (r *Registry) Initialize(p Platform, cfg Config) error {
	cfg.ApplyDefaults()

	// The only spin-wait in the firmware, bounded by oscillator startup
	p.Clock.StartLowFrequency()
	for !p.Clock.LowFrequencyStarted() {
	}
	p.Clock.ClearLowFrequencyStarted()

	p.RTC.SetPrescaler(cfg.Prescaler)
	p.RTC.EnableTick()
	p.RTC.Start()

	var err error
	Free(func(cs *CS) {
		err = r.install(cs, p, &cfg)
	})
	if err != nil {
		return err
	}

	p.IRQ.ClearPending()
	p.IRQ.Enable()

	DebugPrintln("[INIT] sampling every " + utoa(cfg.TickPeriodMicros()) + "us")
	return nil
}

// install runs inside Initialize's critical section and ends with the
// handles moved into their slots.
func (r *Registry) install(cs *CS, p Platform, cfg *Config) error {
	if r.anyOccupied(cs) {
		return ErrSlotOccupied
	}
	if len(cfg.Terminator) > MaxTerminatorLen {
		return ErrTerminatorTooLong
	}

	pins := [...]struct {
		pin  Pin
		mode PinMode
	}{
		{cfg.SCL, PinOpenDrain},
		{cfg.SDA, PinOpenDrain},
		{cfg.TX, PinPushPull},
		{cfg.RX, PinFloatingInput},
	}
	var claims PinClaims
	for _, pc := range pins {
		if err := claims.Claim(pc.pin); err != nil {
			return err
		}
		if err := p.GPIO.Configure(pc.pin, pc.mode); err != nil {
			return err
		}
	}

	bus, err := p.Bus.Configure(cfg.SCL, cfg.SDA)
	if err != nil {
		return err
	}

	for _, w := range cfg.SensorInit {
		buf := [2]byte{w.Reg, w.Value}
		if err := bus.Tx(cfg.SensorAddress, buf[:], nil); err != nil {
			r.drop(cs, OpSensorConfig, err)
		}
	}

	tx, _, err := p.Console.Configure(cfg.TX, cfg.RX, cfg.Baud)
	if err != nil {
		return err
	}
	w := NewTxWriter(tx, r, cs)
	w.WriteString(cfg.Terminator)
	w.WriteString(cfg.Welcome)
	w.WriteString(cfg.Terminator)

	r.pins = claims
	r.sensorAddr = cfg.SensorAddress
	r.reg[0] = cfg.DataRegister
	r.terminator = cfg.Terminator

	// Cannot fail: anyOccupied was checked above under the same mask.
	_ = r.RTC.Put(cs, p.RTC)
	_ = r.Bus.Put(cs, bus)
	_ = r.Console.Put(cs, tx)
	return nil
}
