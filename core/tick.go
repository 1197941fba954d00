package core

// Tick is the RTC tick interrupt body. It holds one critical section for
// its whole run, reads one sample, prints it and acknowledges the tick.
//
// A missing RTC handle means Initialize has not finished: the tick is a
// no-op and nothing is acknowledged. Once the RTC handle is held the tick
// event is cleared on every path, otherwise the interrupt would re-fire
// at once. Bus and console failures are swallowed; the next tick retries.
func (r *Registry) Tick() {
	cs := Enter()
	defer cs.Exit()

	rtc, ok := r.RTC.Get(&cs)
	if !ok {
		r.stats.NotReady++
		return
	}
	defer rtc.ClearTick()
	r.stats.Ticks++

	bus, okBus := r.Bus.Get(&cs)
	tx, okTx := r.Console.Get(&cs)
	if !okBus || !okTx {
		r.stats.NotReady++
		return
	}

	if err := bus.Tx(r.sensorAddr, r.reg[:], r.raw[:]); err != nil {
		r.drop(&cs, OpSensorRead, err)
		return
	}

	s := DecodeSample(&r.raw)
	line := s.AppendText(r.line[:0])
	line = append(line, r.terminator...)
	NewTxWriter(tx, r, &cs).Write(line)
	r.stats.Samples++
}
