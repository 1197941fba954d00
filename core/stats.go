package core

// Stats counts what the tick interrupt did. It is updated inside the tick's
// critical section and read with Registry.Stats.
type Stats struct {
	Ticks        uint32 // ticks handled with the RTC slot present
	NotReady     uint32 // ticks skipped because a slot was still empty
	Samples      uint32 // lines printed
	BusErrors    uint32 // failed sensor reads
	ConfigErrors uint32 // failed sensor configuration writes at startup
	DroppedBytes uint32 // console bytes the UART refused
}

// Report formats the counters on one line for the debug writer.
func (s Stats) Report() string {
	var buf [128]byte
	b := append(buf[:0], "ticks="...)
	b = appendUint(b, s.Ticks)
	b = append(b, " not_ready="...)
	b = appendUint(b, s.NotReady)
	b = append(b, " samples="...)
	b = appendUint(b, s.Samples)
	b = append(b, " bus_errors="...)
	b = appendUint(b, s.BusErrors)
	b = append(b, " config_errors="...)
	b = appendUint(b, s.ConfigErrors)
	b = append(b, " dropped_bytes="...)
	b = appendUint(b, s.DroppedBytes)
	return string(b)
}
