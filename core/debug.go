package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

var (
	// debugPrintln is the global debug print function (can be set by platform code)
	debugPrintln DebugWriter = func(s string) {}

	// debugEnabled controls whether debug output is active
	debugEnabled bool
)

// SetDebugWriter sets the platform-specific debug output function
// This allows platforms to redirect debug output to UART, semihosting, etc.
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// IsDebugEnabled returns whether debug output is enabled
func IsDebugEnabled() bool {
	return debugEnabled
}

// DebugPrintln writes a debug message using the platform-specific writer.
// Never call it from the tick interrupt: building the message allocates.
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// Op names a call site whose failure is observed and ignored rather than
// propagated.
type Op uint8

const (
	OpNone         Op = iota
	OpSensorConfig    // configuration write during startup
	OpSensorRead      // register-address write plus 6-byte read in the tick
	OpConsoleByte     // one console byte
)

func (o Op) String() string {
	switch o {
	case OpSensorConfig:
		return "sensor_config"
	case OpSensorRead:
		return "sensor_read"
	case OpConsoleByte:
		return "console_byte"
	default:
		return "none"
	}
}

// Drop is one swallowed failure.
type Drop struct {
	Op   Op
	Tick uint32 // value of Stats.Ticks when it happened
	Err  error
}

// DropRingSize is how many swallowed failures are kept for post-mortem.
const DropRingSize = 8

type dropRing struct {
	events [DropRingSize]Drop
	head   uint8
	count  uint8
}

// drop is the single place where a best-effort failure is swallowed. It
// counts the failure and keeps it in a fixed ring, so it is safe to call
// from the tick interrupt.
func (r *Registry) drop(cs *CS, op Op, err error) {
	cs.check()
	switch op {
	case OpSensorRead:
		r.stats.BusErrors++
	case OpSensorConfig:
		r.stats.ConfigErrors++
	case OpConsoleByte:
		r.stats.DroppedBytes++
	}
	idx := r.drops.head
	r.drops.events[idx] = Drop{Op: op, Tick: r.stats.Ticks, Err: err}
	r.drops.head = (idx + 1) % DropRingSize
	if r.drops.count < DropRingSize {
		r.drops.count++
	}
}

// Drops returns the swallowed failures still in the ring, oldest first.
func (r *Registry) Drops() []Drop {
	cs := Enter()
	defer cs.Exit()

	out := make([]Drop, 0, r.drops.count)
	start := (r.drops.head + DropRingSize - r.drops.count) % DropRingSize
	for i := uint8(0); i < r.drops.count; i++ {
		out = append(out, r.drops.events[(start+i)%DropRingSize])
	}
	return out
}

// DumpDrops writes the drop ring through the debug writer. Call it from
// thread mode only.
func (r *Registry) DumpDrops() {
	if debugPrintln == nil {
		return
	}
	drops := r.Drops()
	debugPrintln("[DROP] === " + utoa(uint32(len(drops))) + " swallowed failures ===")
	for _, d := range drops {
		msg := "[DROP] " + d.Op.String() + " tick=" + utoa(d.Tick)
		if d.Err != nil {
			msg += " err=" + d.Err.Error()
		}
		debugPrintln(msg)
	}
}
