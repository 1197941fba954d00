package sim

import (
	"errors"
	"sync"

	"tinygo.org/x/drivers"

	"magreader/mag3110"
)

var (
	ErrNack    = errors.New("sim: address not acknowledged")
	ErrBusDown = errors.New("sim: bus fault injected")
)

var _ drivers.I2C = (*MAG3110)(nil)

// MAG3110 is a register-level model of the magnetometer on a simulated I2C
// bus. Reads auto-increment from the addressed register.
type MAG3110 struct {
	mu sync.Mutex

	regs [0x12]byte

	// Field produces the next reading; nil keeps the last one.
	Field func(n int) (x, y, z int16)

	// FailEvery makes every n-th read transaction fail.
	FailEvery int

	reads int
}

// NewMAG3110 returns a sensor in standby with WHO_AM_I set.
func NewMAG3110() *MAG3110 {
	m := &MAG3110{}
	m.regs[mag3110.WHO_AM_I] = mag3110.WhoAmI
	return m
}

// Tx implements drivers.I2C.
func (m *MAG3110) Tx(addr uint16, w, r []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if addr != mag3110.Address {
		return ErrNack
	}
	if len(w) == 0 {
		return nil
	}

	reg := int(w[0])
	for i, v := range w[1:] {
		m.write(reg+i, v)
	}
	if len(r) == 0 {
		return nil
	}

	m.reads++
	if m.FailEvery > 0 && m.reads%m.FailEvery == 0 {
		return ErrBusDown
	}
	if reg == mag3110.OUT_X_MSB && m.Active() {
		m.measure()
	}
	for i := range r {
		if idx := reg + i; idx < len(m.regs) {
			r[i] = m.regs[idx]
		} else {
			r[i] = 0
		}
	}
	return nil
}

func (m *MAG3110) write(reg int, v byte) {
	switch reg {
	case mag3110.CTRL_REG1, mag3110.CTRL_REG2, mag3110.OFF_X_MSB:
		m.regs[reg] = v
	}
}

// Active reports whether CTRL_REG1 has the sensor in continuous mode.
func (m *MAG3110) Active() bool {
	return m.regs[mag3110.CTRL_REG1]&mag3110.CTRL_REG1_AC != 0
}

// Reg returns a register value.
func (m *MAG3110) Reg(reg int) byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.regs[reg]
}

// Set loads the output registers directly.
func (m *MAG3110) Set(x, y, z int16) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store(x, y, z)
}

func (m *MAG3110) measure() {
	if m.Field == nil {
		return
	}
	m.store(m.Field(m.reads))
}

func (m *MAG3110) store(x, y, z int16) {
	for i, v := range [3]int16{x, y, z} {
		m.regs[mag3110.OUT_X_MSB+2*i] = byte(uint16(v) >> 8)
		m.regs[mag3110.OUT_X_LSB+2*i] = byte(v)
	}
	m.regs[mag3110.DR_STATUS] = 0x0F
}
