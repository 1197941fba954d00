package core

import "tinygo.org/x/drivers"

// Bus is the two-wire bus handle, already configured for the sensor's
// speed. *machine.I2C and every tinygo.org/x/drivers bus satisfy it.
//
// Tx writes w and then, after a repeated start, reads len(r) bytes. A nil
// r makes it a plain write.
type Bus = drivers.I2C

// BusDriver is the abstract I2C peripheral that Initialize brings up.
type BusDriver interface {
	// Configure binds the bus to its clock and data pins and returns the
	// bus handle.
	Configure(scl, sda Pin) (Bus, error)
}
