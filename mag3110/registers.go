// Package mag3110 holds the register map of the NXP MAG3110 3-axis
// magnetometer fitted to the BBC micro:bit v1.
package mag3110

// Address is the 7-bit I2C address of the device.
const Address = 0x0E

// Registers
const (
	DR_STATUS = 0x00
	OUT_X_MSB = 0x01
	OUT_X_LSB = 0x02
	OUT_Y_MSB = 0x03
	OUT_Y_LSB = 0x04
	OUT_Z_MSB = 0x05
	OUT_Z_LSB = 0x06
	WHO_AM_I  = 0x07
	SYSMOD    = 0x08
	OFF_X_MSB = 0x09
	DIE_TEMP  = 0x0F
	CTRL_REG1 = 0x10
	CTRL_REG2 = 0x11
)

// WhoAmI is the fixed device identifier read back from WHO_AM_I.
const WhoAmI = 0xC4

// CTRL_REG1 bits
const (
	CTRL_REG1_AC = 0x01 // active mode
	CTRL_REG1_TM = 0x02 // trigger one measurement
	CTRL_REG1_FR = 0x08 // fast read, 8-bit results
)

// CTRL_REG2 bits
const (
	CTRL_REG2_MAG_RST  = 0x10
	CTRL_REG2_RAW      = 0x20
	CTRL_REG2_AUTO_RST = 0x80
)

// ContinuousMode is the CTRL_REG2 value written at startup: raw output with
// a one-shot magnetic sensor reset.
const ContinuousMode = 0x7F
