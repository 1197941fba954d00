package core

import (
	"errors"

	"magreader/mag3110"
)

// ErrTerminatorTooLong is returned for a terminator longer than
// MaxTerminatorLen.
var ErrTerminatorTooLong = errors.New("line terminator too long")

// RegWrite is one two-byte configuration write: register address, value.
type RegWrite struct {
	Reg   uint8 `json:"reg"`
	Value uint8 `json:"value"`
}

// Config holds the board constants Initialize and the tick handler use.
type Config struct {
	// Sensor
	SensorAddress uint16     `json:"sensor_address"`
	SensorInit    []RegWrite `json:"sensor_init"`
	DataRegister  uint8      `json:"data_register"`

	// RTC prescaler; the tick period is (Prescaler+1)/32768 s.
	Prescaler uint32 `json:"prescaler"`

	// Pins
	SCL Pin `json:"scl"`
	SDA Pin `json:"sda"`
	TX  Pin `json:"tx"`
	RX  Pin `json:"rx"`

	// Console
	Baud       uint32 `json:"baud"`
	Welcome    string `json:"welcome"`
	Terminator string `json:"terminator"`
}

// Defaults for the BBC micro:bit v1.
const (
	DefaultPrescaler  = 4095 // 8 Hz
	DefaultBaud       = 115200
	DefaultWelcome    = "Welcome to the magnetometer reader!"
	DefaultTerminator = "\n\r"
)

// DefaultConfig returns the micro:bit v1 wiring: MAG3110 on TWI pins 0 and
// 30, console on pins 24 and 25.
func DefaultConfig() Config {
	return Config{
		SensorAddress: mag3110.Address,
		SensorInit: []RegWrite{
			{Reg: mag3110.CTRL_REG1, Value: mag3110.CTRL_REG1_AC},
			{Reg: mag3110.CTRL_REG2, Value: mag3110.ContinuousMode},
		},
		DataRegister: mag3110.OUT_X_MSB,
		Prescaler:    DefaultPrescaler,
		SCL:          0,
		SDA:          30,
		TX:           24,
		RX:           25,
		Baud:         DefaultBaud,
		Welcome:      DefaultWelcome,
		Terminator:   DefaultTerminator,
	}
}

// ApplyDefaults fills in missing configuration values. Pin numbers are
// left alone since pin 0 is a valid choice.
func (c *Config) ApplyDefaults() {
	def := DefaultConfig()
	if c.SensorAddress == 0 {
		c.SensorAddress = def.SensorAddress
	}
	if c.SensorInit == nil {
		c.SensorInit = def.SensorInit
	}
	if c.DataRegister == 0 {
		c.DataRegister = def.DataRegister
	}
	if c.Prescaler == 0 {
		c.Prescaler = def.Prescaler
	}
	if c.Baud == 0 {
		c.Baud = def.Baud
	}
	if c.Welcome == "" {
		c.Welcome = def.Welcome
	}
	if c.Terminator == "" {
		c.Terminator = def.Terminator
	}
}

// TickPeriodMicros is the configured tick period in microseconds.
func (c *Config) TickPeriodMicros() uint32 {
	return TickPeriodMicros(c.Prescaler)
}
