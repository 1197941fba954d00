// Package serial opens the board's console port on the host.
package serial

import "io"

// Port is the read side of a console connection, which is all the monitor
// needs.
type Port interface {
	io.ReadCloser

	// Flush discards input received but not yet read.
	Flush() error
}

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyACM0", "COM3")
	Device string

	// Baud rate of the board's console UART
	Baud int

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int
}

// DefaultConfig returns the console settings of the magnetometer firmware
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        115200,
		ReadTimeout: 500,
	}
}
