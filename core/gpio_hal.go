package core

import "errors"

var (
	ErrPinInUse   = errors.New("pin already claimed")
	ErrInvalidPin = errors.New("invalid pin")
)

// Pin identifies a hardware GPIO pin number
type Pin uint8

// PinMode is the electrical configuration Initialize asks for.
type PinMode uint8

const (
	// PinOpenDrain is a bidirectional open-drain line (bus clock and data).
	PinOpenDrain PinMode = iota
	// PinPushPull is a push-pull output (console transmit).
	PinPushPull
	// PinFloatingInput is an input without pull resistors (console receive).
	PinFloatingInput
)

func (m PinMode) String() string {
	switch m {
	case PinOpenDrain:
		return "open-drain"
	case PinPushPull:
		return "push-pull"
	case PinFloatingInput:
		return "floating-input"
	default:
		return "unknown"
	}
}

// GPIODriver is the abstract GPIO interface that core code uses.
type GPIODriver interface {
	// Configure sets the pin's mode.
	Configure(pin Pin, mode PinMode) error
}

// maxPins bounds the claim bitmap.
const maxPins = 64

// PinClaims tracks which pins have an owner. A pin can be claimed once.
type PinClaims struct {
	claimed uint64
}

// Claim takes ownership of pin.
func (p *PinClaims) Claim(pin Pin) error {
	if pin >= maxPins {
		return ErrInvalidPin
	}
	bit := uint64(1) << pin
	if p.claimed&bit != 0 {
		return ErrPinInUse
	}
	p.claimed |= bit
	return nil
}

// Claimed reports whether pin has an owner.
func (p *PinClaims) Claimed(pin Pin) bool {
	return pin < maxPins && p.claimed&(uint64(1)<<pin) != 0
}
