package core

import "errors"

// ErrWouldBlock is returned by ConsoleTx.WriteByte when the transmit
// buffer is full. The caller retries until the byte is accepted.
var ErrWouldBlock = errors.New("transmit buffer full")

// ConsoleTx is the transmit half of the serial console.
type ConsoleTx interface {
	// WriteByte queues one byte for transmission. It returns ErrWouldBlock
	// if the byte was not accepted yet.
	WriteByte(c byte) error
}

// ConsoleRx is the receive half of the serial console. Nothing in the
// firmware reads from it.
type ConsoleRx interface {
	Buffered() int
	ReadByte() (byte, error)
}

// ConsoleDriver is the abstract UART peripheral.
type ConsoleDriver interface {
	// Configure binds the UART to its pins at the given baud rate.
	Configure(tx, rx Pin, baud uint32) (ConsoleTx, ConsoleRx, error)
}

// FIFOTx is a ConsoleTx that talks to a UART's transmit FIFO directly. It
// never waits: a set full flag is reported as ErrWouldBlock and the caller
// spins. *volatile.Register32 satisfies both register fields.
type FIFOTx struct {
	Status interface{ HasBits(uint32) bool }
	Full   uint32 // FIFO-full bit in Status
	Data   interface{ Set(uint32) }
}

func (t FIFOTx) WriteByte(c byte) error {
	if t.Status.HasBits(t.Full) {
		return ErrWouldBlock
	}
	t.Data.Set(uint32(c))
	return nil
}
