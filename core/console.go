package core

// TxWriter writes to the console one byte at a time. Each byte spins on
// ErrWouldBlock until the UART accepts it; any other error drops that byte
// and the line carries on. Write never fails.
type TxWriter struct {
	tx  ConsoleTx
	reg *Registry
	cs  *CS
}

// NewTxWriter returns a writer whose dropped bytes are counted in reg. It is
// only valid while cs is live.
func NewTxWriter(tx ConsoleTx, reg *Registry, cs *CS) TxWriter {
	return TxWriter{tx: tx, reg: reg, cs: cs}
}

func (w TxWriter) writeByte(c byte) {
	for {
		err := w.tx.WriteByte(c)
		if err == ErrWouldBlock {
			continue
		}
		if err != nil {
			w.reg.drop(w.cs, OpConsoleByte, err)
		}
		return
	}
}

// Write implements io.Writer.
func (w TxWriter) Write(p []byte) (int, error) {
	for _, c := range p {
		w.writeByte(c)
	}
	return len(p), nil
}

// WriteString implements io.StringWriter.
func (w TxWriter) WriteString(s string) (int, error) {
	for i := 0; i < len(s); i++ {
		w.writeByte(s[i])
	}
	return len(s), nil
}
