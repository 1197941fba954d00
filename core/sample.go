package core

// SampleSize is the length of one sensor read: three big-endian int16 axes.
const SampleSize = 6

// maxSampleText is the length of "x: -32768, y: -32768, z: -32768".
const maxSampleText = 31

// lineMax fits the longest sample text plus a terminator.
const lineMax = 48

// MaxTerminatorLen is the longest line terminator the tick can append
// without outgrowing its line buffer.
const MaxTerminatorLen = lineMax - maxSampleText

// Sample is one magnetometer reading.
type Sample struct {
	X, Y, Z int16
}

// DecodeSample joins each axis as hi<<8 | lo and reinterprets it as two's
// complement. Axes are ordered x, y, z.
func DecodeSample(b *[SampleSize]byte) Sample {
	return Sample{
		X: int16(uint16(b[0])<<8 | uint16(b[1])),
		Y: int16(uint16(b[2])<<8 | uint16(b[3])),
		Z: int16(uint16(b[4])<<8 | uint16(b[5])),
	}
}

// AppendText appends "x: X, y: Y, z: Z" to dst.
func (s Sample) AppendText(dst []byte) []byte {
	dst = append(dst, "x: "...)
	dst = appendInt(dst, int32(s.X))
	dst = append(dst, ", y: "...)
	dst = appendInt(dst, int32(s.Y))
	dst = append(dst, ", z: "...)
	dst = appendInt(dst, int32(s.Z))
	return dst
}

func (s Sample) String() string {
	var buf [lineMax]byte
	return string(s.AppendText(buf[:0]))
}
