package core

import "testing"

func TestDecodeSampleBoundaries(t *testing.T) {
	testCases := []struct {
		raw  [SampleSize]byte
		want Sample
	}{
		{[SampleSize]byte{0x7F, 0xFF, 0, 0, 0, 0}, Sample{X: 32767}},
		{[SampleSize]byte{0x80, 0x00, 0, 0, 0, 0}, Sample{X: -32768}},
		{[SampleSize]byte{0xFF, 0xFF, 0, 0, 0, 0}, Sample{X: -1}},
		{[SampleSize]byte{0x00, 0x01, 0x00, 0x02, 0x00, 0x03}, Sample{X: 1, Y: 2, Z: 3}},
		{[SampleSize]byte{0x01, 0x00, 0xFE, 0x0C, 0x80, 0x01}, Sample{X: 256, Y: -500, Z: -32767}},
	}

	for i, tc := range testCases {
		got := DecodeSample(&tc.raw)
		if got != tc.want {
			t.Errorf("Test case %d: DecodeSample(% X) = %+v, want %+v", i, tc.raw, got, tc.want)
		}
	}
}

func TestDecodeSampleIsPure(t *testing.T) {
	raw := [SampleSize]byte{0x12, 0x34, 0xAB, 0xCD, 0x00, 0x7F}
	first := DecodeSample(&raw)
	second := DecodeSample(&raw)

	if first != second {
		t.Errorf("DecodeSample not consistent: %+v vs %+v", first, second)
	}
	if raw != [SampleSize]byte{0x12, 0x34, 0xAB, 0xCD, 0x00, 0x7F} {
		t.Error("DecodeSample modified its input")
	}
}

func TestDecodeSampleAxisFormula(t *testing.T) {
	// Every axis is hi<<8|lo reinterpreted as int16
	for hi := 0; hi < 256; hi += 17 {
		for lo := 0; lo < 256; lo += 13 {
			var raw [SampleSize]byte
			for axis := 0; axis < 3; axis++ {
				raw[2*axis] = byte(hi)
				raw[2*axis+1] = byte(lo)
			}
			want := int16(uint16(hi)<<8 | uint16(lo))
			s := DecodeSample(&raw)
			if s.X != want || s.Y != want || s.Z != want {
				t.Fatalf("hi=%#x lo=%#x: got %+v, want %d on every axis", hi, lo, s, want)
			}
		}
	}
}

func TestSampleText(t *testing.T) {
	testCases := []struct {
		s    Sample
		want string
	}{
		{Sample{1, 2, 3}, "x: 1, y: 2, z: 3"},
		{Sample{}, "x: 0, y: 0, z: 0"},
		{Sample{-32768, 32767, -1}, "x: -32768, y: 32767, z: -1"},
	}

	for _, tc := range testCases {
		if got := tc.s.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestLongestLineFitsBuffer(t *testing.T) {
	s := Sample{X: -32768, Y: -32768, Z: -32768}
	if got := len(s.AppendText(nil)); got != maxSampleText {
		t.Errorf("Longest sample text is %d bytes, want %d", got, maxSampleText)
	}
	if maxSampleText+MaxTerminatorLen != lineMax {
		t.Errorf("Sample text plus terminator (%d) does not fill lineMax (%d)", maxSampleText+MaxTerminatorLen, lineMax)
	}
}
