package core

// appendInt appends the decimal form of n to dst without using strconv or
// fmt. It does not allocate when dst has room.
func appendInt(dst []byte, n int32) []byte {
	if n == 0 {
		return append(dst, '0')
	}

	// Work in the negative range so the minimum value needs no special case
	neg := n < 0
	if !neg {
		n = -n
	}

	var tmp [11]byte
	pos := len(tmp)
	for n != 0 {
		pos--
		tmp[pos] = byte('0' - n%10)
		n /= 10
	}
	if neg {
		pos--
		tmp[pos] = '-'
	}
	return append(dst, tmp[pos:]...)
}

// appendUint appends the decimal form of n to dst.
func appendUint(dst []byte, n uint32) []byte {
	if n == 0 {
		return append(dst, '0')
	}

	var tmp [10]byte
	pos := len(tmp)
	for n > 0 {
		pos--
		tmp[pos] = byte('0' + n%10)
		n /= 10
	}
	return append(dst, tmp[pos:]...)
}

// utoa converts an unsigned integer to a string
func utoa(n uint32) string {
	var buf [10]byte
	return string(appendUint(buf[:0], n))
}
