package core

// itoa converts an integer to a string without using fmt package
// This is a lightweight alternative for embedded systems
func itoa(n int) string {
	if n == 0 {
		return "0"
	}

	negative := n < 0
	if negative {
		n = -n
	}

	var buf [20]byte
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}

	if negative {
		pos--
		buf[pos] = '-'
	}

	return string(buf[pos:])
}

// utoa converts an unsigned integer to a string
func utoa(n uint32) string {
	if n == 0 {
		return "0"
	}

	var buf [10]byte
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}

	return string(buf[pos:])
}

const hexDigits = "0123456789ABCDEF"

// hex32 formats a 32-bit word as 0x followed by 8 upper-case hex digits
func hex32(v uint32) string {
	var buf [10]byte
	buf[0] = '0'
	buf[1] = 'x'
	for i := 9; i >= 2; i-- {
		buf[i] = hexDigits[v&0xF]
		v >>= 4
	}
	return string(buf[:])
}
