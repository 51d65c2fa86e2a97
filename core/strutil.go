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

// signedItoa is itoa with an explicit '+' on positive values
func signedItoa(n int) string {
	if n > 0 {
		return "+" + itoa(n)
	}
	return itoa(n)
}

// ftoa formats v with a fixed number of decimals, rounding half away
// from zero. Only meant for the small magnitudes shown on the display.
func ftoa(v float32, decimals int) string {
	negative := v < 0
	if negative {
		v = -v
	}

	scale := 1
	for i := 0; i < decimals; i++ {
		scale *= 10
	}
	scaled := int(v*float32(scale) + 0.5)

	whole := itoa(scaled / scale)
	if negative && scaled != 0 {
		whole = "-" + whole
	}
	if decimals == 0 {
		return whole
	}

	frac := itoa(scaled % scale)
	for len(frac) < decimals {
		frac = "0" + frac
	}
	return whole + "." + frac
}

// padLeft right-aligns s in a field of width characters
func padLeft(s string, width int) string {
	for len(s) < width {
		s = " " + s
	}
	return s
}
