package adc

// DiagWriter is a function type for writing diagnostic messages.
type DiagWriter func(string)

// diagPrintln is the global diagnostic print function. No-op by default;
// platform code can redirect it to UART, USB, or a test buffer.
var diagPrintln DiagWriter = func(string) {}

// SetDiagWriter sets the platform-specific diagnostic output function.
// Passing nil restores the no-op default.
func SetDiagWriter(w DiagWriter) {
	if w == nil {
		w = func(string) {}
	}
	diagPrintln = w
}

// utoa converts an unsigned integer to a string without the fmt package.
// This is a lightweight alternative for embedded builds.
func utoa(n uint32) string {
	if n == 0 {
		return "0"
	}

	temp := n
	digits := 0
	for temp > 0 {
		digits++
		temp /= 10
	}

	buf := make([]byte, digits)
	pos := digits - 1
	for n > 0 {
		buf[pos] = byte('0' + n%10)
		n /= 10
		pos--
	}

	return string(buf)
}
