//go:build !adcrelease

package adc

// assert traps on a caller contract violation. The hardware exhibits
// undefined behavior when the documented call ordering is broken, so
// violations are programming errors, not runtime conditions.
//
// Builds with the adcrelease tag compile the checks out; the integrator
// then assumes responsibility for upholding every precondition.
func assert(cond bool, msg string) {
	if !cond {
		panic("adc: contract violation: " + msg)
	}
}
