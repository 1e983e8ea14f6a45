package adc

import "wladc/ratio"

// hsi16Hz is the fixed frequency of the internal RC oscillator.
const hsi16Hz = 16_000_000

// ClockSource selects the ADC sampling clock.
//
// The synchronous PCLK modes have no jitter between a timer trigger and
// the start of a conversion. The undivided PCLK mode requires a 50% duty
// cycle bus clock (APB prescaler bypassed).
type ClockSource uint8

const (
	// ClkHSI16 is the asynchronous 16 MHz internal RC oscillator.
	ClkHSI16 ClockSource = iota
	// ClkPLLP is the asynchronous PLL "P" output.
	ClkPLLP
	// ClkSysClk is the asynchronous system clock.
	ClkSysClk
	// ClkPClkDiv2 is the synchronous bus clock divided by 2.
	ClkPClkDiv2
	// ClkPClkDiv4 is the synchronous bus clock divided by 4.
	ClkPClkDiv4
	// ClkPClk is the synchronous undivided bus clock.
	ClkPClk
)

// ckMode returns the clock-mode selector written to CFGR2.
func (c ClockSource) ckMode() uint32 {
	switch c {
	case ClkPClkDiv2:
		return ckModePClkDiv2
	case ClkPClkDiv4:
		return ckModePClkDiv4
	case ClkPClk:
		return ckModePClk
	default:
		return ckModeAsync
	}
}

// mux returns the clock-tree multiplexer selection for the asynchronous
// sources. Synchronous sources route no clock through the mux.
func (c ClockSource) mux() ClockMux {
	switch c {
	case ClkHSI16:
		return MuxHSI16
	case ClkPLLP:
		return MuxPLLP
	case ClkSysClk:
		return MuxSysClk
	default:
		return MuxNone
	}
}

// prescalerDiv maps the 4-bit CCR prescaler field to its divider. The
// second return is false for the reserved encodings 12-15.
func prescalerDiv(field uint32) (int64, bool) {
	dividers := [...]int64{1, 2, 4, 6, 8, 10, 12, 16, 32, 64, 128, 256}
	if field >= uint32(len(dividers)) {
		return 0, false
	}
	return dividers[field], true
}

// ClockHz computes the ADC sampling clock frequency in hertz from the
// configured clock mode, the clock-tree source frequencies, and the
// prescaler. Fractional frequencies are truncated toward zero.
//
// A reserved prescaler encoding read back from the hardware is not
// fatal: the driver logs a diagnostic and assumes a prescaler of 1.
func (a *Adc) ClockHz() uint32 {
	var freq ratio.Ratio

	switch (a.bus.Read(regCFGR2) >> cfgr2CkModeShift) & 0x3 {
	case ckModeAsync:
		var src ratio.Ratio
		switch a.tree.ADCSource() {
		case MuxNone:
			src = ratio.New(0, 1)
		case MuxHSI16:
			src = ratio.New(hsi16Hz, 1)
		case MuxPLLP:
			src = ratio.New(int64(a.tree.PLLPHz()), 1)
		default:
			src = ratio.New(int64(a.tree.SysClkHz()), 1)
		}

		// Only the asynchronous clock has the prescaler applied.
		field := (a.bus.Read(regCCR) & ccrPrescMask) >> ccrPrescShift
		div, ok := prescalerDiv(field)
		if !ok {
			diagPrintln("adc: reserved prescaler encoding " + utoa(field) + ", assuming divide by 1")
			div = 1
		}
		freq = src.DivInt(div)
	case ckModePClkDiv2:
		freq = ratio.New(int64(a.tree.PClkHz()), 2)
	case ckModePClkDiv4:
		freq = ratio.New(int64(a.tree.PClkHz()), 4)
	default:
		freq = ratio.New(int64(a.tree.PClkHz()), 1)
	}

	return uint32(freq.Trunc())
}
