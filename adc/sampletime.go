package adc

import (
	"time"

	"wladc/ratio"
)

// SampleTime is one of the eight hardware sampling durations, measured
// in ADC clock cycles. The hardware always samples for a half cycle on
// top of the nominal count.
type SampleTime uint8

const (
	Cyc1   SampleTime = 0 // 1.5 ADC clock cycles
	Cyc3   SampleTime = 1 // 3.5 ADC clock cycles
	Cyc7   SampleTime = 2 // 7.5 ADC clock cycles
	Cyc12  SampleTime = 3 // 12.5 ADC clock cycles
	Cyc19  SampleTime = 4 // 19.5 ADC clock cycles
	Cyc39  SampleTime = 5 // 39.5 ADC clock cycles
	Cyc79  SampleTime = 6 // 79.5 ADC clock cycles
	Cyc160 SampleTime = 7 // 160.5 ADC clock cycles

	// MinSampleTime is the shortest setting, 1.5 cycles. It is also the
	// hardware reset value.
	MinSampleTime = Cyc1
	// MaxSampleTime is the longest setting, 160.5 cycles.
	MaxSampleTime = Cyc160
)

// Cycles returns the exact sampling duration in ADC clock cycles.
func (t SampleTime) Cycles() ratio.Ratio {
	switch t {
	case Cyc1:
		return ratio.New(3, 2)
	case Cyc3:
		return ratio.New(7, 2)
	case Cyc7:
		return ratio.New(15, 2)
	case Cyc12:
		return ratio.New(25, 2)
	case Cyc19:
		return ratio.New(39, 2)
	case Cyc39:
		return ratio.New(79, 2)
	case Cyc79:
		return ratio.New(159, 2)
	default:
		return ratio.New(321, 2)
	}
}

// AsDuration converts the cycle count to a wall-clock duration at the
// given ADC clock frequency. Fractional nanoseconds are truncated toward
// zero.
//
// At 16 MHz: Cyc1 is 93ns and Cyc160 is 10031ns.
func (t SampleTime) AsDuration(hz uint32) time.Duration {
	ns := t.Cycles().MulInt(1_000_000_000).DivInt(int64(hz))
	return time.Duration(ns.Trunc()) * time.Nanosecond
}

// SetSampleTimes assigns a sampling duration to every channel through
// the two-slot selector: channels whose bit is clear in mask sample for
// slotA, channels whose bit is set sample for slotB.
//
// Contract: no conversion may be in progress.
func (a *Adc) SetSampleTimes(mask uint32, slotA, slotB SampleTime) {
	assert(a.bus.Read(regCR)&crADSTART == 0, "sample time reconfigured during conversion")
	a.bus.Write(regSMPR, (mask&ValidChannels)<<8|uint32(slotB)<<4|uint32(slotA))
}

// SetMaxSampleTime assigns the maximum sampling duration to every
// channel. Shorthand for prototyping; equivalent to
// SetSampleTimes(0, MaxSampleTime, MaxSampleTime).
func (a *Adc) SetMaxSampleTime() {
	a.SetSampleTimes(0, MaxSampleTime, MaxSampleTime)
}
