package adc

import (
	"testing"
	"time"
)

func TestSampleTimeCycles(t *testing.T) {
	testCases := []struct {
		ts      SampleTime
		nominal int64
		ns16MHz time.Duration
	}{
		{Cyc1, 1, 93},
		{Cyc3, 3, 218},
		{Cyc7, 7, 468},
		{Cyc12, 12, 781},
		{Cyc19, 19, 1218},
		{Cyc39, 39, 2468},
		{Cyc79, 79, 4968},
		{Cyc160, 160, 10031},
	}

	for _, tc := range testCases {
		c := tc.ts.Cycles()
		// Every setting samples for nominal + 1/2 cycles.
		if c.Num() != 2*tc.nominal+1 || c.Den() != 2 {
			t.Errorf("SampleTime %d: cycles = %d/%d, want %d/2", tc.ts, c.Num(), c.Den(), 2*tc.nominal+1)
		}
		if d := tc.ts.AsDuration(16_000_000); d != tc.ns16MHz*time.Nanosecond {
			t.Errorf("SampleTime %d: AsDuration(16MHz) = %v, want %dns", tc.ts, d, tc.ns16MHz)
		}
	}
}

func TestSampleTimeBounds(t *testing.T) {
	if MinSampleTime != Cyc1 {
		t.Errorf("MinSampleTime = %d, want Cyc1", MinSampleTime)
	}
	if MaxSampleTime != Cyc160 {
		t.Errorf("MaxSampleTime = %d, want Cyc160", MaxSampleTime)
	}
}

func TestSetSampleTimesPacking(t *testing.T) {
	a, bus, _ := newTestAdc()

	mask := In0.Mask() | In1.Mask() | Vbat.Mask()
	a.SetSampleTimes(mask, Cyc160, Cyc39)

	want := mask<<8 | uint32(Cyc39)<<4 | uint32(Cyc160)
	if got := bus.Read(regSMPR); got != want {
		t.Errorf("SMPR = %#x, want %#x", got, want)
	}
}

func TestSetSampleTimesStripsReservedBits(t *testing.T) {
	a, bus, _ := newTestAdc()

	// Bits 15 and 16 are reserved channels and must never reach the
	// register.
	a.SetSampleTimes(0xFFFFFFFF, Cyc1, Cyc160)

	want := ValidChannels<<8 | uint32(Cyc160)<<4 | uint32(Cyc1)
	if got := bus.Read(regSMPR); got != want {
		t.Errorf("SMPR = %#x, want %#x", got, want)
	}
}

func TestSetMaxSampleTime(t *testing.T) {
	a, bus, _ := newTestAdc()
	a.SetMaxSampleTime()

	want := uint32(Cyc160)<<4 | uint32(Cyc160)
	if got := bus.Read(regSMPR); got != want {
		t.Errorf("SMPR = %#x, want %#x", got, want)
	}
}

func TestSetSampleTimesDuringConversionPanics(t *testing.T) {
	a, bus, _ := newTestAdc()

	// Simulate an in-flight conversion.
	bus.regs[regCR] |= crADSTART

	expectPanic(t, func() { a.SetSampleTimes(0, Cyc1, Cyc1) })
}
