package adc

// Test doubles for the hardware collaborators. The fake bus scripts the
// peripheral's observable behavior: flags that the hardware raises in
// response to control writes are raised immediately, so the driver's
// busy-wait loops terminate on the first poll.

type fakeBus struct {
	regs map[Reg]uint32

	// samples is drained into DR, one value per conversion start.
	samples []uint16

	// crWrites counts raw writes to the control register, to observe
	// double transitions.
	crWrites int

	// stuck suppresses all flag raising, for timeout tests.
	stuck bool
}

func newFakeBus() *fakeBus {
	return &fakeBus{regs: make(map[Reg]uint32)}
}

func (b *fakeBus) Read(reg Reg) uint32 {
	return b.regs[reg]
}

func (b *fakeBus) Write(reg Reg, value uint32) {
	switch reg {
	case regISR:
		// Status flags clear on writing 1.
		b.regs[regISR] &^= value
	case regCR:
		b.crWrites++
		b.regs[regCR] = value
		if b.stuck {
			return
		}
		cr := value
		if cr&crADSTP != 0 {
			// Stop request: conversion aborts, both bits self-clear.
			cr &^= crADSTP | crADSTART
		}
		if cr&crADDIS != 0 {
			// Disable completes, ADDIS self-clears once ADEN drops.
			cr &^= crADDIS | crADEN
		}
		if cr&crADEN != 0 {
			b.regs[regISR] |= FlagReady
		}
		if cr&crADCAL != 0 {
			// Calibration completes with a fixed factor.
			cr &^= crADCAL
			b.regs[regISR] |= FlagCalibrationDone
			b.regs[regCALFACT] = 10
		}
		if cr&crADSTART != 0 {
			cr &^= crADSTART
			b.regs[regISR] |= FlagEndOfConversion
			if len(b.samples) > 0 {
				b.regs[regDR] = uint32(b.samples[0])
				b.samples = b.samples[1:]
			}
		}
		b.regs[regCR] = cr
	case regCHSELR:
		b.regs[regCHSELR] = value
		if !b.stuck {
			b.regs[regISR] |= FlagChannelConfigReady
		}
	default:
		b.regs[reg] = value
	}
}

type fakeTree struct {
	mux    ClockMux
	pllp   uint32
	sysclk uint32
	pclk   uint32

	clockEnables int
	resets       int
}

func (t *fakeTree) EnableADCClock()         { t.clockEnables++ }
func (t *fakeTree) PulseADCReset()          { t.resets++ }
func (t *fakeTree) SetADCSource(m ClockMux) { t.mux = m }
func (t *fakeTree) ADCSource() ClockMux     { return t.mux }
func (t *fakeTree) PLLPHz() uint32          { return t.pllp }
func (t *fakeTree) SysClkHz() uint32        { return t.sysclk }
func (t *fakeTree) PClkHz() uint32          { return t.pclk }

type fakeCal struct {
	cal1, cal2, vref uint16
}

func (c fakeCal) TsCal1() uint16  { return c.cal1 }
func (c fakeCal) TsCal2() uint16  { return c.cal2 }
func (c fakeCal) VrefCal() uint16 { return c.vref }

// newTestAdc builds a driver over fresh fakes with HSI16 clocking.
func newTestAdc() (*Adc, *fakeBus, *fakeTree) {
	bus := newFakeBus()
	tree := &fakeTree{pclk: 48_000_000, sysclk: 48_000_000, pllp: 24_000_000}
	a := New(bus, tree, fakeCal{cal1: 1400, cal2: 1800, vref: 1650}, ClkHSI16)
	return a, bus, tree
}

func expectPanic(t interface {
	Helper()
	Error(args ...any)
}, f func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Error("expected contract violation panic")
		}
	}()
	f()
}
