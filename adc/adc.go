// Package adc drives the STM32WL analog to digital converter: power and
// enable sequencing, self-calibration, per-channel sample timing, single
// shot conversions, and conversion of the internal sensor channels to
// physical units.
//
// The driver is hardware-independent: the register file, the clock tree
// and the factory calibration cells are injected through the Bus,
// ClockTree and Calibration interfaces, implemented with memory-mapped
// volatile registers in targets/stm32wl and with fakes in the tests.
//
// Conversions are single-shot and polled. Every hardware transition is
// awaited on a status flag through the driver's Poller; the zero-value
// Poller spins without a deadline, matching the reference sequences from
// the manual.
package adc

import "time"

// TAdcVregSetup is the maximum startup time of the ADC voltage
// regulator. The regulator output is not valid before this delay has
// elapsed after enabling it.
const TAdcVregSetup = 20 * time.Microsecond

// Temperature sensor timing characteristics.
const (
	// TsMinSample is the minimum sampling time for the temperature
	// sensor channel. Configure at least this much through
	// SetSampleTimes before reading the sensor.
	TsMinSample = 5 * time.Microsecond

	// TsStartTyp is the typical temperature sensor startup time.
	TsStartTyp = 70 * time.Microsecond

	// TsStartMax is the maximum temperature sensor startup time. Wait
	// this long after EnableTempSensor before samples are accurate.
	TsStartMax = 120 * time.Microsecond
)

// Adc is the analog to digital converter driver. It is the exclusive
// owner of the peripheral's register interface: a single logical owner
// issues operations at a time, and correctness relies on that single
// owner discipline rather than on locking.
type Adc struct {
	bus  Bus
	tree ClockTree
	cal  Calibration

	// Poll bounds every busy-wait on a hardware status flag. The zero
	// value waits without a deadline.
	Poll Poller
}

// New creates an ADC driver from its register interface.
//
// This pulses the peripheral reset, enables the ADC bus clock, and
// selects the sampling clock source. The caller is responsible for
// enabling that clock source in the clock tree.
func New(bus Bus, tree ClockTree, cal Calibration, clk ClockSource) *Adc {
	tree.PulseADCReset()
	tree.EnableADCClock()

	a := &Adc{bus: bus, tree: tree, cal: cal}
	a.bus.Write(regCFGR2, clk.ckMode()<<cfgr2CkModeShift)
	tree.SetADCSource(clk.mux())
	return a
}

// Adopt wraps an ADC peripheral that is already set up, without any
// initialization and without the single-owner guarantee that New
// provides.
//
// The caller guarantees exclusivity: no other code may touch the ADC
// registers while the returned driver is live, and the peripheral must
// already be configured correctly. Prefer New.
func Adopt(bus Bus, tree ClockTree, cal Calibration) *Adc {
	return &Adc{bus: bus, tree: tree, cal: cal}
}

// Release hands the register interface back to the caller and
// invalidates the driver. Any further method call on the receiver is a
// contract violation.
func (a *Adc) Release() Bus {
	bus := a.bus
	a.bus = nil
	return bus
}

// setBits read-modify-writes reg, setting bits.
func (a *Adc) setBits(reg Reg, bits uint32) {
	a.bus.Write(reg, a.bus.Read(reg)|bits)
}

// clearBits read-modify-writes reg, clearing bits.
func (a *Adc) clearBits(reg Reg, bits uint32) {
	a.bus.Write(reg, a.bus.Read(reg)&^bits)
}

// IsEnabled reports whether the ADC is enabled.
func (a *Adc) IsEnabled() bool {
	return a.bus.Read(regCR)&crADEN != 0
}

// IsDisabled reports whether the ADC is fully disabled: not enabled and
// no disable request still in flight.
func (a *Adc) IsDisabled() bool {
	return a.bus.Read(regCR)&(crADEN|crADDIS) == 0
}

// Enable enables the ADC and waits until it reports ready. No-op when
// the ADC is already enabled.
func (a *Adc) Enable() error {
	if a.IsEnabled() {
		return nil
	}
	// Clear a stale ready flag so the wait below observes this enable.
	a.bus.Write(regISR, FlagReady)
	a.setBits(regCR, crADEN)
	return a.Poll.Wait(func() bool {
		return a.bus.Read(regISR)&FlagReady != 0
	})
}

// StartDisable begins the ADC disable procedure and returns without
// waiting for it to finish; poll IsDisabled for completion. Any
// conversion in progress is stopped first (the only cancellable
// operation). No-op on an already disabled ADC.
func (a *Adc) StartDisable() error {
	// RM0453 section 18.3.4: stop any ongoing conversion with ADSTP and
	// wait for it to clear before requesting the disable.
	if a.bus.Read(regCR)&crADSTART != 0 {
		a.setBits(regCR, crADSTP)
		if err := a.Poll.Wait(func() bool {
			return a.bus.Read(regCR)&crADSTP == 0
		}); err != nil {
			return err
		}
	}
	// ADDIS only takes effect while ADEN=1 and ADSTART=0.
	if a.bus.Read(regCR)&crADEN != 0 {
		a.setBits(regCR, crADDIS)
	}
	return nil
}

// EnableVreg enables the ADC voltage regulator in preparation for
// calibration. The ADC is disabled first if it is not already, and DMA
// request generation is turned off as the calibration procedure
// requires.
//
// The regulator output is not valid until TAdcVregSetup after this call
// returns; the delay is not performed here.
func (a *Adc) EnableVreg() error {
	if err := a.StartDisable(); err != nil {
		return err
	}
	if err := a.Poll.Wait(a.IsDisabled); err != nil {
		return err
	}

	// Plain write: the calibration procedure requires every other
	// control field to be zero while the regulator starts.
	a.bus.Write(regCR, crADVREGEN)
	a.clearBits(regCFGR1, cfgr1DMAEN)
	return nil
}

// DisableVreg disables the ADC voltage regulator.
func (a *Adc) DisableVreg() {
	a.clearBits(regCR, crADVREGEN)
}

// StartCalibrate requests the ADC self-calibration and returns without
// waiting; completion is signalled by FlagCalibrationDone.
//
// Contract: the ADC is disabled and the voltage regulator is enabled
// (its startup delay elapsed).
func (a *Adc) StartCalibrate() {
	assert(a.bus.Read(regCR)&crADVREGEN != 0, "calibration without voltage regulator")
	assert(a.IsDisabled(), "calibration while enabled")
	a.bus.Write(regCR, crADCAL|crADVREGEN)
}

// Calibrate runs the full self-calibration sequence: regulator enable,
// startup delay, calibration, wait for completion. The delay function
// must block for at least the requested duration; pass time.Sleep on
// hosted targets.
//
// Calibration removes the chip-to-chip offset error and should run
// before conversions start. The resulting factor is lost when the ADC
// loses power or is reset.
func (a *Adc) Calibrate(delay func(time.Duration)) error {
	if err := a.EnableVreg(); err != nil {
		return err
	}
	delay(TAdcVregSetup)

	a.StartCalibrate()
	if err := a.Poll.Wait(func() bool {
		return a.bus.Read(regCR)&crADCAL == 0
	}); err != nil {
		return err
	}
	a.bus.Write(regISR, FlagCalibrationDone)
	return nil
}

// CalibrationFactor returns the 7-bit offset correction produced by the
// last calibration.
func (a *Adc) CalibrationFactor() uint8 {
	return uint8(a.bus.Read(regCALFACT) & calfactMask)
}

// Status returns the raw status flags (the Flag constants).
func (a *Adc) Status() uint32 {
	return a.bus.Read(regISR)
}

// ClearStatus acknowledges the given status flags. Bits outside the
// defined flags are masked off to keep reserved bits at their reset
// value.
func (a *Adc) ClearStatus(mask uint32) {
	a.bus.Write(regISR, mask&FlagAll)
}

// SetInterruptEnable selects which status flags raise the ADC interrupt.
// Masking of the interrupt line itself happens in the interrupt
// controller and is target code.
func (a *Adc) SetInterruptEnable(mask uint32) {
	a.bus.Write(regIER, mask&FlagAll)
}
