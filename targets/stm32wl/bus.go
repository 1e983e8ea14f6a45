//go:build stm32wlx

package main

import (
	"runtime/volatile"
	"unsafe"

	"wladc/adc"
)

// STM32WL peripheral memory map
const (
	adcBase = 0x40012400

	rccBase     = 0x58000000
	rccCR       = rccBase + 0x000 // Clock control (HSION bit 8, HSIRDY bit 10)
	rccAPB2RSTR = rccBase + 0x040 // APB2 peripheral reset (ADC bit 9)
	rccAPB2ENR  = rccBase + 0x060 // APB2 peripheral clock enable (ADC bit 9)
	rccCCIPR    = rccBase + 0x088 // Peripheral clock selection (ADCSEL bits 29:28)

	rccHSION       = 1 << 8
	rccHSIRDY      = 1 << 10
	rccADCEN       = 1 << 9
	rccADCRST      = 1 << 9
	rccADCSELShift = 28
	rccADCSELMask  = 0x3 << rccADCSELShift

	// Factory calibration cells in system flash.
	tsCal1Addr  = 0x1FFF75A8
	vrefCalAddr = 0x1FFF75AA
	tsCal2Addr  = 0x1FFF75C8

	// Cortex-M NVIC set/clear enable registers.
	nvicISER = 0xE000E100
	nvicICER = 0xE000E180

	adcIRQ = 18
)

func reg32(addr uintptr) *volatile.Register32 {
	return (*volatile.Register32)(unsafe.Pointer(addr))
}

func reg16(addr uintptr) *volatile.Register16 {
	return (*volatile.Register16)(unsafe.Pointer(addr))
}

// mmioBus maps the ADC register file directly.
type mmioBus struct{}

func (mmioBus) Read(r adc.Reg) uint32 {
	return reg32(adcBase + uintptr(r)).Get()
}

func (mmioBus) Write(r adc.Reg, value uint32) {
	reg32(adcBase + uintptr(r)).Set(value)
}

// rccTree routes the ADC clock through the reset and clock controller.
// The demo firmware runs from the reset clock configuration: MSI at
// 4MHz feeding SYSCLK and PCLK, HSI16 available for the ADC, PLL off.
type rccTree struct{}

func (rccTree) EnableADCClock() {
	reg32(rccAPB2ENR).SetBits(rccADCEN)
	// Dummy readback so the enable settles before the first access.
	reg32(rccAPB2ENR).Get()
}

func (rccTree) PulseADCReset() {
	reg32(rccAPB2RSTR).SetBits(rccADCRST)
	reg32(rccAPB2RSTR).ClearBits(rccADCRST)
}

func (rccTree) SetADCSource(m adc.ClockMux) {
	reg32(rccCCIPR).ReplaceBits(uint32(m)<<rccADCSELShift, rccADCSELMask, 0)
}

func (rccTree) ADCSource() adc.ClockMux {
	return adc.ClockMux(reg32(rccCCIPR).Get() >> rccADCSELShift & 0x3)
}

func (rccTree) PLLPHz() uint32 { return 0 }

func (rccTree) SysClkHz() uint32 { return 4_000_000 }

func (rccTree) PClkHz() uint32 { return 4_000_000 }

// enableHSI16 turns the 16MHz internal oscillator on and waits for it
// to stabilize.
func enableHSI16() {
	reg32(rccCR).SetBits(rccHSION)
	for reg32(rccCR).Get()&rccHSIRDY == 0 {
	}
}

// flashCal reads the factory calibration cells from system flash.
type flashCal struct{}

func (flashCal) TsCal1() uint16  { return reg16(tsCal1Addr).Get() }
func (flashCal) TsCal2() uint16  { return reg16(tsCal2Addr).Get() }
func (flashCal) VrefCal() uint16 { return reg16(vrefCalAddr).Get() }

// enableADCIRQ unmasks the ADC interrupt in the NVIC. The demo polls,
// but interrupt driven integrations pair this with SetInterruptEnable.
func enableADCIRQ() {
	reg32(nvicISER + (adcIRQ/32)*4).Set(1 << (adcIRQ % 32))
}

// disableADCIRQ masks the ADC interrupt in the NVIC.
func disableADCIRQ() {
	reg32(nvicICER + (adcIRQ/32)*4).Set(1 << (adcIRQ % 32))
}
