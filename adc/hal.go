package adc

// Bus is the word-level access to the ADC register file. The production
// implementation is a memory-mapped volatile register block in the
// target; tests substitute a fake with scripted hardware behavior.
type Bus interface {
	// Read returns the current value of a register.
	Read(reg Reg) uint32

	// Write stores a value to a register.
	Write(reg Reg, value uint32)
}

// ClockMux selects the upstream source for the asynchronous ADC clock in
// the clock-tree multiplexer.
type ClockMux uint8

const (
	MuxNone   ClockMux = 0 // no clock routed to the ADC
	MuxHSI16  ClockMux = 1 // 16 MHz internal RC oscillator
	MuxPLLP   ClockMux = 2 // PLL "P" output
	MuxSysClk ClockMux = 3 // system clock
)

// ClockTree is the RCC collaborator. The driver only queries configured
// frequencies and drives the ADC-specific enable, reset and mux fields;
// it never reconfigures the clock tree itself.
type ClockTree interface {
	// EnableADCClock gates the ADC bus clock on.
	EnableADCClock()

	// PulseADCReset asserts and releases the ADC peripheral reset.
	PulseADCReset()

	// SetADCSource routes an upstream clock to the ADC asynchronous
	// clock input. The caller is responsible for that source running.
	SetADCSource(mux ClockMux)

	// ADCSource reports the currently routed asynchronous clock source.
	ADCSource() ClockMux

	// PLLPHz reports the configured PLL "P" output frequency in hertz.
	PLLPHz() uint32

	// SysClkHz reports the configured system clock frequency in hertz.
	SysClkHz() uint32

	// PClkHz reports the configured peripheral bus clock frequency in
	// hertz.
	PClkHz() uint32
}

// Calibration provides the factory-programmed calibration constants from
// system flash.
type Calibration interface {
	// TsCal1 is the raw temperature sensor sample acquired at 30 °C.
	TsCal1() uint16

	// TsCal2 is the raw temperature sensor sample acquired at 130 °C.
	TsCal2() uint16

	// VrefCal is the raw internal voltage reference sample acquired at
	// 30 °C with VDDA = 3.3 V.
	VrefCal() uint16
}
