package adc

// Reg is a word offset into the ADC register file. Bus implementations
// translate it to a memory-mapped address.
type Reg uint32

// Register file layout, RM0453 section 18.
const (
	regISR     Reg = 0x000 // interrupt and status
	regIER     Reg = 0x004 // interrupt enable
	regCR      Reg = 0x008 // control
	regCFGR1   Reg = 0x00C // configuration 1
	regCFGR2   Reg = 0x010 // configuration 2 (clock mode)
	regSMPR    Reg = 0x014 // sampling time
	regCHSELR  Reg = 0x028 // channel selection
	regDR      Reg = 0x040 // data
	regCALFACT Reg = 0x0B4 // calibration factor
	regCCR     Reg = 0x308 // common configuration
)

// Control register bits.
const (
	crADEN     uint32 = 1 << 0  // enable
	crADDIS    uint32 = 1 << 1  // disable request
	crADSTART  uint32 = 1 << 2  // start conversion
	crADSTP    uint32 = 1 << 4  // stop conversion request
	crADVREGEN uint32 = 1 << 28 // voltage regulator enable
	crADCAL    uint32 = 1 << 31 // calibration start
)

// Configuration register 1 bits.
const (
	cfgr1DMAEN uint32 = 1 << 0 // DMA request generation
)

// Clock mode field, configuration register 2 bits 31:30.
const (
	cfgr2CkModeShift      = 30
	ckModeAsync    uint32 = 0b00 // asynchronous ADC clock, prescaler applies
	ckModePClkDiv2 uint32 = 0b01
	ckModePClkDiv4 uint32 = 0b10
	ckModePClk     uint32 = 0b11
)

// Common configuration register fields.
const (
	ccrPrescShift        = 18 // prescaler, bits 21:18
	ccrPrescMask  uint32 = 0xF << ccrPrescShift
	ccrVREFEN     uint32 = 1 << 22 // internal voltage reference enable
	ccrTSEN       uint32 = 1 << 23 // temperature sensor enable
	ccrVBATEN     uint32 = 1 << 24 // battery voltage divider enable
)

// calfactMask selects the 7-bit calibration factor in the CALFACT register.
const calfactMask uint32 = 0x7F

// Status flags in the ISR register. The same bit positions enable the
// matching interrupts in the IER register.
const (
	FlagReady              uint32 = 1 << 0  // ADC ready
	FlagEndOfSampling      uint32 = 1 << 1  // end of sampling phase
	FlagEndOfConversion    uint32 = 1 << 2  // end of conversion
	FlagEndOfSequence      uint32 = 1 << 3  // end of conversion sequence
	FlagOverrun            uint32 = 1 << 4  // data overrun
	FlagWatchdog1          uint32 = 1 << 7  // analog watchdog 1
	FlagWatchdog2          uint32 = 1 << 8  // analog watchdog 2
	FlagWatchdog3          uint32 = 1 << 9  // analog watchdog 3
	FlagCalibrationDone    uint32 = 1 << 11 // end of calibration
	FlagChannelConfigReady uint32 = 1 << 13 // channel configuration applied

	// FlagAll covers every defined status flag.
	FlagAll = FlagReady | FlagEndOfSampling | FlagEndOfConversion |
		FlagEndOfSequence | FlagOverrun | FlagWatchdog1 | FlagWatchdog2 |
		FlagWatchdog3 | FlagCalibrationDone | FlagChannelConfigReady
)
