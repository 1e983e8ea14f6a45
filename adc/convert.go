package adc

// SelectChannel routes a single channel to the converter core and waits
// for the hardware to acknowledge the sequencer reconfiguration; a
// conversion may only start after that acknowledgement.
//
// Contract: ch is not one of the reserved channels 15/16.
func (a *Adc) SelectChannel(ch Channel) error {
	assert(ch.IsValid(), "reserved ADC channel selected")
	// Clear the previous acknowledgement so the wait below observes
	// this reconfiguration, then write the one-hot selection. Reserved
	// channel bits never reach the register.
	a.bus.Write(regISR, FlagChannelConfigReady)
	a.bus.Write(regCHSELR, ch.Mask()&ValidChannels)
	return a.Poll.Wait(func() bool {
		return a.bus.Read(regISR)&FlagChannelConfigReady != 0
	})
}

// convert triggers a single conversion on the selected channel and
// returns the raw result.
func (a *Adc) convert() (uint16, error) {
	a.setBits(regCR, crADSTART)
	return a.data()
}

// data waits for the end-of-conversion flag, reads the result and
// acknowledges the flag.
func (a *Adc) data() (uint16, error) {
	if err := a.Poll.Wait(func() bool {
		return a.bus.Read(regISR)&FlagEndOfConversion != 0
	}); err != nil {
		return 0, err
	}
	sample := uint16(a.bus.Read(regDR))
	a.bus.Write(regISR, FlagEndOfConversion)
	return sample, nil
}

// ReadPin samples an external input channel.
//
// Contract: the ADC is enabled and the pin behind the channel is
// configured as analog.
func (a *Adc) ReadPin(ch Channel) (uint16, error) {
	assert(a.IsEnabled(), "conversion on disabled ADC")
	if err := a.SelectChannel(ch); err != nil {
		return 0, err
	}
	return a.convert()
}

// ReadTemperatureRaw samples the junction temperature sensor channel
// without applying the calibration model. Most callers want
// Temperature.
//
// Contract: the ADC and the temperature sensor are enabled, the sensor
// startup time has elapsed, and the channel sample time is at least
// TsMinSample.
func (a *Adc) ReadTemperatureRaw() (uint16, error) {
	assert(a.IsEnabled(), "conversion on disabled ADC")
	assert(a.IsTempSensorEnabled(), "temperature read with sensor disabled")
	if err := a.SelectChannel(Vts); err != nil {
		return 0, err
	}
	return a.convert()
}

// ReadVref samples the internal voltage reference.
//
// Contract: the ADC and the internal reference are enabled.
func (a *Adc) ReadVref() (uint16, error) {
	assert(a.IsEnabled(), "conversion on disabled ADC")
	assert(a.IsVrefEnabled(), "reference read with reference disabled")
	if err := a.SelectChannel(Vref); err != nil {
		return 0, err
	}
	return a.convert()
}

// ReadVbat samples the battery voltage divider. The converted value is
// one third of the battery voltage; scaling back up is left to the
// caller.
//
// Contract: the ADC and the divider are enabled.
func (a *Adc) ReadVbat() (uint16, error) {
	assert(a.IsEnabled(), "conversion on disabled ADC")
	assert(a.IsVbatEnabled(), "battery read with divider disabled")
	if err := a.SelectChannel(Vbat); err != nil {
		return 0, err
	}
	return a.convert()
}

// ReadDacLoopback samples the DAC output channel. The DAC must be
// configured to drive chip peripherals for the sample to be meaningful.
//
// Contract: the ADC is enabled.
func (a *Adc) ReadDacLoopback() (uint16, error) {
	assert(a.IsEnabled(), "conversion on disabled ADC")
	if err := a.SelectChannel(Dac); err != nil {
		return 0, err
	}
	return a.convert()
}

// EnableTempSensor powers the junction temperature sensor. Samples are
// not accurate until TsStartMax after this call.
func (a *Adc) EnableTempSensor() {
	a.setBits(regCCR, ccrTSEN)
}

// DisableTempSensor powers the temperature sensor down.
func (a *Adc) DisableTempSensor() {
	a.clearBits(regCCR, ccrTSEN)
}

// IsTempSensorEnabled reports whether the temperature sensor is powered.
func (a *Adc) IsTempSensorEnabled() bool {
	return a.bus.Read(regCCR)&ccrTSEN != 0
}

// EnableVref connects the internal voltage reference to its channel.
func (a *Adc) EnableVref() {
	a.setBits(regCCR, ccrVREFEN)
}

// DisableVref disconnects the internal voltage reference.
func (a *Adc) DisableVref() {
	a.clearBits(regCCR, ccrVREFEN)
}

// IsVrefEnabled reports whether the internal reference is connected.
func (a *Adc) IsVrefEnabled() bool {
	return a.bus.Read(regCCR)&ccrVREFEN != 0
}

// EnableVbat connects the battery voltage bridge divider. The divider
// draws from the battery; keep it enabled only while converting.
func (a *Adc) EnableVbat() {
	a.setBits(regCCR, ccrVBATEN)
}

// DisableVbat disconnects the battery voltage divider.
func (a *Adc) DisableVbat() {
	a.clearBits(regCCR, ccrVBATEN)
}

// IsVbatEnabled reports whether the battery divider is connected.
func (a *Adc) IsVbatEnabled() bool {
	return a.bus.Read(regCCR)&ccrVBATEN != 0
}
