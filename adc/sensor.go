package adc

import "wladc/ratio"

// Temperatures at which the factory captured the two calibration
// samples.
const (
	tsCal1Temp     = 30
	tsCal2Temp     = 130
	tsCalTempDelta = tsCal2Temp - tsCal1Temp
)

// TemperatureFromRaw converts a raw temperature sensor sample to degrees
// Celsius using the two-point factory calibration model:
//
//	corrected = raw + calfact
//	slope     = (130 - 30) / (cal2 - cal1)
//	temp      = slope*(corrected - cal1) + 30
//
// The calibration factor is added saturating at the 16-bit register
// width. Subtractions of calibration constants wrap at 16 bits and are
// then reinterpreted as signed, matching how the constants are stored.
func TemperatureFromRaw(raw uint16, calfact uint8, cal1, cal2 uint16) ratio.Ratio {
	corrected := raw + uint16(calfact)
	if corrected < raw {
		corrected = 0xFFFF
	}
	slope := ratio.New(tsCalTempDelta, int64(int16(cal2-cal1)))
	return slope.MulInt(int64(int16(corrected - cal1))).AddInt(tsCal1Temp)
}

// Temperature samples the junction temperature sensor and returns the
// calibrated temperature in degrees Celsius as an exact ratio; truncate
// with Trunc for a whole-degree reading.
//
// The factory calibration samples were captured with the offset
// correction applied, so the calibration factor from Calibrate is added
// to the raw sample before the linear model.
//
// Contract: same as ReadTemperatureRaw.
func (a *Adc) Temperature() (ratio.Ratio, error) {
	raw, err := a.ReadTemperatureRaw()
	if err != nil {
		return ratio.Ratio{}, err
	}
	return TemperatureFromRaw(raw, a.CalibrationFactor(), a.cal.TsCal1(), a.cal.TsCal2()), nil
}

// VrefCal returns the factory calibration sample for the internal
// voltage reference, for comparison against ReadVref.
func (a *Adc) VrefCal() uint16 {
	return a.cal.VrefCal()
}
