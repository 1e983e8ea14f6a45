// Package monitor interprets the telemetry records emitted by the ADC
// firmware and turns raw samples into engineering units, applying the
// same calibration model the firmware uses.
package monitor

import (
	"errors"
	"fmt"
	"strconv"

	"periph.io/x/conn/v3/physic"

	"wladc/adc"
	"wladc/stream"
)

var (
	// ErrUnknownRecord is returned for tags the monitor does not
	// understand; callers usually log and continue.
	ErrUnknownRecord = errors.New("monitor: unknown record tag")

	// ErrNoCalibration is returned when a temperature sample arrives
	// before the firmware has announced its calibration constants.
	ErrNoCalibration = errors.New("monitor: temperature sample before calibration record")
)

// Record tags emitted by the firmware.
const (
	TagCalibration = "CAL"  // calfact, ts_cal1, ts_cal2, vref_cal
	TagClock       = "CLK"  // sampling clock in Hz
	TagTemperature = "VTS"  // raw temperature sensor sample
	TagVref        = "VREF" // raw internal reference sample
	TagVbat        = "VBAT" // raw battery divider sample
)

// A Reading is one interpreted telemetry record.
type Reading struct {
	Tag  string
	Raw  uint16 // raw sample, zero for records that carry none
	Text string // human-readable interpretation
}

// Monitor accumulates firmware state from the record stream. Not safe
// for concurrent use; feed it from a single reader loop.
type Monitor struct {
	calfact    uint8
	cal1, cal2 uint16
	vrefCal    uint16
	haveCal    bool
	clockHz    uint32

	last map[string]Reading
}

// Calibrated reports whether a calibration record has been seen.
func (m *Monitor) Calibrated() bool { return m.haveCal }

// ClockHz returns the last announced sampling clock, 0 before the first
// clock record.
func (m *Monitor) ClockHz() uint32 { return m.clockHz }

// Last returns the most recent reading for a tag.
func (m *Monitor) Last(tag string) (Reading, bool) {
	r, ok := m.last[tag]
	return r, ok
}

// Handle interprets one record and updates the monitor state.
func (m *Monitor) Handle(rec stream.Record) (Reading, error) {
	reading, err := m.dispatch(rec)
	if err != nil {
		return Reading{}, err
	}
	if m.last == nil {
		m.last = make(map[string]Reading)
	}
	m.last[reading.Tag] = reading
	return reading, nil
}

func (m *Monitor) dispatch(rec stream.Record) (Reading, error) {
	switch rec.Tag {
	case TagCalibration:
		return m.handleCalibration(rec)
	case TagClock:
		return m.handleClock(rec)
	case TagTemperature:
		return m.handleTemperature(rec)
	case TagVref:
		return m.handleVref(rec)
	case TagVbat:
		return m.handleVbat(rec)
	}
	return Reading{}, fmt.Errorf("%w: %q", ErrUnknownRecord, rec.Tag)
}

func (m *Monitor) handleCalibration(rec stream.Record) (Reading, error) {
	if len(rec.Fields) != 4 {
		return Reading{}, fmt.Errorf("monitor: calibration record needs 4 fields, got %d", len(rec.Fields))
	}
	calfact, err := parseU16(rec.Fields[0])
	if err != nil {
		return Reading{}, err
	}
	cal1, err := parseU16(rec.Fields[1])
	if err != nil {
		return Reading{}, err
	}
	cal2, err := parseU16(rec.Fields[2])
	if err != nil {
		return Reading{}, err
	}
	vrefCal, err := parseU16(rec.Fields[3])
	if err != nil {
		return Reading{}, err
	}

	m.calfact = uint8(calfact)
	m.cal1 = cal1
	m.cal2 = cal2
	m.vrefCal = vrefCal
	m.haveCal = true

	return Reading{
		Tag:  rec.Tag,
		Text: fmt.Sprintf("calibration factor %d, temperature cells %d/%d, vref cell %d", calfact, cal1, cal2, vrefCal),
	}, nil
}

func (m *Monitor) handleClock(rec stream.Record) (Reading, error) {
	if len(rec.Fields) != 1 {
		return Reading{}, fmt.Errorf("monitor: clock record needs 1 field, got %d", len(rec.Fields))
	}
	hz, err := strconv.ParseUint(rec.Fields[0], 10, 32)
	if err != nil {
		return Reading{}, fmt.Errorf("monitor: bad clock field %q: %w", rec.Fields[0], err)
	}
	m.clockHz = uint32(hz)

	f := physic.Frequency(hz) * physic.Hertz
	return Reading{
		Tag:  rec.Tag,
		Text: fmt.Sprintf("sampling clock %s", f),
	}, nil
}

func (m *Monitor) handleTemperature(rec stream.Record) (Reading, error) {
	raw, err := singleRaw(rec)
	if err != nil {
		return Reading{}, err
	}
	if !m.haveCal {
		return Reading{}, ErrNoCalibration
	}
	temp := adc.TemperatureFromRaw(raw, m.calfact, m.cal1, m.cal2)
	return Reading{
		Tag:  rec.Tag,
		Raw:  raw,
		Text: fmt.Sprintf("junction temperature %.2f °C", temp.Float64()),
	}, nil
}

func (m *Monitor) handleVref(rec stream.Record) (Reading, error) {
	raw, err := singleRaw(rec)
	if err != nil {
		return Reading{}, err
	}
	text := fmt.Sprintf("internal reference %d counts", raw)
	if m.haveCal {
		text = fmt.Sprintf("internal reference %d counts (factory %d)", raw, m.vrefCal)
	}
	return Reading{Tag: rec.Tag, Raw: raw, Text: text}, nil
}

func (m *Monitor) handleVbat(rec stream.Record) (Reading, error) {
	raw, err := singleRaw(rec)
	if err != nil {
		return Reading{}, err
	}
	// The hardware samples the battery through a divide-by-3 bridge.
	return Reading{
		Tag:  rec.Tag,
		Raw:  raw,
		Text: fmt.Sprintf("battery %d counts (%d before divider)", raw, uint32(raw)*3),
	}, nil
}

func singleRaw(rec stream.Record) (uint16, error) {
	if len(rec.Fields) != 1 {
		return 0, fmt.Errorf("monitor: %s record needs 1 field, got %d", rec.Tag, len(rec.Fields))
	}
	return parseU16(rec.Fields[0])
}

func parseU16(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("monitor: bad sample field %q: %w", s, err)
	}
	return uint16(v), nil
}
