//go:build stm32wlx

package main

import (
	"machine"
	"time"

	"wladc/adc"
	"wladc/stream"
)

// Telemetry period between sensor sweeps.
const sweepPeriod = time.Second

var conv *adc.Adc

func main() {
	machine.Serial.Configure(machine.UARTConfig{BaudRate: 115200})

	// Route driver diagnostics to the console as comment lines so the
	// host's record parser skips them.
	adc.SetDiagWriter(func(s string) {
		print("# ", s, "\r\n")
	})

	enableHSI16()
	conv = adc.New(mmioBus{}, rccTree{}, flashCal{}, adc.ClkHSI16)

	if err := conv.Calibrate(time.Sleep); err != nil {
		fatal(err)
	}
	if err := conv.Enable(); err != nil {
		fatal(err)
	}

	// The temperature sensor needs the longest sample time; apply it to
	// every channel since this firmware is in no hurry.
	conv.SetMaxSampleTime()

	conv.EnableTempSensor()
	conv.EnableVref()
	conv.EnableVbat()
	time.Sleep(adc.TsStartMax)

	emitCalibration()
	emitClock()

	for {
		sweep()
		time.Sleep(sweepPeriod)
	}
}

// sweep samples each internal channel once and emits a record per
// sample.
func sweep() {
	raw, err := conv.ReadTemperatureRaw()
	if err != nil {
		fatal(err)
	}
	emitSample("VTS", raw)

	raw, err = conv.ReadVref()
	if err != nil {
		fatal(err)
	}
	emitSample("VREF", raw)

	raw, err = conv.ReadVbat()
	if err != nil {
		fatal(err)
	}
	emitSample("VBAT", raw)
}

func emitCalibration() {
	cal := flashCal{}
	r := stream.Record{
		Tag: "CAL",
		Fields: []string{
			string(stream.AppendUint(nil, uint32(conv.CalibrationFactor()))),
			string(stream.AppendUint(nil, uint32(cal.TsCal1()))),
			string(stream.AppendUint(nil, uint32(cal.TsCal2()))),
			string(stream.AppendUint(nil, uint32(cal.VrefCal()))),
		},
	}
	emit(r)
}

func emitClock() {
	emit(stream.Record{
		Tag:    "CLK",
		Fields: []string{string(stream.AppendUint(nil, conv.ClockHz()))},
	})
}

func emitSample(tag string, raw uint16) {
	emit(stream.Record{
		Tag:    tag,
		Fields: []string{string(stream.AppendUint(nil, uint32(raw)))},
	})
}

func emit(r stream.Record) {
	line := stream.AppendRecord(nil, r)
	line = append(line, '\r', '\n')
	machine.Serial.Write(line)
}

func fatal(err error) {
	print("# fatal: ", err.Error(), "\r\n")
	for {
		time.Sleep(time.Second)
	}
}
