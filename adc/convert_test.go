package adc

import "testing"

func TestSelectChannel(t *testing.T) {
	a, bus, _ := newTestAdc()

	if err := a.SelectChannel(In4); err != nil {
		t.Fatalf("SelectChannel() error: %v", err)
	}
	if got := bus.Read(regCHSELR); got != In4.Mask() {
		t.Errorf("CHSELR = %#x, want %#x", got, In4.Mask())
	}
}

func TestSelectReservedChannelPanics(t *testing.T) {
	a, _, _ := newTestAdc()
	expectPanic(t, func() { a.SelectChannel(Channel(15)) })
	expectPanic(t, func() { a.SelectChannel(Channel(16)) })
}

func TestReadPin(t *testing.T) {
	a, bus, _ := newTestAdc()
	if err := a.Enable(); err != nil {
		t.Fatalf("Enable() error: %v", err)
	}
	bus.samples = []uint16{0x0ABC}

	got, err := a.ReadPin(In2)
	if err != nil {
		t.Fatalf("ReadPin() error: %v", err)
	}
	if got != 0x0ABC {
		t.Errorf("ReadPin() = %#x, want 0xABC", got)
	}
	if bus.Read(regCHSELR) != In2.Mask() {
		t.Errorf("CHSELR = %#x, want %#x", bus.Read(regCHSELR), In2.Mask())
	}
	if bus.Read(regISR)&FlagEndOfConversion != 0 {
		t.Error("end-of-conversion flag not acknowledged")
	}
}

func TestReadPinDisabledPanics(t *testing.T) {
	a, _, _ := newTestAdc()
	expectPanic(t, func() { a.ReadPin(In0) })
}

func TestInternalSourceEnables(t *testing.T) {
	a, _, _ := newTestAdc()

	if a.IsTempSensorEnabled() || a.IsVrefEnabled() || a.IsVbatEnabled() {
		t.Fatal("internal sources enabled at reset")
	}

	a.EnableTempSensor()
	a.EnableVref()
	a.EnableVbat()
	if !a.IsTempSensorEnabled() || !a.IsVrefEnabled() || !a.IsVbatEnabled() {
		t.Error("internal source enable bits not set")
	}

	a.DisableTempSensor()
	a.DisableVref()
	a.DisableVbat()
	if a.IsTempSensorEnabled() || a.IsVrefEnabled() || a.IsVbatEnabled() {
		t.Error("internal source enable bits not cleared")
	}
}

func TestInternalReadsRequireSourceEnabled(t *testing.T) {
	a, _, _ := newTestAdc()
	if err := a.Enable(); err != nil {
		t.Fatalf("Enable() error: %v", err)
	}

	expectPanic(t, func() { a.ReadTemperatureRaw() })
	expectPanic(t, func() { a.ReadVref() })
	expectPanic(t, func() { a.ReadVbat() })
}

func TestReadVref(t *testing.T) {
	a, bus, _ := newTestAdc()
	if err := a.Enable(); err != nil {
		t.Fatalf("Enable() error: %v", err)
	}
	a.EnableVref()
	bus.samples = []uint16{1655}

	got, err := a.ReadVref()
	if err != nil {
		t.Fatalf("ReadVref() error: %v", err)
	}
	if got != 1655 {
		t.Errorf("ReadVref() = %d, want 1655", got)
	}
	if bus.Read(regCHSELR) != Vref.Mask() {
		t.Errorf("CHSELR = %#x, want %#x", bus.Read(regCHSELR), Vref.Mask())
	}
}

func TestReadVbat(t *testing.T) {
	a, bus, _ := newTestAdc()
	if err := a.Enable(); err != nil {
		t.Fatalf("Enable() error: %v", err)
	}
	a.EnableVbat()
	bus.samples = []uint16{1234}

	got, err := a.ReadVbat()
	if err != nil {
		t.Fatalf("ReadVbat() error: %v", err)
	}
	if got != 1234 {
		t.Errorf("ReadVbat() = %d, want 1234", got)
	}
}

func TestReadDacLoopback(t *testing.T) {
	a, bus, _ := newTestAdc()
	if err := a.Enable(); err != nil {
		t.Fatalf("Enable() error: %v", err)
	}
	bus.samples = []uint16{2048}

	got, err := a.ReadDacLoopback()
	if err != nil {
		t.Fatalf("ReadDacLoopback() error: %v", err)
	}
	if got != 2048 {
		t.Errorf("ReadDacLoopback() = %d, want 2048", got)
	}
	if bus.Read(regCHSELR) != Dac.Mask() {
		t.Errorf("CHSELR = %#x, want %#x", bus.Read(regCHSELR), Dac.Mask())
	}
}
