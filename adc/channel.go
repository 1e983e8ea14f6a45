package adc

// Channel identifies an ADC input channel.
//
// Channels 0-11 are routed to external pins, 12-14 and 17 to internal
// sources. Channels 15 and 16 are reserved by the hardware and never
// valid.
type Channel uint8

const (
	In0  Channel = 0
	In1  Channel = 1
	In2  Channel = 2
	In3  Channel = 3
	In4  Channel = 4
	In5  Channel = 5
	In6  Channel = 6
	In7  Channel = 7
	In8  Channel = 8
	In9  Channel = 9
	In10 Channel = 10
	In11 Channel = 11

	// Vts is the junction temperature sensor.
	Vts Channel = 12
	// Vref is the internal voltage reference.
	Vref Channel = 13
	// Vbat is the battery voltage divided by 3.
	Vbat Channel = 14
	// Dac is the digital to analog converter loopback. The DAC outputs
	// to this internal channel only when configured to drive chip
	// peripherals.
	Dac Channel = 17
)

// ValidChannels is the mask of all valid channels: 0-14 and 17, without
// the reserved 15 and 16.
const ValidChannels uint32 = 0x27FFF

// Mask returns the one-hot channel selection bitmask.
func (c Channel) Mask() uint32 {
	return 1 << uint32(c)
}

// IsValid reports whether the channel exists on the hardware.
func (c Channel) IsValid() bool {
	return c <= 17 && c.Mask()&ValidChannels != 0
}
