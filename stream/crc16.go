package stream

// CRC16 calculates the checksum protecting a record payload. The
// algorithm is the CCITT variant used by the serial bootloader tooling,
// so captures can be cross-checked with existing scripts.
func CRC16(data []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range data {
		b = b ^ uint8(crc&0xFF)
		b = b ^ (b << 4)
		b16 := uint16(b)
		crc = (b16<<8 | crc>>8) ^ (b16 >> 4) ^ (b16 << 3)
	}
	return crc
}
