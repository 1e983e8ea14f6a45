// Package stream frames telemetry records as checksummed ASCII lines:
//
//	$TAG,field1,field2*CCCC
//
// The checksum is the CRC16 of everything between '$' and '*', rendered
// as four uppercase hex digits. The format is readable in a raw serial
// capture and cheap enough to emit from firmware without fmt.
package stream

import "errors"

var (
	ErrFraming  = errors.New("stream: malformed record framing")
	ErrChecksum = errors.New("stream: checksum mismatch")
)

// A Record is one telemetry line: a tag naming the measurement and its
// fields. Tags and fields must not contain '$', '*', ',' or line breaks;
// the codec does not escape.
type Record struct {
	Tag    string
	Fields []string
}

const hexDigits = "0123456789ABCDEF"

// AppendRecord appends the framed record to dst, without a trailing
// newline, and returns the extended slice.
func AppendRecord(dst []byte, r Record) []byte {
	dst = append(dst, '$')
	start := len(dst)
	dst = append(dst, r.Tag...)
	for _, f := range r.Fields {
		dst = append(dst, ',')
		dst = append(dst, f...)
	}
	crc := CRC16(dst[start:])
	dst = append(dst, '*')
	dst = append(dst, hexDigits[crc>>12&0xF], hexDigits[crc>>8&0xF], hexDigits[crc>>4&0xF], hexDigits[crc&0xF])
	return dst
}

// String renders the framed record.
func (r Record) String() string {
	return string(AppendRecord(nil, r))
}

// Parse decodes one framed line. Leading and trailing CR/LF bytes are
// tolerated so raw serial lines can be fed in directly.
func Parse(line []byte) (Record, error) {
	for len(line) > 0 && (line[0] == '\r' || line[0] == '\n') {
		line = line[1:]
	}
	for len(line) > 0 && (line[len(line)-1] == '\r' || line[len(line)-1] == '\n') {
		line = line[:len(line)-1]
	}

	// Minimum frame: "$T*CCCC".
	if len(line) < 7 || line[0] != '$' || line[len(line)-5] != '*' {
		return Record{}, ErrFraming
	}
	payload := line[1 : len(line)-5]

	want, ok := parseHex16(line[len(line)-4:])
	if !ok {
		return Record{}, ErrFraming
	}
	if CRC16(payload) != want {
		return Record{}, ErrChecksum
	}

	comma := -1
	for i, c := range payload {
		if c == ',' {
			comma = i
			break
		}
	}
	if comma < 0 {
		if len(payload) == 0 {
			return Record{}, ErrFraming
		}
		return Record{Tag: string(payload)}, nil
	}
	if comma == 0 {
		return Record{}, ErrFraming
	}

	r := Record{Tag: string(payload[:comma])}
	rest := payload[comma+1:]
	for {
		i := 0
		for i < len(rest) && rest[i] != ',' {
			i++
		}
		r.Fields = append(r.Fields, string(rest[:i]))
		if i == len(rest) {
			return r, nil
		}
		rest = rest[i+1:]
	}
}

func parseHex16(s []byte) (uint16, bool) {
	if len(s) != 4 {
		return 0, false
	}
	var v uint16
	for _, c := range s {
		var d uint16
		switch {
		case c >= '0' && c <= '9':
			d = uint16(c - '0')
		case c >= 'A' && c <= 'F':
			d = uint16(c-'A') + 10
		case c >= 'a' && c <= 'f':
			d = uint16(c-'a') + 10
		default:
			return 0, false
		}
		v = v<<4 | d
	}
	return v, true
}

// AppendUint appends the decimal rendering of v to dst. Firmware uses
// this to build record fields without pulling in fmt.
func AppendUint(dst []byte, v uint32) []byte {
	if v == 0 {
		return append(dst, '0')
	}
	var buf [10]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return append(dst, buf[i:]...)
}

// AppendInt appends the decimal rendering of v to dst.
func AppendInt(dst []byte, v int32) []byte {
	if v < 0 {
		dst = append(dst, '-')
		return AppendUint(dst, uint32(-int64(v)))
	}
	return AppendUint(dst, uint32(v))
}
