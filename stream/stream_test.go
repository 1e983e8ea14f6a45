package stream

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRoundTrip(t *testing.T) {
	testCases := []Record{
		{Tag: "VTS", Fields: []string{"1503", "57"}},
		{Tag: "VREF", Fields: []string{"1655"}},
		{Tag: "CAL", Fields: []string{"10", "1400", "1800"}},
		{Tag: "PING"},
		{Tag: "RAW", Fields: []string{"", "0", ""}},
	}

	for _, want := range testCases {
		line := AppendRecord(nil, want)
		got, err := Parse(line)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", line, err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Parse(%q) mismatch (-want +got):\n%s", line, diff)
		}
	}
}

func TestParseToleratesLineEndings(t *testing.T) {
	line := AppendRecord(nil, Record{Tag: "VBAT", Fields: []string{"900"}})
	line = append(line, '\r', '\n')

	got, err := Parse(line)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if got.Tag != "VBAT" {
		t.Errorf("Tag = %q, want VBAT", got.Tag)
	}
}

func TestParseRejectsCorruption(t *testing.T) {
	line := AppendRecord(nil, Record{Tag: "VTS", Fields: []string{"1503"}})

	// Flip one payload byte; the checksum must catch it.
	line[2] ^= 0x01
	if _, err := Parse(line); !errors.Is(err, ErrChecksum) {
		t.Errorf("Parse(corrupted) error = %v, want ErrChecksum", err)
	}
}

func TestParseRejectsBadFraming(t *testing.T) {
	bad := []string{
		"",
		"VTS,1503*ABCD",  // missing '$'
		"$VTS,1503",      // missing checksum
		"$VTS,1503*AB",   // short checksum
		"$VTS,1503*WXYZ", // non-hex checksum
	}
	for _, s := range bad {
		if _, err := Parse([]byte(s)); !errors.Is(err, ErrFraming) {
			t.Errorf("Parse(%q) error = %v, want ErrFraming", s, err)
		}
	}

	// An empty tag frames correctly and checksums correctly but is still
	// not a valid record.
	noTag := AppendRecord(nil, Record{Fields: []string{"1503"}})
	if _, err := Parse(noTag); !errors.Is(err, ErrFraming) {
		t.Errorf("Parse(%q) error = %v, want ErrFraming", noTag, err)
	}
}

func TestChecksumRendering(t *testing.T) {
	line := string(AppendRecord(nil, Record{Tag: "T"}))
	want := CRC16([]byte("T"))

	got, ok := parseHex16([]byte(line[len(line)-4:]))
	if !ok || got != want {
		t.Errorf("rendered checksum %q does not round-trip to %#04x", line[len(line)-4:], want)
	}
}

func TestAppendUint(t *testing.T) {
	testCases := []struct {
		v    uint32
		want string
	}{
		{0, "0"},
		{7, "7"},
		{4095, "4095"},
		{4294967295, "4294967295"},
	}
	for _, tc := range testCases {
		if got := string(AppendUint(nil, tc.v)); got != tc.want {
			t.Errorf("AppendUint(%d) = %q, want %q", tc.v, got, tc.want)
		}
	}
}

func TestAppendInt(t *testing.T) {
	testCases := []struct {
		v    int32
		want string
	}{
		{0, "0"},
		{57, "57"},
		{-70, "-70"},
		{-2147483648, "-2147483648"},
	}
	for _, tc := range testCases {
		if got := string(AppendInt(nil, tc.v)); got != tc.want {
			t.Errorf("AppendInt(%d) = %q, want %q", tc.v, got, tc.want)
		}
	}
}
