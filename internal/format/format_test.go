package format

import (
	"errors"
	"testing"
)

func TestFormatAddr(t *testing.T) {
	tests := []struct {
		addr uint64
		want string
	}{
		{0, "0x0"},
		{0x401000, "0x401000"},
		{0xDEADBEEF, "0xdeadbeef"},
		{0xFFFFFFFFFFFFFFFF, "0xffffffffffffffff"},
	}
	for _, tt := range tests {
		if got := FormatAddr(tt.addr); got != tt.want {
			t.Errorf("FormatAddr(%#x) = %q, want %q", tt.addr, got, tt.want)
		}
	}
}

func TestParseAddr(t *testing.T) {
	tests := []struct {
		in      string
		want    uint64
		wantErr error
	}{
		{"0x401000", 0x401000, nil},
		{"0X401000", 0x401000, nil},
		{"401000", 0x401000, nil},
		{"0x0", 0, nil},
		{"DEADBEEF", 0xDEADBEEF, nil},
		{"0xffffffffffffffff", 0xFFFFFFFFFFFFFFFF, nil},
		{"", 0, ErrEmptyAddr},
		{"0x", 0, ErrEmptyAddr},
		{"junk", 0, ErrBadAddr},
		{"0xg1", 0, ErrBadAddr},
		{"-0x10", 0, ErrBadAddr},
		{"0x10000000000000000", 0, ErrBadAddr}, // 65 bits
	}
	for _, tt := range tests {
		got, err := ParseAddr(tt.in)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("ParseAddr(%q) error = %v, want %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAddr(%q) = %#x, want %#x", tt.in, got, tt.want)
		}
	}
}

func TestAddrRoundTrip(t *testing.T) {
	for _, addr := range []uint64{0, 1, 0x1000, 0x7FF00000, 0xFFFFFFFFFFFFFFFF} {
		got, err := ParseAddr(FormatAddr(addr))
		if err != nil {
			t.Fatalf("ParseAddr(FormatAddr(%#x)): %v", addr, err)
		}
		if got != addr {
			t.Errorf("round trip of %#x = %#x", addr, got)
		}
	}
}
