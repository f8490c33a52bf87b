package mod

import "testing"

func TestDecodeNameNarrow(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
		want string
	}{
		{"plain ascii", []byte("ntdll.dll\x00"), "ntdll.dll"},
		{"no terminator", []byte("user32.dll"), "user32.dll"},
		{"junk after nul", []byte("a.dll\x00\xff\xfe garbage"), "a.dll"},
		{"empty", []byte{0}, ""},
		{"nil", nil, ""},
		{"windows-1252 e acute", []byte{'c', 0xE9, '.', 'd', 'l', 'l', 0}, "cé.dll"},
		{"windows-1252 euro", []byte{0x80, 0}, "€"},
	}

	for _, tt := range tests {
		if got := DecodeName(tt.raw, false); got != tt.want {
			t.Errorf("%s: DecodeName(%v, false) = %q, want %q", tt.name, tt.raw, got, tt.want)
		}
	}
}

func TestDecodeNameWide(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
		want string
	}{
		{"ascii wide", []byte{'k', 0, '3', 0, '2', 0, 0, 0}, "k32"},
		{"junk after nul", []byte{'a', 0, 0, 0, 'z', 0}, "a"},
		{"empty", []byte{0, 0}, ""},
		{"nil", nil, ""},
		{"odd trailing byte", []byte{'x', 0, 'y'}, "x"},
		{"non-ascii", []byte{0x3B, 0x04, 0, 0}, "л"},
	}

	for _, tt := range tests {
		if got := DecodeName(tt.raw, true); got != tt.want {
			t.Errorf("%s: DecodeName(%v, true) = %q, want %q", tt.name, tt.raw, got, tt.want)
		}
	}
}
