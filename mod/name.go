package mod

import (
	"bytes"
	"unicode/utf16"

	"golang.org/x/text/encoding/charmap"
)

// DecodeName converts a module name read out of target memory into a Go
// string. Loader structures store names NUL-terminated, so decoding stops at
// the first NUL; everything after it is ignored. Wide names are UTF-16LE,
// narrow names are ANSI (Windows-1252).
func DecodeName(raw []byte, wide bool) string {
	if wide {
		return decodeUTF16LE(raw)
	}
	if i := bytes.IndexByte(raw, 0); i >= 0 {
		raw = raw[:i]
	}
	// Fast path: ASCII needs no decoding (same bytes in Windows-1252 and UTF-8)
	if isASCII(raw) {
		return string(raw)
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}

func isASCII(data []byte) bool {
	for _, b := range data {
		if b >= 0x80 {
			return false
		}
	}
	return true
}

// decodeUTF16LE decodes little-endian code units up to the first NUL. A
// trailing odd byte is ignored.
func decodeUTF16LE(raw []byte) string {
	units := make([]uint16, 0, len(raw)/2)
	for i := 0; i+1 < len(raw); i += 2 {
		u := uint16(raw[i]) | uint16(raw[i+1])<<8
		if u == 0 {
			break
		}
		units = append(units, u)
	}
	if len(units) == 0 {
		return ""
	}
	return string(utf16.Decode(units))
}
