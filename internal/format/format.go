// Package format converts addresses to and from the hex literals used in
// persisted debug database documents.
//
// Addresses travel as strings like "0x401000" rather than JSON numbers so
// the full 64-bit range survives readers that decode numbers as float64.
// Writing always emits the "0x" prefix and lowercase digits; parsing accepts
// "0x", "0X", or no prefix, so hand-edited documents keep loading.
package format

import (
	"errors"
	"strconv"
)

var (
	// ErrEmptyAddr indicates an address literal with no digits.
	ErrEmptyAddr = errors.New("format: empty address literal")
	// ErrBadAddr indicates an address literal with non-hex characters.
	ErrBadAddr = errors.New("format: malformed address literal")
)

// FormatAddr renders addr as a prefixed lowercase hex literal, e.g.
// "0x401000". Zero renders as "0x0".
func FormatAddr(addr uint64) string {
	return "0x" + strconv.FormatUint(addr, 16)
}

// ParseAddr decodes a hex address literal. The "0x"/"0X" prefix is
// optional.
func ParseAddr(s string) (uint64, error) {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	if s == "" {
		return 0, ErrEmptyAddr
	}
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, ErrBadAddr
	}
	return v, nil
}
