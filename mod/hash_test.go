package mod

import "testing"

func TestHashFoldsCase(t *testing.T) {
	tests := []struct {
		a, b string
	}{
		{"ntdll.dll", "NTDLL.DLL"},
		{"Kernel32.dll", "kernel32.DLL"},
		{"a", "A"},
		{"", ""},
	}

	for _, tt := range tests {
		if Hash(tt.a) != Hash(tt.b) {
			t.Errorf("Hash(%q) != Hash(%q), want equal", tt.a, tt.b)
		}
	}
}

func TestHashDistinguishesNames(t *testing.T) {
	names := []string{"", "ntdll.dll", "kernel32.dll", "user32.dll", "a", "b"}

	seen := make(map[uint64]string)
	for _, name := range names {
		h := Hash(name)
		if prev, ok := seen[h]; ok {
			t.Errorf("Hash(%q) collides with Hash(%q): %#x", name, prev, h)
		}
		seen[h] = name
	}
}

// Persisted documents store keys derived from these values; they must never
// change across releases.
func TestHashStability(t *testing.T) {
	tests := []struct {
		in   string
		want uint64
	}{
		{"", 0xcbf29ce484222325},
		{"a", 0xaf63dc4c8601ec8c},
		{"A", 0xaf63dc4c8601ec8c},
		{"foobar", 0x85944171f73967e8},
	}

	for _, tt := range tests {
		if got := Hash(tt.in); got != tt.want {
			t.Errorf("Hash(%q) = %#x, want %#x", tt.in, got, tt.want)
		}
	}
}
