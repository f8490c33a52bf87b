package mod

// FNV-1a, 64-bit variant.
const (
	hashOffset64 = 14695981039346656037
	hashPrime64  = 1099511628211
)

// Hash returns the stable identity hash for a module name.
//
// ASCII upper case is folded before mixing, so "NTDLL.DLL" and "ntdll.dll"
// share one identity the same way the loader treats them as one image. The
// result depends only on the name, never on the load base, which is what
// lets a record written in one session resolve in a later session where the
// module relocated. Persisted documents depend on this value staying stable;
// do not change the algorithm.
func Hash(name string) uint64 {
	h := uint64(hashOffset64)
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		h ^= uint64(c)
		h *= hashPrime64
	}
	return h
}
