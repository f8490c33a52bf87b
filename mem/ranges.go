// Package mem answers point readability queries against a debug target's
// address space.
//
// Two probers are provided. Ranges works from an explicit list of readable
// spans, which suits snapshot and minidump targets as well as tests. Process
// asks the kernel about a live pid. Both satisfy the memory surface the loop
// registry consumes.
package mem

// Ranges is a prober over a declared set of readable spans. The zero value
// is ready to use and reports nothing readable. Populate the set before
// sharing it; Allow is not safe to call concurrently with Readable.
type Ranges struct {
	spans []span
}

type span struct {
	start, end uint64 // inclusive
}

// Allow marks every address in [start, end] readable. Inverted spans are
// ignored.
func (r *Ranges) Allow(start, end uint64) {
	if end < start {
		return
	}
	r.spans = append(r.spans, span{start, end})
}

// Readable reports whether addr falls inside an allowed span.
func (r *Ranges) Readable(addr uint64) bool {
	for _, s := range r.spans {
		if addr >= s.start && addr <= s.end {
			return true
		}
	}
	return false
}
