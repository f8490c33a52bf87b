// Package loop tracks the loop regions a debugger discovers, or a user
// declares, inside the modules of a debug target.
//
// # Overview
//
// A loop is an inclusive address range [start, end] owned by one module.
// Loops nest: a range lying strictly inside another loop of the same module
// sits one depth below it, with depth 0 outermost. Ranges at the same depth
// of the same module never intersect; a candidate that would partially
// overlap an existing loop is rejected rather than stored. The package
// maintains this registry, answers point and range queries against it, and
// persists it into the host's per-target debug database.
//
// # Key Types
//
//   - Registry: the ordered collection of loop records for one target
//   - Record: one loop region, stored module-relative
//   - Key: the (depth, module hash, range) index key and its ordering
//   - Session, Memory, Modules: the narrow host surfaces the registry
//     consumes, satisfied by the mod and mem packages or by host types
//
// # Addressing
//
// Records store offsets relative to the owning module's load base, never
// absolute addresses. A target restart that relocates a module does not
// invalidate its loops: queries rebase stored offsets against the module's
// current base at the boundary, and the index keys carry a stable name hash
// rather than the base itself. Ranges outside every module are kept relative
// to base 0.
//
// # Ordering
//
// The backing container is an ordered tree whose range comparison treats any
// two intersecting ranges as equal. Because stored ranges at one (depth,
// module) are always pairwise disjoint, equality is left to probes: looking
// up [addr, addr] finds the loop containing addr in logarithmic time with no
// interval tree. Compare documents the exact rules.
//
// # Typical Use
//
//	reg := loop.New(sess, mem, mods)
//
//	if reg.Add(0x401000, 0x401fff, true) {
//		start, end, _ := reg.Get(0, 0x401800)
//		// start == 0x401000, end == 0x401fff
//	}
//
//	doc, err := reg.Save(prevDoc) // merge into the host's database document
//
// # Thread Safety
//
// All Registry methods are safe for concurrent use. Queries run under a
// shared lock; Add, Clear, and Load run under an exclusive lock, and Add
// performs its conflict scan and insert in one critical section so racing
// inserts cannot both claim an overlapping range.
//
// # Related Packages
//
//   - github.com/joshuapare/loopkit/mod: loaded-module table and name hash
//   - github.com/joshuapare/loopkit/mem: target memory readability probes
//   - github.com/joshuapare/loopkit/loop/verify: persisted document checks
package loop
