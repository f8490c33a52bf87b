package loop

// Key locates one stored range in the registry's ordered index. Start and
// End are module-relative offsets with inclusive bounds. Module is the
// stable identity hash of the owning module, not its load base, so keys
// survive relocation between sessions.
type Key struct {
	Depth  int
	Module uint64
	Start  uint64
	End    uint64
}

// Compare orders keys by depth, then module, then range position. Range
// position compares overlap-as-equal: two ranges that intersect at all,
// whether touching, partially overlapping, or nested, compare equal.
//
// This is a valid strict weak ordering only because the registry never
// stores two intersecting ranges under one (depth, module); nesting lives at
// other depths. Equality is thereby reserved for probes: a probe with
// Start == End finds the stored range containing that point, and a wider
// probe finds a stored range intersecting it, both in logarithmic time.
func Compare(a, b Key) int {
	if a.Depth != b.Depth {
		if a.Depth < b.Depth {
			return -1
		}
		return 1
	}
	if a.Module != b.Module {
		if a.Module < b.Module {
			return -1
		}
		return 1
	}
	if a.End < b.Start {
		return -1
	}
	if a.Start > b.End {
		return 1
	}
	return 0
}

// compareKeys adapts Compare to the comparator signature the backing tree
// expects.
func compareKeys(a, b any) int {
	return Compare(a.(Key), b.(Key))
}
