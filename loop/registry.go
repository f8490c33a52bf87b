package loop

import (
	"sync"

	"github.com/emirpasic/gods/trees/redblacktree"
)

// Registry is the ordered collection of loop records for one debug target.
//
// A reader/writer lock guards the backing tree: queries acquire it shared,
// mutations exclusive. Add resolves the module, runs the containment walk,
// and inserts all inside a single exclusive critical section, so two racing
// calls with intersecting ranges can never both succeed.
type Registry struct {
	sess Session
	mem  Memory
	mods Modules

	mu   sync.RWMutex
	tree *redblacktree.Tree // Key -> Record
}

// New returns an empty Registry wired to the host's session gate, memory
// prober, and module table. All three collaborators must be non-nil.
func New(sess Session, mem Memory, mods Modules) *Registry {
	return &Registry{
		sess: sess,
		mem:  mem,
		mods: mods,
		tree: redblacktree.NewWith(compareKeys),
	}
}

// Add registers the absolute, inclusive range [start, end] as a loop.
// manual records whether a user declared the range or analysis found it.
//
// Add reports false and mutates nothing when no session is active, when the
// range is inverted, when either bound is unreadable, when the bounds
// resolve to two different modules, or when the range intersects a stored
// loop of the same module without nesting strictly inside it. Otherwise the
// record is stored at the depth the containment walk resolved, with Parent
// set to the absolute start of the loop it nests inside.
func (r *Registry) Add(start, end uint64, manual bool) bool {
	if !r.sess.Active() {
		return false
	}
	if start > end {
		return false
	}
	if !r.mem.Readable(start) || !r.mem.Readable(end) {
		return false
	}

	base, _ := r.mods.BaseAt(start)
	endBase, _ := r.mods.BaseAt(end)
	if base != endBase {
		return false
	}
	name, _ := r.mods.NameAt(start)
	hash := r.mods.HashAt(base)

	rec := Record{
		Module: name,
		Start:  start - base,
		End:    end - base,
		Manual: manual,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	depth, conflict := r.resolveDepth(0, hash, rec.Start, rec.End)
	if conflict {
		return false
	}
	rec.Depth = depth
	if depth > 0 {
		probe := Key{Depth: depth - 1, Module: hash, Start: rec.Start, End: rec.Start}
		if v, ok := r.tree.Get(probe); ok {
			rec.Parent = base + v.(Record).Start
		}
	}

	r.tree.Put(Key{Depth: depth, Module: hash, Start: rec.Start, End: rec.End}, rec)
	return true
}

// resolveDepth runs the containment walk for a candidate range of one
// module: starting at from, the candidate descends one level each time a
// stored range strictly contains it, and at the first level with no strict
// container any remaining intersection is a conflict. Equal bounds are not
// containment, so an exact duplicate reports as a conflict rather than
// merging.
//
// The module hash is resolved once by the caller and reused at every level.
// The walk runs entirely inside the caller's hold of r.mu, in either mode;
// nothing here re-acquires the lock.
func (r *Registry) resolveDepth(from int, module uint64, start, end uint64) (depth int, conflict bool) {
	depth = from
	for {
		v, ok := r.tree.Get(Key{Depth: depth, Module: module, Start: start, End: end})
		if !ok {
			return depth, false
		}
		stored := v.(Record)
		if stored.Start < start && stored.End > end {
			depth++
			continue
		}
		return depth, true
	}
}

// Get reports the absolute bounds of the loop at depth whose range contains
// addr. Stored offsets are rebased against the owning module's current load
// base, so the result is correct even if the module relocated after the
// loop was recorded.
func (r *Registry) Get(depth int, addr uint64) (start, end uint64, ok bool) {
	if !r.sess.Active() {
		return 0, 0, false
	}

	base, _ := r.mods.BaseAt(addr)
	hash := r.mods.HashAt(base)
	rel := addr - base

	r.mu.RLock()
	defer r.mu.RUnlock()

	v, found := r.tree.Get(Key{Depth: depth, Module: hash, Start: rel, End: rel})
	if !found {
		return 0, 0, false
	}
	rec := v.(Record)
	return base + rec.Start, base + rec.End, true
}

// Overlaps reports whether the absolute range [start, end] would collide
// with a stored loop, along with the depth at which the range would nest.
// It is the query twin of Add's conflict scan: a range nesting strictly
// inside an existing loop descends a level instead of colliding. The walk
// starts at from rather than 0 so callers can resume below a known enclosing
// loop. Both bounds are interpreted inside the module containing start, and
// callers supply start <= end.
//
// With no session active, Overlaps reports no collision and echoes from
// back.
func (r *Registry) Overlaps(from int, start, end uint64) (conflict bool, depth int) {
	if !r.sess.Active() {
		return false, from
	}

	base, _ := r.mods.BaseAt(start)
	hash := r.mods.HashAt(base)

	r.mu.RLock()
	defer r.mu.RUnlock()

	depth, conflict = r.resolveDepth(from, hash, start-base, end-base)
	return conflict, depth
}

// Enumerate returns a copy of every stored record with offsets rebased to
// absolute addresses, ordered by depth, then module identity, then start.
// Records of modules that are not currently loaded keep their stored
// offsets (base 0).
func (r *Registry) Enumerate() []Record {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Record, 0, r.tree.Size())
	it := r.tree.Iterator()
	for it.Next() {
		out = append(out, r.rebase(it.Value().(Record)))
	}
	return out
}

// Walk calls fn for each stored record in Enumerate order until fn returns
// false. The registry lock is held shared for the duration; fn must not
// call back into the registry.
func (r *Registry) Walk(fn func(Record) bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	it := r.tree.Iterator()
	for it.Next() {
		if !fn(r.rebase(it.Value().(Record))) {
			return
		}
	}
}

// rebase translates a record's offsets to absolute addresses using the
// owning module's current base. Unloaded modules resolve to base 0, leaving
// the offsets as stored.
func (r *Registry) rebase(rec Record) Record {
	base, _ := r.mods.BaseOfName(rec.Module)
	rec.Start += base
	rec.End += base
	return rec
}

// Len returns the number of stored records.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tree.Size()
}

// Clear unconditionally empties the registry.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tree.Clear()
}

// Delete is unsupported: it always reports false and never mutates the
// registry. Removing a loop would need semantics for re-parenting and
// re-numbering the loops nested inside it, and none are defined.
func (r *Registry) Delete(depth int, addr uint64) bool {
	return false
}
