// Package mod tracks the modules loaded in a debug target and resolves
// addresses to the module containing them.
//
// The debugger host feeds a Table from its module load and unload events.
// The loop registry consumes it through a narrow lookup surface: containing
// module resolution for new ranges, stable name hashes for index keys, and
// name-to-base lookups for rebasing persisted records once their module is
// mapped again.
package mod

import (
	"strings"
	"sync"

	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/emirpasic/gods/utils"
)

// Info describes one loaded module.
type Info struct {
	Name string // display name, e.g. "ntdll.dll"
	Base uint64 // load base address
	Size uint64 // mapped size in bytes
}

// Table is a registry of loaded modules ordered by base address. Name
// lookups are case-insensitive, matching how the target's loader treats
// image names. All methods are safe for concurrent use.
type Table struct {
	mu     sync.RWMutex
	byBase *redblacktree.Tree // uint64 base -> *Info
	byName map[string]*Info   // lowercased name -> *Info
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{
		byBase: redblacktree.NewWith(utils.UInt64Comparator),
		byName: make(map[string]*Info),
	}
}

// Put registers a module. A module already registered at base is replaced,
// and a stale registration of the same name at a different base is dropped
// first, so a reloaded module never appears twice.
func (t *Table) Put(name string, base, size uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	lower := strings.ToLower(name)
	if prev, ok := t.byName[lower]; ok && prev.Base != base {
		t.byBase.Remove(prev.Base)
	}
	if v, found := t.byBase.Get(base); found {
		if old := v.(*Info); !strings.EqualFold(old.Name, name) {
			delete(t.byName, strings.ToLower(old.Name))
		}
	}
	info := &Info{Name: name, Base: base, Size: size}
	t.byBase.Put(base, info)
	t.byName[lower] = info
}

// Remove drops the module registered at base. Unknown bases are a no-op.
func (t *Table) Remove(base uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	v, found := t.byBase.Get(base)
	if !found {
		return
	}
	t.byBase.Remove(base)
	lower := strings.ToLower(v.(*Info).Name)
	if cur, ok := t.byName[lower]; ok && cur.Base == base {
		delete(t.byName, lower)
	}
}

// at returns the module whose mapped span contains addr. Caller holds t.mu.
func (t *Table) at(addr uint64) (*Info, bool) {
	node, found := t.byBase.Floor(addr)
	if !found {
		return nil, false
	}
	info := node.Value.(*Info)
	if addr-info.Base >= info.Size {
		return nil, false
	}
	return info, true
}

// BaseAt returns the load base of the module containing addr, or 0, false
// when addr lies outside every module.
func (t *Table) BaseAt(addr uint64) (uint64, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	info, ok := t.at(addr)
	if !ok {
		return 0, false
	}
	return info.Base, true
}

// NameAt returns the display name of the module containing addr.
func (t *Table) NameAt(addr uint64) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	info, ok := t.at(addr)
	if !ok {
		return "", false
	}
	return info.Name, true
}

// HashAt returns the identity hash of the module loaded at base. A base
// with no loaded module hashes as the empty name, so keys built from
// unresolved addresses agree with keys rebuilt from a saved session.
func (t *Table) HashAt(base uint64) uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if v, found := t.byBase.Get(base); found {
		return Hash(v.(*Info).Name)
	}
	return Hash("")
}

// HashOfName returns the identity hash for name, whether or not such a
// module is loaded.
func (t *Table) HashOfName(name string) uint64 {
	return Hash(name)
}

// BaseOfName returns the current load base of the named module, or 0, false
// when no module of that name is loaded. The lookup is case-insensitive.
func (t *Table) BaseOfName(name string) (uint64, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	info, ok := t.byName[strings.ToLower(name)]
	if !ok {
		return 0, false
	}
	return info.Base, true
}

// Len returns the number of registered modules.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.byBase.Size()
}

// Bases returns the load bases of all registered modules in ascending
// order.
func (t *Table) Bases() []uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]uint64, 0, t.byBase.Size())
	it := t.byBase.Iterator()
	for it.Next() {
		out = append(out, it.Key().(uint64))
	}
	return out
}
