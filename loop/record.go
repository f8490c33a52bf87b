package loop

// MaxModuleName is the longest module name the persisted document format
// accepts. Longer names load as the empty name.
const MaxModuleName = 255

// Record describes one tracked loop region.
//
// Start and End are offsets relative to the owning module's load base, and
// End is the last address inside the loop, not one past it. Records whose
// range lies outside every module carry an empty Module and offsets relative
// to base 0. Parent is the absolute start address of the containing loop as
// it was when the record was added; it is persisted verbatim and never
// rebased.
type Record struct {
	Module string // owning module name; "" when outside every module
	Start  uint64 // module-relative first address
	End    uint64 // module-relative last address
	Depth  int    // nesting level; 0 is outermost
	Parent uint64 // absolute start of the containing loop; 0 at depth 0
	Manual bool   // declared by a user rather than found by analysis
}

// Session reports whether a debug target is attached. Registry operations
// that answer questions about live addresses fail closed when no session is
// active.
type Session interface {
	Active() bool
}

// SessionFunc adapts a plain function to the Session interface.
type SessionFunc func() bool

// Active reports the result of calling f.
func (f SessionFunc) Active() bool { return f() }

// Memory answers point readability queries against the target address
// space.
type Memory interface {
	// Readable reports whether at least one byte at addr can be read.
	Readable(addr uint64) bool
}

// MemoryFunc adapts a plain function to the Memory interface.
type MemoryFunc func(addr uint64) bool

// Readable reports the result of calling f.
func (f MemoryFunc) Readable(addr uint64) bool { return f(addr) }

// Modules resolves addresses and names against the host's loaded-module
// table. The mod package provides a Table satisfying this contract.
type Modules interface {
	// BaseAt returns the load base of the module containing addr, or
	// 0, false when addr lies outside every module.
	BaseAt(addr uint64) (uint64, bool)

	// HashAt returns the identity hash of the module loaded at base.
	// Implementations must hash an unknown base, in particular base 0,
	// which the registry substitutes for unresolved addresses, as the
	// empty name, so that live keys agree with keys rebuilt from a saved
	// session.
	HashAt(base uint64) uint64

	// HashOfName returns the identity hash for a module name, loaded or
	// not. Load keys records through it because the owning module is
	// usually not mapped yet when a session database is read.
	HashOfName(name string) uint64

	// NameAt returns the display name of the module containing addr.
	NameAt(addr uint64) (string, bool)

	// BaseOfName returns the current load base for a module name, or
	// 0, false when it is not loaded. Enumeration rebases stored offsets
	// through it.
	BaseOfName(name string) (uint64, bool)
}
