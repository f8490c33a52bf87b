// Package testutil provides canned debug-target fixtures shared by tests.
package testutil

import (
	"testing"

	"github.com/joshuapare/loopkit/mem"
	"github.com/joshuapare/loopkit/mod"
)

// Session is a switchable session gate for tests. It satisfies the session
// surface the loop registry consumes.
type Session struct {
	Attached bool
}

// Active reports whether the fake target is attached.
func (s *Session) Active() bool { return s.Attached }

// Canonical test target layout.
const (
	MainBase   = 0x00400000
	MainSize   = 0x00010000
	HelperBase = 0x7FF00000
	HelperSize = 0x00002000

	// ScratchBase is a readable region owned by no module, for exercising
	// module-less ranges.
	ScratchBase = 0x30000000
	ScratchSize = 0x00001000
)

// SetupTarget returns an attached session, a memory prober, and a module
// table describing the canonical test target:
//
//	main.exe    base 0x00400000  size 0x10000
//	helper.dll  base 0x7ff00000  size 0x02000
//	(scratch)   base 0x30000000  size 0x01000   readable, no module
//
// Memory covers the two modules and the scratch region exactly.
func SetupTarget(t *testing.T) (*Session, *mem.Ranges, *mod.Table) {
	t.Helper()

	sess := &Session{Attached: true}

	var ranges mem.Ranges
	ranges.Allow(MainBase, MainBase+MainSize-1)
	ranges.Allow(HelperBase, HelperBase+HelperSize-1)
	ranges.Allow(ScratchBase, ScratchBase+ScratchSize-1)

	table := mod.NewTable()
	table.Put("main.exe", MainBase, MainSize)
	table.Put("helper.dll", HelperBase, HelperSize)

	return sess, &ranges, table
}
