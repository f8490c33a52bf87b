// Package verify checks the structural invariants of persisted loop data
// inside a debug database document. The registry's Load is deliberately
// lenient (it zeroes bad scalars and drops inverted ranges), so these
// helpers exist for tests and tooling that want corruption reported instead
// of repaired.
package verify

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/joshuapare/loopkit/internal/format"
	"github.com/joshuapare/loopkit/loop"
)

// Partition keys inside the host document.
const (
	manualKey = "loops"
	autoKey   = "autoloops"
)

// ValidationError describes the first failed check in a document.
type ValidationError struct {
	Check   string // which validation failed
	Index   int    // entry index within its partition, or -1 for document-level
	Message string
}

func (e *ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s at entry %d: %s", e.Check, e.Index, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Check, e.Message)
}

// AllChecks runs every validation in order and returns the first failure,
// or nil if the document is clean.
func AllChecks(doc []byte) error {
	if err := Document(doc); err != nil {
		return err
	}
	if err := Entries(doc); err != nil {
		return err
	}
	return Nesting(doc)
}

// Document validates that doc is a JSON object and that the loop
// partitions, when present, are arrays of objects.
func Document(doc []byte) error {
	if !gjson.ValidBytes(doc) || !gjson.ParseBytes(doc).IsObject() {
		return &ValidationError{
			Check:   "Document",
			Index:   -1,
			Message: "not a JSON object",
		}
	}
	for _, key := range []string{manualKey, autoKey} {
		part := gjson.GetBytes(doc, key)
		if !part.Exists() {
			continue
		}
		if !part.IsArray() {
			return &ValidationError{
				Check:   "Document",
				Index:   -1,
				Message: fmt.Sprintf("%q is not an array", key),
			}
		}
		for i, item := range part.Array() {
			if !item.IsObject() {
				return &ValidationError{
					Check:   "Document",
					Index:   i,
					Message: fmt.Sprintf("%q entry is not an object", key),
				}
			}
		}
	}
	return nil
}

// Entries validates each entry's fields: start, end, and parent must be hex
// address literals, depth a non-negative integer, the module name a string
// within the length limit, and end must not precede start. Load would
// silently zero or skip all of these; Entries reports them.
func Entries(doc []byte) error {
	for _, key := range []string{manualKey, autoKey} {
		arr := gjson.GetBytes(doc, key)
		if !arr.IsArray() {
			continue
		}
		for i, item := range arr.Array() {
			if err := checkEntry(key, i, item); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkEntry(key string, index int, item gjson.Result) error {
	fail := func(msg string, args ...any) error {
		return &ValidationError{
			Check:   "Entries",
			Index:   index,
			Message: key + ": " + fmt.Sprintf(msg, args...),
		}
	}

	if m := item.Get("module"); m.Exists() {
		if m.Type != gjson.String {
			return fail("module is not a string")
		}
		if len(m.Str) > loop.MaxModuleName {
			return fail("module name exceeds %d bytes", loop.MaxModuleName)
		}
	}

	start, err := hexField(item, "start")
	if err != nil {
		return fail("start %v", err)
	}
	end, err := hexField(item, "end")
	if err != nil {
		return fail("end %v", err)
	}
	if _, err := hexField(item, "parent"); err != nil {
		return fail("parent %v", err)
	}

	d := item.Get("depth")
	switch {
	case !d.Exists() || d.Type != gjson.Number:
		return fail("depth is not a number")
	case d.Num != math.Trunc(d.Num):
		return fail("depth %v is not an integer", d.Num)
	case d.Int() < 0:
		return fail("negative depth %d", d.Int())
	}

	if end < start {
		return fail("end %s precedes start %s", format.FormatAddr(end), format.FormatAddr(start))
	}
	return nil
}

func hexField(item gjson.Result, name string) (uint64, error) {
	v := item.Get(name)
	if !v.Exists() {
		return 0, fmt.Errorf("is missing")
	}
	if v.Type != gjson.String {
		return 0, fmt.Errorf("is not a hex string")
	}
	addr, err := format.ParseAddr(v.Str)
	if err != nil {
		return 0, fmt.Errorf("literal %q: %w", v.Str, err)
	}
	return addr, nil
}

// level identifies one (depth, module) plane of ranges. Modules group by
// lowercased name, the same fold the identity hash applies.
type level struct {
	depth  int64
	module string
}

// rangeAt is one decoded range, positioned for error reporting.
type rangeAt struct {
	key        string
	index      int
	start, end uint64
}

// Nesting validates the geometry across the whole document: ranges at one
// (depth, module) never intersect, and every range below depth 0 nests
// strictly inside a range one level up in the same module. Scalars decode
// with Load's lenient rules, so Nesting runs even on documents Entries
// rejects. An identical range persisted in both partitions is reported as
// an intersection, since Load would silently drop one of the two.
func Nesting(doc []byte) error {
	levels := make(map[level][]rangeAt)

	for _, key := range []string{manualKey, autoKey} {
		arr := gjson.GetBytes(doc, key)
		if !arr.IsArray() {
			continue
		}
		for i, item := range arr.Array() {
			r := rangeAt{
				key:   key,
				index: i,
				start: lenientAddr(item.Get("start")),
				end:   lenientAddr(item.Get("end")),
			}
			if r.end < r.start {
				continue // Load drops these; Entries reports them
			}
			lvl := level{module: moduleFold(item)}
			if d := item.Get("depth"); d.Type == gjson.Number {
				lvl.depth = d.Int()
			}
			levels[lvl] = append(levels[lvl], r)
		}
	}

	for lvl, ranges := range levels {
		sort.Slice(ranges, func(i, j int) bool { return ranges[i].start < ranges[j].start })
		for i := 1; i < len(ranges); i++ {
			if ranges[i].start <= ranges[i-1].end {
				return &ValidationError{
					Check: "Nesting",
					Index: ranges[i].index,
					Message: fmt.Sprintf("%s: [%s, %s] intersects [%s, %s] at depth %d of module %q",
						ranges[i].key,
						format.FormatAddr(ranges[i].start), format.FormatAddr(ranges[i].end),
						format.FormatAddr(ranges[i-1].start), format.FormatAddr(ranges[i-1].end),
						lvl.depth, lvl.module),
				}
			}
		}
	}

	for lvl, ranges := range levels {
		if lvl.depth <= 0 {
			continue
		}
		parents := levels[level{depth: lvl.depth - 1, module: lvl.module}]
		for _, r := range ranges {
			if !hasStrictContainer(parents, r) {
				return &ValidationError{
					Check: "Nesting",
					Index: r.index,
					Message: fmt.Sprintf("%s: [%s, %s] at depth %d of module %q has no container at depth %d",
						r.key, format.FormatAddr(r.start), format.FormatAddr(r.end),
						lvl.depth, lvl.module, lvl.depth-1),
				}
			}
		}
	}
	return nil
}

func hasStrictContainer(parents []rangeAt, r rangeAt) bool {
	for _, p := range parents {
		if p.start < r.start && p.end > r.end {
			return true
		}
	}
	return false
}

func moduleFold(item gjson.Result) string {
	if m := item.Get("module"); m.Type == gjson.String && len(m.Str) <= loop.MaxModuleName {
		return strings.ToLower(m.Str)
	}
	return ""
}

func lenientAddr(v gjson.Result) uint64 {
	if v.Type != gjson.String {
		return 0
	}
	addr, err := format.ParseAddr(v.Str)
	if err != nil {
		return 0
	}
	return addr
}
