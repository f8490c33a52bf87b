package loop

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/joshuapare/loopkit/internal/format"
)

// Keys within the host's debug database document, one sequence per origin.
const (
	manualKey = "loops"
	autoKey   = "autoloops"
)

// ErrInvalidDocument indicates the host document is not a JSON object.
var ErrInvalidDocument = errors.New("loop: host document is not a JSON object")

// entry is the persisted form of one record. Addresses are hex literals so
// full 64-bit values survive readers that decode JSON numbers as float64.
// The origin flag is not stored; the sequence an entry sits in carries it.
type entry struct {
	Module string `json:"module"`
	Start  string `json:"start"`
	End    string `json:"end"`
	Depth  int    `json:"depth"`
	Parent string `json:"parent"`
}

// Save merges the registry's records into doc, the JSON document the host
// keeps its per-target debug data in, and returns the updated document.
// Records are partitioned by origin: manual records under "loops", analysis
// records under "autoloops". A partition with no records is removed from the
// document rather than written as an empty array, so a round trip of an
// empty registry leaves no trace. Every unrelated key in doc is preserved.
//
// A nil or empty doc is treated as an empty JSON object.
func (r *Registry) Save(doc []byte) ([]byte, error) {
	if len(doc) == 0 {
		doc = []byte("{}")
	}
	if !gjson.ValidBytes(doc) || !gjson.ParseBytes(doc).IsObject() {
		return nil, ErrInvalidDocument
	}

	var manual, auto []entry
	r.mu.RLock()
	it := r.tree.Iterator()
	for it.Next() {
		rec := it.Value().(Record)
		e := entry{
			Module: rec.Module,
			Start:  format.FormatAddr(rec.Start),
			End:    format.FormatAddr(rec.End),
			Depth:  rec.Depth,
			Parent: format.FormatAddr(rec.Parent),
		}
		if rec.Manual {
			manual = append(manual, e)
		} else {
			auto = append(auto, e)
		}
	}
	r.mu.RUnlock()

	var err error
	if doc, err = setPartition(doc, manualKey, manual); err != nil {
		return nil, err
	}
	if doc, err = setPartition(doc, autoKey, auto); err != nil {
		return nil, err
	}
	return doc, nil
}

// setPartition writes one origin's entries under key, or removes the key
// when there are none, clearing leftovers from an earlier save.
func setPartition(doc []byte, key string, entries []entry) ([]byte, error) {
	if len(entries) == 0 {
		out, err := sjson.DeleteBytes(doc, key)
		if err != nil {
			return nil, fmt.Errorf("loop: removing %q: %w", key, err)
		}
		return out, nil
	}
	out, err := sjson.SetBytes(doc, key, entries)
	if err != nil {
		return nil, fmt.Errorf("loop: writing %q: %w", key, err)
	}
	return out, nil
}

// Load replaces the registry's contents with the records persisted in doc.
//
// Decoding is deliberately lenient because documents written by older tools,
// and hand-edited ones, occur in the wild: a missing, non-string, or
// over-long module name loads as the empty name; missing or unparsable hex
// scalars load as 0; and entries whose end precedes their start are dropped
// without failing the rest. When two entries collide on one key, the first
// decoded wins, and the manual partition decodes first, so a manual record
// beats an automatic duplicate.
//
// Records are keyed by the name-based module hash because the owning module
// is usually not mapped yet when a session database is read.
//
// A nil or empty doc, or one missing both partitions, just clears the
// registry. A doc that is not a JSON object fails with ErrInvalidDocument
// before anything is cleared.
func (r *Registry) Load(doc []byte) error {
	if len(doc) == 0 {
		doc = []byte("{}")
	}
	if !gjson.ValidBytes(doc) || !gjson.ParseBytes(doc).IsObject() {
		return ErrInvalidDocument
	}

	manual := gjson.GetBytes(doc, manualKey)
	auto := gjson.GetBytes(doc, autoKey)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.tree.Clear()
	r.loadPartition(manual, true)
	r.loadPartition(auto, false)
	return nil
}

// loadPartition decodes one origin's entries into the tree. Caller holds
// r.mu exclusively.
func (r *Registry) loadPartition(arr gjson.Result, manual bool) {
	if !arr.IsArray() {
		return
	}
	arr.ForEach(func(_, item gjson.Result) bool {
		rec := Record{Manual: manual}

		if name := item.Get("module"); name.Type == gjson.String && len(name.Str) <= MaxModuleName {
			rec.Module = name.Str
		}
		rec.Start = lenientAddr(item.Get("start"))
		rec.End = lenientAddr(item.Get("end"))
		if d := item.Get("depth"); d.Type == gjson.Number {
			rec.Depth = int(d.Int())
		}
		rec.Parent = lenientAddr(item.Get("parent"))

		// Corrupt or legacy entry; skip it and keep loading.
		if rec.End < rec.Start {
			return true
		}

		key := Key{Depth: rec.Depth, Module: r.mods.HashOfName(rec.Module), Start: rec.Start, End: rec.End}
		if _, exists := r.tree.Get(key); !exists {
			r.tree.Put(key, rec)
		}
		return true
	})
}

// lenientAddr decodes a hex scalar, defaulting to 0 on any shape or syntax
// failure the way the original database readers did.
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
