package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/loopkit/internal/format"
	"github.com/joshuapare/loopkit/loop"
	"github.com/joshuapare/loopkit/mod"
)

var (
	dumpModule string
	dumpDepth  int
	dumpOrigin string
)

func init() {
	cmd := newDumpCmd()
	cmd.Flags().StringVar(&dumpModule, "module", "", "Dump only records of this module")
	cmd.Flags().IntVar(&dumpDepth, "depth", -1, "Dump only records at this depth (-1 = all)")
	cmd.Flags().StringVar(&dumpOrigin, "origin", "all", "Dump only records of this origin (all, manual, auto)")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <document>",
		Short: "List the loop records in a document",
		Long: `The dump command lists every loop record persisted in a debug database
document, ordered by depth, module, and start offset.

Example:
  loopctl dump target.json
  loopctl dump target.json --module main.exe
  loopctl dump target.json --origin manual
  loopctl dump target.json --depth 0 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}
	return cmd
}

// LoopEntry is one record as presented to the user. Offsets stay
// module-relative: no target is attached, so there is no base to rebase
// against.
type LoopEntry struct {
	Module string `json:"module"`
	Start  string `json:"start"`
	End    string `json:"end"`
	Depth  int    `json:"depth"`
	Parent string `json:"parent"`
	Origin string `json:"origin"`
}

func runDump(args []string) error {
	docPath := args[0]
	if dumpOrigin != "all" && dumpOrigin != "manual" && dumpOrigin != "auto" {
		return fmt.Errorf("unknown origin: %s (must be all, manual, or auto)", dumpOrigin)
	}

	printVerbose("Reading document: %s\n", docPath)
	doc, err := readDocument(docPath)
	if err != nil {
		return err
	}

	reg, err := loadRegistry(doc)
	if err != nil {
		return err
	}

	var entries []LoopEntry
	reg.Walk(func(rec loop.Record) bool {
		if dumpModule != "" && rec.Module != dumpModule {
			return true
		}
		if dumpDepth >= 0 && rec.Depth != dumpDepth {
			return true
		}
		origin := "auto"
		if rec.Manual {
			origin = "manual"
		}
		if dumpOrigin != "all" && origin != dumpOrigin {
			return true
		}
		entries = append(entries, LoopEntry{
			Module: rec.Module,
			Start:  format.FormatAddr(rec.Start),
			End:    format.FormatAddr(rec.End),
			Depth:  rec.Depth,
			Parent: format.FormatAddr(rec.Parent),
			Origin: origin,
		})
		return true
	})

	if jsonOut {
		return printJSON(entries)
	}

	if len(entries) == 0 {
		printInfo("No loop records.\n")
		return nil
	}
	for _, e := range entries {
		name := e.Module
		if name == "" {
			name = "<no module>"
		}
		indent := ""
		for i := 0; i < e.Depth; i++ {
			indent += "  "
		}
		printInfo("%s[%s, %s]  %s  depth=%d  parent=%s  (%s)\n",
			indent, e.Start, e.End, name, e.Depth, e.Parent, e.Origin)
	}
	printInfo("\n%d record(s)\n", len(entries))
	return nil
}

// loadRegistry decodes a document's loop records into a detached registry.
// The registry gets inert session and memory collaborators; load and
// enumeration never consult them.
func loadRegistry(doc []byte) (*loop.Registry, error) {
	reg := loop.New(
		loop.SessionFunc(func() bool { return false }),
		loop.MemoryFunc(func(uint64) bool { return false }),
		mod.NewTable(),
	)
	if err := reg.Load(doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return reg, nil
}
