package main

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/joshuapare/loopkit/loop"
)

func init() {
	rootCmd.AddCommand(newStatsCmd())
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <document>",
		Short: "Show loop record statistics",
		Long: `The stats command summarizes the loop records in a debug database
document: how many are user-declared versus analysis-found, how they
distribute over modules and nesting depths, and the deepest nesting seen.

Example:
  loopctl stats target.json
  loopctl stats target.json --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(args)
		},
	}
	return cmd
}

type LoopStats struct {
	Total    int            `json:"total"`
	Manual   int            `json:"manual"`
	Auto     int            `json:"auto"`
	MaxDepth int            `json:"max_depth"`
	ByModule map[string]int `json:"by_module"`
	ByDepth  map[int]int    `json:"by_depth"`
}

func runStats(args []string) error {
	docPath := args[0]

	printVerbose("Reading document: %s\n", docPath)
	doc, err := readDocument(docPath)
	if err != nil {
		return err
	}

	reg, err := loadRegistry(doc)
	if err != nil {
		return err
	}

	stats := LoopStats{
		ByModule: make(map[string]int),
		ByDepth:  make(map[int]int),
	}
	reg.Walk(func(rec loop.Record) bool {
		stats.Total++
		if rec.Manual {
			stats.Manual++
		} else {
			stats.Auto++
		}
		stats.ByModule[rec.Module]++
		stats.ByDepth[rec.Depth]++
		if rec.Depth > stats.MaxDepth {
			stats.MaxDepth = rec.Depth
		}
		return true
	})

	if jsonOut {
		return printJSON(stats)
	}

	printInfo("Loop records in %s:\n\n", docPath)
	printInfo("  Total:   %d\n", stats.Total)
	printInfo("  Manual:  %d\n", stats.Manual)
	printInfo("  Auto:    %d\n", stats.Auto)
	if stats.Total == 0 {
		return nil
	}
	printInfo("  Deepest: %d\n", stats.MaxDepth)

	printInfo("\nBy module:\n")
	modules := make([]string, 0, len(stats.ByModule))
	for name := range stats.ByModule {
		modules = append(modules, name)
	}
	sort.Strings(modules)
	for _, name := range modules {
		display := name
		if display == "" {
			display = "<no module>"
		}
		printInfo("  %-24s %d\n", display, stats.ByModule[name])
	}

	printInfo("\nBy depth:\n")
	for d := 0; d <= stats.MaxDepth; d++ {
		if n, ok := stats.ByDepth[d]; ok {
			printInfo("  depth %-2d  %d\n", d, n)
		}
	}
	return nil
}
