package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

var (
	stripAutoOnly   bool
	stripManualOnly bool
	stripOutput     string
)

func init() {
	cmd := newStripCmd()
	cmd.Flags().BoolVar(&stripAutoOnly, "auto-only", false, "Strip only analysis-found records")
	cmd.Flags().BoolVar(&stripManualOnly, "manual-only", false, "Strip only user-declared records")
	cmd.Flags().StringVarP(&stripOutput, "output", "o", "", "Write result here instead of in place")
	rootCmd.AddCommand(cmd)
}

func newStripCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strip <document>",
		Short: "Remove loop records from a document",
		Long: `The strip command removes the persisted loop records from a debug
database document. Every other key in the document is left untouched.
By default both sequences go; --auto-only discards analysis results
while keeping user-declared loops, and --manual-only does the reverse.

Example:
  loopctl strip target.json
  loopctl strip target.json --auto-only
  loopctl strip target.json -o cleaned.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStrip(args)
		},
	}
	return cmd
}

func runStrip(args []string) error {
	docPath := args[0]
	if stripAutoOnly && stripManualOnly {
		return fmt.Errorf("--auto-only and --manual-only are mutually exclusive")
	}

	printVerbose("Reading document: %s\n", docPath)
	doc, err := readDocument(docPath)
	if err != nil {
		return err
	}
	if !gjson.ValidBytes(doc) || !gjson.ParseBytes(doc).IsObject() {
		return fmt.Errorf("document is not a JSON object")
	}

	removed := 0
	strip := func(key string) error {
		arr := gjson.GetBytes(doc, key)
		if !arr.Exists() {
			return nil
		}
		if arr.IsArray() {
			removed += len(arr.Array())
		}
		doc, err = sjson.DeleteBytes(doc, key)
		if err != nil {
			return fmt.Errorf("failed to remove %q: %w", key, err)
		}
		return nil
	}

	if !stripAutoOnly {
		if err := strip("loops"); err != nil {
			return err
		}
	}
	if !stripManualOnly {
		if err := strip("autoloops"); err != nil {
			return err
		}
	}

	outPath := stripOutput
	if outPath == "" {
		outPath = docPath
	}
	printVerbose("Writing document: %s\n", outPath)
	if err := os.WriteFile(outPath, doc, 0o644); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"file":    outPath,
			"removed": removed,
		})
	}
	printInfo("Removed %d record(s), wrote %s\n", removed, outPath)
	return nil
}
