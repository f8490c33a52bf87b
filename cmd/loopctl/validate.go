package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/loopkit/loop/verify"
)

var validateCheck string

func init() {
	cmd := newValidateCmd()
	cmd.Flags().StringVar(&validateCheck, "check", "all", "Which check to run (all, document, entries, nesting)")
	rootCmd.AddCommand(cmd)
}

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <document>",
		Short: "Validate the loop records in a document",
		Long: `The validate command checks the loop records in a debug database document
for the corruption the debugger's own loader would silently repair:
malformed hex literals, oversized module names, inverted ranges, ranges
intersecting at one depth, and nested ranges with no containing loop.

Checks:
  document - the partitions are well-formed arrays of objects
  entries  - every entry's fields decode strictly
  nesting  - range geometry is consistent across depths

Example:
  loopctl validate target.json
  loopctl validate target.json --check nesting
  loopctl validate target.json --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(args)
		},
	}
	return cmd
}

func runValidate(args []string) error {
	docPath := args[0]

	printVerbose("Validating document: %s\n", docPath)
	doc, err := readDocument(docPath)
	if err != nil {
		return err
	}

	var checkErr error
	switch validateCheck {
	case "all":
		checkErr = verify.AllChecks(doc)
	case "document":
		checkErr = verify.Document(doc)
	case "entries":
		checkErr = verify.Entries(doc)
	case "nesting":
		checkErr = verify.Nesting(doc)
	default:
		return fmt.Errorf("unknown check: %s (must be all, document, entries, or nesting)", validateCheck)
	}

	result := map[string]interface{}{
		"file":  docPath,
		"check": validateCheck,
		"valid": checkErr == nil,
	}
	if checkErr != nil {
		result["error"] = checkErr.Error()
	}

	if jsonOut {
		if err := printJSON(result); err != nil {
			return err
		}
		return checkErr
	}

	if checkErr != nil {
		printInfo("✗ %s: %v\n", docPath, checkErr)
		return checkErr
	}
	printInfo("✓ %s: loop records valid\n", docPath)
	return nil
}
