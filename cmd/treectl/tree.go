package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/nodetree/tree/outline"
	"github.com/joshuapare/nodetree/tree/printer"
)

var (
	treeDepth   int
	treeTypes   bool
	treeHandles bool
	treeCounts  bool
	treeCompact bool
)

func init() {
	cmd := newTreeCmd()
	cmd.Flags().IntVar(&treeDepth, "depth", 0, "Maximum depth (0 = unlimited)")
	cmd.Flags().BoolVar(&treeTypes, "types", false, "Show node types")
	cmd.Flags().BoolVar(&treeHandles, "handles", false, "Show node handles")
	cmd.Flags().BoolVar(&treeCounts, "counts", false, "Show children counts")
	cmd.Flags().BoolVar(&treeCompact, "compact", false, "Compact output")
	rootCmd.AddCommand(cmd)
}

func newTreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree <outline> [path]",
		Short: "Display tree structure",
		Long: `The tree command prints the tree below a node, one line per node.

Example:
  treectl tree house.json
  treectl tree house.json /ground --depth 2 --counts
  treectl tree house.json --json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(args)
		},
	}
	return cmd
}

func runTree(args []string) error {
	t, err := loadTree(args[0])
	if err != nil {
		return err
	}
	defer t.Close()

	h, err := outline.Resolve(t, pathArg(args, 1))
	if err != nil {
		return err
	}

	opts := printer.DefaultOptions()
	opts.MaxDepth = treeDepth
	opts.ShowTypes = treeTypes
	opts.ShowHandles = treeHandles
	opts.ShowCounts = treeCounts
	if jsonOut {
		opts.Format = printer.FormatJSON
	}
	if treeCompact {
		opts.IndentSize = 1
	}

	if err := printer.New(t, os.Stdout, opts).PrintTree(h); err != nil {
		return fmt.Errorf("failed to display tree: %w", err)
	}
	return nil
}
