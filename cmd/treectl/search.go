package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/nodetree/pkg/types"
	"github.com/joshuapare/nodetree/tree/handler"
	"github.com/joshuapare/nodetree/tree/outline"
)

var (
	searchExact         bool
	searchLeaves        bool
	searchCaseSensitive bool
	searchTypes         []uint
)

func init() {
	cmd := newSearchCmd()
	cmd.Flags().BoolVar(&searchExact, "exact", false, "Match whole names")
	cmd.Flags().BoolVar(&searchLeaves, "leaves", false, "Only match nodes without children")
	cmd.Flags().BoolVar(&searchCaseSensitive, "case-sensitive", false, "Do not fold case")
	cmd.Flags().UintSliceVar(&searchTypes, "type", nil, "Only match these node types")
	rootCmd.AddCommand(cmd)
}

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <outline> <text>",
		Short: "Find nodes by name",
		Long: `The search command prints the path of every node whose name contains
the text, in pre-order. Matching ignores case unless --case-sensitive is set.

Example:
  treectl search house.json room
  treectl search house.json kitchen --exact
  treectl search house.json "" --leaves --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(args)
		},
	}
}

func searchFilter(text string) handler.Filter {
	f := handler.Filter{Text: text}
	if searchExact {
		f.Flags |= handler.FlagExact
	}
	if searchLeaves {
		f.Flags |= handler.FlagLeaves
	}
	if searchCaseSensitive {
		f.Flags |= handler.FlagCaseSensitive
	}
	for _, typ := range searchTypes {
		f.Types = append(f.Types, types.NodeType(typ))
	}
	return f
}

func runSearch(args []string) error {
	t, err := loadTree(args[0])
	if err != nil {
		return err
	}
	defer t.Close()

	hits, err := t.Search(searchFilter(args[1]))
	if err != nil {
		return err
	}
	paths := make([]string, 0, len(hits))
	for _, h := range hits {
		p, err := outline.Path(t, h)
		if err != nil {
			return err
		}
		paths = append(paths, p)
	}

	if jsonOut {
		return printJSON(paths)
	}
	for _, p := range paths {
		printInfo("%s\n", p)
	}
	printVerbose("%d match(es)\n", len(paths))
	return nil
}
