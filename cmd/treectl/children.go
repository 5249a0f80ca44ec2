package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/nodetree/tree/outline"
)

func init() {
	rootCmd.AddCommand(newChildrenCmd())
}

func newChildrenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "children <outline> [path]",
		Short: "List the direct children of a node",
		Long: `The children command lists the direct children of a node in order,
walking the flattened array by sibling offsets.

Example:
  treectl children house.json /ground`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChildren(args)
		},
	}
}

func runChildren(args []string) error {
	t, err := loadTree(args[0])
	if err != nil {
		return err
	}
	defer t.Close()

	h, err := outline.Resolve(t, pathArg(args, 1))
	if err != nil {
		return err
	}

	names := []string{}
	v := t.Children(h)
	for v.Next() {
		name, err := t.Name(v.Node())
		if err != nil {
			return err
		}
		names = append(names, name)
	}
	if err := v.Err(); err != nil {
		return err
	}

	if jsonOut {
		return printJSON(names)
	}
	for _, n := range names {
		printInfo("%s\n", n)
	}
	return nil
}
