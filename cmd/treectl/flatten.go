package main

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newFlattenCmd())
}

func newFlattenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "flatten <outline>",
		Short: "Show the pre-order flattened array",
		Long: `The flatten command lists every entry of the flattened array with its
children count and next sibling offset.

Example:
  treectl flatten house.json
  treectl flatten house.json --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFlatten(args)
		},
	}
}

type flatRow struct {
	Index       int    `json:"index"`
	Handle      string `json:"handle"`
	Name        string `json:"name"`
	Children    int32  `json:"children"`
	NextSibling int32  `json:"next_sibling"`
}

func runFlatten(args []string) error {
	t, err := loadTree(args[0])
	if err != nil {
		return err
	}
	defer t.Close()

	entries := t.Flattened()
	rows := make([]flatRow, 0, len(entries))
	for i, e := range entries {
		name, err := t.Name(e.Node)
		if err != nil {
			return err
		}
		rows = append(rows, flatRow{
			Index:       i,
			Handle:      e.Node.String(),
			Name:        name,
			Children:    e.ChildrenCount,
			NextSibling: e.NextSiblingOffset,
		})
	}

	if jsonOut {
		return printJSON(rows)
	}
	if quiet {
		return nil
	}
	data := [][]string{
		{"Index", "Handle", "Name", "Children", "NextSibling"},
	}
	for _, r := range rows {
		data = append(data, []string{
			strconv.Itoa(r.Index),
			r.Handle,
			r.Name,
			fmt.Sprintf("%d", r.Children),
			fmt.Sprintf("%d", r.NextSibling),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil
}
