package main

import (
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/joshuapare/nodetree/tree/walker"
)

func init() {
	rootCmd.AddCommand(newStatsCmd())
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <outline>",
		Short: "Show tree shape statistics",
		Long: `The stats command reports node, leaf and depth counts together with
how many child lists are stored inline versus on the heap.

Example:
  treectl stats house.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(args)
		},
	}
}

type statsReport struct {
	Tree         string `json:"tree"`
	Version      int    `json:"version"`
	Nodes        int    `json:"nodes"`
	Leaves       int    `json:"leaves"`
	MaxDepth     int    `json:"max_depth"`
	MaxFanout    int    `json:"max_fanout"`
	InlineLists  int    `json:"inline_lists"`
	HeapLists    int    `json:"heap_lists"`
	NodesAtDepth []int  `json:"nodes_at_depth"`
}

func runStats(args []string) error {
	t, err := loadTree(args[0])
	if err != nil {
		return err
	}
	defer t.Close()

	st, err := walker.Collect(t)
	if err != nil {
		return err
	}
	r := statsReport{
		Tree:         t.ID().String(),
		Version:      t.Version(),
		Nodes:        st.Nodes,
		Leaves:       st.Leaves,
		MaxDepth:     st.MaxDepth,
		MaxFanout:    st.MaxFanout,
		InlineLists:  st.InlineLists,
		HeapLists:    st.HeapLists,
		NodesAtDepth: st.NodesAtDepth,
	}

	if jsonOut {
		return printJSON(r)
	}
	if quiet {
		return nil
	}
	data := [][]string{
		{"Metric", "Value"},
		{"Nodes", strconv.Itoa(r.Nodes)},
		{"Leaves", strconv.Itoa(r.Leaves)},
		{"Max depth", strconv.Itoa(r.MaxDepth)},
		{"Max fan-out", strconv.Itoa(r.MaxFanout)},
		{"Inline child lists", strconv.Itoa(r.InlineLists)},
		{"Heap child lists", strconv.Itoa(r.HeapLists)},
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil
}
