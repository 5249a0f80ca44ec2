package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/nodetree/cmd/treectl/logger"
	"github.com/joshuapare/nodetree/tree"
	"github.com/joshuapare/nodetree/tree/outline"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool
)

var rootCmd = &cobra.Command{
	Use:   "treectl",
	Short: "Inspect and edit flattened node trees",
	Long: `treectl loads a JSON outline into a flattened node tree and lets you
inspect its pre-order layout, query children and search nodes by name.

Outline files look like:
  {"name": "house", "children": [{"name": "kitchen"}]}`,
	Version: "0.1.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(logger.Options{Enabled: verbose && !quiet, Level: slog.LevelDebug})
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// loadTree opens an outline file.
func loadTree(path string) (*tree.Tree, error) {
	printVerbose("Loading outline: %s\n", path)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open outline: %w", err)
	}
	defer f.Close()

	opts := tree.DefaultOptions()
	opts.Logger = logger.L
	t, err := outline.Load(f, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load outline: %w", err)
	}
	logger.Debug("outline loaded", "path", path, "tree", t.ID(), "nodes", t.NodeCount())
	return t, nil
}

// pathArg returns the optional node path argument at position i.
func pathArg(args []string, i int) string {
	if len(args) > i {
		return args[i]
	}
	return "/"
}
