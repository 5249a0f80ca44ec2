package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/nodetree/tree"
	"github.com/joshuapare/nodetree/tree/outline"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	args := os.Args[1:]
	debugMode := false

	// Extract --debug/-d flag
	filteredArgs := make([]string, 0, len(args))
	for _, arg := range args {
		if arg == "--debug" || arg == "-d" {
			debugMode = true
		} else {
			filteredArgs = append(filteredArgs, arg)
		}
	}

	log, closeLog := newLogger(debugMode)
	defer closeLog()

	if len(filteredArgs) < 1 {
		printUsage()
		os.Exit(1)
	}

	if filteredArgs[0] == "--help" || filteredArgs[0] == "-h" {
		printHelp()
		os.Exit(0)
	}

	if filteredArgs[0] == "--version" || filteredArgs[0] == "-v" {
		fmt.Printf("treeexplorer %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built: %s\n", date)
		os.Exit(0)
	}

	path := filteredArgs[0]
	log.Info("starting treeexplorer", "path", path, "debug", debugMode)

	t, err := loadOutline(path, log)
	if err != nil {
		log.Error("load failed", "path", path, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer t.Close()

	p := tea.NewProgram(
		NewModel(t, path),
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Enable mouse support
	)
	if _, err := p.Run(); err != nil {
		log.Error("TUI error", "error", err)
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
	log.Info("treeexplorer exiting normally")
}

// newLogger writes debug logs to a temp file, since the terminal belongs
// to the UI.
func newLogger(enabled bool) (*slog.Logger, func()) {
	if !enabled {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}
	}
	f, err := os.CreateTemp("", "treeexplorer-*.log")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to init logging: %v\n", err)
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})),
		func() { _ = f.Close() }
}

func loadOutline(path string, log *slog.Logger) (*tree.Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("outline file not found: %w", err)
	}
	defer f.Close()

	opts := tree.DefaultOptions()
	opts.Logger = log
	return outline.Load(f, opts)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: treeexplorer [options] <outline-file>\n")
	fmt.Fprintf(os.Stderr, "Try 'treeexplorer --help' for more information.\n")
}

func printHelp() {
	fmt.Println("treeexplorer - Interactive TUI for node tree outlines")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  treeexplorer [options] <outline-file>")
	fmt.Println()
	fmt.Println("  Navigation:")
	fmt.Println("    ↑/k, ↓/j    Move up/down")
	fmt.Println("    →/l, enter  Open node")
	fmt.Println("    ←/h         Go to parent")
	fmt.Println("    /           Search names")
	fmt.Println("    n/N         Next/previous match")
	fmt.Println("    c           Copy node path")
	fmt.Println("    ?           Help")
	fmt.Println("    q           Quit")
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -d, --debug    Write debug logs to a temp file")
	fmt.Println("  -h, --help     Show this help message")
	fmt.Println("  -v, --version  Show version information")
}
