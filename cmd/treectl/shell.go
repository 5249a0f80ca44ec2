package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/joshuapare/nodetree/pkg/types"
	"github.com/joshuapare/nodetree/tree"
	"github.com/joshuapare/nodetree/tree/outline"
	"github.com/joshuapare/nodetree/tree/printer"
	"github.com/joshuapare/nodetree/tree/walker"
)

func init() {
	rootCmd.AddCommand(newShellCmd())
}

func newShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell <outline>",
		Short: "Explore and edit a tree interactively",
		Long: `The shell command loads an outline and starts an interactive session.
Type "help" for the list of commands; quit with <ctrl>D.

Example:
  treectl shell house.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(args)
		},
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func runShell(args []string) error {
	t, err := loadTree(args[0])
	if err != nil {
		return err
	}
	defer t.Close()

	initDisplay()
	repl, err := readline.New("/ > ")
	if err != nil {
		return fmt.Errorf("failed to start shell: %w", err)
	}
	defer repl.Close()

	pterm.Info.Println("Quit with <ctrl>D")
	sh := newShell(t, os.Stdout)
	for {
		repl.SetPrompt(sh.prompt())
		line, err := repl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := sh.exec(line)
		if err != nil {
			pterm.Error.Println(err)
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
	return nil
}

var errUsage = errors.New("usage")

// shell interprets one command line at a time against a tree.
type shell struct {
	t   *tree.Tree
	cwd types.NodeHandle
	out io.Writer
}

func newShell(t *tree.Tree, out io.Writer) *shell {
	return &shell{t: t, cwd: t.Root(), out: out}
}

func (s *shell) prompt() string {
	p, err := outline.Path(s.t, s.cwd)
	if err != nil {
		p = "?"
	}
	if s.t.InBatch() {
		return p + " * > "
	}
	return p + " > "
}

const shellHelp = `commands:
  ls [path]                 list children
  cd <path>                 change node
  pwd                       print current path
  tree [path]               print subtree
  mk <name> [type]          create a child of the current node
  rm <path>                 remove a subtree
  mv <path> <parent> [at]   move a node
  find <text>               search names below the root
  flat                      show the flattened array
  stats                     show shape statistics
  begin | commit            group edits into one batch
  version                   print the structure version
  quit                      leave the shell`

// exec runs one command line.
func (s *shell) exec(line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := fields[0], fields[1:]

	var err error
	switch cmd {
	case "quit", "exit":
		if s.t.InBatch() {
			err = s.t.Commit()
		}
		return true, err
	case "help":
		fmt.Fprintln(s.out, shellHelp)
	case "pwd":
		var p string
		if p, err = outline.Path(s.t, s.cwd); err == nil {
			fmt.Fprintln(s.out, p)
		}
	case "ls":
		err = s.ls(args)
	case "cd":
		err = s.cd(args)
	case "tree":
		err = s.tree(args)
	case "mk":
		err = s.mk(args)
	case "rm":
		err = s.rm(args)
	case "mv":
		err = s.mv(args)
	case "find":
		err = s.find(args)
	case "flat":
		err = s.flat()
	case "stats":
		err = s.stats()
	case "begin":
		err = s.t.Begin()
	case "commit":
		err = s.t.Commit()
	case "version":
		fmt.Fprintf(s.out, "%d\n", s.t.Version())
	default:
		err = fmt.Errorf("unknown command %q, try help", cmd)
	}
	return false, err
}

// resolve finds a node by absolute path, or relative to the current node.
// ".." steps to the parent.
func (s *shell) resolve(path string) (types.NodeHandle, error) {
	h := s.cwd
	if strings.HasPrefix(path, "/") {
		h = s.t.Root()
	}
	for _, part := range strings.Split(path, "/") {
		switch part {
		case "", ".":
			continue
		case "..":
			if h == s.t.Root() {
				continue
			}
			p, err := s.t.Parent(h)
			if err != nil {
				return types.Null, err
			}
			h = p
			continue
		}
		next, err := s.childNamed(h, part)
		if err != nil {
			return types.Null, err
		}
		h = next
	}
	return h, nil
}

func (s *shell) childNamed(parent types.NodeHandle, name string) (types.NodeHandle, error) {
	v, err := s.t.ChildList(parent)
	if err != nil {
		return types.Null, err
	}
	kids, err := v.AppendTo(nil)
	if err != nil {
		return types.Null, err
	}
	for _, k := range kids {
		n, err := s.t.Name(k)
		if err != nil {
			return types.Null, err
		}
		if n == name {
			return k, nil
		}
	}
	return types.Null, types.Errorf(types.ErrKindNodeNotFound, "no node %q", name)
}

func (s *shell) target(args []string) (types.NodeHandle, error) {
	if len(args) == 0 {
		return s.cwd, nil
	}
	return s.resolve(args[0])
}

// ls reads the live child lists so edits inside a batch show up.
func (s *shell) ls(args []string) error {
	h, err := s.target(args)
	if err != nil {
		return err
	}
	v, err := s.t.ChildList(h)
	if err != nil {
		return err
	}
	kids, err := v.AppendTo(nil)
	if err != nil {
		return err
	}
	for _, k := range kids {
		name, err := s.t.Name(k)
		if err != nil {
			return err
		}
		if name == "" {
			name = printer.UnnamedSymbol
		}
		fmt.Fprintln(s.out, name)
	}
	return nil
}

func (s *shell) cd(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: cd <path>", errUsage)
	}
	h, err := s.resolve(args[0])
	if err != nil {
		return err
	}
	s.cwd = h
	return nil
}

func (s *shell) tree(args []string) error {
	h, err := s.target(args)
	if err != nil {
		return err
	}
	return printer.New(s.t, s.out, printer.DefaultOptions()).PrintTree(h)
}

func (s *shell) mk(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: mk <name> [type]", errUsage)
	}
	typ := types.NodeUser
	if len(args) == 2 {
		n, err := strconv.ParseUint(args[1], 10, 16)
		if err != nil {
			return fmt.Errorf("bad type %q: %w", args[1], err)
		}
		typ = types.NodeType(n)
	}
	return s.t.Update(func() error {
		h, err := s.t.CreateNode(s.cwd, typ)
		if err != nil {
			return err
		}
		return s.t.SetName(h, args[0])
	})
}

func (s *shell) rm(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: rm <path>", errUsage)
	}
	h, err := s.resolve(args[0])
	if err != nil {
		return err
	}
	if err := s.t.RemoveNode(h); err != nil {
		return err
	}
	if !s.t.Exists(s.cwd) {
		s.cwd = s.t.Root()
	}
	return nil
}

func (s *shell) mv(args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return fmt.Errorf("%w: mv <path> <parent> [at]", errUsage)
	}
	h, err := s.resolve(args[0])
	if err != nil {
		return err
	}
	parent, err := s.resolve(args[1])
	if err != nil {
		return err
	}
	at := -1
	if len(args) == 3 {
		if at, err = strconv.Atoi(args[2]); err != nil {
			return fmt.Errorf("bad position %q: %w", args[2], err)
		}
	}
	return s.t.MoveNode(h, parent, at)
}

func (s *shell) find(args []string) error {
	hits, err := s.t.Search(searchFilter(strings.Join(args, " ")))
	if err != nil {
		return err
	}
	for _, h := range hits {
		p, err := outline.Path(s.t, h)
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out, p)
	}
	return nil
}

func (s *shell) flat() error {
	for i, e := range s.t.Flattened() {
		name, err := s.t.Name(e.Node)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "%3d %-8v %-16s children=%d next=%d\n",
			i, e.Node, name, e.ChildrenCount, e.NextSiblingOffset)
	}
	return nil
}

func (s *shell) stats() error {
	st, err := walker.Collect(s.t)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "nodes=%d leaves=%d depth=%d fanout=%d inline=%d heap=%d\n",
		st.Nodes, st.Leaves, st.MaxDepth, st.MaxFanout, st.InlineLists, st.HeapLists)
	return nil
}
