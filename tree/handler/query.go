package handler

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/joshuapare/nodetree/pkg/types"
)

// Filter flags.
const (
	// FlagExact matches whole names instead of substrings.
	FlagExact uint32 = 1 << iota
	// FlagLeaves restricts matches to nodes without children.
	FlagLeaves
	// FlagCaseSensitive disables case folding.
	FlagCaseSensitive
)

// Filter describes a search. It is what a query parser produces.
type Filter struct {
	Text  string
	Flags uint32
	Types []types.NodeType // empty matches every type
}

// Query is a Filter prepared for matching.
type Query struct {
	Filter
	names NameMatcher
}

// NewQuery prepares f.
func NewQuery(f Filter) *Query {
	return &Query{
		Filter: f,
		names:  NewNameMatcher(f.Text, f.Flags&FlagExact != 0, f.Flags&FlagCaseSensitive != 0),
	}
}

// Has reports whether every bit of flag is set.
func (q *Query) Has(flag uint32) bool { return q.Flags&flag == flag }

// MatchType reports whether typ passes the type restriction.
func (q *Query) MatchType(typ types.NodeType) bool {
	return len(q.Types) == 0 || slices.Contains(q.Types, typ)
}

// MatchName applies the text of the query to name.
func (q *Query) MatchName(name string) bool { return q.names.Match(name) }

// NameMatcher matches names against a needle, caseless by default.
type NameMatcher struct {
	needle string
	exact  bool
	fold   *cases.Caser
}

// NewNameMatcher prepares text. An empty text matches everything.
func NewNameMatcher(text string, exact, caseSensitive bool) NameMatcher {
	m := NameMatcher{needle: text, exact: exact}
	if !caseSensitive {
		c := cases.Fold()
		m.fold = &c
		m.needle = c.String(text)
	}
	return m
}

// Match reports whether name matches.
func (m NameMatcher) Match(name string) bool {
	if m.needle == "" && !m.exact {
		return true
	}
	if m.fold != nil {
		name = m.fold.String(name)
	}
	if m.exact {
		return name == m.needle
	}
	return strings.Contains(name, m.needle)
}
