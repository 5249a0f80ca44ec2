package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/nodetree/pkg/types"
)

type refuseAll struct{ Base }

func (refuseAll) AcceptChild(Structure, types.NodeHandle, types.NodeType) bool { return false }

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, Base{}, r.Lookup(types.NodeUser))

	require.NoError(t, r.Register(types.NodeUser, refuseAll{}))
	assert.Equal(t, refuseAll{}, r.Lookup(types.NodeUser))
	assert.False(t, r.Lookup(types.NodeUser).AcceptChild(nil, types.Null, types.NodeUser))
	assert.True(t, r.Lookup(types.NodeRoot).AcceptChild(nil, types.Null, types.NodeUser))

	assert.ErrorIs(t, r.Register(types.NodeNone, Base{}), types.ErrArgument)
	assert.ErrorIs(t, r.Register(types.NodeUser+1, nil), types.ErrArgument)

	require.NoError(t, r.Register(types.NodeRoot, Base{}))
	assert.Equal(t, []types.NodeType{types.NodeRoot, types.NodeUser}, r.Types())
	assert.Len(t, r.Handlers(), 2, "Base fallback is not listed")

	r.Unregister(types.NodeUser)
	assert.Equal(t, Base{}, r.Lookup(types.NodeUser))

	r.SetFallback(refuseAll{})
	assert.Equal(t, refuseAll{}, r.Lookup(types.NodeUser))
	assert.Equal(t, []Handler{refuseAll{}, Base{}}, r.Handlers())
	r.SetFallback(nil)
	assert.Equal(t, Base{}, r.Lookup(types.NodeUser))
}

func TestNilRegistry(t *testing.T) {
	var r *Registry
	assert.Equal(t, Base{}, r.Lookup(types.NodeUser))
	assert.Empty(t, r.Types())
	assert.Empty(t, r.Handlers())
}

func TestNameMatcher(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		exact, sensit bool
		input         string
		want          bool
	}{
		{"empty matches all", "", false, false, "anything", true},
		{"substring caseless", "ROOM", false, false, "Living room", true},
		{"folds non-ascii", "ÉTÉ", false, false, "un été chaud", true},
		{"exact caseless", "kitchen", true, false, "Kitchen", true},
		{"exact rejects substring", "kit", true, false, "Kitchen", false},
		{"case sensitive", "Room", false, true, "living room", false},
		{"case sensitive hit", "room", false, true, "living room", true},
		{"exact empty", "", true, false, "", true},
		{"exact empty rejects", "", true, false, "x", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewNameMatcher(tt.text, tt.exact, tt.sensit)
			assert.Equal(t, tt.want, m.Match(tt.input))
		})
	}
}

func TestQuery(t *testing.T) {
	q := NewQuery(Filter{Text: "a", Flags: FlagExact | FlagLeaves, Types: []types.NodeType{types.NodeUser}})
	assert.True(t, q.Has(FlagExact))
	assert.True(t, q.Has(FlagExact|FlagLeaves))
	assert.False(t, q.Has(FlagCaseSensitive))
	assert.True(t, q.MatchType(types.NodeUser))
	assert.False(t, q.MatchType(types.NodeRoot))
	assert.True(t, q.MatchName("A"))
	assert.False(t, q.MatchName("ab"))

	assert.True(t, NewQuery(Filter{}).MatchType(types.NodeRoot))
}
