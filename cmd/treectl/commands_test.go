package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeCommand(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		depth          int
		counts         bool
		wantJSON       bool
		wantErr        bool
		wantContain    []string
		wantNotContain []string
	}{
		{
			name:        "whole tree",
			wantContain: []string{"house\n", "  ground\n", "    kitchen\n", "  garden\n"},
		},
		{
			name:           "subtree with depth",
			path:           "/upstairs",
			depth:          1,
			counts:         true,
			wantContain:    []string{"upstairs (2)"},
			wantNotContain: []string{"bedroom", "kitchen"},
		},
		{
			name:        "as JSON",
			wantJSON:    true,
			wantContain: []string{`"name": "living room"`},
		},
		{
			name:    "missing path",
			path:    "/cellar",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			jsonOut = tt.wantJSON
			treeDepth = tt.depth
			treeCounts = tt.counts

			args := []string{testOutlinePath(t, "house.json")}
			if tt.path != "" {
				args = append(args, tt.path)
			}
			output, err := captureOutput(t, func() error { return runTree(args) })
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantJSON {
				var doc map[string]any
				assertJSON(t, output, &doc)
			}
			assertContains(t, output, tt.wantContain)
			assertNotContains(t, output, tt.wantNotContain)
		})
	}
}

func TestFlattenJSON(t *testing.T) {
	resetFlags()
	jsonOut = true
	output, err := captureOutput(t, func() error {
		return runFlatten([]string{testOutlinePath(t, "house.json")})
	})
	require.NoError(t, err)

	var rows []flatRow
	assertJSON(t, output, &rows)
	require.Len(t, rows, 9)
	assert.Equal(t, flatRow{Index: 0, Handle: "#1.1", Name: "house", Children: 3}, rows[0])
	assert.Equal(t, "ground", rows[1].Name)
	assert.Equal(t, int32(4), rows[1].NextSibling)
	assert.Equal(t, "upstairs", rows[5].Name)
	assert.Equal(t, int32(3), rows[5].NextSibling)
	assert.Equal(t, int32(0), rows[8].NextSibling)
}

func TestChildrenCommand(t *testing.T) {
	resetFlags()
	output, err := captureOutput(t, func() error {
		return runChildren([]string{testOutlinePath(t, "house.json"), "/ground"})
	})
	require.NoError(t, err)
	assert.Equal(t, "kitchen\nliving room\nhall\n", output)

	jsonOut = true
	output, err = captureOutput(t, func() error {
		return runChildren([]string{testOutlinePath(t, "house.json"), "/garden"})
	})
	require.NoError(t, err)
	var names []string
	assertJSON(t, output, &names)
	assert.Empty(t, names)
}

func TestSearchCommand(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		setup  func()
		expect []string
	}{
		{"substring", "ROOM", func() {}, []string{"/ground/living room", "/upstairs/bedroom", "/upstairs/bathroom"}},
		{"exact", "hall", func() { searchExact = true }, []string{"/ground/hall"}},
		{"folders only", "", func() { searchTypes = []uint{17} }, []string{"/ground", "/upstairs"}},
		{"leaves", "", func() { searchLeaves = true }, []string{
			"/ground/kitchen", "/ground/living room", "/ground/hall",
			"/upstairs/bedroom", "/upstairs/bathroom", "/garden",
		}},
		{"case sensitive", "ROOM", func() { searchCaseSensitive = true }, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			jsonOut = true
			tt.setup()
			output, err := captureOutput(t, func() error {
				return runSearch([]string{testOutlinePath(t, "house.json"), tt.text})
			})
			require.NoError(t, err)
			var paths []string
			assertJSON(t, output, &paths)
			assert.Equal(t, tt.expect, paths)
		})
	}
}

func TestStatsJSON(t *testing.T) {
	resetFlags()
	jsonOut = true
	output, err := captureOutput(t, func() error {
		return runStats([]string{testOutlinePath(t, "house.json")})
	})
	require.NoError(t, err)

	var r statsReport
	assertJSON(t, output, &r)
	assert.Equal(t, 9, r.Nodes)
	assert.Equal(t, 6, r.Leaves)
	assert.Equal(t, 2, r.MaxDepth)
	assert.Equal(t, 3, r.MaxFanout)
	assert.Equal(t, 9, r.InlineLists)
	assert.Equal(t, []int{1, 3, 5}, r.NodesAtDepth)
	assert.Equal(t, 1, r.Version)
	assert.NotEmpty(t, r.Tree)
}

func TestMissingFile(t *testing.T) {
	resetFlags()
	err := runTree([]string{"testdata/none.json"})
	assert.Error(t, err)
}

func TestShell(t *testing.T) {
	resetFlags()
	tr, err := loadTree(testOutlinePath(t, "house.json"))
	require.NoError(t, err)
	defer tr.Close()

	var out bytes.Buffer
	sh := newShell(tr, &out)
	run := func(line string) string {
		t.Helper()
		out.Reset()
		quit, err := sh.exec(line)
		require.NoError(t, err, line)
		require.False(t, quit)
		return out.String()
	}

	assert.Equal(t, "kitchen\nliving room\nhall\n", run("ls ground"))
	run("cd /upstairs")
	assert.Equal(t, "/upstairs\n", run("pwd"))
	assert.Equal(t, "/upstairs > ", sh.prompt())

	run("begin")
	run("mk study")
	run("mk office 17")
	assert.Equal(t, "/upstairs * > ", sh.prompt())
	assert.Equal(t, "bedroom\nbathroom\nstudy\noffice\n", run("ls"))
	assert.Equal(t, "1\n", run("version"))
	run("commit")
	assert.Equal(t, "2\n", run("version"))

	run("mv ../garden . 0")
	assert.Equal(t, "garden\nbedroom\nbathroom\nstudy\noffice\n", run("ls"))
	assert.Equal(t, "/upstairs/garden\n", run("find garden"))

	run("cd garden")
	run("rm /upstairs/garden")
	assert.Equal(t, "/\n", run("pwd"), "cwd falls back to the root")

	assert.Contains(t, run("tree upstairs"), "  study\n")
	assert.Contains(t, run("flat"), "children=4")
	assert.Contains(t, run("stats"), "nodes=10")
	assert.Contains(t, run("help"), "commands:")

	_, err = sh.exec("cd nowhere")
	assert.Error(t, err)
	_, err = sh.exec("mv")
	assert.ErrorIs(t, err, errUsage)
	_, err = sh.exec("frobnicate")
	assert.Error(t, err)

	quit, err := sh.exec("quit")
	require.NoError(t, err)
	assert.True(t, quit)
}

func TestShellReadsInsideBatch(t *testing.T) {
	resetFlags()
	tr, err := loadTree(testOutlinePath(t, "house.json"))
	require.NoError(t, err)
	defer tr.Close()

	var out bytes.Buffer
	sh := newShell(tr, &out)
	for _, line := range []string{"begin", "rm /ground", "stats", "find room"} {
		_, err := sh.exec(line)
		require.NoError(t, err, line)
	}
	assert.Contains(t, out.String(), "nodes=9")
	assert.Contains(t, out.String(), "/upstairs/bedroom\n/upstairs/bathroom\n")
	assert.NotContains(t, out.String(), "living room")
}
