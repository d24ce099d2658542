package depgraph

import (
	"fmt"
	"sync"
	"testing"

	"github.com/specialistvlad/depscope/internal/depmap"
	"github.com/specialistvlad/depscope/internal/entityref"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMap() *depmap.Map {
	m := depmap.New()
	m.Add("Button1.text", "Input1.defaultText", "Button1")
	m.Add("Input1.defaultText", "Input1.text", "Input1")
	m.Add("Input1.inputType", "Input1.isValid", "Input1")
	m.Add("Input1.text", "Input1.isValid", "Input1.value", "Input1")
	m.Add("Input1.isRequired", "Input1.isValid", "Input1")
	m.Add("Input1.isValid", "Button1.isVisible", "Input1")
	m.Add("Button1.isVisible", "Button1")
	m.Add("Button1", "Chart1.chartName")
	m.Add("Chart1.chartName", "Chart1")
	m.Add("Input1.value", "Input1")
	return m
}

func TestNew(t *testing.T) {
	g := New()
	require.NotNil(t, g)
	assert.NotNil(t, g.nodes)
	assert.Empty(t, g.nodes)
	assert.Equal(t, 0, g.Len())
}

func TestAddNode(t *testing.T) {
	g := New()

	g.AddNode("a")
	assert.Len(t, g.nodes, 1)
	nodeA, ok := g.nodes["a"]
	require.True(t, ok)
	assert.Equal(t, "a", nodeA.id)
	assert.NotNil(t, nodeA.edges)

	g.AddNode("a") // idempotent
	assert.Len(t, g.nodes, 1)

	g.AddNode("b")
	assert.Equal(t, []string{"a", "b"}, g.Nodes())
}

func TestAddEdge(t *testing.T) {
	t.Run("success case", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")

		require.NoError(t, g.AddEdge("a", "b")) // b depends on a
		require.NoError(t, g.AddEdge("a", "b")) // duplicate ignored

		dependents, ok := g.Dependents("a")
		require.True(t, ok)
		assert.Equal(t, []string{"b"}, dependents)

		deps, ok := g.Dependencies("b")
		require.True(t, ok)
		assert.Equal(t, []string{"a"}, deps)
	})

	t.Run("error cases", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")

		assert.ErrorContains(t, g.AddEdge("dne", "a"), "source node not found")
		assert.ErrorContains(t, g.AddEdge("a", "dne"), "destination node not found")
		assert.ErrorContains(t, g.AddEdge("a", "a"), "self-referential edge")
	})
}

func TestNeighbours_MissingNode(t *testing.T) {
	g := New()
	_, ok := g.Dependents("x")
	assert.False(t, ok)
	_, ok = g.Dependencies("x")
	assert.False(t, ok)
}

func TestNeighbours_ReturnCopies(t *testing.T) {
	g := New()
	g.AddNode("a")
	g.AddNode("b")
	require.NoError(t, g.AddEdge("a", "b"))

	dependents, _ := g.Dependents("a")
	dependents[0] = "mutated"

	again, _ := g.Dependents("a")
	assert.Equal(t, []string{"b"}, again)
}

func TestProject_SampleMap(t *testing.T) {
	g := Project(sampleMap(), entityref.EntityOf)

	assert.Equal(t, []string{"Button1", "Input1", "Chart1"}, g.Nodes())

	dependents, _ := g.Dependents("Button1")
	assert.Equal(t, []string{"Input1", "Chart1"}, dependents)

	deps, _ := g.Dependencies("Button1")
	assert.Equal(t, []string{"Input1"}, deps)

	dependents, _ = g.Dependents("Input1")
	assert.Equal(t, []string{"Button1"}, dependents)

	dependents, ok := g.Dependents("Chart1")
	require.True(t, ok)
	assert.Empty(t, dependents)
}

func TestProject_IdentityKeepsRawNodes(t *testing.T) {
	m := depmap.New()
	m.Add("a", "b", "a")
	m.Add("b", "c")

	g := Project(m, func(s string) string { return s })
	assert.Equal(t, []string{"a", "b", "c"}, g.Nodes())

	dependents, _ := g.Dependents("a")
	assert.Equal(t, []string{"b"}, dependents)
}

func TestDetectCycles(t *testing.T) {
	t.Run("empty graph has no cycles", func(t *testing.T) {
		assert.NoError(t, New().DetectCycles())
	})

	t.Run("valid dag has no cycles", func(t *testing.T) {
		g := New()
		for _, id := range []string{"a", "b", "c", "d"} {
			g.AddNode(id)
		}
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("b", "c"))
		require.NoError(t, g.AddEdge("a", "c"))
		require.NoError(t, g.AddEdge("c", "d"))
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("sample map has a button input cycle", func(t *testing.T) {
		g := Project(sampleMap(), entityref.EntityOf)
		err := g.DetectCycles()
		require.Error(t, err)
		assert.ErrorContains(t, err, "cycle detected involving node 'Button1'")
	})

	t.Run("cycle in a disjoint component is detected", func(t *testing.T) {
		g := New()
		for _, id := range []string{"a", "b", "x", "y", "z"} {
			g.AddNode(id)
		}
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("x", "y"))
		require.NoError(t, g.AddEdge("y", "z"))
		require.NoError(t, g.AddEdge("z", "y"))
		assert.ErrorContains(t, g.DetectCycles(), "cycle detected")
	})
}

func TestReaches(t *testing.T) {
	g := Project(sampleMap(), entityref.EntityOf)

	assert.True(t, g.Reaches("Button1", "Button1"))
	assert.True(t, g.Reaches("Input1", "Chart1"))
	assert.False(t, g.Reaches("Chart1", "Button1"))
	assert.False(t, g.Reaches("Chart1", "Chart1"))
	assert.False(t, g.Reaches("missing", "Button1"))
}

func TestReaches_Chain(t *testing.T) {
	g := New()
	for _, id := range []string{"a", "b", "c", "d"} {
		g.AddNode(id)
	}
	require.NoError(t, g.AddEdge("a", "b"))
	require.NoError(t, g.AddEdge("b", "c"))
	require.NoError(t, g.AddEdge("c", "b"))

	assert.True(t, g.Reaches("a", "b"), "direct dependent")
	assert.True(t, g.Reaches("a", "c"), "transitive dependent")
	assert.True(t, g.Reaches("b", "b"), "two-node cycle")
	assert.False(t, g.Reaches("a", "a"))
	assert.False(t, g.Reaches("a", "d"))
	assert.False(t, g.Reaches("d", "d"))
}

func TestGraph_ConcurrentReads(t *testing.T) {
	g := Project(sampleMap(), entityref.EntityOf)

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := g.Nodes()[i%3]
			_, ok := g.Dependents(id)
			assert.True(t, ok, fmt.Sprintf("node %s should exist", id))
			_, ok = g.Dependencies(id)
			assert.True(t, ok)
		}(i)
	}
	wg.Wait()
}
