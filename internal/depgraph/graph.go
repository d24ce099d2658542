package depgraph

import (
	"fmt"

	"github.com/specialistvlad/depscope/internal/closure"
)

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*node),
	}
}

// AddNode adds a node with the given ID. Adding an existing ID does nothing.
func (g *Graph) AddNode(id string) {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	g.addNodeLocked(id)
}

func (g *Graph) addNodeLocked(id string) *node {
	if n, ok := g.nodes[id]; ok {
		return n
	}
	n := &node{id: id, edges: make(map[string]struct{})}
	g.nodes[id] = n
	g.order = append(g.order, id)
	return n
}

// AddEdge records that toID depends on fromID. Both nodes must exist and must
// differ; adding the same edge twice is a no-op.
func (g *Graph) AddEdge(fromID, toID string) error {
	if fromID == toID {
		return fmt.Errorf("self-referential edge not allowed: %s -> %s", fromID, fromID)
	}

	g.mutex.Lock()
	defer g.mutex.Unlock()

	fromNode, ok := g.nodes[fromID]
	if !ok {
		return fmt.Errorf("source node not found: %s", fromID)
	}
	toNode, ok := g.nodes[toID]
	if !ok {
		return fmt.Errorf("destination node not found: %s", toID)
	}

	link(fromNode, toNode)
	return nil
}

// link adds the edge from -> to unless it already exists. Callers hold the
// write lock.
func link(from, to *node) {
	if _, dup := from.edges[to.id]; dup {
		return
	}
	from.edges[to.id] = struct{}{}
	from.dependents = append(from.dependents, to.id)
	to.deps = append(to.deps, from.id)
}

// Dependencies returns the IDs the given node depends on, in edge order.
// The bool is false when the node does not exist.
func (g *Graph) Dependencies(id string) ([]string, bool) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, false
	}
	return append([]string{}, n.deps...), true
}

// Dependents returns the IDs that depend on the given node, in edge order.
// It satisfies closure.Source.
func (g *Graph) Dependents(id string) ([]string, bool) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, false
	}
	return append([]string{}, n.dependents...), true
}

// Nodes returns every node ID in insertion order.
func (g *Graph) Nodes() []string {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return append([]string{}, g.order...)
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return len(g.order)
}

// OrderedSource is an inverse dependency source that can enumerate its keys
// in a stable order. *depmap.Map satisfies it.
type OrderedSource interface {
	closure.Source
	Keys() []string
}

// Project builds an entity graph from an inverse dependency source. keyFn
// maps a raw identifier to its node ID; entries whose endpoints map to the
// same node are dropped. Nodes and edges follow the order of src's keys.
func Project(src OrderedSource, keyFn func(string) string) *Graph {
	g := New()
	g.mutex.Lock()
	defer g.mutex.Unlock()

	for _, key := range src.Keys() {
		from := keyFn(key)
		fromNode := g.addNodeLocked(from)

		deps, _ := src.Dependents(key)
		for _, dep := range deps {
			to := keyFn(dep)
			if to == from {
				continue
			}
			link(fromNode, g.addNodeLocked(to))
		}
	}
	return g
}

// DetectCycles checks the graph for cycles and returns an error naming a node
// involved in the first one found. Nodes are visited in insertion order.
func (g *Graph) DetectCycles() error {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	// permanent: fully explored and not on a cycle.
	// temporary: on the current DFS stack.
	permanent := make(map[string]bool)
	temporary := make(map[string]bool)

	var visit func(id string) error
	visit = func(id string) error {
		if permanent[id] {
			return nil
		}
		if temporary[id] {
			return fmt.Errorf("cycle detected involving node '%s'", id)
		}

		temporary[id] = true
		for _, dep := range g.nodes[id].dependents {
			if err := visit(dep); err != nil {
				return err
			}
		}
		delete(temporary, id)
		permanent[id] = true
		return nil
	}

	for _, id := range g.order {
		if !permanent[id] {
			if err := visit(id); err != nil {
				return err
			}
		}
	}
	return nil
}

// Reaches reports whether to is reachable from from by following dependent
// edges through at least one edge.
func (g *Graph) Reaches(from, to string) bool {
	starts, ok := g.Dependents(from)
	if !ok {
		return false
	}
	for _, id := range closure.Walk(g, starts, from) {
		if id == to {
			return true
		}
		// from itself is never walked, so a cycle shows up as an edge back to it.
		deps, _ := g.Dependents(id)
		for _, dep := range deps {
			if dep == to {
				return true
			}
		}
	}
	return false
}
