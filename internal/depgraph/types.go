package depgraph

import "sync"

// Graph is a set of entity nodes linked by dependency edges. Neighbour lists
// keep the order in which edges were first added, so traversals over the
// graph are reproducible. All operations are concurrency-safe.
type Graph struct {
	// mutex protects nodes and order.
	mutex sync.RWMutex
	// nodes stores every node keyed by its ID.
	nodes map[string]*node
	// order lists node IDs in insertion order.
	order []string
}

// node is a single vertex. It is un-exported so callers go through the
// string-ID API.
type node struct {
	id string
	// deps are the nodes this node depends on (predecessors), in edge order.
	deps []string
	// dependents are the nodes that depend on this node (successors), in edge order.
	dependents []string
	// edges is the membership set for dependents, used to drop duplicate edges.
	edges map[string]struct{}
}
