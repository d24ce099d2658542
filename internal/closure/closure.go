package closure

// Source is any inverse dependency structure that can list the dependents of
// a node. The bool reports whether the node has an entry at all.
type Source interface {
	Dependents(id string) ([]string, bool)
}

// Map is a plain inverse dependency map.
type Map map[string][]string

// Dependents implements Source.
func (m Map) Dependents(id string) ([]string, bool) {
	deps, ok := m[id]
	return deps, ok
}

// Result holds the two sequences produced for a target.
type Result struct {
	DirectDependencies  []string `json:"directDependencies"`
	InverseDependencies []string `json:"inverseDependencies"`
}

// Clone returns a deep copy of the result.
func (r Result) Clone() Result {
	return Result{
		DirectDependencies:  append([]string{}, r.DirectDependencies...),
		InverseDependencies: append([]string{}, r.InverseDependencies...),
	}
}

// Compute returns the direct dependents of target and the full transitive
// closure of its dependents. An absent target yields two empty sequences.
// Identifiers are compared verbatim; for the panel's entity-level answer use
// debugger.Dependencies.
func Compute(src Source, target string) Result {
	entry, _ := src.Dependents(target)

	direct := make([]string, 0, len(entry))
	seen := make(map[string]struct{}, len(entry))
	for _, id := range entry {
		if id == target {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		direct = append(direct, id)
	}

	return Result{
		DirectDependencies:  direct,
		InverseDependencies: Walk(src, direct, target),
	}
}

// Walk visits every node reachable from starts by following dependent edges
// and returns them in first-visited order. The starts themselves are included;
// exclude is never visited. Each node is visited at most once.
func Walk(src Source, starts []string, exclude string) []string {
	visited := map[string]struct{}{exclude: {}}
	order := make([]string, 0, len(starts))
	queue := make([]string, 0, len(starts))

	enqueue := func(id string) {
		if _, ok := visited[id]; ok {
			return
		}
		visited[id] = struct{}{}
		order = append(order, id)
		queue = append(queue, id)
	}

	for _, id := range starts {
		enqueue(id)
	}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		deps, ok := src.Dependents(id)
		if !ok {
			continue // leaf
		}
		for _, dep := range deps {
			enqueue(dep)
		}
	}

	return order
}
