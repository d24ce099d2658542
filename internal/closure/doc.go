// Package closure computes dependency closures over an inverse dependency
// map, the structure an evaluator produces when it records, for every node
// identifier, the identifiers that depend on it.
//
// # Result Shape
//
// Compute returns two ordered, duplicate-free sequences for a target:
//   - **DirectDependencies**: the target's own entry, self references removed
//   - **InverseDependencies**: every node reachable by following dependent
//     edges from the direct set, in first-visited order
//
// The target never appears in either sequence, and every direct entry is also
// an inverse entry.
//
// # Traversal
//
// The walk is breadth-first with a visited set keyed by identifier, so cyclic
// inputs terminate and identical inputs always yield identical output. Inputs
// are never modified and results never share backing arrays with them.
//
// # Thread-Safety
//
// Compute and Walk hold no state. They are safe to call concurrently as long as
// the Source is not mutated during the call.
package closure
