// Package depgraph holds the entity-level dependency graph the debugger
// queries. It is built by projecting a property-level inverse dependency map
// onto entity names: an entry `Input1.isValid -> Button1.isVisible` becomes
// the edge `Input1 -> Button1`, meaning Button1 depends on Input1.
//
// Unlike an execution DAG, this graph may contain cycles; widgets routinely
// read each other. DetectCycles reports them instead of rejecting them.
package depgraph
