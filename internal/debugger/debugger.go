// Package debugger answers the questions the dependency panel asks about a
// selected entity: which entities it reads directly, which entities are
// affected when it changes, and whether it sits on a dependency cycle.
//
// Queries run on the entity graph obtained by collapsing every property path
// to its entity name, so `Input1.text` and `Input1.isValid` both count as
// `Input1`.
package debugger

import (
	"github.com/specialistvlad/depscope/internal/closure"
	"github.com/specialistvlad/depscope/internal/depgraph"
	"github.com/specialistvlad/depscope/internal/entityref"
)

// Report is the full answer for one entity.
type Report struct {
	Entity              string   `json:"entity"`
	DirectDependencies  []string `json:"directDependencies"`
	InverseDependencies []string `json:"inverseDependencies"`
	InCycle             bool     `json:"inCycle"`
}

// Result drops the report's extra fields.
func (r Report) Result() closure.Result {
	return closure.Result{
		DirectDependencies:  r.DirectDependencies,
		InverseDependencies: r.InverseDependencies,
	}
}

// EntityGraph projects an inverse dependency source onto entity names.
func EntityGraph(src depgraph.OrderedSource) *depgraph.Graph {
	return depgraph.Project(src, entityref.EntityOf)
}

// Dependencies returns the entity-level view for entity over src.
func Dependencies(src depgraph.OrderedSource, entity string) closure.Result {
	return Inspect(EntityGraph(src), entity).Result()
}

// Inspect queries a prebuilt entity graph. An unknown entity yields empty
// sequences.
func Inspect(g *depgraph.Graph, entity string) Report {
	report := Report{
		Entity:              entity,
		DirectDependencies:  []string{},
		InverseDependencies: []string{},
	}

	deps, ok := g.Dependencies(entity)
	if !ok {
		return report
	}
	report.DirectDependencies = deps

	dependents, _ := g.Dependents(entity)
	report.InverseDependencies = closure.Walk(g, dependents, entity)
	report.InCycle = g.Reaches(entity, entity)
	return report
}
