package config

import (
	"context"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/depscope/internal/depmap"
	"github.com/zclconf/go-cty/cty"
)

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads every supported file under the given paths and merges them,
	// in order, into a single model.
	Load(ctx context.Context, paths ...string) (*Model, error)
}

// Model is the unified representation of everything loaded for one
// application.
type Model struct {
	// Inverse maps each node identifier to the identifiers that depend on it.
	Inverse *depmap.Map
	// Entities holds the definitions read from application files. Raw inverse
	// maps contribute no entities.
	Entities []*Entity
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{Inverse: depmap.New()}
}

// Merge appends other's entities and inverse entries to m.
func (m *Model) Merge(other *Model) {
	if other == nil {
		return
	}
	m.Inverse.Merge(other.Inverse)
	m.Entities = append(m.Entities, other.Entities...)
}

// Entity finds an entity definition by name.
func (m *Model) Entity(name string) (*Entity, bool) {
	for _, e := range m.Entities {
		if e.Name == name {
			return e, true
		}
	}
	return nil, false
}

// Entity is a widget, action or other named block of an application.
type Entity struct {
	Kind       string
	Name       string
	Properties []*Property
}

// Property is one attribute of an entity.
type Property struct {
	Name string
	// Expr is the raw expression as written.
	Expr hcl.Expression
	// References lists the property paths the expression reads, in source order.
	References []string
	// Static is the evaluated value when the expression has no references,
	// and cty.NilVal otherwise.
	Static cty.Value
}

// Path returns the property's identifier, e.g. "Input1.text".
func (e *Entity) Path(p *Property) string {
	return e.Name + "." + p.Name
}

// IsBinding reports whether the property reads other properties.
func (p *Property) IsBinding() bool {
	return len(p.References) > 0
}
