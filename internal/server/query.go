package server

import (
	"errors"
	"fmt"
	"time"

	"github.com/specialistvlad/depscope/internal/closure"
	"github.com/specialistvlad/depscope/internal/debugger"
	"github.com/specialistvlad/depscope/internal/depgraph"
	"github.com/specialistvlad/depscope/internal/depmap"
	"github.com/specialistvlad/depscope/internal/entityref"
)

// Mode selects which view of the graph a query uses.
type Mode string

const (
	// ModeEntity answers in entity names, the way the debugger panel shows them.
	ModeEntity Mode = "entity"
	// ModeRaw answers with the closure over raw node identifiers.
	ModeRaw Mode = "raw"
)

// ParseMode maps an empty string to ModeEntity and rejects unknown modes.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeEntity:
		return ModeEntity, nil
	case ModeRaw:
		return ModeRaw, nil
	default:
		return "", fmt.Errorf("unknown mode %q, expected %q or %q", s, ModeEntity, ModeRaw)
	}
}

// Response is the payload returned for every dependency query.
type Response struct {
	Target string `json:"target"`
	Mode   Mode   `json:"mode"`
	closure.Result
	InCycle bool `json:"inCycle,omitempty"`
}

func (r Response) clone() Response {
	r.Result = r.Result.Clone()
	return r
}

// graphView pairs an inverse map with the entity graph projected from it.
type graphView struct {
	inverse  *depmap.Map
	entities *depgraph.Graph
}

func newGraphView(inverse *depmap.Map) *graphView {
	return &graphView{inverse: inverse, entities: debugger.EntityGraph(inverse)}
}

// normalizeTarget validates target. In entity mode it must be a property path
// and is reduced to its entity ("Button1.text" becomes "Button1"). Raw mode
// accepts any non-empty identifier verbatim.
func normalizeTarget(target string, mode Mode) (string, error) {
	if mode == ModeRaw {
		if target == "" {
			return "", errors.New("target cannot be empty")
		}
		return target, nil
	}

	ref, err := entityref.Parse(target)
	if err != nil {
		return "", err
	}
	return ref.Entity(), nil
}

// evaluate computes the response for an already normalized target and
// records duration and size metrics.
func (v *graphView) evaluate(target string, mode Mode) Response {
	start := time.Now()

	resp := Response{Target: target, Mode: mode}
	switch mode {
	case ModeRaw:
		resp.Result = closure.Compute(v.inverse, target)
	default:
		report := debugger.Inspect(v.entities, target)
		resp.Result = report.Result()
		resp.InCycle = report.InCycle
	}

	queryDuration.WithLabelValues(string(mode)).Observe(time.Since(start).Seconds())
	closureSize.WithLabelValues(string(mode)).Observe(float64(len(resp.InverseDependencies)))
	return resp
}
