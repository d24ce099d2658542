package closure

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleMap is the evaluator output recorded for a form with a button, an
// input and a chart.
func sampleMap() Map {
	return Map{
		"Button1.text":       {"Input1.defaultText", "Button1"},
		"Input1.defaultText": {"Input1.text", "Input1"},
		"Input1.inputType":   {"Input1.isValid", "Input1"},
		"Input1.text":        {"Input1.isValid", "Input1.value", "Input1"},
		"Input1.isRequired":  {"Input1.isValid", "Input1"},
		"Input1.isValid":     {"Button1.isVisible", "Input1"},
		"Button1.isVisible":  {"Button1"},
		"Button1":            {"Chart1.chartName"},
		"Chart1.chartName":   {"Chart1"},
		"Input1.value":       {"Input1"},
	}
}

func TestCompute(t *testing.T) {
	testCases := []struct {
		name     string
		src      Map
		target   string
		expected Result
	}{
		{
			name:   "sample map by raw identifier",
			src:    sampleMap(),
			target: "Button1",
			expected: Result{
				DirectDependencies:  []string{"Chart1.chartName"},
				InverseDependencies: []string{"Chart1.chartName", "Chart1"},
			},
		},
		{
			name:   "transitive chain through properties",
			src:    sampleMap(),
			target: "Input1.text",
			expected: Result{
				DirectDependencies: []string{"Input1.isValid", "Input1.value", "Input1"},
				InverseDependencies: []string{
					"Input1.isValid", "Input1.value", "Input1",
					"Button1.isVisible", "Button1", "Chart1.chartName", "Chart1",
				},
			},
		},
		{
			name:     "absent target",
			src:      sampleMap(),
			target:   "Table1",
			expected: Result{DirectDependencies: []string{}, InverseDependencies: []string{}},
		},
		{
			name:     "empty map",
			src:      Map{},
			target:   "a",
			expected: Result{DirectDependencies: []string{}, InverseDependencies: []string{}},
		},
		{
			name:     "node listing only itself",
			src:      Map{"a": {"a"}},
			target:   "a",
			expected: Result{DirectDependencies: []string{}, InverseDependencies: []string{}},
		},
		{
			name:   "duplicate dependents are collapsed",
			src:    Map{"a": {"b", "b", "a", "c", "b"}},
			target: "a",
			expected: Result{
				DirectDependencies:  []string{"b", "c"},
				InverseDependencies: []string{"b", "c"},
			},
		},
		{
			name:   "two node cycle terminates",
			src:    Map{"a": {"b"}, "b": {"a", "c"}, "c": {"a"}},
			target: "a",
			expected: Result{
				DirectDependencies:  []string{"b"},
				InverseDependencies: []string{"b", "c"},
			},
		},
		{
			name:   "cycle not involving the target",
			src:    Map{"t": {"x"}, "x": {"y"}, "y": {"z"}, "z": {"x"}},
			target: "t",
			expected: Result{
				DirectDependencies:  []string{"x"},
				InverseDependencies: []string{"x", "y", "z"},
			},
		},
		{
			name:   "breadth first order",
			src:    Map{"t": {"a", "b"}, "a": {"a1"}, "b": {"b1"}, "a1": {"a2"}},
			target: "t",
			expected: Result{
				DirectDependencies:  []string{"a", "b"},
				InverseDependencies: []string{"a", "b", "a1", "b1", "a2"},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Compute(tc.src, tc.target)
			if diff := cmp.Diff(tc.expected, got); diff != "" {
				t.Errorf("Compute() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCompute_AbsentTargetReturnsNonNilSequences(t *testing.T) {
	got := Compute(Map{}, "missing")
	require.NotNil(t, got.DirectDependencies)
	require.NotNil(t, got.InverseDependencies)
	assert.Empty(t, got.DirectDependencies)
	assert.Empty(t, got.InverseDependencies)
}

func TestCompute_DoesNotAliasInput(t *testing.T) {
	src := Map{"a": {"b", "c"}}
	got := Compute(src, "a")

	got.DirectDependencies[0] = "mutated"
	got.InverseDependencies[1] = "mutated"

	assert.Equal(t, []string{"b", "c"}, src["a"])
}

func TestCompute_Idempotent(t *testing.T) {
	src := sampleMap()
	first := Compute(src, "Input1.defaultText")
	second := Compute(src, "Input1.defaultText")
	assert.Equal(t, first, second)
}

func TestResult_Clone(t *testing.T) {
	r := Result{DirectDependencies: []string{"a"}, InverseDependencies: []string{"a", "b"}}
	c := r.Clone()
	c.InverseDependencies[0] = "z"
	assert.Equal(t, "a", r.InverseDependencies[0])
}

func TestWalk_StartsIncludedExcludeSkipped(t *testing.T) {
	src := Map{"a": {"x", "b"}, "b": {"a"}}
	assert.Equal(t, []string{"a", "b"}, Walk(src, []string{"a", "a"}, "x"))
}

// randomMap builds a reproducible inverse map with cycles, self references and
// duplicate dependents.
func randomMap(r *rand.Rand, nodes int) Map {
	m := Map{}
	for i := range nodes {
		key := fmt.Sprintf("n%d", i)
		for range r.IntN(4) {
			m[key] = append(m[key], fmt.Sprintf("n%d", r.IntN(nodes)))
		}
	}
	return m
}

// reachable is a reference closure computed with a recursive DFS.
func reachable(m Map, target string) map[string]struct{} {
	out := map[string]struct{}{}
	var visit func(id string)
	visit = func(id string) {
		for _, dep := range m[id] {
			if dep == target {
				continue
			}
			if _, ok := out[dep]; ok {
				continue
			}
			out[dep] = struct{}{}
			visit(dep)
		}
	}
	visit(target)
	return out
}

func TestCompute_Properties(t *testing.T) {
	r := rand.New(rand.NewPCG(42, 7))

	for iter := range 200 {
		m := randomMap(r, 1+r.IntN(25))
		target := fmt.Sprintf("n%d", r.IntN(30))
		got := Compute(m, target)

		t.Run(fmt.Sprintf("case_%d", iter), func(t *testing.T) {
			assert.NotContains(t, got.DirectDependencies, target)
			assert.NotContains(t, got.InverseDependencies, target)

			assertUnique(t, got.DirectDependencies)
			assertUnique(t, got.InverseDependencies)

			for _, id := range got.DirectDependencies {
				assert.Contains(t, got.InverseDependencies, id)
			}

			want := reachable(m, target)
			assert.Len(t, got.InverseDependencies, len(want))
			for _, id := range got.InverseDependencies {
				assert.Contains(t, want, id)
			}

			if _, ok := m[target]; !ok {
				assert.Empty(t, got.DirectDependencies)
				assert.Empty(t, got.InverseDependencies)
			}

			assert.Equal(t, got, Compute(m, target))
		})
	}
}

func assertUnique(t *testing.T, ids []string) {
	t.Helper()
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		_, dup := seen[id]
		assert.False(t, dup, "duplicate entry %q", id)
		seen[id] = struct{}{}
	}
}
