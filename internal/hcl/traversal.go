package hcl

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// referenceOf reduces a traversal to the property path it reads: the root
// entity plus its first attribute. `Table1.selectedRow.name` reads
// `Table1.selectedRow`; a bare `Input1` reads the entity itself.
func referenceOf(traversal hcl.Traversal) (string, bool) {
	if len(traversal) == 0 || traversal.IsRelative() {
		return "", false
	}
	root := traversal.RootName()
	if len(traversal) == 1 {
		return root, true
	}

	switch step := traversal[1].(type) {
	case hcl.TraverseAttr:
		return root + "." + step.Name, true
	case hcl.TraverseIndex:
		// Table1["selectedRow"] is the same property as Table1.selectedRow.
		if step.Key.Type() == cty.String && step.Key.IsKnown() && !step.Key.IsNull() {
			return root + "." + step.Key.AsString(), true
		}
	}
	return root, true
}

// formatTraversal converts an hcl.Traversal to a human-readable string for logging.
func formatTraversal(t hcl.Traversal) string {
	var sb strings.Builder
	for i, part := range t {
		switch p := part.(type) {
		case hcl.TraverseRoot:
			sb.WriteString(p.Name)
		case hcl.TraverseAttr:
			sb.WriteRune('.')
			sb.WriteString(p.Name)
		case hcl.TraverseIndex:
			sb.WriteRune('[')
			switch {
			case !p.Key.IsKnown() || p.Key.IsNull():
				sb.WriteString("?")
			case p.Key.Type() == cty.String:
				sb.WriteString(fmt.Sprintf("%q", p.Key.AsString()))
			case p.Key.Type() == cty.Number:
				sb.WriteString(p.Key.AsBigFloat().Text('f', -1))
			default:
				sb.WriteString("...")
			}
			sb.WriteRune(']')
		case hcl.TraverseSplat:
			sb.WriteString("[*]")
		default:
			if i > 0 {
				sb.WriteRune('.')
			}
			sb.WriteString("?")
		}
	}
	return sb.String()
}
