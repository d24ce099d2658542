package hcl

import (
	"context"
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/depscope/internal/config"
	"github.com/specialistvlad/depscope/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// Parse translates one HCL application definition into a model. filename is
// used in diagnostics only.
func Parse(ctx context.Context, filename string, src []byte) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx).With("file", filename)
	logger.Debug("Parsing HCL application definition.", "bytes", len(src))

	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("failed to parse HCL file %s: unexpected body type %T", filename, file.Body)
	}
	if len(body.Attributes) > 0 {
		first := sortedAttributes(body.Attributes)[0]
		return nil, fmt.Errorf("%s: top-level attribute %q is not allowed; wrap properties in an entity block", first.SrcRange, first.Name)
	}

	model := config.NewModel()
	seen := make(map[string]hcl.Range)

	for _, block := range body.Blocks {
		if len(block.Labels) != 1 {
			return nil, fmt.Errorf("%s: %s block must have exactly one label (the entity name), got %d", block.DefRange(), block.Type, len(block.Labels))
		}
		name := block.Labels[0]
		if prev, dup := seen[name]; dup {
			return nil, fmt.Errorf("%s: duplicate entity %q, first defined at %s", block.DefRange(), name, prev)
		}
		seen[name] = block.DefRange()

		if len(block.Body.Blocks) > 0 {
			nested := block.Body.Blocks[0]
			return nil, fmt.Errorf("%s: nested %s block in entity %q is not supported", nested.DefRange(), nested.Type, name)
		}

		entity := &config.Entity{Kind: block.Type, Name: name}
		for _, attr := range sortedAttributes(block.Body.Attributes) {
			prop := translateProperty(ctx, attr)
			entity.Properties = append(entity.Properties, prop)

			path := entity.Path(prop)
			model.Inverse.Add(path, entity.Name)
			for _, ref := range prop.References {
				model.Inverse.Add(ref, path)
			}
		}

		logger.Debug("Translated entity.", "kind", entity.Kind, "name", entity.Name, "properties", len(entity.Properties))
		model.Entities = append(model.Entities, entity)
	}

	logger.Debug("HCL translation complete.", "entities", len(model.Entities), "keys", model.Inverse.Len())
	return model, nil
}

// translateProperty extracts the references of an attribute and, for
// attributes without any, its static value.
func translateProperty(ctx context.Context, attr *hclsyntax.Attribute) *config.Property {
	logger := ctxlog.FromContext(ctx).With("attribute", attr.Name)

	prop := &config.Property{
		Name:   attr.Name,
		Expr:   attr.Expr,
		Static: cty.NilVal,
	}

	seen := make(map[string]struct{})
	for _, traversal := range attr.Expr.Variables() {
		ref, ok := referenceOf(traversal)
		if !ok {
			logger.Debug("Ignoring traversal without a root.", "traversal", formatTraversal(traversal))
			continue
		}
		if _, dup := seen[ref]; dup {
			continue
		}
		seen[ref] = struct{}{}
		logger.Debug("Found reference.", "traversal", formatTraversal(traversal), "ref", ref)
		prop.References = append(prop.References, ref)
	}

	if len(prop.References) == 0 {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			logger.Debug("Static expression could not be evaluated.", "error", diags.Error())
			val = cty.DynamicVal
		}
		prop.Static = val
	}
	return prop
}

// sortedAttributes returns the attributes in source order.
func sortedAttributes(attrs hclsyntax.Attributes) []*hclsyntax.Attribute {
	out := make([]*hclsyntax.Attribute, 0, len(attrs))
	for _, attr := range attrs {
		out = append(out, attr)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SrcRange.Start.Byte < out[j].SrcRange.Start.Byte
	})
	return out
}
