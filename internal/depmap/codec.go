package depmap

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// ParseJSON decodes a JSON object of string arrays, keeping the document's key
// order. `null` values are treated as empty arrays.
func ParseJSON(data []byte) (*Map, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON document")
	}
	root := gjson.ParseBytes(data)
	return FromJSONResult(root)
}

// FromJSONResult decodes an already-parsed gjson value. It is used when the
// map is embedded in a larger document, such as an API request body.
func FromJSONResult(root gjson.Result) (*Map, error) {
	if !root.IsObject() {
		return nil, fmt.Errorf("expected a JSON object, got %s", root.Type)
	}

	m := New()
	var decodeErr error
	root.ForEach(func(key, value gjson.Result) bool {
		k := key.String()
		switch {
		case value.Type == gjson.Null:
			m.Add(k)
		case value.IsArray():
			items := value.Array()
			deps := make([]string, 0, len(items))
			for i, item := range items {
				if item.Type != gjson.String {
					decodeErr = fmt.Errorf("key %q: element %d must be a string, got %s", k, i, item.Type)
					return false
				}
				deps = append(deps, item.Str)
			}
			m.Add(k, deps...)
		default:
			decodeErr = fmt.Errorf("key %q: expected an array of strings, got %s", k, value.Type)
			return false
		}
		return true
	})
	if decodeErr != nil {
		return nil, decodeErr
	}
	return m, nil
}

// ParseYAML decodes a YAML mapping of string sequences, keeping the document's
// key order. An empty document yields an empty map.
func ParseYAML(data []byte) (*Map, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid YAML document: %w", err)
	}

	m := New()
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return m, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping at the document root", root.Line)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valNode := root.Content[i], root.Content[i+1]
		key := keyNode.Value

		switch {
		case valNode.Kind == yaml.ScalarNode && valNode.Tag == "!!null":
			m.Add(key)
		case valNode.Kind == yaml.SequenceNode:
			deps := make([]string, 0, len(valNode.Content))
			for _, item := range valNode.Content {
				if item.Kind != yaml.ScalarNode {
					return nil, fmt.Errorf("line %d: key %q: elements must be scalars", item.Line, key)
				}
				deps = append(deps, item.Value)
			}
			m.Add(key, deps...)
		default:
			return nil, fmt.Errorf("line %d: key %q: expected a sequence of strings", valNode.Line, key)
		}
	}
	return m, nil
}

// MarshalJSON encodes the map as a JSON object in insertion order.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		deps := m.deps[k]
		if deps == nil {
			deps = []string{}
		}
		val, err := json.Marshal(deps)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
