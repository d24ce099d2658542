package entityref

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// Segment is a single component of a path, e.g. `rows[0][2]`.
type Segment struct {
	Name    string
	Indices []int
}

// Ref is the structured form of a property path.
type Ref struct {
	Path []Segment
}

// segmentRegex matches a segment name followed by any number of index accessors.
var segmentRegex = regexp.MustCompile(`^([a-zA-Z0-9_$-]+)((?:\[\d+\])*)$`)

var indexRegex = regexp.MustCompile(`\[(\d+)\]`)

// Parse builds a Ref from its canonical string form.
func Parse(raw string) (*Ref, error) {
	if raw == "" {
		return nil, fmt.Errorf("property path cannot be empty")
	}

	ref := &Ref{}
	for _, part := range strings.Split(raw, ".") {
		if part == "" {
			return nil, fmt.Errorf("property path %q contains an empty segment", raw)
		}

		matches := segmentRegex.FindStringSubmatch(part)
		if matches == nil {
			return nil, fmt.Errorf("invalid path segment %q", part)
		}
		if matches[1] == "-" {
			return nil, fmt.Errorf("invalid segment name %q", matches[1])
		}

		seg := Segment{Name: matches[1]}
		for _, idx := range indexRegex.FindAllStringSubmatch(matches[2], -1) {
			n, err := strconv.Atoi(idx[1])
			if err != nil {
				return nil, fmt.Errorf("index in segment %q: %w", part, err)
			}
			seg.Indices = append(seg.Indices, n)
		}
		ref.Path = append(ref.Path, seg)
	}
	return ref, nil
}

// String returns the canonical form of the path.
func (r *Ref) String() string {
	if r == nil {
		return ""
	}

	var sb strings.Builder
	for i, seg := range r.Path {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(seg.Name)
		for _, idx := range seg.Indices {
			sb.WriteByte('[')
			sb.WriteString(strconv.Itoa(idx))
			sb.WriteByte(']')
		}
	}
	return sb.String()
}

// Entity returns the name of the entity that owns the path.
func (r *Ref) Entity() string {
	if r == nil || len(r.Path) == 0 {
		return ""
	}
	return r.Path[0].Name
}

// Property returns the path below the entity, or "" for a bare entity.
func (r *Ref) Property() string {
	if r == nil || len(r.Path) < 2 {
		return ""
	}
	return (&Ref{Path: r.Path[1:]}).String()
}

// Equal reports whether two refs describe the same path.
func (r *Ref) Equal(other *Ref) bool {
	if r == nil || other == nil {
		return r == other
	}
	return slices.EqualFunc(r.Path, other.Path, func(a, b Segment) bool {
		return a.Name == b.Name && slices.Equal(a.Indices, b.Indices)
	})
}

// EntityOf returns the entity part of an identifier without validating it:
// everything before the first '.', or the whole identifier when it has none.
func EntityOf(id string) string {
	if i := strings.IndexByte(id, '.'); i >= 0 {
		return id[:i]
	}
	return id
}
