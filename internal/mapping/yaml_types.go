package mapping

import (
	"fmt"
	"slices"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"gopkg.in/yaml.v3"

	"swizzle-generator/internal/common"
	"swizzle-generator/internal/swizzle"
)

// StringOrArray accepts either a single string or a list of strings.
type StringOrArray []string

// UnmarshalYAML implements custom YAML unmarshaling for StringOrArray.
func (s *StringOrArray) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string

		err := node.Decode(&str)
		if err != nil {
			return err
		}

		if str != "" {
			*s = StringOrArray{str}
		} else {
			*s = StringOrArray{}
		}

		return nil

	case yaml.SequenceNode:
		arr, err := decodeNames(node)
		if err != nil {
			return err
		}

		*s = arr

		return nil

	default:
		return fmt.Errorf("line %d: expected string or array, got %s", node.Line, kindName(node.Kind))
	}
}

// MarshalYAML outputs a single string if length is 1, otherwise an array.
func (s StringOrArray) MarshalYAML() (any, error) {
	if len(s) == 1 {
		return s[0], nil
	}

	return []string(s), nil
}

// First returns the first element or empty string if empty.
func (s StringOrArray) First() string {
	if v, ok := common.First(s); ok {
		return v
	}

	return ""
}

// IsEmpty returns true if the array is empty.
func (s StringOrArray) IsEmpty() bool {
	return common.IsEmpty(s)
}

// Contains returns true if the array contains the given string.
func (s StringOrArray) Contains(str string) bool {
	return slices.Contains(s, str)
}

// FieldPairs is an insertion-ordered destination -> source field mapping.
// A null source is kept as "" and later reported as a missing candidate.
type FieldPairs struct {
	m *linkedhashmap.Map // string -> string
}

// NewFieldPairs builds pairs in the given order.
func NewFieldPairs(pairs ...swizzle.Pair) *FieldPairs {
	fp := &FieldPairs{m: linkedhashmap.New()}
	for _, p := range pairs {
		fp.m.Put(string(p.Target), string(p.Source))
	}

	return fp
}

// Len returns the number of destination fields.
func (fp *FieldPairs) Len() int {
	if fp == nil || fp.m == nil {
		return 0
	}

	return fp.m.Size()
}

// Pairs returns the mapping in declaration order.
func (fp *FieldPairs) Pairs() []swizzle.Pair {
	if fp.Len() == 0 {
		return nil
	}

	out := make([]swizzle.Pair, 0, fp.m.Size())

	it := fp.m.Iterator()
	for it.Next() {
		out = append(out, swizzle.Pair{
			Target: swizzle.FieldName(it.Key().(string)),
			Source: swizzle.FieldName(it.Value().(string)),
		})
	}

	return out
}

// UnmarshalYAML decodes a mapping node keeping key order.
func (fp *FieldPairs) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: single expects a mapping of field: source, got %s", node.Line, kindName(node.Kind))
	}

	fp.m = linkedhashmap.New()

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]

		name, err := decodeKey(fp.m, key)
		if err != nil {
			return err
		}

		var source string

		switch {
		case isNull(val):
		case val.Kind == yaml.ScalarNode:
			source = val.Value
		default:
			return fmt.Errorf("line %d: field %q: single expects exactly one source field, got %s",
				val.Line, name, kindName(val.Kind))
		}

		fp.m.Put(name, source)
	}

	return nil
}

// MarshalYAML encodes the pairs as an ordered mapping node.
func (fp *FieldPairs) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}

	for _, p := range fp.Pairs() {
		val := scalarNode(string(p.Source))
		if p.Source == "" {
			val = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "~"}
		}

		node.Content = append(node.Content, scalarNode(string(p.Target)), val)
	}

	return node, nil
}

// CandidateBlock is an insertion-ordered destination -> candidate list
// mapping. A null value keeps a nil list, "[]" an empty one.
type CandidateBlock struct {
	m *linkedhashmap.Map // string -> []string
}

// NewCandidateBlock builds a block in the given order.
func NewCandidateBlock(fields ...swizzle.DestinationField) *CandidateBlock {
	cb := &CandidateBlock{m: linkedhashmap.New()}

	for _, f := range fields {
		var list []string
		if f.Candidates != nil {
			list = make([]string, len(f.Candidates))
			for i, c := range f.Candidates {
				list[i] = string(c)
			}
		}

		cb.m.Put(string(f.Name), list)
	}

	return cb
}

// Len returns the number of destination fields.
func (cb *CandidateBlock) Len() int {
	if cb == nil || cb.m == nil {
		return 0
	}

	return cb.m.Size()
}

// Fields returns the block in declaration order.
func (cb *CandidateBlock) Fields() []swizzle.DestinationField {
	if cb.Len() == 0 {
		return nil
	}

	out := make([]swizzle.DestinationField, 0, cb.m.Size())

	it := cb.m.Iterator()
	for it.Next() {
		f := swizzle.DestinationField{Name: swizzle.FieldName(it.Key().(string))}

		if list := it.Value().([]string); list != nil {
			f.Candidates = make([]swizzle.FieldName, len(list))
			for i, c := range list {
				f.Candidates[i] = swizzle.FieldName(c)
			}
		}

		out = append(out, f)
	}

	return out
}

// UnmarshalYAML decodes a mapping node keeping key order.
func (cb *CandidateBlock) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: combine expects a mapping of field: [candidates], got %s",
			node.Line, kindName(node.Kind))
	}

	cb.m = linkedhashmap.New()

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]

		name, err := decodeKey(cb.m, key)
		if err != nil {
			return err
		}

		var list []string

		switch {
		case isNull(val):
		case val.Kind == yaml.ScalarNode:
			list = []string{val.Value}
		case val.Kind == yaml.SequenceNode:
			list, err = decodeNames(val)
			if err != nil {
				return fmt.Errorf("field %q: %w", name, err)
			}
		default:
			return fmt.Errorf("line %d: field %q: expected candidate list, got %s",
				val.Line, name, kindName(val.Kind))
		}

		cb.m.Put(name, list)
	}

	return nil
}

// MarshalYAML encodes the block as an ordered mapping node with flow lists.
func (cb *CandidateBlock) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}

	for _, f := range cb.Fields() {
		var val *yaml.Node

		if f.Candidates == nil {
			val = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "~"}
		} else {
			val = &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
			for _, c := range f.Candidates {
				val.Content = append(val.Content, scalarNode(string(c)))
			}
		}

		node.Content = append(node.Content, scalarNode(string(f.Name)), val)
	}

	return node, nil
}

// decodeNames reads a sequence of scalars into a non-nil slice.
func decodeNames(node *yaml.Node) ([]string, error) {
	out := make([]string, 0, len(node.Content))

	for _, item := range node.Content {
		if item.Kind != yaml.ScalarNode || isNull(item) {
			return nil, fmt.Errorf("line %d: expected field name, got %s", item.Line, kindName(item.Kind))
		}

		out = append(out, item.Value)
	}

	return out, nil
}

// decodeKey reads a mapping key and rejects repeats.
func decodeKey(seen *linkedhashmap.Map, key *yaml.Node) (string, error) {
	if key.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("line %d: expected field name as key, got %s", key.Line, kindName(key.Kind))
	}

	if _, dup := seen.Get(key.Value); dup {
		return "", fmt.Errorf("line %d: field %q is declared twice", key.Line, key.Value)
	}

	return key.Value, nil
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.Tag == "!!null"
}

func scalarNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: value}
}

func kindName(kind yaml.Kind) string {
	switch kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
