// Package mapper locates JSON Schema violations in the YAML source they were
// decoded from, so configuration errors can be reported as file:line:column.
package mapper

import (
	"fmt"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	"github.com/goccy/go-yaml/token"
)

// Span is a 1-based region of the YAML source.
type Span struct {
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
	Reason    string // why this region was chosen
}

// Kind is the schema keyword that failed.
type Kind string

const (
	KindType                 Kind = "type"
	KindRequired             Kind = "required"
	KindAdditionalProperties Kind = "additionalProperties"
	KindOther                Kind = "other"
)

// Violation describes a schema failure at an instance location.
type Violation struct {
	Kind     Kind
	Property string // offending or missing property name, when known
}

// Locate maps the instance pointer of a violation to the span that best
// explains it. Paths that no longer exist in the document resolve to the
// nearest existing ancestor, and finally to the start of the document.
func Locate(yamlBytes []byte, pointer string, v Violation) (Span, error) {
	segments, err := decodeJSONPointer(pointer)
	if err != nil {
		return Span{}, err
	}

	file, err := parser.ParseBytes(yamlBytes, 0)
	if err != nil {
		return Span{}, fmt.Errorf("yaml parse error: %w", err)
	}
	if len(file.Docs) == 0 || file.Docs[0].Body == nil {
		return documentSpan(), nil
	}
	root := file.Docs[0].Body

	node, depth := traverse(root, segments)
	if depth < len(segments) {
		if depth == 0 {
			return documentSpan(), nil
		}
		return nodeSpan(node, fmt.Sprintf("nearest existing ancestor at depth %d", depth)), nil
	}

	switch v.Kind {
	case KindAdditionalProperties:
		if key := findKey(node, v.Property); key != nil {
			return nodeSpan(key, "additional property key"), nil
		}
	case KindRequired:
		return nodeSpan(node, fmt.Sprintf("mapping missing property '%s'", v.Property)), nil
	case KindType:
		return nodeSpan(node, "type mismatch: value"), nil
	}

	if len(segments) == 0 {
		return documentSpan(), nil
	}
	return nodeSpan(node, "instance location"), nil
}

// traverse walks segments from root. It returns the deepest node reached and
// how many segments were consumed.
func traverse(root ast.Node, segments []string) (ast.Node, int) {
	current := root
	for depth, segment := range segments {
		var next ast.Node
		switch n := current.(type) {
		case *ast.MappingNode:
			for _, entry := range n.Values {
				if keyMatches(entry.Key, segment) {
					next = entry.Value
					break
				}
			}
		case *ast.MappingValueNode:
			if keyMatches(n.Key, segment) {
				next = n.Value
			}
		case *ast.SequenceNode:
			if i, ok := sequenceIndex(segment); ok && i < len(n.Values) {
				next = n.Values[i]
			}
		}
		if next == nil {
			return current, depth
		}
		current = next
	}
	return current, len(segments)
}

func keyMatches(key ast.MapKeyNode, segment string) bool {
	switch k := key.(type) {
	case *ast.StringNode:
		return k.Value == segment
	case *ast.MappingKeyNode:
		return k.Value.GetToken().Value == segment
	default:
		if tk := key.GetToken(); tk != nil {
			return tk.Value == segment
		}
		return false
	}
}

// findKey returns the key node named name in a mapping node.
func findKey(node ast.Node, name string) ast.Node {
	switch n := node.(type) {
	case *ast.MappingNode:
		for _, entry := range n.Values {
			if keyMatches(entry.Key, name) {
				return entry.Key
			}
		}
	case *ast.MappingValueNode:
		if keyMatches(n.Key, name) {
			return n.Key
		}
	}
	return nil
}

func nodeSpan(node ast.Node, reason string) Span {
	if tk := node.GetToken(); tk != nil {
		return tokenSpan(tk, reason)
	}
	return Span{StartLine: 1, StartCol: 1, EndLine: 1, EndCol: 1, Reason: reason + " (no position)"}
}

func tokenSpan(tk *token.Token, reason string) Span {
	pos := tk.Position
	return Span{
		StartLine: pos.Line,
		StartCol:  pos.Column,
		EndLine:   pos.Line,
		EndCol:    pos.Column + len(tk.Value),
		Reason:    reason,
	}
}

func documentSpan() Span {
	return Span{StartLine: 1, StartCol: 1, EndLine: 1, EndCol: 1, Reason: "document start"}
}
