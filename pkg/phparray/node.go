package phparray

import (
	"bytes"
	"encoding/json"
	"maps"
	"slices"
)

// Node is one level of a parsed translation file.
// It is either a leaf holding a string or a mapping of keys to child nodes.
// An empty mapping is distinct from a leaf holding an empty string.
type Node struct {
	children map[string]*Node
	value    string
	leaf     bool
}

// Leaf returns a leaf node holding s.
func Leaf(s string) *Node {
	return &Node{value: s, leaf: true}
}

// Mapping returns a mapping node with the given children.
// A nil map yields an empty mapping.
func Mapping(children map[string]*Node) *Node {
	if children == nil {
		children = make(map[string]*Node)
	}
	return &Node{children: children}
}

// IsLeaf reports whether n holds a string value.
func (n *Node) IsLeaf() bool {
	return n != nil && n.leaf
}

// Value returns the leaf string. It is empty for mappings.
func (n *Node) Value() string {
	if n == nil {
		return ""
	}
	return n.value
}

// Child returns the child stored under key.
// It returns false for leaves and for missing keys.
func (n *Node) Child(key string) (*Node, bool) {
	if n == nil || n.leaf {
		return nil, false
	}
	c, ok := n.children[key]
	return c, ok
}

// Set stores child under key, replacing any previous value.
// Calling Set on a leaf is a no-op.
func (n *Node) Set(key string, child *Node) {
	if n == nil || n.leaf {
		return
	}
	if n.children == nil {
		n.children = make(map[string]*Node)
	}
	n.children[key] = child
}

// Len returns the number of direct children.
func (n *Node) Len() int {
	if n == nil || n.leaf {
		return 0
	}
	return len(n.children)
}

// Keys returns the direct child keys in sorted order.
func (n *Node) Keys() []string {
	if n == nil || n.leaf {
		return nil
	}
	return slices.Sorted(maps.Keys(n.children))
}

// Flatten returns every leaf below n keyed by its dotted path.
//
//	['a' => ['b' => 'x'], 'c' => 'y']  =>  {"a.b": "x", "c": "y"}
func (n *Node) Flatten() map[string]string {
	out := make(map[string]string)
	flatten(n, "", out)
	return out
}

func flatten(n *Node, prefix string, out map[string]string) {
	if n == nil {
		return
	}
	if n.leaf {
		if prefix != "" {
			out[prefix] = n.value
		}
		return
	}
	for key, child := range n.children {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		flatten(child, path, out)
	}
}

// MarshalJSON encodes a leaf as a JSON string and a mapping as a JSON object.
func (n *Node) MarshalJSON() ([]byte, error) {
	if n == nil {
		return []byte("{}"), nil
	}
	if n.leaf {
		return json.Marshal(n.value)
	}
	if n.children == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(n.children)
}

// UnmarshalJSON decodes the form produced by MarshalJSON.
func (n *Node) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = Node{value: s, leaf: true}
		return nil
	}

	children := make(map[string]*Node)
	if err := json.Unmarshal(data, &children); err != nil {
		return err
	}
	*n = Node{children: children}
	return nil
}
