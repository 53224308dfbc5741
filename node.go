package cascade

import (
	"encoding/json"
	"errors"
)

// Node is one entry of the option catalog. A node with a non-nil Children
// slice is a category (even when empty) and is never selected directly.
type Node struct {
	Value    Value
	Label    string
	Children []Node
	Disabled bool
}

// Leaf builds a selectable node.
func Leaf(value any, label string) Node {
	return Node{Value: MustValue(value), Label: label}
}

// Category builds a category node holding children.
func Category(value any, label string, children ...Node) Node {
	if children == nil {
		children = []Node{}
	}
	return Node{Value: MustValue(value), Label: label, Children: children}
}

// WithDisabled returns a copy of n with the disabled flag set.
func (n Node) WithDisabled(disabled bool) Node {
	n.Disabled = disabled
	return n
}

// IsCategory reports whether the node carries children.
func (n Node) IsCategory() bool {
	return n.Children != nil
}

// Child finds a direct child by value.
func (n Node) Child(value Value) (Node, bool) {
	for _, child := range n.Children {
		if child.Value.Equal(value) {
			return child, true
		}
	}
	return Node{}, false
}

type nodeJSON struct {
	Value    Value   `json:"value"`
	Label    string  `json:"label"`
	Children *[]Node `json:"children,omitempty"`
	Disabled bool    `json:"disabled,omitempty"`
}

// MarshalJSON keeps "children": [] for empty categories so they round-trip.
func (n Node) MarshalJSON() ([]byte, error) {
	out := nodeJSON{Value: n.Value, Label: n.Label, Disabled: n.Disabled}
	if n.Children != nil {
		children := n.Children
		out.Children = &children
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a node, treating a present children array as a category.
func (n *Node) UnmarshalJSON(data []byte) error {
	var in nodeJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*n = Node{Value: in.Value, Label: in.Label, Disabled: in.Disabled}
	if in.Children != nil {
		n.Children = *in.Children
		if n.Children == nil {
			n.Children = []Node{}
		}
	}
	return nil
}

// Tree is the ordered top level of the option catalog.
type Tree []Node

// Find returns the top-level node whose value equals value.
func (t Tree) Find(value Value) (Node, bool) {
	for _, node := range t {
		if node.Value.Equal(value) {
			return node, true
		}
	}
	return Node{}, false
}

// Category returns the top-level category whose value equals value.
func (t Tree) Category(value Value) (Node, bool) {
	node, ok := t.Find(value)
	if !ok || !node.IsCategory() {
		return Node{}, false
	}
	return node, true
}

// Categories lists top-level category nodes in catalog order.
func (t Tree) Categories() []Node {
	out := make([]Node, 0, len(t))
	for _, node := range t {
		if node.IsCategory() {
			out = append(out, node)
		}
	}
	return out
}

// Resolve walks path through the tree. found is false when any element has no
// matching node; disabled is true when any node along the way is disabled.
func (t Tree) Resolve(path Path) (node Node, found bool, disabled bool) {
	if len(path) == 0 {
		return Node{}, false, false
	}
	level := []Node(t)
	for i, value := range path {
		var next Node
		matched := false
		for _, candidate := range level {
			if candidate.Value.Equal(value) {
				next = candidate
				matched = true
				break
			}
		}
		if !matched {
			return Node{}, false, disabled
		}
		if next.Disabled {
			disabled = true
		}
		if i == len(path)-1 {
			return next, true, disabled
		}
		level = next.Children
	}
	return Node{}, false, disabled
}

// Label resolves the display label of the leaf at path: the category matching
// the first element and its child matching the last. It falls back to the
// stringified last element when the leaf is unknown.
func (t Tree) Label(path Path) string {
	last, ok := path.Last()
	if !ok {
		return ""
	}
	if label, ok := t.leafLabel(path); ok {
		return label
	}
	return last.String()
}

func (t Tree) leafLabel(path Path) (string, bool) {
	first, _ := path.First()
	last, _ := path.Last()
	node, ok := t.Find(first)
	if !ok {
		return "", false
	}
	if len(path) == 1 {
		if node.IsCategory() {
			return "", false
		}
		return node.Label, true
	}
	child, ok := node.Child(last)
	if !ok {
		return "", false
	}
	return child.Label, true
}

// Validate reports structural problems the engine tolerates silently but a
// catalog author should fix: invalid values, duplicate siblings and
// categories nested below the first level.
func (t Tree) Validate() error {
	return errors.Join(validateLevel(t, nil, 0)...)
}

func validateLevel(nodes []Node, parent Path, depth int) []error {
	var errs []error
	seen := make(map[string]struct{}, len(nodes))
	for i, node := range nodes {
		at := append(parent.clone(), node.Value)
		if !node.Value.IsValid() {
			errs = append(errs, &ValidationError{Path: parent.clone(), Index: i, Reason: "value must be a string, number or boolean"})
			continue
		}
		key := node.Value.key()
		if _, dup := seen[key]; dup {
			errs = append(errs, &ValidationError{Path: at, Index: i, Reason: "duplicate sibling value"})
		}
		seen[key] = struct{}{}
		if !node.IsCategory() {
			continue
		}
		if depth > 0 {
			errs = append(errs, &ValidationError{Path: at, Index: i, Reason: "categories may only appear at the top level"})
			continue
		}
		errs = append(errs, validateLevel(node.Children, at, depth+1)...)
	}
	return errs
}
