// Package ast defines the syntax tree the inspector operates on, together
// with the traversal utilities the duplicate-detection engine consumes.
//
// Nodes are produced once per file by pkg/parser and are structurally
// read-only afterwards: the engine never mutates a tree, it only records
// bookkeeping about nodes in its own side tables.
package ast

// Node is a single named grammar node. Children are in source order.
// Pointer identity is stable for the lifetime of the tree, which makes a
// *Node usable as a map key in the inspector's membership side-table.
type Node struct {
	// Type is the grammar tag, e.g. "if_statement" or "call_expression".
	Type string

	// Name is the identifier text for identifier-bearing nodes
	// (identifier, property_identifier, ...), empty otherwise.
	Name string

	File      string
	StartLine uint32
	EndLine   uint32

	Parent   *Node
	Children []*Node
}

// Tree is the parsed representation of one source file. Lines holds the
// original source split by newline so diffs can be rendered later without
// re-reading the file.
type Tree struct {
	Path  string
	Root  *Node
	Lines []string
}

// AddChild appends c to n's children and sets the parent link.
func (n *Node) AddChild(c *Node) {
	c.Parent = n
	n.Children = append(n.Children, c)
}

// HasAncestor reports whether anc is a proper ancestor of n.
func (n *Node) HasAncestor(anc *Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p == anc {
			return true
		}
	}
	return false
}

// LineCount returns the number of source lines the node spans.
func (n *Node) LineCount() int {
	return int(n.EndLine-n.StartLine) + 1
}
