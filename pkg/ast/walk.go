package ast

// Visitor is called for each node during a walk. Returning false stops
// descent into the node's children.
type Visitor func(node *Node) bool

// Walk traverses the tree pre-order (node first, then children in source
// order).
func Walk(node *Node, visitor Visitor) {
	if node == nil {
		return
	}

	if !visitor(node) {
		return
	}

	for _, child := range node.Children {
		Walk(child, visitor)
	}
}

// BoundedPreOrder returns up to limit nodes in pre-order starting at node.
// The listing is deterministic: depth-first, children in source order.
func BoundedPreOrder(node *Node, limit int) []*Node {
	if node == nil || limit <= 0 {
		return nil
	}

	nodes := make([]*Node, 0, limit)
	Walk(node, func(n *Node) bool {
		if len(nodes) >= limit {
			return false
		}
		nodes = append(nodes, n)
		return len(nodes) < limit
	})
	return nodes
}

// CandidateRoots enumerates every subtree root of the tree in pre-order,
// excluding module-boilerplate subtrees entirely. Import/require wrapper
// idioms produce high-volume, meaningless structural matches, so neither
// the boilerplate node nor anything beneath it becomes a candidate.
func CandidateRoots(tree *Tree) []*Node {
	var roots []*Node
	Walk(tree.Root, func(n *Node) bool {
		if IsBoilerplate(n) {
			return false
		}
		roots = append(roots, n)
		return true
	})
	return roots
}
