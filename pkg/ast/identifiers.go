package ast

import "strings"

// Identifier correspondence. Two subtree roots sharing a fingerprint have
// identical node types position-for-position in their recorded pre-order
// sequences; refining by identifiers additionally requires the identifier
// names at those positions to agree. A position with no identifier only
// matches another position with no identifier.

// IdentifierKey derives the comparison key for one recorded sequence. The
// per-position separator keeps empty names positional: ["a","","b"] and
// ["a","b",""] must not collide.
func IdentifierKey(seq []*Node) string {
	names := make([]string, len(seq))
	for i, n := range seq {
		names[i] = n.Name
	}
	return strings.Join(names, "\x00")
}

// GroupByIdentifiers partitions roots into sub-groups with pairwise-equal
// identifier names at every position of their recorded sequences. seqs maps
// each root to the fixed sequence recorded for it at insertion time.
// Sub-group order follows first occurrence in roots, and members keep their
// relative order, so the partition is deterministic.
func GroupByIdentifiers(roots []*Node, seqs func(root *Node) []*Node) [][]*Node {
	groups := make(map[string][]*Node, len(roots))
	var order []string

	for _, root := range roots {
		key := IdentifierKey(seqs(root))
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], root)
	}

	result := make([][]*Node, 0, len(order))
	for _, key := range order {
		result = append(result, groups[key])
	}
	return result
}
