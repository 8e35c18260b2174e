package inspector

import (
	"strings"

	"github.com/saintedlama/jsinspect/pkg/ast"
)

// FingerprintKey derives the fingerprint for a bounded pre-order sequence:
// the node types joined position-for-position. Two subtree roots share a
// fingerprint iff their sequences are identical.
func FingerprintKey(seq []*ast.Node) string {
	types := make([]string, len(seq))
	for i, n := range seq {
		types[i] = n.Type
	}
	return strings.Join(types, ":")
}

// membershipSet records, for one node, every fingerprint it participates in
// together with the exact sequence captured at insertion time. Key order is
// insertion order, which keeps pruning deterministic.
type membershipSet struct {
	keys []string
	seqs map[string][]*ast.Node
}

// index is the ordered mapping from fingerprint to the nodes sharing it,
// plus the reverse per-node membership side-table. Key iteration order is
// first-insertion order and is load-bearing: it decides which overlapping
// match is reported and pruned first. The side-table is owned here, never
// by the tree (tree structure stays read-only).
type index struct {
	keys        []string
	buckets     map[string][]*ast.Node
	memberships map[*ast.Node]*membershipSet
}

func newIndex() *index {
	return &index{
		buckets:     make(map[string][]*ast.Node),
		memberships: make(map[*ast.Node]*membershipSet),
	}
}

// insert registers seq[0] under the fingerprint of seq. Inserting the same
// root under the same key twice is a no-op.
func (idx *index) insert(seq []*ast.Node) {
	if len(seq) == 0 {
		return
	}
	root := seq[0]
	key := FingerprintKey(seq)

	ms := idx.memberships[root]
	if ms == nil {
		ms = &membershipSet{seqs: make(map[string][]*ast.Node)}
		idx.memberships[root] = ms
	} else if _, ok := ms.seqs[key]; ok {
		return
	}

	if _, ok := idx.buckets[key]; !ok {
		idx.keys = append(idx.keys, key)
	}
	idx.buckets[key] = append(idx.buckets[key], root)

	ms.keys = append(ms.keys, key)
	ms.seqs[key] = seq
}

// bucket returns the nodes registered under key, in insertion order. The
// second result is false when the bucket was deleted by pruning.
func (idx *index) bucket(key string) ([]*ast.Node, bool) {
	nodes, ok := idx.buckets[key]
	return nodes, ok
}

// sequence returns the recorded sequence for (node, key).
func (idx *index) sequence(node *ast.Node, key string) ([]*ast.Node, bool) {
	ms := idx.memberships[node]
	if ms == nil {
		return nil, false
	}
	seq, ok := ms.seqs[key]
	return seq, ok
}

// membershipKeys returns the fingerprints node participates in, in
// insertion order. Empty when the node was never indexed or fully pruned.
func (idx *index) membershipKeys(node *ast.Node) []string {
	ms := idx.memberships[node]
	if ms == nil {
		return nil
	}
	return ms.keys
}

// remove evicts node from key's bucket and drops the membership record,
// deleting the bucket when it becomes empty. Once a node loses its last
// membership it can never be selected for a future match.
func (idx *index) remove(node *ast.Node, key string) {
	nodes, ok := idx.buckets[key]
	if !ok {
		return
	}

	for i, n := range nodes {
		if n == node {
			nodes = append(nodes[:i], nodes[i+1:]...)
			break
		}
	}
	if len(nodes) == 0 {
		delete(idx.buckets, key)
	} else {
		idx.buckets[key] = nodes
	}

	if ms := idx.memberships[node]; ms != nil {
		delete(ms.seqs, key)
		for i, k := range ms.keys {
			if k == key {
				ms.keys = append(ms.keys[:i], ms.keys[i+1:]...)
				break
			}
		}
		if len(ms.keys) == 0 {
			delete(idx.memberships, node)
		}
	}
}
