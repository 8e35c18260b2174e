package inspector

import (
	"testing"

	"github.com/saintedlama/jsinspect/pkg/ast"
)

// chain builds a linear tree from the given node types and returns all nodes
// in pre-order. Each node is the single child of its predecessor.
func chain(file string, types ...string) []*ast.Node {
	nodes := make([]*ast.Node, len(types))
	for i, typ := range types {
		nodes[i] = &ast.Node{
			Type:      typ,
			File:      file,
			StartLine: uint32(i + 1),
			EndLine:   uint32(len(types)),
		}
		if i > 0 {
			nodes[i-1].AddChild(nodes[i])
		}
	}
	return nodes
}

func TestFingerprintKey(t *testing.T) {
	seq := chain("a.js", "program", "if_statement", "identifier")
	if got := FingerprintKey(seq); got != "program:if_statement:identifier" {
		t.Errorf("FingerprintKey = %q", got)
	}
	if got := FingerprintKey(nil); got != "" {
		t.Errorf("FingerprintKey(nil) = %q, want empty", got)
	}
}

func TestIndex_KeyInsertionOrder(t *testing.T) {
	idx := newIndex()
	idx.insert(chain("a.js", "x", "y"))
	idx.insert(chain("a.js", "p", "q"))
	idx.insert(chain("b.js", "x", "y"))

	want := []string{"x:y", "p:q"}
	if len(idx.keys) != len(want) {
		t.Fatalf("got %d keys, want %d: %v", len(idx.keys), len(want), idx.keys)
	}
	for i, key := range want {
		if idx.keys[i] != key {
			t.Errorf("keys[%d] = %q, want %q", i, idx.keys[i], key)
		}
	}

	nodes, ok := idx.bucket("x:y")
	if !ok || len(nodes) != 2 {
		t.Fatalf("bucket x:y has %d nodes, want 2", len(nodes))
	}
	if nodes[0].File != "a.js" || nodes[1].File != "b.js" {
		t.Error("bucket members out of insertion order")
	}
}

func TestIndex_IdempotentInsert(t *testing.T) {
	idx := newIndex()
	seq := chain("a.js", "x", "y", "z")

	idx.insert(seq)
	idx.insert(seq)

	nodes, ok := idx.bucket("x:y:z")
	if !ok {
		t.Fatal("bucket missing")
	}
	if len(nodes) != 1 {
		t.Errorf("repeated insert grew the bucket to %d members", len(nodes))
	}
	if keys := idx.membershipKeys(seq[0]); len(keys) != 1 {
		t.Errorf("repeated insert grew memberships to %d keys", len(keys))
	}
}

func TestIndex_MultipleMembershipsPerNode(t *testing.T) {
	idx := newIndex()
	nodes := chain("a.js", "x", "y", "z")

	// The same root participates in fingerprints of different lengths.
	idx.insert(nodes[:2])
	idx.insert(nodes[:3])

	keys := idx.membershipKeys(nodes[0])
	if len(keys) != 2 || keys[0] != "x:y" || keys[1] != "x:y:z" {
		t.Fatalf("membershipKeys = %v", keys)
	}

	seq, ok := idx.sequence(nodes[0], "x:y")
	if !ok || len(seq) != 2 {
		t.Error("recorded sequence for x:y lost")
	}
}

func TestIndex_Remove(t *testing.T) {
	idx := newIndex()
	a := chain("a.js", "x", "y")
	b := chain("b.js", "x", "y")
	idx.insert(a)
	idx.insert(b)

	idx.remove(a[0], "x:y")

	nodes, ok := idx.bucket("x:y")
	if !ok || len(nodes) != 1 || nodes[0] != b[0] {
		t.Error("remove should leave the other member in place")
	}
	if _, ok := idx.sequence(a[0], "x:y"); ok {
		t.Error("membership record should be gone after remove")
	}

	idx.remove(b[0], "x:y")
	if _, ok := idx.bucket("x:y"); ok {
		t.Error("empty bucket must be deleted")
	}
	if keys := idx.membershipKeys(b[0]); keys != nil {
		t.Errorf("fully evicted node still has memberships: %v", keys)
	}
}

func TestIndex_RemoveUnknown(t *testing.T) {
	idx := newIndex()
	a := chain("a.js", "x", "y")
	idx.insert(a)

	// Removing under a key the node never joined must not disturb anything.
	idx.remove(a[0], "nope")
	if _, ok := idx.bucket("x:y"); !ok {
		t.Error("unrelated remove damaged the index")
	}
}
