package inspector

import "github.com/saintedlama/jsinspect/pkg/ast"

// pruneDepthMultiplier bounds how deep below a reported root the pruning
// sweep looks for subsumed candidates.
const pruneDepthMultiplier = 10

// analyze walks the fingerprint index once, in key insertion order, emitting
// matches and pruning subsumed nodes as it goes. The iteration order must
// not be re-sorted: it deterministically decides which of two overlapping
// candidates is reported and which is silenced.
func (in *Inspector) analyze() {
	for _, key := range in.index.keys {
		nodes, ok := in.index.bucket(key)
		if !ok || len(nodes) < in.opts.Matches {
			continue
		}

		groups := [][]*ast.Node{nodes}
		if in.opts.Identifiers {
			groups = ast.GroupByIdentifiers(nodes, func(root *ast.Node) []*ast.Node {
				seq, ok := in.index.sequence(root, key)
				if !ok {
					// Every bucket member has a recorded sequence for its
					// own key; a miss means the index bookkeeping is broken.
					panic("inspector: node in bucket without membership record")
				}
				return seq
			})
		}

		for _, group := range groups {
			if len(group) < in.opts.Matches {
				continue
			}

			match := newMatch(key, group, in.lines)
			if in.opts.Diff {
				match.Diffs = generateDiffs(match.Instances)
			}
			in.emitMatch(match)
			in.prune(key, group)
		}
	}
}

// prune enforces greatest-common-ancestor reporting: any indexed descendant
// of a just-reported root whose own buckets are no larger than the reported
// group is a redundant sub-match and is evicted. Buckets larger than the
// group are left untouched so unrelated, still-valid larger matches are not
// disturbed; the resulting ordering sensitivity is intentional.
func (in *Inspector) prune(key string, group []*ast.Node) {
	length := len(group)

	for _, root := range group {
		// Already evicted by an earlier group in this pass.
		if _, ok := in.index.sequence(root, key); !ok {
			continue
		}

		listing := ast.BoundedPreOrder(root, pruneDepthMultiplier*in.opts.Threshold)
		for _, descendant := range listing[1:] {
			for _, k := range in.index.membershipKeys(descendant) {
				nodes, ok := in.index.bucket(k)
				if !ok {
					continue
				}
				if len(nodes) <= length {
					// One qualifying bucket proves the descendant belongs
					// to a fully subsumed match.
					in.index.remove(descendant, k)
					break
				}
			}
		}
	}
}
