package inspector

import (
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/saintedlama/jsinspect/pkg/ast"
)

// Instance is a single occurrence of a duplicated region.
type Instance struct {
	File      string `json:"file"`
	StartLine uint32 `json:"start_line"`
	EndLine   uint32 `json:"end_line"`
	Lines     int    `json:"lines"`
	Code      string `json:"code,omitempty"`
}

// Match is a reported group of structurally (and, with identifier matching
// enabled, nominally) equivalent subtree roots. Matches are immutable once
// emitted; the inspector makes no guarantee if an event handler mutates one.
type Match struct {
	// ID is a stable hash of the fingerprint key, usable as a compact
	// group identifier in reports.
	ID uint64 `json:"id"`

	// Key is the fingerprint that produced the match.
	Key string `json:"-"`

	Instances []Instance `json:"instances"`

	// Diffs holds one unified diff per instance after the first, each
	// against the first instance. Empty when diffing is disabled.
	Diffs []string `json:"diffs,omitempty"`
}

// newMatch builds a Match from a group of subtree roots sharing key.
// Instance order follows bucket order. lines supplies each file's source
// line array for excerpt extraction.
func newMatch(key string, group []*ast.Node, lines map[string][]string) *Match {
	m := &Match{
		ID:        xxhash.Sum64String(key),
		Key:       key,
		Instances: make([]Instance, 0, len(group)),
	}

	for _, node := range group {
		m.Instances = append(m.Instances, Instance{
			File:      node.File,
			StartLine: node.StartLine,
			EndLine:   node.EndLine,
			Lines:     node.LineCount(),
			Code:      excerpt(lines[node.File], node.StartLine, node.EndLine),
		})
	}

	return m
}

// excerpt returns the source text spanning [startLine, endLine], degrading
// to what is available when line numbers run past the file.
func excerpt(lines []string, startLine, endLine uint32) string {
	if len(lines) == 0 || startLine < 1 {
		return ""
	}
	start := int(startLine) - 1
	end := int(endLine)
	if start >= len(lines) {
		return ""
	}
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[start:end], "\n")
}
