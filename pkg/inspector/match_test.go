package inspector

import (
	"strings"
	"testing"

	"github.com/saintedlama/jsinspect/pkg/ast"
)

func TestNewMatch(t *testing.T) {
	lines := map[string][]string{
		"a.js": {"line one", "line two", "line three"},
		"b.js": {"first", "second"},
	}
	group := []*ast.Node{
		{Type: "x", File: "a.js", StartLine: 1, EndLine: 2},
		{Type: "x", File: "b.js", StartLine: 2, EndLine: 2},
	}

	m := newMatch("x:y", group, lines)

	if m.Key != "x:y" {
		t.Errorf("key = %q", m.Key)
	}
	if m.ID == 0 {
		t.Error("ID should be derived from the key")
	}
	if len(m.Instances) != 2 {
		t.Fatalf("got %d instances", len(m.Instances))
	}

	a := m.Instances[0]
	if a.Code != "line one\nline two" || a.Lines != 2 {
		t.Errorf("instance a = %+v", a)
	}
	b := m.Instances[1]
	if b.Code != "second" || b.Lines != 1 {
		t.Errorf("instance b = %+v", b)
	}
}

func TestNewMatch_StableID(t *testing.T) {
	a := newMatch("x:y", nil, nil)
	b := newMatch("x:y", nil, nil)
	c := newMatch("x:z", nil, nil)

	if a.ID != b.ID {
		t.Error("same key must hash to the same ID")
	}
	if a.ID == c.ID {
		t.Error("different keys should not collide")
	}
}

func TestExcerpt(t *testing.T) {
	lines := []string{"a", "b", "c"}

	tests := []struct {
		name       string
		start, end uint32
		want       string
	}{
		{"full range", 1, 3, "a\nb\nc"},
		{"middle", 2, 2, "b"},
		{"end past file", 2, 10, "b\nc"},
		{"start past file", 5, 7, ""},
		{"zero start", 0, 2, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := excerpt(lines, tt.start, tt.end); got != tt.want {
				t.Errorf("excerpt(%d, %d) = %q, want %q", tt.start, tt.end, got, tt.want)
			}
		})
	}

	if got := excerpt(nil, 1, 2); got != "" {
		t.Errorf("excerpt with no lines = %q", got)
	}
}

func TestGenerateDiffs(t *testing.T) {
	instances := []Instance{
		{File: "a.js", StartLine: 1, EndLine: 2, Code: "var x = 1;\nuse(x);"},
		{File: "b.js", StartLine: 4, EndLine: 5, Code: "var y = 1;\nuse(y);"},
		{File: "c.js", StartLine: 1, EndLine: 2, Code: "var x = 1;\nuse(x);"},
	}

	diffs := generateDiffs(instances)
	if len(diffs) != 2 {
		t.Fatalf("got %d diffs, want one per instance after the first", len(diffs))
	}

	if !strings.Contains(diffs[0], "-var x = 1;") || !strings.Contains(diffs[0], "+var y = 1;") {
		t.Errorf("diff should show changed lines:\n%s", diffs[0])
	}
	if !strings.Contains(diffs[0], "a.js:1-2") || !strings.Contains(diffs[0], "b.js:4-5") {
		t.Errorf("diff should label both instances:\n%s", diffs[0])
	}

	// Identical content diffs to nothing.
	if diffs[1] != "" {
		t.Errorf("identical instances should produce an empty diff, got:\n%s", diffs[1])
	}
}

func TestGenerateDiffs_SingleInstance(t *testing.T) {
	if diffs := generateDiffs([]Instance{{Code: "x"}}); diffs != nil {
		t.Errorf("expected nil, got %v", diffs)
	}
}
