// Package inspector implements structural duplicate detection: it
// fingerprints candidate subtrees of parsed syntax trees, groups subtree
// roots sharing a fingerprint across all analyzed files, optionally refines
// groups by identifier correspondence, and prunes redundant sub-matches so
// only the largest common ancestor of a duplicated region is reported.
package inspector

import (
	"context"

	"github.com/saintedlama/jsinspect/internal/fileproc"
	"github.com/saintedlama/jsinspect/pkg/ast"
	"github.com/saintedlama/jsinspect/pkg/source"
)

// Options configures a run of the inspector.
type Options struct {
	// Threshold is the number of pre-order nodes a subtree must span to
	// become a fingerprint candidate. Minimum meaningful value is 1.
	Threshold int

	// Matches is the minimum number of instances required to report a
	// match. Never less than 2.
	Matches int

	// Identifiers requires matched subtrees to agree on identifier names
	// position-for-position, not just structure.
	Identifiers bool

	// Diff attaches unified diffs between match instances.
	Diff bool
}

// DefaultOptions returns the default inspection options.
func DefaultOptions() Options {
	return Options{
		Threshold: 15,
		Matches:   2,
		Diff:      true,
	}
}

// StartEvent is delivered before any file is processed.
type StartEvent struct {
	NumFiles int
}

// EndEvent is delivered after analysis completes.
type EndEvent struct {
	NumMatches int
}

// Inspector orchestrates one duplicate-detection run over a fixed set of
// files. All state is scoped to a single Run; an Inspector is not reusable
// across runs and is not safe for concurrent use.
type Inspector struct {
	files []string
	opts  Options
	src   source.ContentSource

	index *index
	trees []*ast.Tree
	lines map[string][]string

	onStart    []func(StartEvent)
	onMatch    []func(*Match)
	onEnd      []func(EndEvent)
	onProgress func()

	numMatches int
}

// Option is a functional option for configuring an Inspector.
type Option func(*Inspector)

// WithOptions replaces the full option set.
func WithOptions(opts Options) Option {
	return func(in *Inspector) {
		in.opts = opts
	}
}

// WithThreshold sets the candidate subtree size.
func WithThreshold(threshold int) Option {
	return func(in *Inspector) {
		in.opts.Threshold = threshold
	}
}

// WithMatches sets the minimum instances per reported match.
func WithMatches(matches int) Option {
	return func(in *Inspector) {
		in.opts.Matches = matches
	}
}

// WithIdentifiers enables identifier-correspondence matching.
func WithIdentifiers(enabled bool) Option {
	return func(in *Inspector) {
		in.opts.Identifiers = enabled
	}
}

// WithDiff toggles diff generation for matches.
func WithDiff(enabled bool) Option {
	return func(in *Inspector) {
		in.opts.Diff = enabled
	}
}

// WithSource sets the content source files are read from.
func WithSource(src source.ContentSource) Option {
	return func(in *Inspector) {
		in.src = src
	}
}

// WithProgress registers a callback invoked once per parsed file.
func WithProgress(fn func()) Option {
	return func(in *Inspector) {
		in.onProgress = fn
	}
}

// New creates an Inspector over the given files. File order is significant:
// it determines indexing order and therefore which overlapping match wins.
func New(files []string, opts ...Option) *Inspector {
	in := &Inspector{
		files: files,
		opts:  DefaultOptions(),
		src:   source.NewFilesystem(),
		index: newIndex(),
		lines: make(map[string][]string),
	}
	for _, opt := range opts {
		opt(in)
	}

	// Out-of-range values are clamped rather than rejected; validation
	// with user feedback happens upstream in the CLI.
	if in.opts.Threshold < 1 {
		in.opts.Threshold = 1
	}
	if in.opts.Matches < 2 {
		in.opts.Matches = 2
	}

	return in
}

// OnStart registers a handler for the start event.
func (in *Inspector) OnStart(fn func(StartEvent)) {
	in.onStart = append(in.onStart, fn)
}

// OnMatch registers a handler invoked for each match, in the order the
// analyzer produces them. Handlers run synchronously on the run goroutine.
func (in *Inspector) OnMatch(fn func(*Match)) {
	in.onMatch = append(in.onMatch, fn)
}

// OnEnd registers a handler for the end event.
func (in *Inspector) OnEnd(fn func(EndEvent)) {
	in.onEnd = append(in.onEnd, fn)
}

// Run executes the full pipeline: parse every file, index all candidate
// subtrees in file order, then analyze the index exactly once. The first
// read or parse failure (earliest in file order) aborts the run with no
// partial results. All parsed trees are retained in memory for the whole
// run because pruning may re-traverse any of them.
func (in *Inspector) Run(ctx context.Context) error {
	for _, fn := range in.onStart {
		fn(StartEvent{NumFiles: len(in.files)})
	}

	trees, err := fileproc.ParseTrees(ctx, in.files, in.src, 0, in.onProgress)
	if err != nil {
		return err
	}
	in.trees = trees

	// Indexing stays serialized in input order even though parsing ran
	// concurrently: insertion order is what makes the analysis
	// deterministic.
	for _, tree := range trees {
		in.lines[tree.Path] = tree.Lines
		in.indexTree(tree)
	}

	in.analyze()

	for _, fn := range in.onEnd {
		fn(EndEvent{NumMatches: in.numMatches})
	}
	return nil
}

// indexTree fingerprints every candidate subtree of the tree. A node is a
// candidate only when its bounded pre-order walk returns exactly Threshold
// nodes; smaller subtrees never enter the index.
func (in *Inspector) indexTree(tree *ast.Tree) {
	for _, root := range ast.CandidateRoots(tree) {
		seq := ast.BoundedPreOrder(root, in.opts.Threshold)
		if len(seq) == in.opts.Threshold {
			in.index.insert(seq)
		}
	}
}

func (in *Inspector) emitMatch(match *Match) {
	in.numMatches++
	for _, fn := range in.onMatch {
		fn(match)
	}
}
