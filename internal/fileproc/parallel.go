// Package fileproc provides concurrent file parsing with deterministic,
// input-ordered results.
package fileproc

import (
	"context"
	"fmt"
	"runtime"

	"github.com/sourcegraph/conc/pool"

	"github.com/saintedlama/jsinspect/pkg/ast"
	"github.com/saintedlama/jsinspect/pkg/parser"
	"github.com/saintedlama/jsinspect/pkg/source"
)

// DefaultWorkerMultiplier is the multiplier applied to NumCPU for worker
// count. 2x is a good fit for mixed I/O and CGO parsing workloads.
const DefaultWorkerMultiplier = 2

// ProgressFunc is called after each file is parsed. Must be safe for
// concurrent use.
type ProgressFunc func()

// ParseTrees parses files concurrently and returns the trees in input
// order. Each worker owns its own parser (tree-sitter parsers are not safe
// for concurrent use). If any file fails to read or parse, the error for
// the earliest such file in input order is returned and no trees are; the
// caller treats this as fatal to the run.
func ParseTrees(ctx context.Context, files []string, src source.ContentSource, maxWorkers int, onProgress ProgressFunc) ([]*ast.Tree, error) {
	if len(files) == 0 {
		return nil, nil
	}

	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU() * DefaultWorkerMultiplier
	}

	trees := make([]*ast.Tree, len(files))
	errs := make([]error, len(files))

	p := pool.New().WithMaxGoroutines(maxWorkers)
	for i, path := range files {
		p.Go(func() {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return
			}

			psr := parser.New()
			defer psr.Close()

			content, err := src.Read(path)
			if err != nil {
				errs[i] = fmt.Errorf("failed to read %s: %w", path, err)
				return
			}

			tree, err := psr.Parse(content, path)
			if err != nil {
				errs[i] = err
				return
			}

			trees[i] = tree
			if onProgress != nil {
				onProgress()
			}
		})
	}
	p.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return trees, nil
}
