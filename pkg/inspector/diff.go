package inspector

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
)

// generateDiffs renders a unified diff of each instance after the first
// against the first instance. Diffs are an enhancement: a failure degrades
// to an empty diff and never aborts the run.
func generateDiffs(instances []Instance) []string {
	if len(instances) < 2 {
		return nil
	}

	first := instances[0]
	diffs := make([]string, 0, len(instances)-1)

	for _, other := range instances[1:] {
		diff := difflib.UnifiedDiff{
			A:        difflib.SplitLines(first.Code),
			B:        difflib.SplitLines(other.Code),
			FromFile: instanceLabel(first),
			ToFile:   instanceLabel(other),
			Context:  3,
		}

		text, err := difflib.GetUnifiedDiffString(diff)
		if err != nil {
			text = ""
		}
		diffs = append(diffs, text)
	}

	return diffs
}

func instanceLabel(inst Instance) string {
	return fmt.Sprintf("%s:%d-%d", inst.File, inst.StartLine, inst.EndLine)
}
