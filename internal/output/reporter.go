package output

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/saintedlama/jsinspect/pkg/inspector"
)

// Reporter consumes inspector events and renders matches in one format.
type Reporter interface {
	// Match handles one emitted match, in emission order.
	Match(m *inspector.Match)

	// Done finalizes the report after the run ends.
	Done(ev inspector.EndEvent) error
}

// NewReporter creates the reporter for the formatter's format. truncate
// limits the source lines printed per instance (0 = all); it only affects
// the default reporter.
func NewReporter(f *Formatter, truncate int) Reporter {
	switch f.Format() {
	case FormatJSON:
		return &jsonReporter{f: f}
	case FormatPMD:
		return &pmdReporter{f: f}
	default:
		return &defaultReporter{f: f, truncate: truncate}
	}
}

// defaultReporter streams matches as they arrive and closes with a summary
// table.
type defaultReporter struct {
	f        *Formatter
	truncate int
	rows     [][]string
}

func (r *defaultReporter) Match(m *inspector.Match) {
	w := r.f.Writer()

	header := fmt.Sprintf("Match - %d instances", len(m.Instances))
	if r.f.Colored() {
		color.New(color.Bold).Fprintln(w, header)
	} else {
		fmt.Fprintln(w, header)
	}

	for _, inst := range m.Instances {
		location := fmt.Sprintf("%s:%d-%d", inst.File, inst.StartLine, inst.EndLine)
		if r.f.Colored() {
			color.New(color.FgCyan).Fprintln(w, location)
		} else {
			fmt.Fprintln(w, location)
		}
		fmt.Fprintln(w, truncateCode(inst.Code, r.truncate))
		fmt.Fprintln(w)
	}

	for _, diff := range m.Diffs {
		if diff == "" {
			continue
		}
		r.printDiff(diff)
	}

	first := m.Instances[0]
	r.rows = append(r.rows, []string{
		fmt.Sprintf("%x", m.ID),
		fmt.Sprintf("%d", len(m.Instances)),
		fmt.Sprintf("%d", first.Lines),
		fmt.Sprintf("%s:%d", first.File, first.StartLine),
	})
}

func (r *defaultReporter) printDiff(diff string) {
	w := r.f.Writer()
	if !r.f.Colored() {
		fmt.Fprintln(w, diff)
		return
	}
	for _, line := range strings.Split(strings.TrimRight(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+"):
			color.New(color.FgGreen).Fprintln(w, line)
		case strings.HasPrefix(line, "-"):
			color.New(color.FgRed).Fprintln(w, line)
		case strings.HasPrefix(line, "@@"):
			color.New(color.FgCyan).Fprintln(w, line)
		default:
			fmt.Fprintln(w, line)
		}
	}
	fmt.Fprintln(w)
}

func (r *defaultReporter) Done(ev inspector.EndEvent) error {
	if ev.NumMatches == 0 {
		r.f.Success("No matches found")
		return nil
	}

	table := &Table{
		Title:   "Matches",
		Headers: []string{"ID", "Instances", "Lines", "First Instance"},
		Rows:    r.rows,
		Footer:  []string{fmt.Sprintf("Total: %d", ev.NumMatches), "", "", ""},
	}
	return table.RenderText(r.f.Writer(), r.f.Colored())
}

// jsonReporter collects all matches and emits them as one JSON array.
type jsonReporter struct {
	f       *Formatter
	matches []*inspector.Match
}

func (r *jsonReporter) Match(m *inspector.Match) {
	r.matches = append(r.matches, m)
}

func (r *jsonReporter) Done(ev inspector.EndEvent) error {
	if r.matches == nil {
		r.matches = []*inspector.Match{}
	}
	return r.f.OutputJSON(r.matches)
}

// pmdReporter emits PMD-CPD compatible XML.
type pmdReporter struct {
	f       *Formatter
	matches []*inspector.Match
}

type pmdFile struct {
	Line uint32 `xml:"line,attr"`
	Path string `xml:"path,attr"`
}

type pmdCodeFragment struct {
	Text string `xml:",cdata"`
}

type pmdDuplication struct {
	Lines        int             `xml:"lines,attr"`
	Files        []pmdFile       `xml:"file"`
	CodeFragment pmdCodeFragment `xml:"codefragment"`
}

type pmdReport struct {
	XMLName      xml.Name         `xml:"pmd-cpd"`
	Duplications []pmdDuplication `xml:"duplication"`
}

func (r *pmdReporter) Match(m *inspector.Match) {
	r.matches = append(r.matches, m)
}

func (r *pmdReporter) Done(ev inspector.EndEvent) error {
	report := pmdReport{}
	for _, m := range r.matches {
		dup := pmdDuplication{
			Lines:        m.Instances[0].Lines,
			CodeFragment: pmdCodeFragment{Text: m.Instances[0].Code},
		}
		for _, inst := range m.Instances {
			dup.Files = append(dup.Files, pmdFile{Line: inst.StartLine, Path: inst.File})
		}
		report.Duplications = append(report.Duplications, dup)
	}

	w := r.f.Writer()
	fmt.Fprint(w, xml.Header)
	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return nil
}

// truncateCode limits code to the first maxLines lines (0 = no limit).
func truncateCode(code string, maxLines int) string {
	if maxLines <= 0 {
		return code
	}
	lines := strings.Split(code, "\n")
	if len(lines) <= maxLines {
		return code
	}
	return strings.Join(lines[:maxLines], "\n") + "\n..."
}
