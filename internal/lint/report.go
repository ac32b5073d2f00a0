package lint

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// Report aggregates the findings of one run over the archive.
type Report struct {
	Findings []Finding `json:"findings"`
}

// NewReport returns an empty report.
func NewReport() *Report {
	return &Report{Findings: []Finding{}}
}

// Add appends findings to the report.
func (r *Report) Add(findings ...Finding) {
	r.Findings = append(r.Findings, findings...)
}

// Sort orders findings by path, then line, then code, then zone id. Workers
// deliver findings in scheduling order; sorting makes reruns over unchanged
// input byte-identical regardless of worker count.
func (r *Report) Sort() {
	sort.Slice(r.Findings, func(i, j int) bool {
		a, b := r.Findings[i], r.Findings[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Code != b.Code {
			return a.Code < b.Code
		}
		return a.ZoneID < b.ZoneID
	})
}

// HasErrors reports whether any finding is Error severity. Warnings alone
// keep the run green.
func (r *Report) HasErrors() bool {
	return r.Errors() > 0
}

// Errors counts Error-severity findings.
func (r *Report) Errors() int {
	n := 0
	for _, f := range r.Findings {
		if f.Code.Severity() == Error {
			n++
		}
	}
	return n
}

// Warnings counts Warning-severity findings.
func (r *Report) Warnings() int {
	return len(r.Findings) - r.Errors()
}

// FailedFiles returns the number of distinct files with Error findings.
func (r *Report) FailedFiles() int {
	paths := make(map[string]struct{})
	for _, f := range r.Findings {
		if f.Code.Severity() == Error {
			paths[f.Path] = struct{}{}
		}
	}
	return len(paths)
}

// WriteText renders one line per finding.
func (r *Report) WriteText(w io.Writer) error {
	for _, f := range r.Findings {
		if _, err := fmt.Fprintln(w, f.String()); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON renders the whole report as an indented JSON object. The empty
// report still produces a valid document so machine consumers never have to
// special-case a clean run.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
