// Package report implements the Report/Collection shapes the uniqueness
// rewriter and CFG construction use to surface non-fatal findings (and to
// carry fatal ones back to an orchestrator) without aborting a whole run.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mna/zklint/fileset"
)

// Category is a Report's severity.
type Category uint8

const (
	Info Category = iota
	Warning
	Error
)

func (c Category) String() string {
	switch c {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("<invalid category %d>", c)
	}
}

// Label is one named, positioned range attached to a Report, e.g. an earlier
// declaration a report points back to.
type Label struct {
	Text string
	File fileset.FileID
	Span fileset.Span
}

// Report is a single finding: a stable id, a severity, a primary file, a
// message, and zero or more labeled source ranges.
type Report struct {
	ID       string
	Category Category
	File     fileset.FileID
	Span     fileset.Span
	Message  string
	Labels   []Label
}

func (r Report) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s (%s)", r.Category, r.Message, r.ID)
	for _, l := range r.Labels {
		fmt.Fprintf(&sb, "\n  %s", l.Text)
	}
	return sb.String()
}

// Collection is an ordered list of Reports. The zero value is an empty,
// usable Collection.
type Collection struct {
	reports []Report
}

// Add appends r to the collection.
func (c *Collection) Add(r Report) {
	c.reports = append(c.reports, r)
}

// Len reports how many Reports the collection holds.
func (c *Collection) Len() int { return len(c.reports) }

// All returns the collection's reports, sorted by (file, span start, id) for
// stable, deterministic output.
func (c *Collection) All() []Report {
	sorted := make([]Report, len(c.reports))
	copy(sorted, c.reports)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Span.Start != b.Span.Start {
			return a.Span.Start < b.Span.Start
		}
		return a.ID < b.ID
	})
	return sorted
}

// HasErrors reports whether the collection contains at least one Error-level
// Report.
func (c *Collection) HasErrors() bool {
	for _, r := range c.reports {
		if r.Category == Error {
			return true
		}
	}
	return false
}

// Err returns an error combining every report's message (sorted, one per
// line), or nil if the collection is empty.
func (c *Collection) Err() error {
	if len(c.reports) == 0 {
		return nil
	}
	var sb strings.Builder
	for i, r := range c.All() {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(r.String())
	}
	return errString(sb.String())
}

type errString string

func (e errString) Error() string { return string(e) }
