package analyzer

import (
	"sort"

	"github.com/ludo-technologies/pysmell/domain"
	"github.com/ludo-technologies/pysmell/internal/parser"
)

// Aggregator runs a set of detectors over source units and merges their
// findings into one stable, ordered result set. Severity is whatever
// each detector computed; the aggregator never recomputes or drops it.
type Aggregator struct {
	detectors []Detector
}

// NewAggregator builds an aggregator over the given detectors
func NewAggregator(detectors []Detector) *Aggregator {
	return &Aggregator{detectors: detectors}
}

// Kinds returns the kinds of the aggregated detectors in canonical order
func (a *Aggregator) Kinds() []domain.SmellKind {
	kinds := make([]domain.SmellKind, len(a.detectors))
	for i, d := range a.detectors {
		kinds[i] = d.Kind()
	}
	sort.Slice(kinds, func(i, j int) bool {
		return kinds[i].Order() < kinds[j].Order()
	})
	return kinds
}

// Analyze runs every detector over the unit and returns the merged
// findings sorted for stable output.
func (a *Aggregator) Analyze(unit *parser.SourceUnit) []domain.Finding {
	var findings []domain.Finding
	for _, detector := range a.detectors {
		findings = append(findings, detector.Detect(unit)...)
	}
	SortFindings(findings)
	return findings
}

// SortFindings orders findings by file, ascending start line, then
// detector kind. Within one kind the detector's own emission order is
// preserved, so repeated runs produce byte-identical reports.
func SortFindings(findings []domain.Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.Location.FilePath != b.Location.FilePath {
			return a.Location.FilePath < b.Location.FilePath
		}
		if a.Location.StartLine != b.Location.StartLine {
			return a.Location.StartLine < b.Location.StartLine
		}
		return a.Kind.Order() < b.Kind.Order()
	})
}
