package analyzer

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ludo-technologies/pysmell/domain"
	"github.com/ludo-technologies/pysmell/internal/config"
	"github.com/ludo-technologies/pysmell/internal/parser"
)

// MagicNumbersDetector flags numeric literal values that repeat across
// the unit. Unlike the other detectors it is unit scoped: occurrences in
// different functions count toward the same group.
type MagicNumbersDetector struct {
	cfg config.MagicNumbersConfig
}

// NewMagicNumbersDetector validates the settings and builds the detector
func NewMagicNumbersDetector(cfg config.MagicNumbersConfig) (*MagicNumbersDetector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, configError(err)
	}
	return &MagicNumbersDetector{cfg: cfg}, nil
}

func (d *MagicNumbersDetector) Kind() domain.SmellKind {
	return domain.SmellMagicNumbers
}

func (d *MagicNumbersDetector) Detect(unit *parser.SourceUnit) []domain.Finding {
	// Group occurrences by exact value, keeping first-occurrence order
	// so repeated runs report groups identically.
	var order []float64
	groups := map[float64][]int{}
	for _, lit := range unit.Literals {
		if d.cfg.IsWhitelisted(lit.Value) {
			continue
		}
		magnitude := math.Abs(lit.Value)
		if magnitude < d.cfg.MinValue || magnitude > d.cfg.MaxValue {
			continue
		}
		if _, seen := groups[lit.Value]; !seen {
			order = append(order, lit.Value)
		}
		groups[lit.Value] = append(groups[lit.Value], lit.Line)
	}

	var findings []domain.Finding
	for _, value := range order {
		lines := groups[value]
		if len(lines) < d.cfg.MinOccurrences {
			continue
		}

		findings = append(findings, domain.Finding{
			Kind:     d.Kind(),
			Severity: domain.SeverityMedium,
			Location: domain.Location{
				FilePath:  unit.FilePath,
				StartLine: lines[0],
				EndLine:   lines[0],
			},
			Message: fmt.Sprintf("Magic number '%s' appears %d times (lines %s)",
				formatValue(value), len(lines), formatLines(lines)),
			Metrics: map[string]float64{
				"value":           value,
				"occurrences":     float64(len(lines)),
				"min_occurrences": float64(d.cfg.MinOccurrences),
			},
		})
	}
	return findings
}

func formatValue(value float64) string {
	return strconv.FormatFloat(value, 'g', -1, 64)
}

func formatLines(lines []int) string {
	parts := make([]string, len(lines))
	for i, line := range lines {
		parts[i] = strconv.Itoa(line)
	}
	return strings.Join(parts, ", ")
}
