package analyzer

import (
	"fmt"
	"strings"

	"github.com/ludo-technologies/pysmell/domain"
	"github.com/ludo-technologies/pysmell/internal/config"
	"github.com/ludo-technologies/pysmell/internal/parser"
)

// severityScale is the measured/threshold ratio above which a finding
// is reported as high severity instead of medium.
const severityScale = 1.5

// LongMethodDetector flags functions that exceed the line count or
// cyclomatic complexity threshold. A function triggering both axes
// yields a single finding describing both.
type LongMethodDetector struct {
	cfg config.LongMethodConfig
}

// NewLongMethodDetector validates the thresholds and builds the detector
func NewLongMethodDetector(cfg config.LongMethodConfig) (*LongMethodDetector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, configError(err)
	}
	return &LongMethodDetector{cfg: cfg}, nil
}

func (d *LongMethodDetector) Kind() domain.SmellKind {
	return domain.SmellLongMethod
}

func (d *LongMethodDetector) Detect(unit *parser.SourceUnit) []domain.Finding {
	var findings []domain.Finding
	for _, fn := range unit.Functions {
		lineCount := fn.LineCount()
		complexity := Complexity(fn)

		tooLong := lineCount > d.cfg.MaxLines
		tooComplex := complexity > d.cfg.MaxComplexity
		if !tooLong && !tooComplex {
			continue
		}

		severity := domain.SeverityMedium
		var parts []string
		if tooLong {
			parts = append(parts, fmt.Sprintf("is too long (%d lines, max: %d)", lineCount, d.cfg.MaxLines))
			if float64(lineCount) > severityScale*float64(d.cfg.MaxLines) {
				severity = domain.SeverityHigh
			}
		}
		if tooComplex {
			parts = append(parts, fmt.Sprintf("has high complexity (%d, max: %d)", complexity, d.cfg.MaxComplexity))
			if float64(complexity) > severityScale*float64(d.cfg.MaxComplexity) {
				severity = domain.SeverityHigh
			}
		}

		findings = append(findings, domain.Finding{
			Kind:     d.Kind(),
			Severity: severity,
			Location: domain.Location{
				FilePath:  unit.FilePath,
				StartLine: fn.StartLine,
				EndLine:   fn.EndLine,
			},
			Message: fmt.Sprintf("Method '%s' %s", fn.QualifiedName(), strings.Join(parts, " and ")),
			Metrics: map[string]float64{
				"line_count":     float64(lineCount),
				"max_lines":      float64(d.cfg.MaxLines),
				"complexity":     float64(complexity),
				"max_complexity": float64(d.cfg.MaxComplexity),
			},
		})
	}
	return findings
}
