package analyzer

import (
	"fmt"
	"strings"

	"github.com/ludo-technologies/pysmell/domain"
	"github.com/ludo-technologies/pysmell/internal/config"
	"github.com/ludo-technologies/pysmell/internal/parser"
)

// GodClassDetector flags classes whose field count, method count, or
// line count exceeds its threshold. One finding per class reports all
// three metrics; severity follows the worst measured/threshold ratio.
type GodClassDetector struct {
	cfg config.GodClassConfig
}

// NewGodClassDetector validates the thresholds and builds the detector
func NewGodClassDetector(cfg config.GodClassConfig) (*GodClassDetector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, configError(err)
	}
	return &GodClassDetector{cfg: cfg}, nil
}

func (d *GodClassDetector) Kind() domain.SmellKind {
	return domain.SmellGodClass
}

func (d *GodClassDetector) Detect(unit *parser.SourceUnit) []domain.Finding {
	var findings []domain.Finding
	for _, cls := range unit.Classes {
		fieldCount := len(cls.Fields)
		methodCount := len(cls.Methods)
		lineCount := cls.LineCount()

		var parts []string
		maxRatio := 0.0
		check := func(measured, threshold int, label string) {
			ratio := float64(measured) / float64(threshold)
			if ratio > maxRatio {
				maxRatio = ratio
			}
			if measured > threshold {
				parts = append(parts, fmt.Sprintf("too many %s (%d, max: %d)", label, measured, threshold))
			}
		}
		check(fieldCount, d.cfg.MaxFields, "fields")
		check(methodCount, d.cfg.MaxMethods, "methods")
		check(lineCount, d.cfg.MaxLines, "lines")

		if len(parts) == 0 {
			continue
		}

		severity := domain.SeverityMedium
		if maxRatio > severityScale {
			severity = domain.SeverityHigh
		}

		findings = append(findings, domain.Finding{
			Kind:     d.Kind(),
			Severity: severity,
			Location: domain.Location{
				FilePath:  unit.FilePath,
				StartLine: cls.StartLine,
				EndLine:   cls.EndLine,
			},
			Message: fmt.Sprintf("Class '%s' has %s", cls.Name, strings.Join(parts, " and ")),
			Metrics: map[string]float64{
				"field_count":  float64(fieldCount),
				"max_fields":   float64(d.cfg.MaxFields),
				"method_count": float64(methodCount),
				"max_methods":  float64(d.cfg.MaxMethods),
				"line_count":   float64(lineCount),
				"max_lines":    float64(d.cfg.MaxLines),
			},
		})
	}
	return findings
}
